package lessons

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Codec converts catalogs to and from their stored text form
type Codec interface {
	Name() string
	// Extension is the file suffix used by file-backed storage, including the dot
	Extension() string
	Encode(c *Catalog) ([]byte, error)
	Decode(data []byte) (*Catalog, error)
}

// CodecFor resolves a codec by its configured name
func CodecFor(name string) (Codec, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "json":
		return JSONCodec{}, nil
	case "yaml", "yml":
		return YAMLCodec{}, nil
	default:
		return nil, fmt.Errorf("unknown catalog format %q", name)
	}
}

// JSONCodec stores catalogs as indented JSON
type JSONCodec struct{}

func (JSONCodec) Name() string      { return "json" }
func (JSONCodec) Extension() string { return ".json" }

func (JSONCodec) Encode(c *Catalog) ([]byte, error) {
	data, err := json.MarshalIndent(c.Clone(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	return append(data, '\n'), nil
}

func (JSONCodec) Decode(data []byte) (*Catalog, error) {
	var raw map[string][]Lesson
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, wrapDecodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, trailingDataError(err)
	}
	return fromTierMap(raw)
}

// YAMLCodec stores catalogs as YAML, which is easier to author by hand
type YAMLCodec struct{}

func (YAMLCodec) Name() string      { return "yaml" }
func (YAMLCodec) Extension() string { return ".yaml" }

func (YAMLCodec) Encode(c *Catalog) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c.Clone()); err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}

func (YAMLCodec) Decode(data []byte) (*Catalog, error) {
	var raw map[string][]Lesson
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, wrapDecodeError(err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, trailingDataError(err)
	}
	return fromTierMap(raw)
}

func wrapDecodeError(err error) error {
	return fmt.Errorf("%w: %v", ErrMalformedCatalog, err)
}

// trailingDataError reports content after the catalog document. err is the
// result of decoding past the first document.
func trailingDataError(err error) error {
	if err == nil {
		return fmt.Errorf("%w: unexpected data after catalog", ErrMalformedCatalog)
	}
	return fmt.Errorf("%w: unexpected data after catalog: %v", ErrMalformedCatalog, err)
}

// fromTierMap builds a catalog from decoded tier keys, requiring exactly the
// three fixed tiers
func fromTierMap(raw map[string][]Lesson) (*Catalog, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedCatalog)
	}

	var unknown []string
	for key := range raw {
		if !Tier(key).Valid() {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("%w: unknown tiers %s", ErrMalformedCatalog, strings.Join(unknown, ", "))
	}

	cat := &Catalog{}
	for _, tier := range Tiers() {
		lessons, ok := raw[string(tier)]
		if !ok {
			return nil, fmt.Errorf("%w: missing tier %q", ErrMalformedCatalog, tier)
		}
		if lessons == nil {
			lessons = []Lesson{}
		}
		cat.setLessons(tier, lessons)
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}
