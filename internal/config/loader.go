package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/ini.v1"

	"jordanella.com/language-gates/internal/catalog"
	"jordanella.com/language-gates/internal/lessons"
)

// StorageBackend selects where catalogs are persisted
type StorageBackend string

const (
	StorageFile   StorageBackend = "file"
	StorageSQLite StorageBackend = "sqlite"
)

const gateSectionPrefix = "Gates."

// Gate describes one language entry point shown on the main window
type Gate struct {
	Code  string
	Name  string
	Flag  string
	Order int
}

// Config holds application settings
type Config struct {
	DataDir       string
	Storage       StorageBackend
	Format        string
	LogLevel      string
	WatchCatalogs bool
	Gates         []Gate
}

// NewDefaultConfig creates a config with default values
func NewDefaultConfig() *Config {
	return &Config{
		DataDir:       "data",
		Storage:       StorageFile,
		Format:        "json",
		LogLevel:      "INFO",
		WatchCatalogs: true,
		Gates: []Gate{
			{Code: "fr", Name: "French", Flag: "🇫🇷", Order: 1},
			{Code: "es", Name: "Spanish", Flag: "🇪🇸", Order: 2},
			{Code: "de", Name: "German", Flag: "🇩🇪", Order: 3},
			{Code: "ja", Name: "Japanese", Flag: "🇯🇵", Order: 4},
		},
	}
}

// LoadFromINI loads configuration from an INI file
func LoadFromINI(path string) (*Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	defaults := NewDefaultConfig()
	section := file.Section("App")

	config := &Config{
		DataDir:       section.Key("dataDir").MustString(defaults.DataDir),
		Storage:       StorageBackend(strings.ToLower(section.Key("storage").MustString(string(defaults.Storage)))),
		Format:        strings.ToLower(section.Key("format").MustString(defaults.Format)),
		LogLevel:      section.Key("logLevel").MustString(defaults.LogLevel),
		WatchCatalogs: section.Key("watchCatalogs").MustBool(defaults.WatchCatalogs),
	}

	for i, gateSection := range file.Section("Gates").ChildSections() {
		code := strings.TrimPrefix(gateSection.Name(), gateSectionPrefix)
		gate := Gate{
			Code:  code,
			Name:  gateSection.Key("name").MustString(""),
			Flag:  gateSection.Key("flag").MustString(""),
			Order: gateSection.Key("order").MustInt(i + 1),
		}
		if gate.Name == "" {
			gate.Name = DisplayName(code)
		}
		config.Gates = append(config.Gates, gate)
	}

	if len(config.Gates) == 0 {
		config.Gates = defaults.Gates
	}

	sort.SliceStable(config.Gates, func(i, j int) bool {
		return config.Gates[i].Order < config.Gates[j].Order
	})

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveToINI saves configuration to an INI file
func SaveToINI(config *Config, path string) error {
	file := ini.Empty()
	section := file.Section("App")

	section.Key("dataDir").SetValue(config.DataDir)
	section.Key("storage").SetValue(string(config.Storage))
	section.Key("format").SetValue(config.Format)
	section.Key("logLevel").SetValue(config.LogLevel)
	section.Key("watchCatalogs").SetValue(fmt.Sprintf("%t", config.WatchCatalogs))

	for _, gate := range config.Gates {
		gateSection := file.Section(gateSectionPrefix + gate.Code)
		gateSection.Key("name").SetValue(gate.Name)
		gateSection.Key("flag").SetValue(gate.Flag)
		gateSection.Key("order").SetValue(fmt.Sprintf("%d", gate.Order))
	}

	return file.SaveTo(path)
}

// Validate checks that the settings can be used to start the app
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageFile, StorageSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage)
	}

	if _, err := lessons.CodecFor(c.Format); err != nil {
		return err
	}

	if len(c.Gates) == 0 {
		return fmt.Errorf("no gates configured")
	}

	seen := make(map[string]bool)
	for _, gate := range c.Gates {
		code, err := catalog.NormalizeCode(gate.Code)
		if err != nil {
			return fmt.Errorf("gate %q: %w", gate.Code, err)
		}
		if seen[code] {
			return fmt.Errorf("gate %q configured twice", gate.Code)
		}
		seen[code] = true
	}
	return nil
}

// Codec returns the catalog codec named by Format
func (c *Config) Codec() lessons.Codec {
	codec, err := lessons.CodecFor(c.Format)
	if err != nil {
		return lessons.JSONCodec{}
	}
	return codec
}

// CatalogDir is where file-backed catalogs live
func (c *Config) CatalogDir() string {
	return c.DataDir
}

// DatabasePath is the SQLite file used by the sqlite backend
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "catalogs.db")
}

// Gate returns the configured gate for a language code
func (c *Config) Gate(code string) (Gate, bool) {
	normalized, err := catalog.NormalizeCode(code)
	if err != nil {
		return Gate{}, false
	}
	for _, gate := range c.Gates {
		if code, err := catalog.NormalizeCode(gate.Code); err == nil && code == normalized {
			return gate, true
		}
	}
	return Gate{}, false
}

// DisplayName returns the English name of a language, or the code itself
// when it cannot be parsed
func DisplayName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	name := display.English.Languages().Name(tag)
	if name == "" {
		return code
	}
	return name
}
