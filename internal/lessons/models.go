package lessons

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedCatalog is returned when stored catalog data cannot be decoded
// or violates the catalog invariants
var ErrMalformedCatalog = errors.New("malformed lesson catalog")

// Tier is a difficulty tier within a language gate
type Tier string

const (
	TierBeginner     Tier = "beginner"
	TierIntermediate Tier = "intermediate"
	TierAdvanced     Tier = "advanced"
)

// Tiers returns all tiers in display order
func Tiers() []Tier {
	return []Tier{TierBeginner, TierIntermediate, TierAdvanced}
}

// Title returns the tier name as shown on tab captions
func (t Tier) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// Valid reports whether t is one of the fixed tiers
func (t Tier) Valid() bool {
	switch t {
	case TierBeginner, TierIntermediate, TierAdvanced:
		return true
	}
	return false
}

// LessonType selects how a lesson is presented
type LessonType string

const (
	LessonTypeVocabulary   LessonType = "vocabulary"
	LessonTypeGrammar      LessonType = "grammar"
	LessonTypeConversation LessonType = "conversation"
)

// LessonTypes returns every known lesson type
func LessonTypes() []LessonType {
	return []LessonType{LessonTypeVocabulary, LessonTypeGrammar, LessonTypeConversation}
}

// Valid reports whether lt is a known lesson type
func (lt LessonType) Valid() bool {
	switch lt {
	case LessonTypeVocabulary, LessonTypeGrammar, LessonTypeConversation:
		return true
	}
	return false
}

func (lt LessonType) String() string {
	return string(lt)
}

// ParseLessonType converts a stored type tag into a LessonType
func ParseLessonType(s string) (LessonType, error) {
	lt := LessonType(s)
	if !lt.Valid() {
		return "", fmt.Errorf("%w: unknown lesson type %q", ErrMalformedCatalog, s)
	}
	return lt, nil
}

// UnmarshalText rejects unknown lesson types at decode time
func (lt *LessonType) UnmarshalText(text []byte) error {
	parsed, err := ParseLessonType(string(text))
	if err != nil {
		return err
	}
	*lt = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (lt LessonType) MarshalText() ([]byte, error) {
	return []byte(lt), nil
}

// Lesson is a single unit of content within a tier
type Lesson struct {
	ID    string     `json:"id" yaml:"id"`
	Title string     `json:"title" yaml:"title"`
	Type  LessonType `json:"type" yaml:"type"`
}

// Catalog holds every lesson of one language, grouped by tier.
// Slice order is display order.
type Catalog struct {
	Beginner     []Lesson `json:"beginner" yaml:"beginner"`
	Intermediate []Lesson `json:"intermediate" yaml:"intermediate"`
	Advanced     []Lesson `json:"advanced" yaml:"advanced"`
}

// Lessons returns the lessons of a tier, or nil for an unknown tier
func (c *Catalog) Lessons(tier Tier) []Lesson {
	switch tier {
	case TierBeginner:
		return c.Beginner
	case TierIntermediate:
		return c.Intermediate
	case TierAdvanced:
		return c.Advanced
	}
	return nil
}

func (c *Catalog) setLessons(tier Tier, lessons []Lesson) {
	switch tier {
	case TierBeginner:
		c.Beginner = lessons
	case TierIntermediate:
		c.Intermediate = lessons
	case TierAdvanced:
		c.Advanced = lessons
	}
}

// Find looks up a lesson by id across all tiers
func (c *Catalog) Find(id string) (Lesson, Tier, bool) {
	for _, tier := range Tiers() {
		for _, lesson := range c.Lessons(tier) {
			if lesson.ID == id {
				return lesson, tier, true
			}
		}
	}
	return Lesson{}, "", false
}

// Count returns the total number of lessons
func (c *Catalog) Count() int {
	return len(c.Beginner) + len(c.Intermediate) + len(c.Advanced)
}

// Validate checks that every lesson is well formed and ids are unique
func (c *Catalog) Validate() error {
	seen := make(map[string]Tier)
	for _, tier := range Tiers() {
		for i, lesson := range c.Lessons(tier) {
			if strings.TrimSpace(lesson.ID) == "" {
				return fmt.Errorf("%w: %s lesson %d has no id", ErrMalformedCatalog, tier, i)
			}
			if strings.TrimSpace(lesson.Title) == "" {
				return fmt.Errorf("%w: lesson %q has no title", ErrMalformedCatalog, lesson.ID)
			}
			if !lesson.Type.Valid() {
				return fmt.Errorf("%w: lesson %q has unknown type %q", ErrMalformedCatalog, lesson.ID, lesson.Type)
			}
			if prev, dup := seen[lesson.ID]; dup {
				return fmt.Errorf("%w: duplicate lesson id %q in %s and %s", ErrMalformedCatalog, lesson.ID, prev, tier)
			}
			seen[lesson.ID] = tier
		}
	}
	return nil
}

// Clone returns a deep copy of the catalog
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{}
	for _, tier := range Tiers() {
		src := c.Lessons(tier)
		dst := make([]Lesson, len(src))
		copy(dst, src)
		out.setLessons(tier, dst)
	}
	return out
}
