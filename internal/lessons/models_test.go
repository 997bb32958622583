package lessons

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogShape(t *testing.T) {
	cat := DefaultCatalog()

	for _, tier := range Tiers() {
		assert.Len(t, cat.Lessons(tier), 3, "tier %s", tier)
	}
	require.NoError(t, cat.Validate())

	assert.Equal(t, Lesson{ID: "b1", Title: "Basic Greetings", Type: LessonTypeVocabulary}, cat.Beginner[0])

	want := map[Tier][]string{
		TierBeginner:     {"b1", "b2", "b3"},
		TierIntermediate: {"i1", "i2", "i3"},
		TierAdvanced:     {"a1", "a2", "a3"},
	}
	for tier, ids := range want {
		var got []string
		for _, l := range cat.Lessons(tier) {
			got = append(got, l.ID)
		}
		assert.Equal(t, ids, got, "tier %s", tier)
	}
}

func TestDefaultCatalogIsACopy(t *testing.T) {
	a := DefaultCatalog()
	a.Beginner[0].Title = "changed"

	b := DefaultCatalog()
	assert.Equal(t, "Basic Greetings", b.Beginner[0].Title)
}

func TestTierTitle(t *testing.T) {
	assert.Equal(t, "Beginner", TierBeginner.Title())
	assert.Equal(t, "Intermediate", TierIntermediate.Title())
	assert.Equal(t, "Advanced", TierAdvanced.Title())
	assert.False(t, Tier("expert").Valid())
}

func TestParseLessonType(t *testing.T) {
	for _, lt := range LessonTypes() {
		parsed, err := ParseLessonType(string(lt))
		require.NoError(t, err)
		assert.Equal(t, lt, parsed)
	}

	_, err := ParseLessonType("reading")
	assert.ErrorIs(t, err, ErrMalformedCatalog)
}

func TestCatalogFind(t *testing.T) {
	cat := DefaultCatalog()

	lesson, tier, ok := cat.Find("i3")
	require.True(t, ok)
	assert.Equal(t, TierIntermediate, tier)
	assert.Equal(t, "Shopping", lesson.Title)

	_, _, ok = cat.Find("z9")
	assert.False(t, ok)
	assert.Equal(t, 9, cat.Count())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Catalog)
	}{
		{"empty id", func(c *Catalog) { c.Beginner[1].ID = " " }},
		{"empty title", func(c *Catalog) { c.Advanced[0].Title = "" }},
		{"unknown type", func(c *Catalog) { c.Intermediate[2].Type = "dictation" }},
		{"duplicate id across tiers", func(c *Catalog) { c.Advanced[2].ID = "b1" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := DefaultCatalog()
			tt.mutate(cat)
			assert.ErrorIs(t, cat.Validate(), ErrMalformedCatalog)
		})
	}
}
