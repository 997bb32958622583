package lessons

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	for _, codec := range []Codec{JSONCodec{}, YAMLCodec{}} {
		t.Run(codec.Name(), func(t *testing.T) {
			data, err := codec.Encode(DefaultCatalog())
			require.NoError(t, err)

			decoded, err := codec.Decode(data)
			require.NoError(t, err)

			if diff := cmp.Diff(DefaultCatalog(), decoded); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJSONEncodeKeepsTierOrder(t *testing.T) {
	data, err := JSONCodec{}.Encode(DefaultCatalog())
	require.NoError(t, err)

	text := string(data)
	b := strings.Index(text, `"beginner"`)
	i := strings.Index(text, `"intermediate"`)
	a := strings.Index(text, `"advanced"`)
	assert.True(t, b >= 0 && b < i && i < a, "tiers out of order:\n%s", text)
	assert.Contains(t, text, `"id": "b1"`)
}

func TestJSONDecodeHandWritten(t *testing.T) {
	// Compact, unindented catalogs written by older versions still decode.
	data := `{"beginner": [{"id": "x1", "title": "Hello", "type": "vocabulary", "notes": "ignored"}],
		"intermediate": [], "advanced": [{"id": "x2", "title": "Debate", "type": "conversation"}]}`

	cat, err := JSONCodec{}.Decode([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, []Lesson{{ID: "x1", Title: "Hello", Type: LessonTypeVocabulary}}, cat.Beginner)
	assert.NotNil(t, cat.Intermediate)
	assert.Empty(t, cat.Intermediate)
	assert.Equal(t, "Debate", cat.Advanced[0].Title)
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"beginner": [`},
		{"null document", `null`},
		{"missing tier", `{"beginner": [], "intermediate": []}`},
		{"unknown tier", `{"beginner": [], "intermediate": [], "advanced": [], "expert": []}`},
		{"unknown type", `{"beginner": [{"id": "b1", "title": "T", "type": "dance"}], "intermediate": [], "advanced": []}`},
		{"tier is not a list", `{"beginner": {}, "intermediate": [], "advanced": []}`},
		{"duplicate ids", `{"beginner": [{"id": "b1", "title": "T", "type": "grammar"}], "intermediate": [{"id": "b1", "title": "U", "type": "grammar"}], "advanced": []}`},
		{"trailing garbage", `{"beginner": [], "intermediate": [], "advanced": []} {"oops": tru`},
		{"second document", `{"beginner": [], "intermediate": [], "advanced": []} {}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := JSONCodec{}.Decode([]byte(tt.data))
			assert.ErrorIs(t, err, ErrMalformedCatalog)
		})
	}
}

func TestYAMLDecodeRejectsExtraDocuments(t *testing.T) {
	data := "beginner: []\nintermediate: []\nadvanced: []\n---\nbeginner: [\n"

	_, err := YAMLCodec{}.Decode([]byte(data))
	assert.ErrorIs(t, err, ErrMalformedCatalog)

	_, err = YAMLCodec{}.Decode([]byte(""))
	assert.ErrorIs(t, err, ErrMalformedCatalog)
}

func TestYAMLDecodeHandWritten(t *testing.T) {
	data := `
beginner:
  - id: g1
    title: Greetings
    type: vocabulary
intermediate:
advanced:
  - id: g2
    title: Subjunctive
    type: grammar
`
	cat, err := YAMLCodec{}.Decode([]byte(data))
	require.NoError(t, err)
	assert.Equal(t, LessonTypeGrammar, cat.Advanced[0].Type)
	assert.Empty(t, cat.Intermediate)

	_, err = YAMLCodec{}.Decode([]byte("beginner:\n  - id: g1\n    title: T\n    type: poetry\nintermediate: []\nadvanced: []\n"))
	assert.ErrorIs(t, err, ErrMalformedCatalog)
}

func TestCodecFor(t *testing.T) {
	c, err := CodecFor("")
	require.NoError(t, err)
	assert.Equal(t, ".json", c.Extension())

	c, err = CodecFor("YAML")
	require.NoError(t, err)
	assert.Equal(t, "yaml", c.Name())

	_, err = CodecFor("toml")
	assert.Error(t, err)
}
