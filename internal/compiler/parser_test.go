package compiler_test

import (
	"testing"

	"github.com/aretw0/aide/internal/compiler"
	"github.com/aretw0/aide/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `{
  "start": {
    "content": "Hi",
    "options": [{"label": "Next", "next": "n2"}, {"label": "Watch", "next": "vid"}],
    "author": "ignored"
  },
  "n2": {"content": "Bye", "options": []},
  "vid": {"content": "Look", "type": "video", "video_index": 2, "options": [{"label": "Back", "next": "start"}]}
}`

func TestParseTree_JSON(t *testing.T) {
	tree, err := compiler.ParseTree([]byte(sampleJSON), compiler.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 3, tree.Len())

	start, ok := tree.Get("start")
	require.True(t, ok)
	assert.Equal(t, domain.KindText, start.Kind, "missing type means text")
	assert.Equal(t, []domain.Choice{{Label: "Next", Next: "n2"}, {Label: "Watch", Next: "vid"}}, start.Options)

	end, _ := tree.Get("n2")
	assert.True(t, end.Terminal())
	assert.Nil(t, end.Options)

	vid, _ := tree.Get("vid")
	idx, isVideo := vid.VideoRef()
	assert.True(t, isVideo)
	assert.Equal(t, 2, idx)
}

func TestParseTree_YAML(t *testing.T) {
	doc := `
start:
  content: Hi
  options:
    - label: Next
      next: n2
n2:
  type: video
  video_index: 0
  content: Bye
`
	tree, err := compiler.ParseTree([]byte(doc), compiler.FormatYAML)
	require.NoError(t, err)

	n2, ok := tree.Get("n2")
	require.True(t, ok)
	idx, isVideo := n2.VideoRef()
	assert.True(t, isVideo)
	assert.Zero(t, idx)
}

func TestParseTree_DuplicateIDsInJSON(t *testing.T) {
	tree, err := compiler.ParseTree([]byte(`{"a": {"content": "one"}, "a": {"content": "two"}}`), compiler.FormatJSON)
	require.NoError(t, err)
	a, _ := tree.Get("a")
	assert.Equal(t, "two", a.Content)
}

func TestParseTree_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		invalid bool
	}{
		{name: "not json", doc: `{"start": `},
		{name: "array", doc: `[1, 2]`},
		{name: "null", doc: `null`},
		{name: "trailing garbage", doc: `{"start": {"content": "Hi"}} this is not json`},
		{name: "second document", doc: `{"start": {"content": "Hi"}} {"end": {}}`},
		{name: "stray closing brace", doc: `{"start": {"content": "Hi"}}}`},
		{name: "node not an object", doc: `{"start": "hello"}`, invalid: true},
		{name: "video without index", doc: `{"start": {"type": "video"}}`, invalid: true},
		{name: "negative index", doc: `{"start": {"type": "video", "video_index": -1}}`, invalid: true},
		{name: "fractional index", doc: `{"start": {"type": "video", "video_index": 1.5}}`, invalid: true},
		{name: "unknown type", doc: `{"start": {"type": "quiz"}}`, invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compiler.ParseTree([]byte(tt.doc), compiler.FormatJSON)
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, domain.ErrInvalidNode)
			}
		})
	}
}

func TestParseTree_IndexOnTextNodeIgnored(t *testing.T) {
	tree, err := compiler.ParseTree([]byte(`{"start": {"type": "text", "video_index": 3}}`), compiler.FormatJSON)
	require.NoError(t, err)
	start, _ := tree.Get("start")
	_, isVideo := start.VideoRef()
	assert.False(t, isVideo)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, compiler.FormatYAML, compiler.DetectFormat("tree.yml", nil))
	assert.Equal(t, compiler.FormatYAML, compiler.DetectFormat("tree.YAML", nil))
	assert.Equal(t, compiler.FormatJSON, compiler.DetectFormat("tree.json", []byte("a: b")))
	assert.Equal(t, compiler.FormatJSON, compiler.DetectFormat("http://host/tree", []byte("  {}")))
	assert.Equal(t, compiler.FormatYAML, compiler.DetectFormat("http://host/tree", []byte("start:\n  content: x")))
}
