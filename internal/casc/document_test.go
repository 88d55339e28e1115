package casc

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) *Document {
	t.Helper()
	doc, err := Parse([]byte(text))
	require.NoError(t, err)
	return doc
}

func encodeToString(t *testing.T, doc *Document) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, doc.Encode(&buf))
	return buf.String()
}

func TestParsePreservesKeyOrder(t *testing.T) {
	doc := mustParse(t, "zebra: 1\nalpha: 2\nmiddle: 3\n")

	out := encodeToString(t, doc)
	assert.Equal(t, "zebra: 1\nalpha: 2\nmiddle: 3\n", out)
}

func TestParseRejectsNonMappingRoot(t *testing.T) {
	_, err := Parse([]byte("- a\n- b\n"))
	require.Error(t, err)

	var notMapping *NotMappingError
	assert.ErrorAs(t, err, &notMapping)
	assert.Contains(t, err.Error(), "sequence")
}

func TestParseEmptyInputYieldsEmptyDocument(t *testing.T) {
	doc, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Root().Content)
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("key: [unclosed\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRoundTrip(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "casc.yaml")
	content := "jenkins:\n  systemMessage: managed by casc\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, content, encodeToString(t, doc))
}

func TestMarshalTextMatchesEncode(t *testing.T) {
	doc := mustParse(t, "jenkins:\n  nodes:\n    - permanent:\n        name: a\n")

	data, err := doc.MarshalText()
	require.NoError(t, err)
	require.Equal(t, encodeToString(t, doc), string(data))
	assert.Contains(t, string(data), "  nodes:\n    - permanent:\n        name: a\n")
}

func TestCloneNodeIsolatesSubtrees(t *testing.T) {
	doc := mustParse(t, "a:\n  b: 1\n")
	clone := cloneNode(doc.Root())

	// Mutating the clone must not reach back into the original.
	clone.Content[1].Content[1].Value = "2"
	assert.Equal(t, "a:\n  b: 1\n", encodeToString(t, doc))
}
