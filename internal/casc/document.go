package casc

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const encoderIndent = 2

// Document is an in-memory CasC tree. The root is always a mapping node;
// documents with any other root shape are rejected at load time.
type Document struct {
	root *yaml.Node
}

// New returns an empty document (a mapping with no keys).
func New() *Document {
	return &Document{root: newMappingNode()}
}

// Parse decodes a document from raw YAML bytes.
func Parse(data []byte) (*Document, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing casc document: %w", err)
	}
	if len(doc.Content) == 0 {
		// An empty file decodes to a document with no content; treat it
		// as an empty mapping so downstream operations can still append.
		return New(), nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, &NotMappingError{Kind: root.Kind}
	}
	return &Document{root: root}, nil
}

// Load reads and decodes the document at path. A missing or unreadable file
// surfaces as a wrapped *os.PathError so the caller can classify it.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading casc document: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Root exposes the underlying mapping node. Mutating it directly is allowed;
// the Document does not retain any state beyond the tree itself.
func (d *Document) Root() *yaml.Node {
	return d.root
}

// Encode serializes the document to w as YAML with two-space indentation.
func (d *Document) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(encoderIndent)
	if err := enc.Encode(d.root); err != nil {
		return fmt.Errorf("encoding casc document: %w", err)
	}
	return enc.Close()
}

// MarshalText renders the document to a byte slice, byte-identical to what
// Encode writes. Used when the output needs post-processing (deferred
// variable expansion) before being written.
func (d *Document) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newMappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func newSequenceNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

func strNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// mappingValue returns the value node for key, or nil when the mapping does
// not carry it. This is an explicit presence check; a present null value is
// still returned (callers treat it via isNull).
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// setMappingValue replaces the value at key, appending the pair when the key
// is not yet present. Insertion order of new keys is preserved.
func setMappingValue(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content, strNode(key), value)
}

// ensureMapping returns the mapping at key, creating an empty one when the
// key is absent or holds an explicit null.
func ensureMapping(parent *yaml.Node, key string) *yaml.Node {
	if v := mappingValue(parent, key); v != nil && !isNull(v) {
		return v
	}
	m := newMappingNode()
	setMappingValue(parent, key, m)
	return m
}

// ensureSequence returns the sequence at key, creating an empty one when the
// key is absent or holds an explicit null.
func ensureSequence(parent *yaml.Node, key string) *yaml.Node {
	if v := mappingValue(parent, key); v != nil && !isNull(v) {
		return v
	}
	s := newSequenceNode()
	setMappingValue(parent, key, s)
	return s
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

// cloneNode deep-copies a subtree so grafted content cannot later be mutated
// through the source document's handle.
func cloneNode(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	out := *n
	out.Alias = nil
	if len(n.Content) > 0 {
		out.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			out.Content[i] = cloneNode(child)
		}
	}
	return &out
}
