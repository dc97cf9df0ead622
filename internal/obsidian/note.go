// Package obsidian renders TMDB details as Obsidian markdown notes with YAML
// frontmatter.
package obsidian

import (
	"bytes"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

// Note represents a complete markdown document with YAML frontmatter and body content.
type Note struct {
	Frontmatter *Frontmatter
	Body        string
}

// Frontmatter holds the YAML fields of a note. Keys are kept sorted so the
// output is deterministic.
type Frontmatter struct {
	fields map[string]any
	keys   []string
}

// NewFrontmatter creates a new empty Frontmatter.
func NewFrontmatter() *Frontmatter {
	return &Frontmatter{fields: make(map[string]any)}
}

// Get retrieves a value from frontmatter.
func (f *Frontmatter) Get(key string) (any, bool) {
	val, ok := f.fields[key]
	return val, ok
}

// Set sets a value in frontmatter, maintaining sorted key order.
func (f *Frontmatter) Set(key string, value any) {
	if _, exists := f.fields[key]; !exists {
		idx, _ := slices.BinarySearch(f.keys, key)
		f.keys = slices.Insert(f.keys, idx, key)
	}
	f.fields[key] = value
}

// SetIf sets key only when ok is true. Builders use it to skip fields the
// provider left empty.
func (f *Frontmatter) SetIf(ok bool, key string, value any) {
	if ok {
		f.Set(key, value)
	}
}

// Keys returns a copy of the sorted frontmatter keys.
func (f *Frontmatter) Keys() []string {
	return slices.Clone(f.keys)
}

// MarshalYAML writes the fields in key order. Tags are written in flow
// style: [a, b, c].
func (f *Frontmatter) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{
		Kind:    yaml.MappingNode,
		Content: make([]*yaml.Node, 0, len(f.keys)*2),
	}

	for _, key := range f.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}

		valueNode := &yaml.Node{}
		if err := valueNode.Encode(f.fields[key]); err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		if key == "tags" && valueNode.Kind == yaml.SequenceNode {
			valueNode.Style = yaml.FlowStyle
		}

		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}

// Build serializes the Note to markdown. Frontmatter is omitted when it has
// no fields.
func (n *Note) Build() ([]byte, error) {
	var buf bytes.Buffer

	if n.Frontmatter != nil && len(n.Frontmatter.keys) > 0 {
		buf.WriteString("---\n")
		frontmatter, err := yaml.Marshal(n.Frontmatter)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
		}
		buf.Write(frontmatter)
		buf.WriteString("---\n")
	}

	buf.WriteString(n.Body)
	return buf.Bytes(), nil
}
