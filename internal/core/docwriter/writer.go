// Package docwriter renders a tree of mappings, sequences and scalars
// as an indented key-value document (a minimal YAML subset). This is
// part of the Functional Core - all functions are pure with no I/O.
//
// Rendering rules:
//   - nested mappings indent by two spaces per level
//   - sequence elements render one per line prefixed by "- "
//   - string scalars are quoted, other scalars are not
//   - mapping keys keep insertion order, so output is deterministic
package docwriter

import (
	"fmt"
	"strings"
)

// =============================================================================
// Node Types
// =============================================================================

// Node is one element of the document tree: *Mapping, Sequence or Scalar.
type Node interface {
	isNode()
}

// Scalar is a leaf value. Strings render quoted; ints, floats and bools
// render bare; a nil value renders as nothing (an empty entry).
type Scalar struct {
	Value any
}

func (Scalar) isNode() {}

// Sequence is an ordered list of nodes.
type Sequence []Node

func (Sequence) isNode() {}

// Mapping is an ordered set of key/node pairs. Keys keep insertion
// order; Set replaces in place when a key already exists.
type Mapping struct {
	keys   []string
	values map[string]Node
}

func (*Mapping) isNode() {}

// Map creates an empty ordered mapping.
func Map() *Mapping {
	return &Mapping{values: make(map[string]Node)}
}

// Set adds or replaces a key. Returns the mapping for chaining.
func (m *Mapping) Set(key string, n Node) *Mapping {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = n
	return m
}

// Keys returns the mapping's keys in insertion order.
func (m *Mapping) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Get returns the node for a key, or nil when absent.
func (m *Mapping) Get(key string) Node {
	return m.values[key]
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// =============================================================================
// Scalar Constructors
// =============================================================================

// String wraps a string scalar (rendered quoted).
func String(s string) Scalar { return Scalar{Value: s} }

// Int wraps an integer scalar (rendered bare).
func Int(i int) Scalar { return Scalar{Value: i} }

// Bool wraps a boolean scalar (rendered bare).
func Bool(b bool) Scalar { return Scalar{Value: b} }

// Null is the empty scalar: its key renders with no value, which is how
// an unconfigured named entry (e.g. a bare volume) is expressed.
var Null = Scalar{Value: nil}

// Strings builds a sequence of string scalars.
func Strings(items ...string) Sequence {
	seq := make(Sequence, 0, len(items))
	for _, s := range items {
		seq = append(seq, String(s))
	}
	return seq
}

// =============================================================================
// Rendering
// =============================================================================

// Render serializes a document tree to text. The root is typically a
// *Mapping; the document ends with a trailing newline.
func Render(root Node) string {
	var b strings.Builder
	renderNode(&b, root, 0)
	return b.String()
}

func renderNode(b *strings.Builder, n Node, depth int) {
	switch node := n.(type) {
	case *Mapping:
		renderMapping(b, node, depth)
	case Sequence:
		renderSequence(b, node, depth)
	case Scalar:
		b.WriteString(indent(depth))
		b.WriteString(renderScalar(node))
		b.WriteByte('\n')
	}
}

func renderMapping(b *strings.Builder, m *Mapping, depth int) {
	for _, key := range m.keys {
		value := m.values[key]
		switch v := value.(type) {
		case Scalar:
			b.WriteString(indent(depth))
			b.WriteString(key)
			b.WriteByte(':')
			if v.Value != nil {
				b.WriteByte(' ')
				b.WriteString(renderScalar(v))
			}
			b.WriteByte('\n')
		case *Mapping:
			b.WriteString(indent(depth))
			b.WriteString(key)
			b.WriteString(":\n")
			renderMapping(b, v, depth+1)
		case Sequence:
			b.WriteString(indent(depth))
			b.WriteString(key)
			b.WriteString(":\n")
			renderSequence(b, v, depth+1)
		}
	}
}

func renderSequence(b *strings.Builder, seq Sequence, depth int) {
	for _, item := range seq {
		switch v := item.(type) {
		case Scalar:
			b.WriteString(indent(depth))
			b.WriteString("- ")
			b.WriteString(renderScalar(v))
			b.WriteByte('\n')
		case *Mapping:
			// First pair rides on the dash line, the rest align under it.
			first := true
			for _, key := range v.keys {
				if first {
					b.WriteString(indent(depth))
					b.WriteString("- ")
					first = false
				} else {
					b.WriteString(indent(depth + 1))
				}
				writeInlinePair(b, key, v.values[key], depth+1)
			}
			if first { // empty mapping item
				b.WriteString(indent(depth))
				b.WriteString("-\n")
			}
		case Sequence:
			b.WriteString(indent(depth))
			b.WriteString("-\n")
			renderSequence(b, v, depth+1)
		}
	}
}

func writeInlinePair(b *strings.Builder, key string, value Node, depth int) {
	switch v := value.(type) {
	case Scalar:
		b.WriteString(key)
		b.WriteByte(':')
		if v.Value != nil {
			b.WriteByte(' ')
			b.WriteString(renderScalar(v))
		}
		b.WriteByte('\n')
	case *Mapping:
		b.WriteString(key)
		b.WriteString(":\n")
		renderMapping(b, v, depth+1)
	case Sequence:
		b.WriteString(key)
		b.WriteString(":\n")
		renderSequence(b, v, depth+1)
	}
}

// renderScalar applies the single quoting rule: strings are quoted,
// every other scalar renders bare.
func renderScalar(s Scalar) string {
	switch v := s.Value.(type) {
	case nil:
		return ""
	case string:
		return fmt.Sprintf("%q", v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}
