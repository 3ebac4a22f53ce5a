package fread

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field is one column of a [Record].
type Field struct {
	Key   string
	Value string
}

// Record is one data row of a delimited file. Fields follow header order
// and every record read from the same file carries the same keys. Cells
// beyond the header are kept in Rest rather than dropped.
type Record struct {
	Fields []Field
	Rest   []string
}

// NewRecord builds a record from alternating key, value arguments. A
// trailing key without a value maps to "".
func NewRecord(kv ...string) Record {
	fields := make([]Field, 0, (len(kv)+1)/2)
	for i := 0; i < len(kv); i += 2 {
		f := Field{Key: kv[i]}
		if i+1 < len(kv) {
			f.Value = kv[i+1]
		}
		fields = append(fields, f)
	}
	return Record{Fields: fields}
}

// Lookup returns the value stored under key.
func (r Record) Lookup(key string) (string, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Get returns the value stored under key, or "" when the key is absent.
func (r Record) Get(key string) string {
	v, _ := r.Lookup(key)
	return v
}

// Keys returns the column names in header order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Values returns the cell values in header order.
func (r Record) Values() []string {
	vals := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		vals[i] = f.Value
	}
	return vals
}

// Map returns the record as an unordered map.
func (r Record) Map() map[string]string {
	m := make(map[string]string, len(r.Fields))
	for _, f := range r.Fields {
		m[f.Key] = f.Value
	}
	return m
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.Fields) }

// Header, Row, Pairs, and List let a Record render through the render package.

func (r Record) Header() []string { return r.Keys() }
func (r Record) Row() []string    { return r.Values() }
func (r Record) List() []string   { return r.Values() }
func (r Record) Pairs() []Field {
	out := make([]Field, len(r.Fields))
	copy(out, r.Fields)
	return out
}

// String renders the record as {Key: Value, ...} in header order.
func (r Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Key)
		b.WriteString(": ")
		b.WriteString(f.Value)
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes the record as a JSON object with keys in header order.
// Rest is not part of the encoding.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	buf.WriteByte('{')
	for i, f := range r.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := enc.Encode(f.Key); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
		buf.WriteByte(':')
		if err := enc.Encode(f.Value); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the record as a mapping with keys in header order.
// Values are always tagged as strings so "30" stays "30".
func (r Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Content: make([]*yaml.Node, 0, 2*len(r.Fields))}
	for _, f := range r.Fields {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Value},
		)
	}
	return node, nil
}
