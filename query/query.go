// Package query filters records with jq expressions.
//
// Each record is presented to the expression as a JSON object of its
// fields, so `.Grade == "A"` keeps records whose Grade column is A.
package query

import (
	"errors"
	"fmt"

	"github.com/itchyny/gojq"

	"github.com/bjaus/fread"
)

// ErrInvalidQuery is returned when an expression does not parse or compile.
var ErrInvalidQuery = errors.New("invalid query")

// Filter is a compiled jq expression. It is safe to reuse.
type Filter struct {
	expr string
	code *gojq.Code
}

// Compile parses and compiles expr.
func Compile(expr string) (*Filter, error) {
	q, err := gojq.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidQuery, expr, err)
	}
	code, err := gojq.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidQuery, expr, err)
	}
	return &Filter{expr: expr, code: code}, nil
}

// String returns the source expression.
func (f *Filter) String() string { return f.expr }

// Eval runs the expression against rec and returns every value it yields.
func (f *Filter) Eval(rec fread.Record) ([]any, error) {
	iter := f.code.Run(input(rec))
	var out []any
	for {
		v, ok := iter.Next()
		if !ok {
			return out, nil
		}
		if err, isErr := v.(error); isErr {
			return nil, err
		}
		out = append(out, v)
	}
}

// Match reports whether the first value the expression yields for rec is
// truthy. Only false and null are falsy; no value at all is a non-match.
func (f *Filter) Match(rec fread.Record) (bool, error) {
	iter := f.code.Run(input(rec))
	v, ok := iter.Next()
	if !ok {
		return false, nil
	}
	if err, isErr := v.(error); isErr {
		return false, err
	}
	return truthy(v), nil
}

// Apply returns the records that match, in their original order. The input
// slice is not modified.
func (f *Filter) Apply(records []fread.Record) ([]fread.Record, error) {
	out := make([]fread.Record, 0, len(records))
	for i, rec := range records {
		ok, err := f.Match(rec)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		if ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func input(rec fread.Record) map[string]any {
	m := make(map[string]any, rec.Len())
	for _, field := range rec.Fields {
		m[field.Key] = field.Value
	}
	return m
}

func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	default:
		return true
	}
}
