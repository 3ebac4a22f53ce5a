package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/fread"
	"github.com/bjaus/fread/query"
)

func roster() []fread.Record {
	return []fread.Record{
		fread.NewRecord("Name", "Alice", "Grade", "A", "Score", "93"),
		fread.NewRecord("Name", "Bob", "Grade", "B", "Score", "85"),
		fread.NewRecord("Name", "Carlo", "Grade", "A", "Score", ""),
	}
}

func names(records []fread.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Get("Name")
	}
	return out
}

func TestApply(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		expr string
		want []string
	}{
		"equality":         {expr: `.Grade == "A"`, want: []string{"Alice", "Carlo"}},
		"numeric":          {expr: `.Score != "" and (.Score | tonumber) > 90`, want: []string{"Alice"}},
		"string function":  {expr: `.Name | startswith("B")`, want: []string{"Bob"}},
		"truthy non bool":  {expr: `.Name`, want: []string{"Alice", "Bob", "Carlo"}},
		"missing key null": {expr: `.Email`, want: []string{}},
		"empty no match":   {expr: `empty`, want: []string{}},
		"first value wins": {expr: `false, true`, want: []string{}},
		"select style":     {expr: `select(.Grade == "B")`, want: []string{"Bob"}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			f, err := query.Compile(tt.expr)
			require.NoError(t, err)
			got, err := f.Apply(roster())
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestApplyKeepsInputIntact(t *testing.T) {
	t.Parallel()
	in := roster()
	f, err := query.Compile(`.Grade == "B"`)
	require.NoError(t, err)
	_, err = f.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, roster(), in)
}

func TestApplyEmpty(t *testing.T) {
	t.Parallel()
	f, err := query.Compile(`true`)
	require.NoError(t, err)
	got, err := f.Apply(nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApplyRuntimeError(t *testing.T) {
	t.Parallel()
	f, err := query.Compile(`.Score | tonumber > 0`)
	require.NoError(t, err)
	_, err = f.Apply(roster())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 3")
}

func TestCompileInvalid(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"syntax":           `.Grade ==`,
		"unknown function": `nosuchfunc(1)`,
	}
	for name, expr := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := query.Compile(expr)
			require.ErrorIs(t, err, query.ErrInvalidQuery)
		})
	}
}

func TestEval(t *testing.T) {
	t.Parallel()
	f, err := query.Compile(`.Name, (.Grade | ascii_downcase)`)
	require.NoError(t, err)
	assert.Equal(t, ".Name, (.Grade | ascii_downcase)", f.String())

	got, err := f.Eval(fread.NewRecord("Name", "Alice", "Grade", "A"))
	require.NoError(t, err)
	assert.Equal(t, []any{"Alice", "a"}, got)

	f, err = query.Compile(`error("boom")`)
	require.NoError(t, err)
	_, err = f.Eval(fread.NewRecord())
	require.Error(t, err)
}

func TestMatch(t *testing.T) {
	t.Parallel()
	f, err := query.Compile(`.Name == "Alice"`)
	require.NoError(t, err)

	ok, err := f.Match(fread.NewRecord("Name", "Alice"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.Match(fread.NewRecord("Name", "Bob"))
	require.NoError(t, err)
	assert.False(t, ok)
}
