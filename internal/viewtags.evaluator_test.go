package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluator_Evaluate(t *testing.T) {
	data := map[string]any{
		"title": "Home",
		"page": map[string]any{
			"layout": "Wide",
			"meta":   map[string]string{"lang": "en"},
		},
		"count": 3,
	}

	tests := []struct {
		name     string
		input    string
		expected any
	}{
		{"string constant", "'x'", "x"},
		{"number constant", "2", 2.0},
		{"bool constant", "false", false},
		{"null constant", "null", nil},
		{"top-level name", "title", "Home"},
		{"dotted name", "page.layout", "Wide"},
		{"string map", "page.meta.lang", "en"},
		{"missing name", "nope", nil},
		{"missing nested", "page.nope.deeper", nil},
		{"array", "[title, 'b']", []any{"Home", "b"}},
		{"hash", "{a: title, b: [count]}", map[string]any{"a": "Home", "b": []any{3}}},
		{"evaluated key", "{(title): 1}", map[string]any{"Home": 1.0}},
		{"numeric key", "{1: 'one'}", map[string]any{"1": "one"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := ParseExpression(tt.input)
			require.NoError(t, err)

			got, err := NewEvaluator(data).Evaluate(expr)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEvaluator_Errors(t *testing.T) {
	t.Run("nil node", func(t *testing.T) {
		_, err := NewEvaluator(nil).Evaluate(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgEvalNilNode)
	})

	t.Run("null key", func(t *testing.T) {
		expr, err := ParseExpression("{(null): 1}")
		require.NoError(t, err)
		_, err = NewEvaluator(nil).Evaluate(expr)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgEvalInvalidKey)
	})

	t.Run("key evaluates to list", func(t *testing.T) {
		expr, err := ParseExpression("{(items): 1}")
		require.NoError(t, err)
		_, err = NewEvaluator(map[string]any{"items": []any{1}}).Evaluate(expr)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgEvalInvalidKey)
	})
}

func TestLookup(t *testing.T) {
	data := map[string]any{"a": map[string]any{"b": "c"}}

	v, ok := Lookup(data, "a.b")
	assert.True(t, ok)
	assert.Equal(t, "c", v)

	_, ok = Lookup(data, "")
	assert.False(t, ok)

	_, ok = Lookup(nil, "a")
	assert.False(t, ok)

	_, ok = Lookup(data, "a.b.c")
	assert.False(t, ok)
}
