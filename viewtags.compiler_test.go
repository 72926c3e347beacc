package viewtags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeWriter_Repr(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"nil", nil, "null"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"string", `a"b`, `"a\"b"`},
		{"int", 42, "42"},
		{"float", 2.5, "2.5"},
		{"whole float", 3.0, "3"},
		{"strings", []string{"a", "b"}, `["a", "b"]`},
		{"empty strings", []string{}, "[]"},
		{"other", int64(7), `"7"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewCodeWriter("")
			w.Repr(tt.value)
			assert.Equal(t, tt.expected, w.Source())
		})
	}
}

func TestCodeWriter_Subcompile(t *testing.T) {
	tests := []struct {
		name     string
		expr     string
		expected string
	}{
		{"string", "'x'", `"x"`},
		{"number", "1", "1"},
		{"null", "null", "null"},
		{"name", "user.name", `$ctx.get("user.name")`},
		{"array", "['a', b]", `["a", $ctx.get("b")]`},
		{"hash", "{a: 1, (k): 'v'}", `{"a": 1, $ctx.get("k"): "v"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewCodeWriter("")
			w.Subcompile(MustParseExpression(tt.expr))
			assert.Equal(t, tt.expected, w.Source())
		})
	}

	t.Run("nil expression", func(t *testing.T) {
		w := NewCodeWriter("")
		w.Subcompile(nil)
		assert.Equal(t, "null", w.Source())
	})
}

func TestCodeWriter_Indentation(t *testing.T) {
	w := NewCodeWriter("page.twig")

	w.Write("a\n").Indent().Write("b\n").Indent().Write("c\n").Outdent().Outdent().Outdent().Write("d\n")

	assert.Equal(t, "a\n    b\n        c\nd\n", w.Source())
}

func TestCodeWriter_DebugInfo(t *testing.T) {
	w := NewCodeWriter("pages/home.twig")
	w.AddDebugInfo(Position{Line: 12, Column: 3})

	assert.Equal(t, "// line 12 \"pages/home.twig\"\n", w.Source())
}

func TestCodeWriter_RawAndString(t *testing.T) {
	w := NewCodeWriter("")
	w.Raw("f(").String("x\ny").Raw(")")

	assert.Equal(t, `f("x\ny")`, w.Source())
}
