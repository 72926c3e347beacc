package viewtags

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/itsatony/go-viewtags/internal"
)

// Compiler is the code-emission API of the host template compiler.
// Component nodes only ever append fragments through it.
type Compiler interface {
	// AddDebugInfo records the source line the following code belongs to
	AddDebugInfo(pos Position) Compiler
	// Write appends fragments, prefixed by the current indentation
	Write(fragments ...string) Compiler
	// Raw appends a fragment verbatim
	Raw(fragment string) Compiler
	// String appends a quoted string literal
	String(s string) Compiler
	// Repr appends the literal representation of a Go value
	Repr(v any) Compiler
	// Subcompile compiles an expression in place
	Subcompile(e Expr) Compiler
	// Indent increases the indentation level
	Indent() Compiler
	// Outdent decreases the indentation level
	Outdent() Compiler
	// Source returns the code emitted so far
	Source() string
}

// CodeWriter is the reference Compiler. It emits a small call-based target
// language:
//
//	// line 3 "page.twig"
//	$env.render($env.load("Nav/nav.twig", 3), $ctx.merge($ctx.scope(null, false), {...}));
//
// A CodeWriter is not safe for concurrent use; use one per compilation.
type CodeWriter struct {
	filename string
	sb       strings.Builder
	indent   int
}

// NewCodeWriter creates a CodeWriter for the named template file
func NewCodeWriter(filename string) *CodeWriter {
	return &CodeWriter{filename: filename}
}

// AddDebugInfo implements Compiler
func (w *CodeWriter) AddDebugInfo(pos Position) Compiler {
	w.Write(fmt.Sprintf(CodeDebugInfoFmt, pos.Line, w.filename))
	return w
}

// Write implements Compiler
func (w *CodeWriter) Write(fragments ...string) Compiler {
	for _, f := range fragments {
		w.sb.WriteString(strings.Repeat(CodeIndentUnit, w.indent))
		w.sb.WriteString(f)
	}
	return w
}

// Raw implements Compiler
func (w *CodeWriter) Raw(fragment string) Compiler {
	w.sb.WriteString(fragment)
	return w
}

// String implements Compiler
func (w *CodeWriter) String(s string) Compiler {
	w.sb.WriteString(strconv.Quote(s))
	return w
}

// Repr implements Compiler
func (w *CodeWriter) Repr(v any) Compiler {
	switch val := v.(type) {
	case nil:
		w.Raw(CodeNull)
	case bool:
		if val {
			w.Raw(CodeTrue)
		} else {
			w.Raw(CodeFalse)
		}
	case string:
		w.String(val)
	case int:
		w.Raw(strconv.Itoa(val))
	case float64:
		w.Raw(strconv.FormatFloat(val, 'f', -1, 64))
	case []string:
		w.Raw(CodeArrayOpen)
		for i, s := range val {
			if i > 0 {
				w.Raw(CodeArgSep)
			}
			w.String(s)
		}
		w.Raw(CodeArrayClose)
	default:
		w.String(fmt.Sprintf("%v", val))
	}
	return w
}

// Subcompile implements Compiler
func (w *CodeWriter) Subcompile(e Expr) Compiler {
	switch n := e.(type) {
	case nil:
		w.Raw(CodeNull)
	case *internal.ConstantExpr:
		w.Repr(n.Value)
	case *internal.NameExpr:
		w.Raw(CodeGetOpen).String(n.Name).Raw(CodeClose)
	case *internal.ArrayExpr:
		w.Raw(CodeArrayOpen)
		for i, el := range n.Elements {
			if i > 0 {
				w.Raw(CodeArgSep)
			}
			w.Subcompile(el)
		}
		w.Raw(CodeArrayClose)
	case *internal.HashExpr:
		w.Raw(CodeHashOpen)
		for i, pair := range n.Pairs {
			if i > 0 {
				w.Raw(CodeArgSep)
			}
			w.Subcompile(pair.Key).Raw(CodeKeyValueSep).Subcompile(pair.Value)
		}
		w.Raw(CodeHashClose)
	default:
		w.Raw(CodeNull)
	}
	return w
}

// Indent implements Compiler
func (w *CodeWriter) Indent() Compiler {
	w.indent++
	return w
}

// Outdent implements Compiler
func (w *CodeWriter) Outdent() Compiler {
	if w.indent > 0 {
		w.indent--
	}
	return w
}

// Source implements Compiler
func (w *CodeWriter) Source() string {
	return w.sb.String()
}
