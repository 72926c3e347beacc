package viewtags

import "github.com/itsatony/go-viewtags/internal"

// Expression node types produced by the tag parser. They are aliases of the
// internal AST so host compilers can inspect and subcompile them.
type (
	// Expr is any expression node
	Expr = internal.Expr
	// ConstantExpr is a string, number, boolean or null literal
	ConstantExpr = internal.ConstantExpr
	// NameExpr is a (possibly dotted) variable reference
	NameExpr = internal.NameExpr
	// ArrayExpr is an ordered list literal
	ArrayExpr = internal.ArrayExpr
	// HashExpr is an ordered key/value literal
	HashExpr = internal.HashExpr
	// Pair is one entry of a HashExpr
	Pair = internal.Pair
)

// ParseExpression parses a standalone expression such as a data block:
//
//	{classes: ['a', 'b'], modifier: 'active'}
func ParseExpression(source string) (Expr, error) {
	expr, err := internal.ParseExpression(source)
	if err != nil {
		return nil, NewParseError(ErrMsgParseFailed, internal.StartPosition(), err)
	}
	return expr, nil
}

// MustParseExpression parses an expression and panics on error
func MustParseExpression(source string) Expr {
	expr, err := ParseExpression(source)
	if err != nil {
		panic(err)
	}
	return expr
}

// isStringConstant reports whether e is a string literal and returns its value
func isStringConstant(e Expr) (string, bool) {
	c, ok := e.(*internal.ConstantExpr)
	if !ok {
		return "", false
	}
	return c.StringValue()
}
