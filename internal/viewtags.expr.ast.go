package internal

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is the interface for all expression AST nodes
type Expr interface {
	// Type returns the node type
	Type() NodeType
	// Pos returns the source position of this node
	Pos() Position
	// String returns a string representation for debugging
	String() string
	// exprNode is a marker method to ensure type safety
	exprNode()
}

// ConstantKind identifies the kind of constant value
type ConstantKind int

// Constant kind constants
const (
	ConstantKindString ConstantKind = iota
	ConstantKindNumber
	ConstantKindBool
	ConstantKindNull
)

// ConstantExpr represents a literal value (string, number, bool, null)
type ConstantExpr struct {
	pos   Position
	Value any
	Kind  ConstantKind
}

func (n *ConstantExpr) Type() NodeType { return NodeTypeConstant }
func (n *ConstantExpr) Pos() Position  { return n.pos }
func (n *ConstantExpr) exprNode()      {}

func (n *ConstantExpr) String() string {
	switch n.Kind {
	case ConstantKindString:
		s, _ := n.Value.(string)
		if len(s) > MaxStringDisplayLength {
			s = s[:TruncatedStringLength] + TruncationSuffix
		}
		return strconv.Quote(s)
	case ConstantKindNull:
		return KeywordNull
	default:
		return fmt.Sprintf("%v", n.Value)
	}
}

// IsString reports whether the constant holds a string
func (n *ConstantExpr) IsString() bool {
	return n.Kind == ConstantKindString
}

// StringValue returns the string value of a string constant
func (n *ConstantExpr) StringValue() (string, bool) {
	s, ok := n.Value.(string)
	return s, ok && n.Kind == ConstantKindString
}

// Text renders the constant the way a template would print it.
// Null has no textual form and returns ok=false.
func (n *ConstantExpr) Text() (string, bool) {
	switch n.Kind {
	case ConstantKindString:
		s, _ := n.Value.(string)
		return s, true
	case ConstantKindNumber:
		f, _ := n.Value.(float64)
		return strconv.FormatFloat(f, 'f', -1, 64), true
	case ConstantKindBool:
		b, _ := n.Value.(bool)
		return strconv.FormatBool(b), true
	default:
		return "", false
	}
}

// NameExpr represents a variable reference (may include dot notation)
type NameExpr struct {
	pos  Position
	Name string
}

func (n *NameExpr) Type() NodeType { return NodeTypeName }
func (n *NameExpr) Pos() Position  { return n.pos }
func (n *NameExpr) exprNode()      {}

func (n *NameExpr) String() string {
	return n.Name
}

// Segments splits the dotted name into its path segments
func (n *NameExpr) Segments() []string {
	return strings.Split(n.Name, PathSeparator)
}

// ArrayExpr represents an ordered sequence literal: [a, b, c]
type ArrayExpr struct {
	pos      Position
	Elements []Expr
}

func (n *ArrayExpr) Type() NodeType { return NodeTypeArray }
func (n *ArrayExpr) Pos() Position  { return n.pos }
func (n *ArrayExpr) exprNode()      {}

func (n *ArrayExpr) String() string {
	parts := make([]string, len(n.Elements))
	for i, el := range n.Elements {
		parts[i] = el.String()
	}
	return FmtOpenBracket + strings.Join(parts, FmtCommaSep) + FmtCloseBracket
}

// Pair is one key/value entry of a hash literal
type Pair struct {
	Key   Expr
	Value Expr
}

// HashExpr represents a key/value literal: {a: 1, 'b': [2]}.
// Pairs keep their declared order.
type HashExpr struct {
	pos   Position
	Pairs []Pair
}

func (n *HashExpr) Type() NodeType { return NodeTypeHash }
func (n *HashExpr) Pos() Position  { return n.pos }
func (n *HashExpr) exprNode()      {}

func (n *HashExpr) String() string {
	parts := make([]string, len(n.Pairs))
	for i, p := range n.Pairs {
		parts[i] = p.Key.String() + FmtKeyValueSep + p.Value.String()
	}
	return FmtOpenBrace + strings.Join(parts, FmtCommaSep) + FmtCloseBrace
}

// KeyString returns the literal string form of a pair key.
// Only constant keys resolve; anything else returns ok=false.
func (p Pair) KeyString() (string, bool) {
	c, ok := p.Key.(*ConstantExpr)
	if !ok {
		return "", false
	}
	return c.Text()
}

// NewConstantString creates a string constant node
func NewConstantString(value string, pos Position) *ConstantExpr {
	return &ConstantExpr{pos: pos, Value: value, Kind: ConstantKindString}
}

// NewConstantNumber creates a number constant node
func NewConstantNumber(value float64, pos Position) *ConstantExpr {
	return &ConstantExpr{pos: pos, Value: value, Kind: ConstantKindNumber}
}

// NewConstantBool creates a boolean constant node
func NewConstantBool(value bool, pos Position) *ConstantExpr {
	return &ConstantExpr{pos: pos, Value: value, Kind: ConstantKindBool}
}

// NewConstantNull creates a null constant node
func NewConstantNull(pos Position) *ConstantExpr {
	return &ConstantExpr{pos: pos, Value: nil, Kind: ConstantKindNull}
}

// NewName creates a name node
func NewName(name string, pos Position) *NameExpr {
	return &NameExpr{pos: pos, Name: name}
}

// NewArray creates an array node
func NewArray(elements []Expr, pos Position) *ArrayExpr {
	return &ArrayExpr{pos: pos, Elements: elements}
}

// NewHash creates a hash node
func NewHash(pairs []Pair, pos Position) *HashExpr {
	return &HashExpr{pos: pos, Pairs: pairs}
}
