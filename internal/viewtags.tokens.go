package internal

import "fmt"

// Position represents a location in the source template
type Position struct {
	Offset int `json:"offset"` // Byte offset from start
	Line   int `json:"line"`   // 1-indexed line number
	Column int `json:"column"` // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// StartPosition is the position of the first byte of a source
func StartPosition() Position {
	return Position{Offset: 0, Line: 1, Column: 1}
}

// Token represents a lexical token of a tag body
type Token struct {
	Type     TokenType // The type of token
	Value    string    // The token's value/content
	Position Position  // Source position
	Literal  any       // Parsed value for strings (string) and numbers (float64)
}

// String returns a human-readable representation of the token
func (t Token) String() string {
	if t.Value == "" {
		return fmt.Sprintf("Token{%s @ %s}", t.Type, t.Position)
	}
	return fmt.Sprintf("Token{%s: %q @ %s}", t.Type, t.Value, t.Position)
}

// IsEOF returns true if this is an end-of-input token
func (t Token) IsEOF() bool {
	return t.Type == TokenTypeEOF
}

// Is reports whether the token has the given type and value.
// An empty value matches any token of that type.
func (t Token) Is(tokenType TokenType, value string) bool {
	if t.Type != tokenType {
		return false
	}
	return value == "" || t.Value == value
}

// IsPunct reports whether the token is the given punctuation
func (t Token) IsPunct(p string) bool {
	return t.Is(TokenTypePunct, p)
}

// IsName reports whether the token is the given bare name
func (t Token) IsName(name string) bool {
	return t.Is(TokenTypeName, name)
}

// NewToken creates a new token with the given type, value, and position
func NewToken(tokenType TokenType, value string, pos Position) Token {
	return Token{
		Type:     tokenType,
		Value:    value,
		Position: pos,
	}
}

// NewEOFToken creates an EOF token at the given position
func NewEOFToken(pos Position) Token {
	return Token{
		Type:     TokenTypeEOF,
		Position: pos,
	}
}
