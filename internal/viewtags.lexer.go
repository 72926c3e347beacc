package internal

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Lexer tokenizes the body of a single tag (everything between the block
// delimiters) into names, strings, numbers and punctuation.
type Lexer struct {
	source string
	pos    int // Current byte position
	line   int // Current line (1-indexed)
	column int // Current column (1-indexed)
	base   int // Offset of source within the enclosing template
	logger *zap.Logger
}

// NewLexer creates a lexer whose positions start at line 1, column 1
func NewLexer(source string, logger *zap.Logger) *Lexer {
	return NewLexerAt(source, StartPosition(), logger)
}

// NewLexerAt creates a lexer whose positions are reported relative to start,
// so tokens carry their location in the enclosing template.
func NewLexerAt(source string, start Position, logger *zap.Logger) *Lexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if start.Line < 1 {
		start = StartPosition()
	}
	logger.Debug(LogMsgLexerCreated, zap.Int(LogFieldSource, len(source)))
	return &Lexer{
		source: source,
		line:   start.Line,
		column: start.Column,
		base:   start.Offset,
		logger: logger,
	}
}

// Tokenize processes the source and returns a token stream ending in EOF
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token

	for {
		l.skipWhitespace()
		if l.isAtEnd() {
			break
		}

		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}

	tokens = append(tokens, NewEOFToken(l.currentPosition()))
	l.logger.Debug(LogMsgTokenizerEnd, zap.Int(LogFieldTokens, len(tokens)))
	return tokens, nil
}

// nextToken reads the next token from the input
func (l *Lexer) nextToken() (Token, error) {
	ch := l.peek()

	switch {
	case ch == CharDoubleQuote || ch == CharSingleQuote:
		return l.scanString()
	case isDigit(ch):
		return l.scanNumber()
	case ch == CharMinus && isDigit(l.peekAt(1)):
		return l.scanNumber()
	case isLetter(ch) || ch == CharUnderscore:
		return l.scanName(), nil
	case strings.IndexByte(punctChars, ch) >= 0:
		pos := l.currentPosition()
		l.advance()
		return NewToken(TokenTypePunct, string(ch), pos), nil
	}

	return Token{}, l.newError(ErrMsgUnexpectedChar, string(ch))
}

// scanString reads a quoted string literal
func (l *Lexer) scanString() (Token, error) {
	startPos := l.currentPosition()
	quote := l.advance()

	var sb strings.Builder
	for !l.isAtEnd() {
		ch := l.peek()
		if ch == quote {
			l.advance()
			value := sb.String()
			tok := NewToken(TokenTypeString, value, startPos)
			tok.Literal = value
			return tok, nil
		}
		if ch == CharBackslash && l.pos+1 < len(l.source) {
			l.advance()
			escaped := l.advance()
			switch escaped {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				sb.WriteByte(escaped)
			}
			continue
		}
		sb.WriteByte(l.advance())
	}

	return Token{}, &LexerError{Message: ErrMsgUnterminatedStr, Position: startPos}
}

// scanNumber reads an integer or decimal literal with an optional sign
func (l *Lexer) scanNumber() (Token, error) {
	startPos := l.currentPosition()
	start := l.pos
	if l.peek() == CharMinus {
		l.advance()
	}

	hasDecimal := false
	for !l.isAtEnd() {
		ch := l.peek()
		if ch == '.' && !hasDecimal && isDigit(l.peekAt(1)) {
			hasDecimal = true
			l.advance()
			continue
		}
		if !isDigit(ch) {
			break
		}
		l.advance()
	}

	value := l.source[start:l.pos]
	literal, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return Token{}, &LexerError{Message: ErrMsgInvalidNumber, Position: startPos, Detail: value}
	}

	tok := NewToken(TokenTypeNumber, value, startPos)
	tok.Literal = literal
	return tok, nil
}

// scanName reads a bare identifier. Dots are emitted as separate punctuation.
func (l *Lexer) scanName() Token {
	startPos := l.currentPosition()
	start := l.pos
	for !l.isAtEnd() {
		ch := l.peek()
		if !isLetter(ch) && !isDigit(ch) && ch != CharUnderscore {
			break
		}
		l.advance()
	}
	return NewToken(TokenTypeName, l.source[start:l.pos], startPos)
}

// Helper methods

// currentPosition returns the current position
func (l *Lexer) currentPosition() Position {
	return Position{
		Offset: l.base + l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

// isAtEnd returns true if we've reached the end of source
func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

// peek returns the current character without advancing
func (l *Lexer) peek() byte {
	return l.peekAt(0)
}

// peekAt returns the character n bytes ahead without advancing
func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.source) {
		return 0
	}
	return l.source[l.pos+n]
}

// advance consumes and returns the current character
func (l *Lexer) advance() byte {
	if l.isAtEnd() {
		return 0
	}
	ch := l.source[l.pos]
	l.pos++
	if ch == CharNewline {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		ch := l.peek()
		if ch == CharSpace || ch == CharTab || ch == CharNewline || ch == CharCarriageRet {
			l.advance()
		} else {
			break
		}
	}
}

func (l *Lexer) newError(msg, detail string) error {
	return &LexerError{
		Message:  msg,
		Position: l.currentPosition(),
		Detail:   detail,
	}
}

// Character classification helpers

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// LexerError represents a lexer error with position
type LexerError struct {
	Message  string
	Position Position
	Detail   string
}

func (e *LexerError) Error() string {
	if e.Detail != "" {
		return formatPositioned(ErrFmtWithDetail, e.Message, e.Position, e.Detail)
	}
	return formatPositioned(ErrFmtWithPosition, e.Message, e.Position, "")
}

// Tokenize is a convenience function that tokenizes a tag body
func Tokenize(source string) ([]Token, error) {
	return NewLexer(source, nil).Tokenize()
}
