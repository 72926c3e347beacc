package internal

import (
	"fmt"

	"go.uber.org/zap"
)

// TagInvocation is the parsed form of a component or view tag
type TagInvocation struct {
	Tag        string   // "component" or "view"
	Name       Expr     // Component name expression (constant or dynamic)
	Variant    string   // Variant qualifier, meaningful only when HasVariant
	HasVariant bool     // True when a variant string was supplied
	Data       Expr     // Optional data expression (nil when absent)
	Only       bool     // Scope isolation flag
	Pos        Position // Position of the tag name
}

// Parser builds expressions and tag invocations from a token stream
type Parser struct {
	tokens []Token
	pos    int
	logger *zap.Logger
}

// NewParser creates a parser over the given tokens
func NewParser(tokens []Token, logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgParserCreated, zap.Int(LogFieldTokens, len(tokens)))
	return &Parser{
		tokens: tokens,
		logger: logger,
	}
}

// ParseComponentTag parses the body of a component tag:
//
//	'Name' ['variant'] [with {data}] [only]
func (p *Parser) ParseComponentTag(tagPos Position) (*TagInvocation, error) {
	inv := &TagInvocation{Tag: TagNameComponent, Pos: tagPos}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	inv.Name = name

	if p.check(TokenTypeString) {
		tok := p.advance()
		inv.Variant = tok.Value
		inv.HasVariant = true
	}

	if p.peek().IsName(KeywordWith) {
		p.advance()
		data, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		inv.Data = data
	}

	inv.Only = p.matchName(KeywordOnly)

	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	p.logTag(inv)
	return inv, nil
}

// ParseViewTag parses the body of a view tag:
//
//	<expr> [with] [<data>] [only]
func (p *Parser) ParseViewTag(tagPos Position) (*TagInvocation, error) {
	inv := &TagInvocation{Tag: TagNameView, Pos: tagPos}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	inv.Name = name

	hasWith := p.matchName(KeywordWith)
	if hasWith || (!p.isAtEnd() && !p.peek().IsName(KeywordOnly)) {
		data, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		inv.Data = data
	}

	inv.Only = p.matchName(KeywordOnly)

	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	p.logTag(inv)
	return inv, nil
}

// parseName parses the component name expression
func (p *Parser) parseName() (Expr, error) {
	if p.isAtEnd() {
		return nil, p.newError(ErrMsgExpectedName, "")
	}
	return p.ParseExpression()
}

// ParseExpression parses a single expression
func (p *Parser) ParseExpression() (Expr, error) {
	tok := p.peek()

	switch {
	case tok.Type == TokenTypeString:
		p.advance()
		return NewConstantString(tok.Value, tok.Position), nil

	case tok.Type == TokenTypeNumber:
		p.advance()
		f, _ := tok.Literal.(float64)
		return NewConstantNumber(f, tok.Position), nil

	case tok.Type == TokenTypeName:
		return p.parseNameOrKeyword(), nil

	case tok.IsPunct(PunctLBracket):
		return p.parseArray()

	case tok.IsPunct(PunctLBrace):
		return p.parseHash()

	case tok.IsPunct(PunctLParen):
		p.advance()
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(PunctRParen); err != nil {
			return nil, err
		}
		return expr, nil

	case tok.IsEOF():
		return nil, p.newError(ErrMsgUnexpectedEOF, "")
	}

	return nil, p.newError(ErrMsgUnexpectedToken, tok.Value)
}

// parseNameOrKeyword parses keywords and dotted names
func (p *Parser) parseNameOrKeyword() Expr {
	tok := p.advance()

	switch tok.Value {
	case KeywordTrue:
		return NewConstantBool(true, tok.Position)
	case KeywordFalse:
		return NewConstantBool(false, tok.Position)
	case KeywordNull, KeywordNone:
		return NewConstantNull(tok.Position)
	}

	name := tok.Value
	for p.peek().IsPunct(PunctDot) && p.peekAt(1).Type == TokenTypeName {
		p.advance()
		name += PathSeparator + p.advance().Value
	}
	return NewName(name, tok.Position)
}

// parseArray parses [expr, expr, ...] with an optional trailing comma
func (p *Parser) parseArray() (Expr, error) {
	open := p.advance()
	var elements []Expr

	for !p.peek().IsPunct(PunctRBracket) {
		if len(elements) > 0 {
			if err := p.expectPunct(PunctComma); err != nil {
				return nil, err
			}
			if p.peek().IsPunct(PunctRBracket) {
				break
			}
		}
		el, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}

	if err := p.expectPunct(PunctRBracket); err != nil {
		return nil, err
	}
	return NewArray(elements, open.Position), nil
}

// parseHash parses {key: expr, ...} keeping pairs in source order
func (p *Parser) parseHash() (Expr, error) {
	open := p.advance()
	var pairs []Pair

	for !p.peek().IsPunct(PunctRBrace) {
		if len(pairs) > 0 {
			if err := p.expectPunct(PunctComma); err != nil {
				return nil, err
			}
			if p.peek().IsPunct(PunctRBrace) {
				break
			}
		}

		key, err := p.parseHashKey()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(PunctColon); err != nil {
			return nil, err
		}
		value, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, Pair{Key: key, Value: value})
	}

	if err := p.expectPunct(PunctRBrace); err != nil {
		return nil, err
	}
	return NewHash(pairs, open.Position), nil
}

// parseHashKey parses a hash key. Bare names are string keys, as in
// {classes: 'a'}; a parenthesised expression is an evaluated key.
func (p *Parser) parseHashKey() (Expr, error) {
	tok := p.peek()
	switch {
	case tok.Type == TokenTypeString:
		p.advance()
		return NewConstantString(tok.Value, tok.Position), nil
	case tok.Type == TokenTypeNumber:
		p.advance()
		f, _ := tok.Literal.(float64)
		return NewConstantNumber(f, tok.Position), nil
	case tok.Type == TokenTypeName:
		p.advance()
		return NewConstantString(tok.Value, tok.Position), nil
	case tok.IsPunct(PunctLParen):
		p.advance()
		expr, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(PunctRParen); err != nil {
			return nil, err
		}
		return expr, nil
	case tok.IsEOF():
		return nil, p.newError(ErrMsgUnexpectedEOF, "")
	}
	return nil, p.newError(ErrMsgExpectedHashKey, tok.Value)
}

// Helper methods

func (p *Parser) logTag(inv *TagInvocation) {
	p.logger.Debug(LogMsgTagParsed,
		zap.String(LogFieldTag, inv.Tag),
		zap.Int(LogFieldLine, inv.Pos.Line),
		zap.String(LogFieldVariant, inv.Variant),
		zap.Bool(LogFieldOnly, inv.Only),
	)
}

// matchName consumes the current token if it is the given bare name
func (p *Parser) matchName(name string) bool {
	if p.peek().IsName(name) {
		p.advance()
		return true
	}
	return false
}

// check returns true if the current token is of the given type
func (p *Parser) check(tokenType TokenType) bool {
	return p.peek().Type == tokenType
}

// expectPunct consumes the given punctuation or fails
func (p *Parser) expectPunct(punct string) error {
	if !p.peek().IsPunct(punct) {
		if p.isAtEnd() {
			return p.newError(ErrMsgUnexpectedEOF, punct)
		}
		return p.newError(ErrMsgExpectedPunct, punct)
	}
	p.advance()
	return nil
}

// expectEnd fails unless all tokens were consumed
func (p *Parser) expectEnd() error {
	if !p.isAtEnd() {
		return p.newError(ErrMsgUnexpectedToken, p.peek().Value)
	}
	return nil
}

// advance moves to the next token and returns the consumed one
func (p *Parser) advance() Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.pos++
	}
	return tok
}

// peek returns the current token
func (p *Parser) peek() Token {
	return p.peekAt(0)
}

// peekAt returns the token n ahead of the current one
func (p *Parser) peekAt(n int) Token {
	if p.pos+n >= len(p.tokens) {
		if len(p.tokens) > 0 {
			return NewEOFToken(p.tokens[len(p.tokens)-1].Position)
		}
		return NewEOFToken(StartPosition())
	}
	return p.tokens[p.pos+n]
}

// isAtEnd returns true if we've consumed all tokens
func (p *Parser) isAtEnd() bool {
	return p.peek().IsEOF()
}

func (p *Parser) newError(msg, detail string) error {
	return &ParserError{
		Message:  msg,
		Position: p.peek().Position,
		Detail:   detail,
	}
}

// ParserError represents a tag parsing error with position
type ParserError struct {
	Message  string
	Position Position
	Detail   string
}

func (e *ParserError) Error() string {
	if e.Detail != "" {
		return formatPositioned(ErrFmtWithDetail, e.Message, e.Position, e.Detail)
	}
	return formatPositioned(ErrFmtWithPosition, e.Message, e.Position, "")
}

func formatPositioned(format, msg string, pos Position, detail string) string {
	if detail == "" {
		return fmt.Sprintf(format, msg, pos.String())
	}
	return fmt.Sprintf(format, msg, pos.String(), detail)
}

// ParseExpression is a convenience function that tokenizes and parses an
// expression string. The whole input must form one expression.
func ParseExpression(source string) (Expr, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	p := NewParser(tokens, nil)
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return expr, nil
}

// ParseTag tokenizes and parses a tag body for the given tag name.
// body starts at bodyPos in the enclosing template; tagPos is reported on the invocation.
func ParseTag(tag, body string, tagPos, bodyPos Position, logger *zap.Logger) (*TagInvocation, error) {
	tokens, err := NewLexerAt(body, bodyPos, logger).Tokenize()
	if err != nil {
		return nil, err
	}
	p := NewParser(tokens, logger)
	switch tag {
	case TagNameComponent:
		return p.ParseComponentTag(tagPos)
	case TagNameView:
		return p.ParseViewTag(tagPos)
	}
	return nil, &ParserError{Message: ErrMsgUnknownTag, Position: tagPos, Detail: tag}
}
