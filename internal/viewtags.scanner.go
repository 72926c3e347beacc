package internal

import (
	"strings"

	"go.uber.org/zap"
)

// ScannerConfig holds the block delimiters used by the host template language
type ScannerConfig struct {
	BlockOpen    string   // Opening delimiter (default: "{%")
	BlockClose   string   // Closing delimiter (default: "%}")
	CommentOpen  string   // Comment opening delimiter (default: "{#")
	CommentClose string   // Comment closing delimiter (default: "#}")
	Tags         []string // Tag names to collect (default: component, view)
}

// DefaultScannerConfig returns the default scanner configuration
func DefaultScannerConfig() ScannerConfig {
	return ScannerConfig{
		BlockOpen:    DefaultBlockOpen,
		BlockClose:   DefaultBlockClose,
		CommentOpen:  DefaultCommentOpen,
		CommentClose: DefaultCommentClose,
		Tags:         []string{TagNameComponent, TagNameView},
	}
}

// verbatimEnd maps a verbatim opening tag to the tag that closes it
var verbatimEnd = map[string]string{
	TagNameVerbatim: TagNameEndVerbatim,
	TagNameRaw:      TagNameEndRaw,
}

// TagBlock is one component or view tag found in a template source
type TagBlock struct {
	Tag     string   // Tag name ("component" or "view")
	Body    string   // Everything after the tag name, up to the close delimiter
	TagPos  Position // Position of the tag name
	BodyPos Position // Position of the first byte of Body
	Start   int      // Offset of the open delimiter
	End     int      // Offset just past the close delimiter
}

// Scanner walks a host template and collects the component/view tag blocks.
// Every other construct is left to the host engine.
type Scanner struct {
	source string
	config ScannerConfig
	tags   map[string]bool
	pos    int
	line   int
	column int
	logger *zap.Logger
}

// NewScanner creates a scanner with default delimiters
func NewScanner(source string, logger *zap.Logger) *Scanner {
	return NewScannerWithConfig(source, DefaultScannerConfig(), logger)
}

// NewScannerWithConfig creates a scanner with custom delimiters
func NewScannerWithConfig(source string, config ScannerConfig, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.BlockOpen == "" {
		config.BlockOpen = DefaultBlockOpen
	}
	if config.BlockClose == "" {
		config.BlockClose = DefaultBlockClose
	}
	if config.CommentOpen == "" {
		config.CommentOpen = DefaultCommentOpen
	}
	if config.CommentClose == "" {
		config.CommentClose = DefaultCommentClose
	}
	if len(config.Tags) == 0 {
		config.Tags = DefaultScannerConfig().Tags
	}
	tags := make(map[string]bool, len(config.Tags))
	for _, t := range config.Tags {
		tags[t] = true
	}
	logger.Debug(LogMsgScannerCreated, zap.Int(LogFieldSource, len(source)))
	return &Scanner{
		source: source,
		config: config,
		tags:   tags,
		line:   1,
		column: 1,
		logger: logger,
	}
}

// Scan returns the tag blocks in source order.
// Comments and verbatim/raw regions are skipped, so tags inside them are not returned.
func (s *Scanner) Scan() ([]TagBlock, error) {
	var blocks []TagBlock

	for !s.isAtEnd() {
		if s.matchStr(s.config.CommentOpen) {
			if err := s.skipComment(); err != nil {
				return nil, err
			}
			continue
		}
		if !s.matchStr(s.config.BlockOpen) {
			s.advance()
			continue
		}

		start := s.pos
		startPos := s.currentPosition()
		tagPos, tag := s.scanTagName()

		s.skipWhitespace()
		bodyPos := s.currentPosition()
		body, err := s.scanUntilClose(startPos)
		if err != nil {
			return nil, err
		}

		if end, ok := verbatimEnd[tag]; ok {
			if err := s.skipVerbatim(end, startPos); err != nil {
				return nil, err
			}
			continue
		}

		if s.tags[tag] {
			blocks = append(blocks, TagBlock{
				Tag:     tag,
				Body:    body,
				TagPos:  tagPos,
				BodyPos: bodyPos,
				Start:   start,
				End:     s.pos,
			})
		}
	}

	s.logger.Debug(LogMsgScannerEnd, zap.Int(LogFieldTags, len(blocks)))
	return blocks, nil
}

// scanTagName consumes the open delimiter and returns the tag name with its position
func (s *Scanner) scanTagName() (Position, string) {
	s.advanceN(len(s.config.BlockOpen))
	if s.matchStr(WhitespaceTrim) {
		s.advance()
	}
	s.skipWhitespace()
	pos := s.currentPosition()
	return pos, s.scanWord()
}

// skipComment consumes a comment up to and including its close delimiter
func (s *Scanner) skipComment() error {
	openPos := s.currentPosition()
	s.advanceN(len(s.config.CommentOpen))
	for !s.isAtEnd() {
		if s.matchStr(s.config.CommentClose) {
			s.advanceN(len(s.config.CommentClose))
			return nil
		}
		s.advance()
	}
	return &LexerError{Message: ErrMsgUnterminatedComm, Position: openPos}
}

// skipVerbatim consumes everything up to and including the block tagged end
func (s *Scanner) skipVerbatim(end string, openPos Position) error {
	for !s.isAtEnd() {
		if !s.matchStr(s.config.BlockOpen) {
			s.advance()
			continue
		}
		blockPos := s.currentPosition()
		if _, tag := s.scanTagName(); tag == end {
			_, err := s.scanUntilClose(blockPos)
			return err
		}
	}
	return &LexerError{Message: ErrMsgUnterminatedRaw, Position: openPos}
}

// scanWord reads the tag name
func (s *Scanner) scanWord() string {
	start := s.pos
	for !s.isAtEnd() {
		ch := s.peek()
		if !isLetter(ch) && !isDigit(ch) && ch != CharUnderscore {
			break
		}
		s.advance()
	}
	return s.source[start:s.pos]
}

// scanUntilClose reads the tag body and consumes the close delimiter.
// Quoted strings may contain the close delimiter.
func (s *Scanner) scanUntilClose(openPos Position) (string, error) {
	var sb strings.Builder
	var quote byte

	for !s.isAtEnd() {
		ch := s.peek()
		if quote != 0 {
			if ch == CharBackslash && s.pos+1 < len(s.source) {
				sb.WriteByte(s.advance())
				sb.WriteByte(s.advance())
				continue
			}
			if ch == quote {
				quote = 0
			}
			sb.WriteByte(s.advance())
			continue
		}

		if ch == CharDoubleQuote || ch == CharSingleQuote {
			quote = ch
			sb.WriteByte(s.advance())
			continue
		}

		if s.matchStr(WhitespaceTrim + s.config.BlockClose) {
			s.advanceN(len(WhitespaceTrim) + len(s.config.BlockClose))
			return strings.TrimRight(sb.String(), " \t\r\n"), nil
		}
		if s.matchStr(s.config.BlockClose) {
			s.advanceN(len(s.config.BlockClose))
			return strings.TrimRight(sb.String(), " \t\r\n"), nil
		}
		sb.WriteByte(s.advance())
	}

	return "", &LexerError{Message: ErrMsgUnterminatedBlock, Position: openPos}
}

// Helper methods

func (s *Scanner) currentPosition() Position {
	return Position{
		Offset: s.pos,
		Line:   s.line,
		Column: s.column,
	}
}

func (s *Scanner) isAtEnd() bool {
	return s.pos >= len(s.source)
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.pos]
}

func (s *Scanner) advance() byte {
	if s.isAtEnd() {
		return 0
	}
	ch := s.source[s.pos]
	s.pos++
	if ch == CharNewline {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return ch
}

func (s *Scanner) advanceN(n int) {
	for i := 0; i < n && !s.isAtEnd(); i++ {
		s.advance()
	}
}

func (s *Scanner) matchStr(str string) bool {
	return strings.HasPrefix(s.source[s.pos:], str)
}

func (s *Scanner) skipWhitespace() {
	for !s.isAtEnd() {
		ch := s.peek()
		if ch == CharSpace || ch == CharTab || ch == CharNewline || ch == CharCarriageRet {
			s.advance()
		} else {
			break
		}
	}
}
