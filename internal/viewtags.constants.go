package internal

// TokenType represents the type of a tag-body token
type TokenType string

// Token type constants
const (
	TokenTypeName     TokenType = "NAME"
	TokenTypeString   TokenType = "STRING"
	TokenTypeNumber   TokenType = "NUMBER"
	TokenTypePunct    TokenType = "PUNCT"
	TokenTypeEOF      TokenType = "EOF"
)

// Punctuation recognised inside a tag body
const (
	PunctLBrace   = "{"
	PunctRBrace   = "}"
	PunctLBracket = "["
	PunctRBracket = "]"
	PunctLParen   = "("
	PunctRParen   = ")"
	PunctColon    = ":"
	PunctComma    = ","
	PunctDot      = "."
)

// punctChars lists every single-byte punctuation character
const punctChars = "{}[]():,."

// Character constants
const (
	CharDoubleQuote = '"'
	CharSingleQuote = '\''
	CharBackslash   = '\\'
	CharNewline     = '\n'
	CharSpace       = ' '
	CharTab         = '\t'
	CharCarriageRet = '\r'
	CharMinus       = '-'
	CharUnderscore  = '_'
)

// Keywords
const (
	KeywordWith  = "with"
	KeywordOnly  = "only"
	KeywordTrue  = "true"
	KeywordFalse = "false"
	KeywordNull  = "null"
	KeywordNone  = "none"
)

// Tag names
const (
	TagNameComponent = "component"
	TagNameView      = "view"
)

// Default template delimiters used by the tag scanner
const (
	DefaultBlockOpen    = "{%"
	DefaultBlockClose   = "%}"
	DefaultCommentOpen  = "{#"
	DefaultCommentClose = "#}"
)

// Host tags whose content is copied verbatim; tags inside them are not compiled
const (
	TagNameVerbatim    = "verbatim"
	TagNameEndVerbatim = "endverbatim"
	TagNameRaw         = "raw"
	TagNameEndRaw      = "endraw"
)

// Whitespace-control marker allowed right inside block delimiters
const WhitespaceTrim = "-"

// NodeType identifies expression node types
type NodeType int

// Expression node type constants
const (
	NodeTypeConstant NodeType = iota
	NodeTypeName
	NodeTypeArray
	NodeTypeHash
)

// Expression node type names for debugging
const (
	NodeTypeNameConstant = "CONSTANT"
	NodeTypeNameName     = "NAME"
	NodeTypeNameArray    = "ARRAY"
	NodeTypeNameHash     = "HASH"
)

// String returns the string representation of the node type
func (n NodeType) String() string {
	switch n {
	case NodeTypeConstant:
		return NodeTypeNameConstant
	case NodeTypeName:
		return NodeTypeNameName
	case NodeTypeArray:
		return NodeTypeNameArray
	case NodeTypeHash:
		return NodeTypeNameHash
	default:
		return NodeTypeNameConstant
	}
}

// Log message constants
const (
	LogMsgLexerCreated   = "tag lexer created"
	LogMsgTokenizerEnd   = "tag tokenization complete"
	LogMsgScannerCreated = "template scanner created"
	LogMsgScannerEnd     = "template scan complete"
	LogMsgParserCreated  = "tag parser created"
	LogMsgTagParsed      = "tag parsed"
)

// Log field names
const (
	LogFieldSource  = "source_length"
	LogFieldTokens  = "token_count"
	LogFieldTags    = "tag_count"
	LogFieldTag     = "tag"
	LogFieldLine    = "line"
	LogFieldOnly    = "only"
	LogFieldVariant = "variant"
)

// Lexer and parser error messages
const (
	ErrMsgUnterminatedStr   = "unterminated string literal"
	ErrMsgUnterminatedBlock = "unterminated tag block"
	ErrMsgUnterminatedComm  = "unterminated comment"
	ErrMsgUnterminatedRaw   = "unterminated verbatim block"
	ErrMsgUnexpectedChar    = "unexpected character"
	ErrMsgInvalidNumber     = "invalid number format"
	ErrMsgUnexpectedToken   = "unexpected token"
	ErrMsgUnexpectedEOF     = "unexpected end of tag"
	ErrMsgExpectedName      = "expected component name expression"
	ErrMsgExpectedHashKey   = "expected hash key"
	ErrMsgExpectedPunct     = "expected punctuation"
	ErrMsgUnknownTag        = "unknown tag"
)

// Evaluator error messages
const (
	ErrMsgEvalNilNode     = "cannot evaluate nil expression"
	ErrMsgEvalUnknownNode = "unknown expression type"
	ErrMsgEvalInvalidKey  = "hash key must evaluate to a string or number"
)

// Error format string constants
const (
	ErrFmtWithPosition = "%s at %s"
	ErrFmtWithDetail   = "%s at %s: %s"
)

// String format constants for expression String() methods
const (
	FmtOpenBrace    = "{"
	FmtCloseBrace   = "}"
	FmtOpenBracket  = "["
	FmtCloseBracket = "]"
	FmtCommaSep     = ", "
	FmtKeyValueSep  = ": "
)

// Display limits
const (
	MaxStringDisplayLength = 50
	TruncatedStringLength  = 47
	TruncationSuffix       = "..."
)

// PathSeparator separates segments of a dotted name
const PathSeparator = "."
