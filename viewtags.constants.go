package viewtags

import "time"

// Tag names recognised by the extension
const (
	TagNameComponent = "component"
	TagNameView      = "view"
)

// Default template file extension appended by the resolver
const DefaultExtension = ".twig"

// Block delimiters of the host template language
const (
	DefaultBlockOpen  = "{%"
	DefaultBlockClose = "%}"
)

// Data block keys read by the extractor
const (
	DataKeyClasses   = "classes"
	DataKeyModifier  = "modifier"
	DataKeyModifiers = "modifiers"
)

// Render context keys set on every component render
const (
	ContextKeyName      = "name"
	ContextKeyClassName = "className"
	ContextKeyClasses   = "classes"
	ContextKeyModifiers = "modifiers"
)

// Separators used when building paths and class strings
const (
	PathSeparator     = "/"
	VariantSeparator  = "-"
	ModifierSeparator = "--"
	ClassSeparator    = " "
)

// Emitted code fragments (reference CodeWriter target)
const (
	CodeDebugInfoFmt  = "// line %d %q\n"
	CodeRenderOpen    = "$env.render("
	CodeLoadOpen      = "$env.load("
	CodeResolveOpen   = "$env.resolve("
	CodeMergeOpen     = "$ctx.merge("
	CodeScopeOpen     = "$ctx.scope("
	CodeComponentOpen = "$ctx.component("
	CodeClose         = ")"
	CodeStatementEnd  = ");\n"
	CodeArgSep        = ", "
	CodeHashOpen      = "{"
	CodeHashClose     = "}"
	CodeArrayOpen     = "["
	CodeArrayClose    = "]"
	CodeKeyValueSep   = ": "
	CodeNull          = "null"
	CodeTrue          = "true"
	CodeFalse         = "false"
	CodeGetOpen       = "$ctx.get("
	CodeIndentUnit    = "    "
)

// Catalog defaults
const (
	CatalogDefaultTablePrefix     = "viewtags_"
	CatalogDefaultQueryTimeout    = 30 * time.Second
	CatalogDefaultMaxOpenConns    = 10
	CatalogDefaultMaxIdleConns    = 2
	CatalogDefaultConnMaxLifetime = 5 * time.Minute
	CatalogDriverPostgres         = "postgres"
	CatalogDriverSQLite           = "sqlite"
	CatalogTableComponents        = "components"
	CatalogTableMigrations        = "schema_migrations"
)

// Tracing
const (
	TracerName        = "github.com/itsatony/go-viewtags"
	SpanNameRender    = "viewtags.render"
	SpanAttrComponent = "viewtags.component"
	SpanAttrTemplate  = "viewtags.template"
	SpanAttrDeferred  = "viewtags.deferred"
	SpanAttrOnly      = "viewtags.only"
)

// Log message constants
const (
	LogMsgExtensionCreated   = "viewtags extension created"
	LogMsgParserRegistered   = "tag parser registered"
	LogMsgParserCollision    = "tag parser registration collision - first-come-wins"
	LogMsgTemplateResolved   = "component template resolved"
	LogMsgTemplateDeferred   = "component template deferred to runtime"
	LogMsgDataExtracted      = "component data extracted"
	LogMsgRenderEmitted      = "render call emitted"
	LogMsgRenderExecuted     = "render call executed"
	LogMsgCatalogMiss        = "component not found in catalog"
	LogMsgCatalogVariantMiss = "component variant not found in catalog"
	LogMsgCatalogMigrated    = "catalog migrations applied"
	LogMsgLintComplete       = "lint complete"
)

// Log field names
const (
	LogFieldTag       = "tag"
	LogFieldComponent = "component"
	LogFieldVariant   = "variant"
	LogFieldPath      = "path"
	LogFieldLine      = "line"
	LogFieldClasses   = "classes"
	LogFieldModifiers = "modifiers"
	LogFieldOnly      = "only"
	LogFieldExisting  = "existing"
	LogFieldCount     = "count"
	LogFieldDriver    = "driver"
	LogFieldVersion   = "version"
	LogFieldExtension = "extension"
	LogFieldStrict    = "strict"
	LogFieldTags      = "tags"
)

// Metadata keys attached to errors
const (
	MetaKeyComponent = "component"
	MetaKeyVariant   = "variant"
	MetaKeyTag       = "tag"
	MetaKeyLine      = "line"
	MetaKeyColumn    = "column"
	MetaKeyOffset    = "offset"
	MetaKeyReason    = "reason"
	MetaKeyPath      = "path"
	MetaKeyFile      = "file"
	MetaKeyDriver    = "driver"
	MetaKeyCode      = "error_code"
)
