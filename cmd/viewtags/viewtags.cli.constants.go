package main

// Command names
const (
	CmdNameCompile = "compile"
	CmdNameResolve = "resolve"
	CmdNameLint    = "lint"
	CmdNameVersion = "version"
	CmdNameHelp    = "help"
)

// Flag names - long form
const (
	FlagTemplate      = "template"
	FlagConfig        = "config"
	FlagOutput        = "output"
	FlagFormat        = "format"
	FlagFilename      = "filename"
	FlagName          = "name"
	FlagVariant       = "variant"
	FlagExtension     = "extension"
	FlagCatalogDB     = "catalog-db"
	FlagCatalogDriver = "catalog-driver"
)

// Flag names - short form
const (
	FlagTemplateShort  = "t"
	FlagConfigShort    = "c"
	FlagOutputShort    = "o"
	FlagFormatShort    = "F"
	FlagNameShort      = "n"
	FlagVariantShort   = "V"
	FlagExtensionShort = "e"
)

// Flag default values
const (
	FlagDefaultOutput        = "-" // stdout
	FlagDefaultFormat        = "text"
	FlagDefaultCatalogDriver = "sqlite"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand    = "unknown command"
	ErrMsgMissingTemplate   = "template source required"
	ErrMsgMissingName       = "component name required"
	ErrMsgInvalidFlags      = "invalid flags"
	ErrMsgReadFileFailed    = "failed to read file"
	ErrMsgWriteOutputFailed = "failed to write output"
	ErrMsgConfigFailed      = "failed to load config"
	ErrMsgCatalogFailed     = "failed to open catalog"
	ErrMsgCompileFailed     = "template compilation failed"
	ErrMsgLintFailed        = "template lint failed"
	ErrMsgInvalidFormat     = "invalid output format"
)

// Help text templates
const (
	HelpMainUsage = `go-viewtags - component and view tags for Twig-style templates

Usage:
    viewtags <command> [options]

Commands:
    compile     Compile component/view tags into render calls
    resolve     Print the template path of a component
    lint        Check tags against the component catalog
    version     Show version information
    help        Show help for a command

Use "viewtags help <command>" for more information about a command.`

	HelpCompileUsage = `Compile component/view tags into render calls

Usage:
    viewtags compile [options]

Options:
    -t, --template <file>   Template file (use "-" for stdin)
    -c, --config <file>     YAML config file
    -o, --output <file>     Output file (default: stdout)
    --filename <name>       Template name written into debug info

Examples:
    viewtags compile -t page.twig
    viewtags compile -t page.twig -c viewtags.yaml -o page.out
    cat page.twig | viewtags compile -t -`

	HelpResolveUsage = `Print the template path of a component

Usage:
    viewtags resolve [options]

Options:
    -n, --name <name>         Component name
    -V, --variant <variant>   Variant name
    -e, --extension <ext>     File extension (default: .twig)

Examples:
    viewtags resolve -n Navigation -V primary
    viewtags resolve -n Card -e .html.twig`

	HelpLintUsage = `Check tags against the component catalog

Usage:
    viewtags lint [options]

Options:
    -t, --template <file>        Template file (use "-" for stdin)
    -c, --config <file>          YAML config file
    -F, --format <format>        Output format: text, json (default: text)
    --catalog-db <dsn>           SQL catalog connection string
    --catalog-driver <driver>    SQL catalog driver: sqlite, postgres (default: sqlite)

Examples:
    viewtags lint -t page.twig -c viewtags.yaml
    viewtags lint -t page.twig --catalog-db file:components.db -F json`

	HelpVersionUsage = `Show version information

Usage:
    viewtags version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    viewtags help [command]

Commands:
    compile     Show help for compile command
    resolve     Show help for resolve command
    lint        Show help for lint command
    version     Show help for version command`
)

// Version output format templates
const (
	VersionTextTemplate = "go-viewtags version %s\nCommit: %s\nBuilt: %s\nGo: %s\nTags: %s\nTemplate extension: %s\nCatalog drivers: %s"
	VersionUnknown      = "unknown"
	VersionDirtySuffix  = " (modified)"
)

// Lint output format templates
const (
	LintTextNoIssues     = "No issues found"
	LintTextIssueHeader  = "Lint issues:"
	LintTextIssueFormat  = "  [%s] %s at line %d, column %d"
	LintTextIssueSummary = "%d issue(s) found"
)

// CLI metadata
const (
	CLIName        = "viewtags"
	CLIDescription = "component and view tags for Twig-style templates"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
)
