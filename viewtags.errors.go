package viewtags

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/itsatony/go-cuserr"

	"github.com/itsatony/go-viewtags/internal"
)

// Error message constants - ALL error messages must be constants
const (
	// Parse errors
	ErrMsgParseFailed  = "tag parsing failed"
	ErrMsgUnknownTag   = "unknown tag"
	ErrMsgEmptyTagName = "tag name cannot be empty"
	ErrMsgMissingName  = "component name expression is required"
	ErrMsgEmptyName    = "component name cannot be an empty string"

	// Invocation data errors
	ErrMsgInvalidInvocationData = "invalid component invocation data"
	ErrMsgDataNotHash           = "data block must be a key/value collection"
	ErrMsgValueNotConstant      = "value must be a constant or a list of constants"
	ErrMsgListItemNotConstant   = "list entries must be constants"
	ErrMsgNullValue             = "null is not a valid class or modifier"

	// Runtime errors
	ErrMsgUnresolvableTemplate = "component template could not be resolved"
	ErrMsgNameNotString        = "component name did not evaluate to a non-empty string"
	ErrMsgNoEnvironment        = "no environment supplied"
	ErrMsgRenderFailed         = "component render failed"
	ErrMsgScopeFailed          = "component scope could not be built"

	// Registry errors
	ErrMsgParserExists = "tag parser already registered"
	ErrMsgNilParser    = "tag parser cannot be nil"

	// Catalog errors
	ErrMsgCatalogClosed       = "catalog is closed"
	ErrMsgCatalogNotFound     = "component not found in catalog"
	ErrMsgCatalogVariantMiss  = "variant not declared for component"
	ErrMsgCatalogEmptyName    = "catalog entry name cannot be empty"
	ErrMsgCatalogEmptyDSN     = "catalog connection string cannot be empty"
	ErrMsgCatalogUnknownDrv   = "unsupported catalog driver"
	ErrMsgCatalogConnect      = "catalog connection failed"
	ErrMsgCatalogQuery        = "catalog query failed"
	ErrMsgCatalogMigration    = "catalog migration failed"
	ErrMsgCatalogEncodeFailed = "catalog entry encoding failed"

	// Config errors
	ErrMsgConfigRead  = "config file could not be read"
	ErrMsgConfigParse = "config file could not be parsed"
)

// FmtInvalidInvocationData formats message, component, line and reason
const FmtInvalidInvocationData = "%s: component %q at line %d: %s"

// Error code constants for categorization
const (
	ErrCodeParse        = "VIEWTAGS_PARSE"
	ErrCodeInvalidData  = "VIEWTAGS_INVALID_DATA"
	ErrCodeUnresolvable = "VIEWTAGS_UNRESOLVABLE"
	ErrCodeRender       = "VIEWTAGS_RENDER"
	ErrCodeRegistry     = "VIEWTAGS_REGISTRY"
	ErrCodeCatalog      = "VIEWTAGS_CATALOG"
	ErrCodeConfig       = "VIEWTAGS_CONFIG"
)

// Position represents a location in the source template
type Position = internal.Position

// NewParseError creates a parse error with position context.
// Lexer and parser errors from the tag body carry their own position, which wins over pos.
func NewParseError(msg string, pos Position, cause error) error {
	var lexErr *internal.LexerError
	var parseErr *internal.ParserError
	switch {
	case errors.As(cause, &lexErr):
		pos = lexErr.Position
	case errors.As(cause, &parseErr):
		pos = parseErr.Position
	}

	return withPosition(newCodedError(ErrCodeParse, msg, cause), pos)
}

// NewUnknownTagError creates an error for a tag this extension does not handle
func NewUnknownTagError(tag string, pos Position) error {
	return withPosition(newCodedError(ErrCodeParse, ErrMsgUnknownTag, nil), pos).
		WithMetadata(MetaKeyTag, tag)
}

// NewInvalidInvocationDataError creates the usage error raised when a data
// block (or one of its classes/modifier values) has an unsupported shape.
// The message names the component and line so tools can print it as is.
func NewInvalidInvocationDataError(component string, pos Position, reason string) error {
	msg := fmt.Sprintf(FmtInvalidInvocationData, ErrMsgInvalidInvocationData, component, pos.Line, reason)
	return withPosition(newCodedError(ErrCodeInvalidData, msg, nil), pos).
		WithMetadata(MetaKeyComponent, component).
		WithMetadata(MetaKeyReason, reason)
}

// NewUnresolvableTemplateError creates the error raised at render time when a
// component's template cannot be found or its dynamic name is unusable.
func NewUnresolvableTemplateError(component, path string, pos Position, cause error) error {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, ErrCodeUnresolvable, ErrMsgUnresolvableTemplate)
	} else {
		err = cuserr.NewNotFoundError(MetaKeyPath, ErrMsgUnresolvableTemplate)
	}
	return withPosition(err.WithMetadata(MetaKeyCode, ErrCodeUnresolvable), pos).
		WithMetadata(MetaKeyComponent, component).
		WithMetadata(MetaKeyPath, path)
}

// NewRenderError wraps a failure of the host template while rendering a component
func NewRenderError(msg, component string, pos Position, cause error) error {
	return withPosition(newCodedError(ErrCodeRender, msg, cause), pos).
		WithMetadata(MetaKeyComponent, component)
}

// NewParserExistsError creates a tag-parser collision error
func NewParserExistsError(tag string) error {
	return newCodedError(ErrCodeRegistry, ErrMsgParserExists, nil).
		WithMetadata(MetaKeyTag, tag)
}

// NewCatalogError creates a catalog storage error
func NewCatalogError(msg string, cause error) error {
	return newCodedError(ErrCodeCatalog, msg, cause)
}

// NewCatalogNotFoundError creates an error for a component missing from the catalog
func NewCatalogNotFoundError(component string) error {
	return cuserr.NewNotFoundError(MetaKeyComponent, ErrMsgCatalogNotFound).
		WithMetadata(MetaKeyCode, ErrCodeCatalog).
		WithMetadata(MetaKeyReason, ErrMsgCatalogNotFound).
		WithMetadata(MetaKeyComponent, component)
}

// NewCatalogVariantError creates an error for an undeclared variant
func NewCatalogVariantError(component, variant string, pos Position) error {
	return withPosition(newCodedError(ErrCodeCatalog, ErrMsgCatalogVariantMiss, nil), pos).
		WithMetadata(MetaKeyComponent, component).
		WithMetadata(MetaKeyVariant, variant)
}

// NewConfigError creates a config loading error
func NewConfigError(msg, file string, cause error) error {
	return newCodedError(ErrCodeConfig, msg, cause).WithMetadata(MetaKeyFile, file)
}

// IsInvalidInvocationData reports whether err is an invalid-invocation-data error
func IsInvalidInvocationData(err error) bool {
	return hasCode(err, ErrCodeInvalidData)
}

// IsUnresolvableTemplate reports whether err is an unresolvable-template error
func IsUnresolvableTemplate(err error) bool {
	return hasCode(err, ErrCodeUnresolvable)
}

// IsCatalogNotFound reports whether err is a catalog miss for a component
func IsCatalogNotFound(err error) bool {
	return hasMetadata(err, MetaKeyReason, ErrMsgCatalogNotFound)
}

// IsParseError reports whether err is a tag parse error
func IsParseError(err error) bool {
	return hasCode(err, ErrCodeParse)
}

// hasCode walks the chain for a CustomError with the given code
func hasCode(err error, code string) bool {
	return hasMetadata(err, MetaKeyCode, code)
}

// hasMetadata walks the chain for a CustomError carrying key=value
func hasMetadata(err error, key, value string) bool {
	for err != nil {
		var customErr *cuserr.CustomError
		if !errors.As(err, &customErr) {
			return false
		}
		if v, ok := customErr.GetMetadata(key); ok && v == value {
			return true
		}
		err = errors.Unwrap(customErr)
	}
	return false
}

// newCodedError creates a validation error, or wraps cause, and tags it with code
func newCodedError(code, msg string, cause error) *cuserr.CustomError {
	var err *cuserr.CustomError
	if cause != nil {
		err = cuserr.WrapStdError(cause, code, msg)
	} else {
		err = cuserr.NewValidationError(code, msg)
	}
	return err.WithMetadata(MetaKeyCode, code)
}

func withPosition(err *cuserr.CustomError, pos Position) *cuserr.CustomError {
	return err.
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(pos.Offset))
}

// formatReason builds the reason metadata for invalid data errors
func formatReason(msg, key, detail string) string {
	return fmt.Sprintf("%s (%s: %s)", msg, key, detail)
}
