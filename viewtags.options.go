package viewtags

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Extension.
type Option func(*extensionConfig)

// extensionConfig holds the internal configuration for an Extension.
type extensionConfig struct {
	extension  string
	blockOpen  string
	blockClose string
	filename   string
	strict     bool
	provider   ContextProvider
	catalog    Catalog
	logger     *zap.Logger
}

// defaultExtensionConfig returns the default extension configuration.
func defaultExtensionConfig() *extensionConfig {
	return &extensionConfig{
		extension:  DefaultExtension,
		blockOpen:  DefaultBlockOpen,
		blockClose: DefaultBlockClose,
		provider:   nil,
		catalog:    nil,
		logger:     nil,
	}
}

// WithExtension sets the file extension appended to resolved template paths.
// Default: ".twig"
func WithExtension(ext string) Option {
	return func(c *extensionConfig) {
		if ext != "" {
			c.extension = ext
		}
	}
}

// WithDelimiters sets the block delimiters of the host template language.
// Default: "{%" and "%}"
func WithDelimiters(open, close string) Option {
	return func(c *extensionConfig) {
		if open != "" {
			c.blockOpen = open
		}
		if close != "" {
			c.blockClose = close
		}
	}
}

// WithFilename sets the template name written into debug info.
func WithFilename(name string) Option {
	return func(c *extensionConfig) {
		c.filename = name
	}
}

// WithContextProvider sets the provider that builds the merge base at render time.
// Default: ScopeProvider
func WithContextProvider(p ContextProvider) Option {
	return func(c *extensionConfig) {
		c.provider = p
	}
}

// WithCatalog sets the component catalog consulted by Lint.
func WithCatalog(cat Catalog) Option {
	return func(c *extensionConfig) {
		c.catalog = cat
	}
}

// WithStrictCatalog makes Compile fail on components the catalog does not know.
// Has no effect without a catalog.
func WithStrictCatalog(strict bool) Option {
	return func(c *extensionConfig) {
		c.strict = strict
	}
}

// WithLogger sets the logger for the extension.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *extensionConfig) {
		c.logger = logger
	}
}
