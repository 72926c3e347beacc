package viewtags

import (
	"context"

	"go.uber.org/zap"

	"github.com/itsatony/go-viewtags/internal"
)

// Extension is the entry point of the package. It owns the tag parsers and
// turns component/view tags into render calls.
// An Extension is safe for concurrent use.
type Extension struct {
	registry *tagRegistry
	config   *extensionConfig
	logger   *zap.Logger
}

// LintIssue is one problem found by Lint
type LintIssue struct {
	Pos       Position `json:"position"`
	Tag       string   `json:"tag"`
	Component string   `json:"component,omitempty"`
	Variant   string   `json:"variant,omitempty"`
	Message   string   `json:"message"`
	Err       error    `json:"-"`
}

// New creates a new Extension with the given options.
func New(opts ...Option) (*Extension, error) {
	config := defaultExtensionConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	registry := newTagRegistry(logger)
	for _, p := range []TagParser{
		NewComponentTagParser(TagNameComponent),
		NewViewTagParser(TagNameView),
	} {
		if err := registry.register(p); err != nil {
			return nil, err
		}
	}

	logger.Debug(LogMsgExtensionCreated,
		zap.String(LogFieldExtension, config.extension),
		zap.Bool(LogFieldStrict, config.strict),
	)

	return &Extension{
		registry: registry,
		config:   config,
		logger:   logger,
	}, nil
}

// MustNew creates a new Extension and panics on error.
func MustNew(opts ...Option) *Extension {
	ext, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return ext
}

// RegisterTag adds a tag parser. The first parser registered for a tag name wins.
func (e *Extension) RegisterTag(p TagParser) error {
	return e.registry.register(p)
}

// Tags returns the handled tag names in sorted order
func (e *Extension) Tags() []string {
	return e.registry.names()
}

// FileExtension returns the extension appended to resolved template paths
func (e *Extension) FileExtension() string {
	return e.config.extension
}

// ParseTag parses one tag body, e.g. ParseTag("component", "'Nav' with {modifier: 'open'}").
func (e *Extension) ParseTag(tag, body string) (*ComponentNode, error) {
	start := internal.StartPosition()
	return e.parseTagAt(tag, body, start, start)
}

// Parse scans a template source and parses every tag this extension handles, in source order.
func (e *Extension) Parse(source string) ([]*ComponentNode, error) {
	scanner := internal.NewScannerWithConfig(source, internal.ScannerConfig{
		BlockOpen:  e.config.blockOpen,
		BlockClose: e.config.blockClose,
		Tags:       e.Tags(),
	}, e.logger)

	blocks, err := scanner.Scan()
	if err != nil {
		return nil, NewParseError(ErrMsgParseFailed, internal.StartPosition(), err)
	}

	nodes := make([]*ComponentNode, 0, len(blocks))
	for _, b := range blocks {
		node, err := e.parseTagAt(b.Tag, b.Body, b.TagPos, b.BodyPos)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

// Plan parses source and plans every node without emitting code
func (e *Extension) Plan(source string) ([]*RenderCall, error) {
	nodes, err := e.Parse(source)
	if err != nil {
		return nil, err
	}
	calls := make([]*RenderCall, 0, len(nodes))
	for _, n := range nodes {
		call, err := n.Plan()
		if err != nil {
			return nil, err
		}
		calls = append(calls, call)
	}
	return calls, nil
}

// Compile parses source and returns the code of one render call per tag,
// written by a CodeWriter.
func (e *Extension) Compile(ctx context.Context, source string) (string, error) {
	w := NewCodeWriter(e.config.filename)
	if err := e.CompileTo(ctx, w, source); err != nil {
		return "", err
	}
	return w.Source(), nil
}

// CompileTo compiles every tag of source through the host compiler c.
// With a strict catalog, static components missing from the catalog fail the compile.
func (e *Extension) CompileTo(ctx context.Context, c Compiler, source string) error {
	nodes, err := e.Parse(source)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		if e.config.strict && e.config.catalog != nil {
			call, err := n.Plan()
			if err != nil {
				return err
			}
			issue, err := e.checkCatalog(ctx, call)
			if err != nil {
				return err
			}
			if issue != nil {
				return issue.Err
			}
		}
		if err := n.Compile(c); err != nil {
			return err
		}
	}
	return nil
}

// Lint parses source and reports invalid data blocks and, when a catalog is
// configured, components or variants it does not declare. Syntax errors and
// catalog storage failures are returned as errors.
func (e *Extension) Lint(ctx context.Context, source string) ([]LintIssue, error) {
	nodes, err := e.Parse(source)
	if err != nil {
		return nil, err
	}

	issues := []LintIssue{}
	for _, n := range nodes {
		inv := n.Invocation()
		call, err := n.Plan()
		if err != nil {
			name, _ := inv.ConstantName()
			issues = append(issues, LintIssue{
				Pos:       inv.Pos,
				Tag:       inv.Tag,
				Component: name,
				Variant:   inv.Variant,
				Message:   err.Error(),
				Err:       err,
			})
			continue
		}
		issue, err := e.checkCatalog(ctx, call)
		if err != nil {
			return nil, err
		}
		if issue != nil {
			issues = append(issues, *issue)
		}
	}

	e.logger.Debug(LogMsgLintComplete,
		zap.Int(LogFieldTags, len(nodes)),
		zap.Int(LogFieldCount, len(issues)))
	return issues, nil
}

// Runtime returns a runtime over env using the extension's context provider and logger
func (e *Extension) Runtime(env Environment, opts ...RuntimeOption) *Runtime {
	all := make([]RuntimeOption, 0, len(opts)+2)
	all = append(all, WithRuntimeLogger(e.logger))
	if e.config.provider != nil {
		all = append(all, WithRuntimeContextProvider(e.config.provider))
	}
	return NewRuntime(env, append(all, opts...)...)
}

func (e *Extension) parseTagAt(tag, body string, tagPos, bodyPos Position) (*ComponentNode, error) {
	p, ok := e.registry.get(tag)
	if !ok {
		return nil, NewUnknownTagError(tag, tagPos)
	}
	inv, err := p.Parse(body, tagPos, bodyPos, e.logger)
	if err != nil {
		return nil, err
	}
	return NewComponentNode(inv, e.config.extension, e.logger), nil
}

// checkCatalog looks a static call up in the catalog. Deferred calls are not checked.
// A miss yields an issue; err is reserved for storage failures.
func (e *Extension) checkCatalog(ctx context.Context, call *RenderCall) (*LintIssue, error) {
	if e.config.catalog == nil || call.Ref.IsDeferred() {
		return nil, nil
	}

	entry, err := e.config.catalog.Get(ctx, call.Name)
	if err != nil {
		if !IsCatalogNotFound(err) {
			return nil, err
		}
		e.logger.Warn(LogMsgCatalogMiss,
			zap.String(LogFieldComponent, call.Name),
			zap.Int(LogFieldLine, call.Pos.Line))
		return &LintIssue{
			Pos:       call.Pos,
			Tag:       call.Tag,
			Component: call.Name,
			Variant:   call.Ref.Variant,
			Message:   ErrMsgCatalogNotFound,
			Err:       NewCatalogNotFoundError(call.Name),
		}, nil
	}

	if call.Ref.Variant != "" && !entry.HasVariant(call.Ref.Variant) {
		e.logger.Warn(LogMsgCatalogVariantMiss,
			zap.String(LogFieldComponent, call.Name),
			zap.String(LogFieldVariant, call.Ref.Variant),
			zap.Int(LogFieldLine, call.Pos.Line))
		return &LintIssue{
			Pos:       call.Pos,
			Tag:       call.Tag,
			Component: call.Name,
			Variant:   call.Ref.Variant,
			Message:   ErrMsgCatalogVariantMiss,
			Err:       NewCatalogVariantError(call.Name, call.Ref.Variant, call.Pos),
		}, nil
	}
	return nil, nil
}
