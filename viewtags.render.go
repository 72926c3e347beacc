package viewtags

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/itsatony/go-viewtags/internal"
)

var (
	errNameNotString = errors.New(ErrMsgNameNotString)
	errNoEnvironment = errors.New(ErrMsgNoEnvironment)
)

// Environment is the host engine's template lookup
type Environment interface {
	Load(ctx context.Context, path string) (Template, error)
}

// Template is a loaded host template
type Template interface {
	Render(ctx context.Context, data RenderContext) (string, error)
}

// Runtime executes render calls against a host environment.
// It is the in-process counterpart of the code CodeWriter emits.
type Runtime struct {
	env      Environment
	provider ContextProvider
	tracer   trace.Tracer
	logger   *zap.Logger
}

// RuntimeOption configures a Runtime
type RuntimeOption func(*Runtime)

// WithRuntimeContextProvider replaces the default ScopeProvider
func WithRuntimeContextProvider(p ContextProvider) RuntimeOption {
	return func(r *Runtime) {
		if p != nil {
			r.provider = p
		}
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider used for render spans.
// Default: the global provider (otel.GetTracerProvider).
func WithTracerProvider(tp trace.TracerProvider) RuntimeOption {
	return func(r *Runtime) {
		if tp != nil {
			r.tracer = tp.Tracer(TracerName)
		}
	}
}

// WithRuntimeLogger sets the logger for the runtime.
// Default: nil (no logging)
func WithRuntimeLogger(logger *zap.Logger) RuntimeOption {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRuntime creates a runtime over env
func NewRuntime(env Environment, opts ...RuntimeOption) *Runtime {
	r := &Runtime{
		env:      env,
		provider: NewScopeProvider(),
		tracer:   otel.Tracer(TracerName),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute renders the call against env with the default runtime
func (c *RenderCall) Execute(ctx context.Context, env Environment, caller map[string]any) (string, error) {
	return NewRuntime(env).Execute(ctx, c, caller)
}

// Execute renders call with the caller's variables.
// A deferred call evaluates its name expression against caller and applies the
// path convention; a name that is not a non-empty string, or a template the
// environment cannot load, yields an UnresolvableTemplate error.
func (r *Runtime) Execute(ctx context.Context, call *RenderCall, caller map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, span := r.tracer.Start(ctx, SpanNameRender, trace.WithAttributes(
		attribute.Bool(SpanAttrDeferred, call.Ref.IsDeferred()),
		attribute.Bool(SpanAttrOnly, call.Only),
	))
	defer span.End()

	out, err := r.execute(ctx, call, caller, span)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return out, nil
}

func (r *Runtime) execute(ctx context.Context, call *RenderCall, caller map[string]any, span trace.Span) (string, error) {
	name, set, err := r.componentFields(call, caller)
	if err != nil {
		return "", err
	}
	path := call.Ref.PathFor(name)
	span.SetAttributes(
		attribute.String(SpanAttrComponent, name),
		attribute.String(SpanAttrTemplate, path),
	)

	if r.env == nil {
		return "", NewUnresolvableTemplateError(name, path, call.Pos, errNoEnvironment)
	}

	tmpl, err := r.env.Load(ctx, path)
	if err != nil {
		return "", NewUnresolvableTemplateError(name, path, call.Pos, err)
	}

	base, err := r.provider.Base(ctx, call.Ref.NameExpr, call.Data, call.Only, caller)
	if err != nil {
		return "", NewRenderError(ErrMsgScopeFailed, name, call.Pos, err)
	}

	out, err := tmpl.Render(ctx, BuildContext(name, set, base))
	if err != nil {
		return "", NewRenderError(ErrMsgRenderFailed, name, call.Pos, err)
	}

	r.logger.Debug(LogMsgRenderExecuted,
		zap.String(LogFieldComponent, name),
		zap.String(LogFieldPath, path),
		zap.Bool(LogFieldOnly, call.Only))
	return out, nil
}

// componentFields returns the name and final set, evaluating the name of a deferred call
func (r *Runtime) componentFields(call *RenderCall, caller map[string]any) (string, ClassModifierSet, error) {
	if !call.Ref.IsDeferred() {
		return call.Name, call.Set, nil
	}

	v, err := internal.NewEvaluator(caller).Evaluate(call.Ref.NameExpr)
	if err != nil {
		return "", ClassModifierSet{}, NewUnresolvableTemplateError(call.Ref.NameExpr.String(), "", call.Pos, err)
	}
	name, ok := v.(string)
	if !ok || name == "" {
		return "", ClassModifierSet{}, NewUnresolvableTemplateError(call.Ref.NameExpr.String(), "", call.Pos, errNameNotString)
	}
	return name, NewClassModifierSet(name, call.Set.Classes, call.RawModifiers), nil
}
