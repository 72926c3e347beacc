package viewtags

import (
	"go.uber.org/zap"

	"github.com/itsatony/go-viewtags/internal"
)

// Invocation is one parsed component or view tag. It is never modified after
// parsing.
type Invocation struct {
	Tag        string   // TagNameComponent or TagNameView
	NameExpr   Expr     // Component name (constant or dynamic)
	Variant    string   // Variant qualifier; meaningful when HasVariant
	HasVariant bool     // A variant string was supplied
	Data       Expr     // Data block; nil when absent
	Only       bool     // Scope isolation flag
	Pos        Position // Position of the tag name
}

// ConstantName returns the component name when it is a string literal
func (inv *Invocation) ConstantName() (string, bool) {
	return isStringConstant(inv.NameExpr)
}

// newInvocation converts the internal parse result
func newInvocation(t *internal.TagInvocation) *Invocation {
	return &Invocation{
		Tag:        t.Tag,
		NameExpr:   t.Name,
		Variant:    t.Variant,
		HasVariant: t.HasVariant,
		Data:       t.Data,
		Only:       t.Only,
		Pos:        t.Pos,
	}
}

// RenderCall is the compiled form of an invocation: which template to load
// and which fields to merge into its context.
type RenderCall struct {
	Tag          string
	Ref          TemplateRef
	Name         string           // Component name; empty when Ref is deferred
	Set          ClassModifierSet // Final classes/modifiers; Modifiers empty when deferred
	RawModifiers []string         // Unprefixed modifiers, prefixed at render time when deferred
	Data         Expr
	Only         bool
	Pos          Position
}

// ClassName returns the precomputed class string of a static call
func (c *RenderCall) ClassName() string {
	return c.Set.ClassName(c.Name)
}

// ComponentNode compiles one invocation into a render call.
// It keeps no per-compile state: Plan and Compile may be called any number of
// times, from any goroutine, with identical results.
type ComponentNode struct {
	inv       Invocation
	extension string
	logger    *zap.Logger
}

// NewComponentNode creates a node for the invocation using the given file extension
func NewComponentNode(inv *Invocation, extension string, logger *zap.Logger) *ComponentNode {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComponentNode{
		inv:       *inv,
		extension: extension,
		logger:    logger,
	}
}

// Invocation returns a copy of the node's invocation
func (n *ComponentNode) Invocation() Invocation {
	return n.inv
}

// Plan resolves the template and extracts the data block
func (n *ComponentNode) Plan() (*RenderCall, error) {
	inv := n.inv
	if inv.NameExpr == nil {
		return nil, NewParseError(ErrMsgMissingName, inv.Pos, nil)
	}
	if name, ok := inv.ConstantName(); ok && name == "" {
		return nil, NewParseError(ErrMsgEmptyName, inv.NameExpr.Pos(), nil)
	}
	ref := ResolveTemplate(inv.NameExpr, inv.Variant, n.extension)

	label := ref.Name
	if ref.IsDeferred() {
		label = inv.NameExpr.String()
		n.logger.Debug(LogMsgTemplateDeferred,
			zap.String(LogFieldComponent, label),
			zap.Int(LogFieldLine, inv.Pos.Line))
	} else {
		n.logger.Debug(LogMsgTemplateResolved,
			zap.String(LogFieldComponent, ref.Name),
			zap.String(LogFieldPath, ref.Path),
			zap.Int(LogFieldLine, inv.Pos.Line))
	}

	classes, rawModifiers, err := ExtractRaw(inv.Data, label)
	if err != nil {
		return nil, err
	}

	call := &RenderCall{
		Tag:          inv.Tag,
		Ref:          ref,
		RawModifiers: rawModifiers,
		Data:         inv.Data,
		Only:         inv.Only,
		Pos:          inv.Pos,
	}
	if ref.IsDeferred() {
		call.Set = ClassModifierSet{Classes: classes, Modifiers: []string{}}
	} else {
		call.Name = ref.Name
		call.Set = NewClassModifierSet(ref.Name, classes, rawModifiers)
	}

	n.logger.Debug(LogMsgDataExtracted,
		zap.String(LogFieldComponent, label),
		zap.Int(LogFieldClasses, len(call.Set.Classes)),
		zap.Int(LogFieldModifiers, len(rawModifiers)))
	return call, nil
}

// Compile plans the node and emits exactly one render call through c
func (n *ComponentNode) Compile(c Compiler) error {
	call, err := n.Plan()
	if err != nil {
		return err
	}
	EmitRenderCall(c, call)
	n.logger.Debug(LogMsgRenderEmitted,
		zap.String(LogFieldTag, call.Tag),
		zap.Int(LogFieldLine, call.Pos.Line))
	return nil
}

// EmitRenderCall writes the render statement for call:
//
//	$env.render(<load>, $ctx.merge($ctx.scope(<data>, <only>), <fields>));
func EmitRenderCall(c Compiler, call *RenderCall) {
	c.AddDebugInfo(call.Pos)
	c.Write(CodeRenderOpen)
	emitLoad(c, call)
	c.Raw(CodeArgSep).Raw(CodeMergeOpen).Raw(CodeScopeOpen)
	c.Subcompile(call.Data).Raw(CodeArgSep).Repr(call.Only).Raw(CodeClose)
	c.Raw(CodeArgSep)
	emitFields(c, call)
	c.Raw(CodeClose).Raw(CodeStatementEnd)
}

// emitLoad writes either the compile-time load or the deferred lookup
func emitLoad(c Compiler, call *RenderCall) {
	if call.Ref.IsDeferred() {
		c.Raw(CodeResolveOpen).
			Subcompile(call.Ref.NameExpr).Raw(CodeArgSep).
			String(call.Ref.Variant).Raw(CodeArgSep).
			String(call.Ref.Extension).Raw(CodeArgSep).
			Repr(call.Pos.Line).Raw(CodeClose)
		return
	}
	c.Raw(CodeLoadOpen).String(call.Ref.Path).Raw(CodeArgSep).Repr(call.Pos.Line).Raw(CodeClose)
}

// emitFields writes the four component keys; deferred calls compute them at render time
func emitFields(c Compiler, call *RenderCall) {
	if call.Ref.IsDeferred() {
		c.Raw(CodeComponentOpen).
			Subcompile(call.Ref.NameExpr).Raw(CodeArgSep).
			Repr(call.Set.Classes).Raw(CodeArgSep).
			Repr(call.RawModifiers).Raw(CodeClose)
		return
	}

	c.Raw(CodeHashOpen)
	c.String(ContextKeyName).Raw(CodeKeyValueSep).String(call.Name).Raw(CodeArgSep)
	c.String(ContextKeyClassName).Raw(CodeKeyValueSep).String(call.ClassName()).Raw(CodeArgSep)
	c.String(ContextKeyClasses).Raw(CodeKeyValueSep).Repr(call.Set.Classes).Raw(CodeArgSep)
	c.String(ContextKeyModifiers).Raw(CodeKeyValueSep).Repr(call.Set.Modifiers)
	c.Raw(CodeHashClose)
}
