package viewtags

// RenderContext is the variable scope handed to a component's template.
// It always carries name, className, classes and modifiers.
type RenderContext map[string]any

// Name returns the component name
func (c RenderContext) Name() string {
	s, _ := c[ContextKeyName].(string)
	return s
}

// ClassName returns the space-joined class string
func (c RenderContext) ClassName() string {
	s, _ := c[ContextKeyClassName].(string)
	return s
}

// Classes returns the extracted classes
func (c RenderContext) Classes() []string {
	s, _ := c[ContextKeyClasses].([]string)
	return s
}

// Modifiers returns the prefixed modifiers
func (c RenderContext) Modifiers() []string {
	s, _ := c[ContextKeyModifiers].([]string)
	return s
}

// BuildContext merges the component fields over the caller's variables.
// Caller keys pass through unchanged except the four component keys, which
// always take the computed values. Neither caller nor set is mutated or aliased.
func BuildContext(name string, set ClassModifierSet, caller map[string]any) RenderContext {
	out := make(RenderContext, len(caller)+4)
	for k, v := range caller {
		out[k] = v
	}

	classes := append([]string{}, set.Classes...)
	modifiers := append([]string{}, set.Modifiers...)

	out[ContextKeyName] = name
	out[ContextKeyClassName] = set.ClassName(name)
	out[ContextKeyClasses] = classes
	out[ContextKeyModifiers] = modifiers
	return out
}
