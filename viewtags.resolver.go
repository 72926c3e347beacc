package viewtags

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ResolvePath computes the template asset path of a component:
//
//	ResolvePath("Navigation", "Primary", ".twig") == "Navigation/navigation-primary.twig"
//
// An empty variant means no variant suffix. The extension is appended verbatim.
func ResolvePath(name, variant, extension string) string {
	// Casers keep state; one per call keeps ResolvePath safe for concurrent use.
	lower := cases.Lower(language.Und)

	suffix := ""
	if variant != "" {
		suffix = VariantSeparator + lower.String(variant)
	}
	return name + PathSeparator + lower.String(name) + suffix + extension
}

// TemplateRefKind distinguishes compile-time and render-time resolution
type TemplateRefKind int

const (
	// TemplateRefStatic is a path computed at compile time from a constant name
	TemplateRefStatic TemplateRefKind = iota
	// TemplateRefDeferred is resolved by the host at render time from an evaluated name
	TemplateRefDeferred
)

// String returns the string representation of the kind
func (k TemplateRefKind) String() string {
	if k == TemplateRefDeferred {
		return "deferred"
	}
	return "static"
}

// TemplateRef is the resolver's single decision about how a component's
// template is loaded.
type TemplateRef struct {
	Kind      TemplateRefKind
	Path      string // Set for TemplateRefStatic
	Name      string // Constant component name; empty when deferred
	NameExpr  Expr   // Name expression; evaluated at render time when deferred
	Variant   string
	Extension string
}

// IsDeferred reports whether the template must be resolved at render time
func (r TemplateRef) IsDeferred() bool {
	return r.Kind == TemplateRefDeferred
}

// PathFor computes the path for an evaluated component name, applying the
// same convention as ResolvePath. Static refs return their precomputed path.
func (r TemplateRef) PathFor(name string) string {
	if r.Kind == TemplateRefStatic {
		return r.Path
	}
	return ResolvePath(name, r.Variant, r.Extension)
}

// ResolveTemplate chooses between a compile-time path and deferred
// resolution, based only on whether the name expression is a string constant.
// Callers reject an empty constant name before resolving.
func ResolveTemplate(nameExpr Expr, variant, extension string) TemplateRef {
	if name, ok := isStringConstant(nameExpr); ok {
		return TemplateRef{
			Kind:      TemplateRefStatic,
			Path:      ResolvePath(name, variant, extension),
			Name:      name,
			NameExpr:  nameExpr,
			Variant:   variant,
			Extension: extension,
		}
	}
	return TemplateRef{
		Kind:      TemplateRefDeferred,
		NameExpr:  nameExpr,
		Variant:   variant,
		Extension: extension,
	}
}
