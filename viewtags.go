// Package viewtags compiles component and view template tags into render calls.
//
// A component tag names a component, an optional variant and an optional data block:
//
//	{% component 'Navigation' 'primary' with {classes: ['site-nav'], modifier: 'sticky'} %}
//
// It compiles into one call that loads Navigation/navigation-primary.twig and
// renders it with the caller's variables plus four computed keys:
//
//	name:      "Navigation"
//	className: "Navigation site-nav Navigation--sticky"
//	classes:   ["site-nav"]
//	modifiers: ["Navigation--sticky"]
//
// The view tag takes any expression as its name; names that are not string
// literals are resolved when the template renders:
//
//	{% view page.layout with {modifiers: ['wide']} only %}
//
// # Basic Usage
//
//	ext := viewtags.MustNew(viewtags.WithExtension(".html.twig"))
//	code, err := ext.Compile(ctx, source)
//
// Host engines that bring their own compiler implement Compiler and call
// ComponentNode.Compile, or use Plan to get the RenderCall and emit it themselves.
//
// # Rendering
//
// Runtime executes a RenderCall in process against an Environment:
//
//	out, err := ext.Runtime(env).Execute(ctx, call, vars)
//
// # Catalog
//
// A Catalog lists known components and their variants. Lint reports tags
// naming anything else; WithStrictCatalog turns those reports into compile errors.
//
// # Thread Safety
//
// Extension, ComponentNode, Runtime and the catalogs are safe for concurrent use.
// CodeWriter is not; use one per compilation.
package viewtags
