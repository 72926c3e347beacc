package viewtags

import (
	"context"

	"github.com/itsatony/go-viewtags/internal"
)

// ContextProvider produces the merge base a component's fields are layered on.
// It owns the scoping rules: what a component template sees of its caller.
type ContextProvider interface {
	Base(ctx context.Context, nameExpr, data Expr, only bool, caller map[string]any) (map[string]any, error)
}

// ScopeProvider is the default ContextProvider.
//
// Without only, the base is the caller's variables overlaid with the evaluated
// data block. With only, the base is the evaluated data block alone.
type ScopeProvider struct{}

// NewScopeProvider creates the default scope provider
func NewScopeProvider() *ScopeProvider {
	return &ScopeProvider{}
}

// Base implements ContextProvider
func (p *ScopeProvider) Base(ctx context.Context, nameExpr, data Expr, only bool, caller map[string]any) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base := make(map[string]any)
	if !only {
		for k, v := range caller {
			base[k] = v
		}
	}

	if data == nil {
		return base, nil
	}

	evaluated, err := internal.NewEvaluator(caller).Evaluate(data)
	if err != nil {
		return nil, err
	}
	if vars, ok := evaluated.(map[string]any); ok {
		for k, v := range vars {
			base[k] = v
		}
	}
	return base, nil
}
