package internal

import (
	"fmt"
	"strconv"
)

// Evaluator resolves literal and variable expressions against a data map.
// It has no operators: constants, dotted names, arrays and hashes only.
type Evaluator struct {
	data map[string]any
}

// NewEvaluator creates an evaluator over the given variables
func NewEvaluator(data map[string]any) *Evaluator {
	return &Evaluator{data: data}
}

// Evaluate evaluates an expression and returns the result.
// Missing variables evaluate to nil, not an error.
func (e *Evaluator) Evaluate(node Expr) (any, error) {
	if node == nil {
		return nil, &EvalError{Message: ErrMsgEvalNilNode}
	}

	switch n := node.(type) {
	case *ConstantExpr:
		return n.Value, nil

	case *NameExpr:
		val, _ := Lookup(e.data, n.Name)
		return val, nil

	case *ArrayExpr:
		out := make([]any, 0, len(n.Elements))
		for _, el := range n.Elements {
			v, err := e.Evaluate(el)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil

	case *HashExpr:
		out := make(map[string]any, len(n.Pairs))
		for _, pair := range n.Pairs {
			key, err := e.evaluateKey(pair.Key)
			if err != nil {
				return nil, err
			}
			v, err := e.Evaluate(pair.Value)
			if err != nil {
				return nil, err
			}
			out[key] = v
		}
		return out, nil

	default:
		return nil, &EvalError{Message: ErrMsgEvalUnknownNode, Detail: fmt.Sprintf("%T", node)}
	}
}

// evaluateKey evaluates a hash key to its string form
func (e *Evaluator) evaluateKey(node Expr) (string, error) {
	if c, ok := node.(*ConstantExpr); ok {
		if s, ok := c.Text(); ok {
			return s, nil
		}
		return "", &EvalError{Message: ErrMsgEvalInvalidKey, Detail: c.String()}
	}

	v, err := e.Evaluate(node)
	if err != nil {
		return "", err
	}
	switch k := v.(type) {
	case string:
		return k, nil
	case float64:
		return strconv.FormatFloat(k, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(k), nil
	}
	return "", &EvalError{Message: ErrMsgEvalInvalidKey, Detail: node.String()}
}

// Lookup resolves a dot-notation path (e.g. "user.profile.name") in data.
func Lookup(data map[string]any, path string) (any, bool) {
	if path == "" || data == nil {
		return nil, false
	}

	var current any = data
	for _, part := range splitPath(path) {
		switch v := current.(type) {
		case map[string]any:
			val, ok := v[part]
			if !ok {
				return nil, false
			}
			current = val
		case map[string]string:
			val, ok := v[part]
			if !ok {
				return nil, false
			}
			current = val
		default:
			return nil, false
		}
	}
	return current, true
}

func splitPath(path string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] == PathSeparator[0] {
			if i > start {
				parts = append(parts, path[start:i])
			}
			start = i + 1
		}
	}
	if start < len(path) {
		parts = append(parts, path[start:])
	}
	return parts
}

// EvalError represents an error during expression evaluation
type EvalError struct {
	Message string
	Detail  string
}

// Error implements the error interface
func (e *EvalError) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}
