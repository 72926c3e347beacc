package viewtags

import (
	"strings"

	"github.com/itsatony/go-viewtags/internal"
)

// ClassModifierSet holds the classes and modifiers extracted from a data block.
// Modifiers are already prefixed with "<component>--".
type ClassModifierSet struct {
	Classes   []string
	Modifiers []string
}

// ClassName joins the component name, classes and modifiers with single spaces
func (s ClassModifierSet) ClassName(name string) string {
	parts := make([]string, 0, 1+len(s.Classes)+len(s.Modifiers))
	parts = append(parts, name)
	parts = append(parts, s.Classes...)
	parts = append(parts, s.Modifiers...)
	return strings.Join(parts, ClassSeparator)
}

// NewClassModifierSet builds a set from raw classes and unprefixed modifiers
func NewClassModifierSet(name string, classes, rawModifiers []string) ClassModifierSet {
	return ClassModifierSet{
		Classes:   withoutName(classes, name),
		Modifiers: PrefixModifiers(name, rawModifiers),
	}
}

// withoutName copies classes, dropping entries equal to the component name;
// the name is always the first entry of className and is never repeated.
func withoutName(classes []string, name string) []string {
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		if c != name {
			out = append(out, c)
		}
	}
	return out
}

// PrefixModifiers returns "<name>--<modifier>" for each modifier, in order
func PrefixModifiers(name string, modifiers []string) []string {
	out := make([]string, 0, len(modifiers))
	for _, m := range modifiers {
		out = append(out, name+ModifierSeparator+m)
	}
	return out
}

// DataValueKind tags the two accepted shapes of a classes/modifier value
type DataValueKind int

const (
	// DataValueConstant is a single constant: classes: 'a'
	DataValueConstant DataValueKind = iota
	// DataValueList is an ordered list of constants: classes: ['a', 'b']
	DataValueList
)

// DataValue is a classified classes/modifier value
type DataValue struct {
	Kind   DataValueKind
	Values []string
}

// classifyValue decides the shape of a value once; callers only see Values.
func classifyValue(value Expr) (DataValue, string) {
	switch v := value.(type) {
	case *internal.ConstantExpr:
		text, ok := v.Text()
		if !ok {
			return DataValue{}, ErrMsgNullValue
		}
		return DataValue{Kind: DataValueConstant, Values: []string{text}}, ""

	case *internal.ArrayExpr:
		values := make([]string, 0, len(v.Elements))
		for _, el := range v.Elements {
			c, ok := el.(*internal.ConstantExpr)
			if !ok {
				return DataValue{}, ErrMsgListItemNotConstant
			}
			text, ok := c.Text()
			if !ok {
				return DataValue{}, ErrMsgNullValue
			}
			values = append(values, text)
		}
		return DataValue{Kind: DataValueList, Values: values}, ""
	}
	return DataValue{}, ErrMsgValueNotConstant
}

// ExtractRaw walks the data block in declared order and returns the classes
// and the unprefixed modifiers. A nil data block yields empty slices.
// component is only used to label errors.
func ExtractRaw(data Expr, component string) (classes, modifiers []string, err error) {
	classes = []string{}
	modifiers = []string{}
	if data == nil {
		return classes, modifiers, nil
	}

	hash, ok := data.(*internal.HashExpr)
	if !ok {
		return nil, nil, NewInvalidInvocationDataError(component, data.Pos(),
			formatReason(ErrMsgDataNotHash, data.Type().String(), data.String()))
	}

	for _, pair := range hash.Pairs {
		key, ok := pair.KeyString()
		if !ok {
			continue
		}

		switch key {
		case DataKeyClasses, DataKeyModifier, DataKeyModifiers:
		default:
			continue
		}

		value, reason := classifyValue(pair.Value)
		if reason != "" {
			return nil, nil, NewInvalidInvocationDataError(component, pair.Value.Pos(),
				formatReason(reason, key, pair.Value.String()))
		}

		if key == DataKeyClasses {
			classes = append(classes, value.Values...)
		} else {
			modifiers = append(modifiers, value.Values...)
		}
	}

	return classes, modifiers, nil
}

// Extract builds the ClassModifierSet of a component from its data block.
// Modifiers are prefixed with "<componentName>--"; unknown keys are ignored.
func Extract(data Expr, componentName string) (ClassModifierSet, error) {
	classes, modifiers, err := ExtractRaw(data, componentName)
	if err != nil {
		return ClassModifierSet{}, err
	}
	return NewClassModifierSet(componentName, classes, modifiers), nil
}
