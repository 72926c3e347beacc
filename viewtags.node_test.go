package viewtags

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNode(t *testing.T, tag, body string) *ComponentNode {
	t.Helper()
	node, err := MustNew().ParseTag(tag, body)
	require.NoError(t, err)
	return node
}

func TestComponentNode_Plan_Static(t *testing.T) {
	node := mustNode(t, TagNameComponent, "'Nav' 'Primary' with {classes: ['a', 'b'], modifier: 'active'} only")

	call, err := node.Plan()
	require.NoError(t, err)

	assert.Equal(t, TagNameComponent, call.Tag)
	assert.False(t, call.Ref.IsDeferred())
	assert.Equal(t, "Nav/nav-primary.twig", call.Ref.Path)
	assert.Equal(t, "Nav", call.Name)
	assert.Equal(t, []string{"a", "b"}, call.Set.Classes)
	assert.Equal(t, []string{"Nav--active"}, call.Set.Modifiers)
	assert.Equal(t, []string{"active"}, call.RawModifiers)
	assert.Equal(t, "Nav a b Nav--active", call.ClassName())
	assert.True(t, call.Only)
	assert.NotNil(t, call.Data)
}

func TestComponentNode_Plan_Deferred(t *testing.T) {
	node := mustNode(t, TagNameView, "page.component with {classes: 'a', modifiers: ['x']}")

	call, err := node.Plan()
	require.NoError(t, err)

	assert.True(t, call.Ref.IsDeferred())
	assert.Empty(t, call.Name)
	assert.Equal(t, []string{"a"}, call.Set.Classes)
	assert.Empty(t, call.Set.Modifiers)
	assert.Equal(t, []string{"x"}, call.RawModifiers)
}

func TestComponentNode_Plan_InvalidData(t *testing.T) {
	node := mustNode(t, TagNameView, "'Card' with 'oops'")

	_, err := node.Plan()
	require.Error(t, err)
	assert.True(t, IsInvalidInvocationData(err))

	component, ok := metadata(err, MetaKeyComponent)
	require.True(t, ok)
	assert.Equal(t, "Card", component)
}

func TestComponentNode_Plan_MissingName(t *testing.T) {
	node := NewComponentNode(&Invocation{Tag: TagNameComponent}, DefaultExtension, nil)

	_, err := node.Plan()
	require.Error(t, err)
	assert.True(t, IsParseError(err))
}

func TestComponentNode_Plan_EmptyLiteralName(t *testing.T) {
	node := mustNode(t, TagNameComponent, "'' with {classes: 'a'}")

	_, err := node.Plan()
	require.Error(t, err)
	assert.True(t, IsParseError(err))
	assert.Contains(t, err.Error(), ErrMsgEmptyName)

	w := NewCodeWriter("")
	require.Error(t, node.Compile(w))
	assert.Empty(t, w.Source())
}

func TestComponentNode_Compile_Static(t *testing.T) {
	node := mustNode(t, TagNameComponent, "'Nav' 'Primary' with {classes: 'a', modifier: 'active'}")
	w := NewCodeWriter("page.twig")

	require.NoError(t, node.Compile(w))

	expected := `// line 1 "page.twig"` + "\n" +
		`$env.render($env.load("Nav/nav-primary.twig", 1), ` +
		`$ctx.merge($ctx.scope({"classes": "a", "modifier": "active"}, false), ` +
		`{"name": "Nav", "className": "Nav a Nav--active", "classes": ["a"], "modifiers": ["Nav--active"]}));` + "\n"
	assert.Equal(t, expected, w.Source())
}

func TestComponentNode_Compile_NoData(t *testing.T) {
	node := mustNode(t, TagNameComponent, "'Nav'")
	w := NewCodeWriter("")

	require.NoError(t, node.Compile(w))

	expected := `// line 1 ""` + "\n" +
		`$env.render($env.load("Nav/nav.twig", 1), ` +
		`$ctx.merge($ctx.scope(null, false), ` +
		`{"name": "Nav", "className": "Nav", "classes": [], "modifiers": []}));` + "\n"
	assert.Equal(t, expected, w.Source())
}

func TestComponentNode_Compile_Deferred(t *testing.T) {
	node := mustNode(t, TagNameView, "page.component with {classes: 'a', modifier: 'x'} only")
	w := NewCodeWriter("page.twig")

	require.NoError(t, node.Compile(w))

	expected := `// line 1 "page.twig"` + "\n" +
		`$env.render($env.resolve($ctx.get("page.component"), "", ".twig", 1), ` +
		`$ctx.merge($ctx.scope({"classes": "a", "modifier": "x"}, true), ` +
		`$ctx.component($ctx.get("page.component"), ["a"], ["x"])));` + "\n"
	assert.Equal(t, expected, w.Source())
}

func TestComponentNode_Compile_EmitsOneCall(t *testing.T) {
	node := mustNode(t, TagNameComponent, "'Nav' with {classes: ['a', 'b', 'c']}")
	w := NewCodeWriter("x")

	require.NoError(t, node.Compile(w))
	assert.Equal(t, 1, strings.Count(w.Source(), CodeRenderOpen))
}

func TestComponentNode_Compile_ErrorWritesNothing(t *testing.T) {
	node := mustNode(t, TagNameComponent, "'Nav' with {classes: missing}")
	w := NewCodeWriter("x")

	err := node.Compile(w)
	require.Error(t, err)
	assert.True(t, IsInvalidInvocationData(err))
	assert.Empty(t, w.Source())
}

// Compiling one tag must not carry classes or modifiers into the next.
func TestCompile_NoStateLeaksBetweenInvocations(t *testing.T) {
	ext := MustNew()

	t.Run("same extension, two tags", func(t *testing.T) {
		source := "{% component 'Nav' with {classes: ['a', 'b'], modifiers: ['x']} %}\n{% component 'Card' %}"
		calls, err := ext.Plan(source)
		require.NoError(t, err)
		require.Len(t, calls, 2)

		assert.Equal(t, []string{"a", "b"}, calls[0].Set.Classes)
		assert.Equal(t, []string{"Nav--x"}, calls[0].Set.Modifiers)

		assert.Equal(t, "Card", calls[1].Name)
		assert.Empty(t, calls[1].Set.Classes)
		assert.Empty(t, calls[1].Set.Modifiers)
		assert.Equal(t, "Card", calls[1].ClassName())

		code, err := ext.Compile(context.Background(), source)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(code), "\n")
		require.Len(t, lines, 4)
		assert.Contains(t, lines[3], `{"name": "Card", "className": "Card", "classes": [], "modifiers": []}`)
	})

	t.Run("same node compiled twice", func(t *testing.T) {
		node := mustNode(t, TagNameComponent, "'Nav' with {classes: 'a', modifier: 'x'}")

		first := NewCodeWriter("p")
		second := NewCodeWriter("p")
		require.NoError(t, node.Compile(first))
		require.NoError(t, node.Compile(second))
		assert.Equal(t, first.Source(), second.Source())
		assert.Contains(t, second.Source(), `"className": "Nav a Nav--x", "classes": ["a"], "modifiers": ["Nav--x"]}`)
	})

	t.Run("mutating a plan does not affect the next", func(t *testing.T) {
		node := mustNode(t, TagNameComponent, "'Nav' with {classes: 'a'}")

		call, err := node.Plan()
		require.NoError(t, err)
		call.Set.Classes = append(call.Set.Classes, "leaked")
		call.Set.Classes[0] = "changed"

		again, err := node.Plan()
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, again.Set.Classes)
	})

	t.Run("failed compile leaves no residue", func(t *testing.T) {
		bad := mustNode(t, TagNameComponent, "'Nav' with {classes: x}")
		good := mustNode(t, TagNameComponent, "'Card'")

		_, err := bad.Plan()
		require.Error(t, err)

		call, err := good.Plan()
		require.NoError(t, err)
		assert.Empty(t, call.Set.Classes)
	})
}

func TestComponentNode_ConcurrentPlan(t *testing.T) {
	node := mustNode(t, TagNameComponent, "'Nav' with {classes: ['a'], modifiers: ['x', 'y']}")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			call, err := node.Plan()
			assert.NoError(t, err)
			assert.Equal(t, "Nav a Nav--x Nav--y", call.ClassName())
		}()
	}
	wg.Wait()
}

func TestComponentNode_Invocation(t *testing.T) {
	node := mustNode(t, TagNameComponent, "'Nav' 'primary' only")

	inv := node.Invocation()
	name, ok := inv.ConstantName()
	assert.True(t, ok)
	assert.Equal(t, "Nav", name)
	assert.Equal(t, "primary", inv.Variant)
	assert.True(t, inv.HasVariant)
	assert.True(t, inv.Only)
}
