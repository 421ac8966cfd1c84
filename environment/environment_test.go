package environment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox-lang/lox/objects"
)

func TestDefineAndGetInSameScope(t *testing.T) {
	env := New(nil)
	env.Define("a", objects.Number(1))

	v, err := env.Get("a")
	require.NoError(t, err)
	require.Equal(t, objects.Number(1), v)
}

func TestGetUndefinedIsError(t *testing.T) {
	env := New(nil)
	_, err := env.Get("missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Undefined variable 'missing'")
}

func TestGetWalksEnclosingChain(t *testing.T) {
	outer := New(nil)
	outer.Define("a", objects.Number(1))
	inner := New(outer)

	v, err := inner.Get("a")
	require.NoError(t, err)
	require.Equal(t, objects.Number(1), v)
}

func TestAssignWritesToDefiningScope(t *testing.T) {
	outer := New(nil)
	outer.Define("a", objects.Number(1))
	inner := New(outer)

	require.NoError(t, inner.Assign("a", objects.Number(2)))

	v, _ := outer.Get("a")
	require.Equal(t, objects.Number(2), v)
}

func TestAssignUndefinedIsError(t *testing.T) {
	env := New(nil)
	err := env.Assign("missing", objects.Number(1))
	require.Error(t, err)
}

func TestGetAtAndAssignAt(t *testing.T) {
	global := New(nil)
	middle := New(global)
	inner := New(middle)
	middle.Define("x", objects.Number(10))

	require.Equal(t, objects.Number(10), inner.GetAt(1, "x"))

	inner.AssignAt(1, "x", objects.Number(20))
	v, _ := middle.Get("x")
	require.Equal(t, objects.Number(20), v)
}

func TestDefineShadowsInNewScope(t *testing.T) {
	outer := New(nil)
	outer.Define("a", objects.Number(1))
	inner := New(outer)
	inner.Define("a", objects.Number(2))

	v, _ := inner.Get("a")
	require.Equal(t, objects.Number(2), v)
	v, _ = outer.Get("a")
	require.Equal(t, objects.Number(1), v)
}
