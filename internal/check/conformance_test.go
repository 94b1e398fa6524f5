package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolc-lang/coolc/internal/class"
)

// buildTree wires up Object -> A -> B and Object -> C by hand, the way the
// hierarchy builder would.
func buildTree(t *testing.T) (object, a, b, c *class.Class) {
	t.Helper()
	object = class.New(class.Object, "", true)
	a = class.New("A", class.Object, false)
	a.Parent = object
	b = class.New("B", "A", false)
	b.Parent = a
	c = class.New("C", class.Object, false)
	c.Parent = object
	return
}

func TestConformsReflexiveAndTransitive(t *testing.T) {
	object, a, b, _ := buildTree(t)
	assert.True(t, Conforms(a, a), "reflexive")
	assert.True(t, Conforms(a, b), "B conforms to A")
	assert.True(t, Conforms(object, b), "B conforms to Object transitively")
	assert.False(t, Conforms(b, a), "A does not conform to B")
}

func TestLUBBasics(t *testing.T) {
	object, a, b, c := buildTree(t)
	require.Equal(t, a, LUB(a, a))
	require.Equal(t, a, LUB(a, b))
	require.Equal(t, a, LUB(b, a), "LUB is commutative")
	require.Equal(t, object, LUB(b, c))
	require.Equal(t, object, LUB(a, object))
}

func TestLUBAllFolds(t *testing.T) {
	object, a, b, c := buildTree(t)
	got := LUBAll([]*class.Class{b, b, a})
	assert.Equal(t, a, got)
	got2 := LUBAll([]*class.Class{b, c})
	assert.Equal(t, object, got2)
}

func TestErrorSentinelShortCircuitsLUBAndConforms(t *testing.T) {
	_, a, _, _ := buildTree(t)
	err := class.ErrorType()
	assert.True(t, Conforms(a, err))
	assert.True(t, Conforms(err, a))
	assert.Equal(t, a, LUB(err, a))
	assert.Equal(t, a, LUB(a, err))
}
