package constpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyStringAndZeroPreregisteredAtOrdinalZero(t *testing.T) {
	p := New()
	assert.Equal(t, 0, p.String(""))
	assert.Equal(t, 0, p.Int(0))
}

func TestDeduplicatesInInsertionOrder(t *testing.T) {
	p := New()
	assert.Equal(t, 1, p.String("foo"))
	assert.Equal(t, 2, p.String("bar"))
	assert.Equal(t, 1, p.String("foo"), "second registration must reuse the first ordinal")
	assert.Equal(t, []string{"", "foo", "bar"}, p.Strings())

	assert.Equal(t, 1, p.Int(42))
	assert.Equal(t, 1, p.Int(42))
	assert.Equal(t, 2, p.Int(-5))
	assert.Equal(t, []int64{0, 42, -5}, p.Ints())
}
