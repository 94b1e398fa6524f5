package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorAggregatesAndCounts(t *testing.T) {
	c := NewCollector(PhaseHierarchy)
	assert.Equal(t, 0, c.Count())
	assert.Nil(t, c.Aggregate())

	c.Add(nil) // ignored
	c.Add(New(PhaseHierarchy, HIE001, nil, "duplicate class Foo", nil))
	c.Add(New(PhaseHierarchy, HIE003, nil, "undefined parent Bar", nil))

	require.Equal(t, 2, c.Count())
	agg := c.Aggregate()
	require.NotNil(t, agg)
	assert.Equal(t, AGG001, agg.Code)
	assert.Len(t, agg.Data["diagnostics"], 2)
}

func TestReportErrorUnwraps(t *testing.T) {
	rep := New(PhaseTyping, TYP001, nil, "undefined variable x", nil)
	err := WrapReport(rep)
	got, ok := AsReport(err)
	require.True(t, ok)
	assert.Same(t, rep, got)
}
