package techstack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopN_SortedDescending(t *testing.T) {
	counts := map[string]int{"Go": 7, "Python": 2, "Rust": 1}

	ranked := TopN(counts, 10)
	require.Len(t, ranked, 3)
	assert.Equal(t, "Go", ranked[0].Name)
	assert.Equal(t, "Python", ranked[1].Name)
	assert.Equal(t, "Rust", ranked[2].Name)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Count, ranked[i].Count)
	}
}

func TestTopN_Truncates(t *testing.T) {
	counts := map[string]int{"a": 5, "b": 4, "c": 3, "d": 2, "e": 1}
	assert.Len(t, TopN(counts, 3), 3)
}

func TestTopN_Percentages(t *testing.T) {
	counts := map[string]int{"Go": 2, "Python": 1}

	ranked := TopN(counts, 10)
	require.Len(t, ranked, 2)
	assert.InDelta(t, 66.7, ranked[0].Percentage, 1e-9)
	assert.InDelta(t, 33.3, ranked[1].Percentage, 1e-9)
}

func TestTopN_PercentagesNeedNotSumTo100(t *testing.T) {
	counts := map[string]int{"a": 1, "b": 1, "c": 1}

	sum := 0.0
	for _, e := range TopN(counts, 10) {
		sum += e.Percentage
	}
	assert.InDelta(t, 99.9, sum, 1e-9)
}

func TestTopN_TiesAreDeterministic(t *testing.T) {
	counts := map[string]int{"zeta": 3, "alpha": 3, "mid": 3}

	first := TopN(counts, 10)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, TopN(counts, 10))
	}
	// Ties fall back to name order so output never depends on map
	// iteration order.
	assert.Equal(t, "alpha", first[0].Name)
}

func TestTopN_EmptyTable(t *testing.T) {
	assert.Nil(t, TopN(map[string]int{}, 5))
	assert.Nil(t, TopN(nil, 5))
}
