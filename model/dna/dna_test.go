package dna

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomSequence(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	sequence := RandomSequence(rnd, 10)
	assert.Len(t, sequence, 10)
	assert.True(t, Validate(sequence))
	assert.Empty(t, RandomSequence(rnd, 0))
}

func TestReverseComplement(t *testing.T) {
	assert.Equal(t, "CGAT", ReverseComplement("ATCG"))
	assert.Equal(t, "", ReverseComplement(""))
	// Round trip restores the original.
	assert.Equal(t, "GATTACA", ReverseComplement(ReverseComplement("GATTACA")))
}

func TestHammingDistance(t *testing.T) {
	testCases := []struct {
		a, b     string
		expected int
	}{
		{"ATCG", "ATCC", 1},
		{"ATCG", "ATCG", 0},
		{"AAAA", "TTTT", 4},
		{"ATCG", "AT", 2},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, HammingDistance(tc.a, tc.b), "%v vs %v", tc.a, tc.b)
	}
}

func TestMutateSequence(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	sequence := "ATCGATCGATCG"

	mutated := MutateSequence(rnd, sequence, 1.0)
	assert.NotEqual(t, sequence, mutated)
	assert.Equal(t, len(sequence), HammingDistance(sequence, mutated))
	assert.True(t, Validate(mutated))

	assert.Equal(t, sequence, MutateSequence(rnd, sequence, 0))
}

func TestTranslateCodon(t *testing.T) {
	assert.Equal(t, byte('M'), TranslateCodon("ATG"))
	assert.Equal(t, byte('M'), TranslateCodon("atg"))
	assert.Equal(t, byte('*'), TranslateCodon("TAA"))
	assert.Equal(t, byte(0), TranslateCodon("AT"))
	assert.Equal(t, byte(0), TranslateCodon("XYZ"))
}

func TestValidate(t *testing.T) {
	assert.True(t, Validate("ATCG"))
	assert.True(t, Validate("atcg"))
	assert.False(t, Validate("ATCX"))
	assert.False(t, Validate(""))
}

func TestCalculateStats(t *testing.T) {
	stats := CalculateStats([]float64{1, 2, 3, 4, 5})
	assert.Equal(t, 1.0, stats.Min)
	assert.Equal(t, 5.0, stats.Max)
	assert.Equal(t, 3.0, stats.Mean)
	assert.Equal(t, 5, stats.Count)

	assert.Equal(t, Stats{}, CalculateStats(nil))
}

func TestWeightedChoice(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	weights := map[string]float64{"A": 0.7, "B": 0.3}

	counts := map[string]int{}
	for i := 0; i < 200; i++ {
		counts[WeightedChoice(rnd, weights)]++
	}
	assert.Greater(t, counts["A"], counts["B"])
	assert.Zero(t, counts[""])

	assert.Equal(t, "", WeightedChoice(rnd, map[string]float64{"A": 0}))
}
