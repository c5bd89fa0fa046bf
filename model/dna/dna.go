// Package dna provides nucleotide sequence helpers shared by genome
// authoring, mutation handling and tests.
package dna

import (
	"math/rand"
	"sort"
	"strings"
)

// Alphabet is the fixed nucleotide alphabet every sequence is drawn from.
const Alphabet = "ATGC"

var complement = map[byte]byte{
	'A': 'T', 'T': 'A', 'G': 'C', 'C': 'G',
	'a': 't', 't': 'a', 'g': 'c', 'c': 'g',
}

// RandomSequence returns a random sequence of the given length drawn from
// Alphabet using the supplied source.
func RandomSequence(rnd *rand.Rand, length int) string {
	if length <= 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(Alphabet[rnd.Intn(len(Alphabet))])
	}
	return sb.String()
}

// ReverseComplement returns the reverse complement of the sequence. Bases
// outside the alphabet are passed through unchanged.
func ReverseComplement(sequence string) string {
	out := make([]byte, len(sequence))
	for i := 0; i < len(sequence); i++ {
		base := sequence[len(sequence)-1-i]
		if c, ok := complement[base]; ok {
			out[i] = c
		} else {
			out[i] = base
		}
	}
	return string(out)
}

// HammingDistance counts positions at which the two sequences differ. When
// lengths differ the excess of the longer sequence counts as mismatches.
func HammingDistance(a, b string) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	distance := len(b) - len(a)
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] {
			distance++
		}
	}
	return distance
}

// MutateSequence returns a copy of the sequence where each base is
// independently replaced with probability rate. A replacement base is always
// different from the original.
func MutateSequence(rnd *rand.Rand, sequence string, rate float64) string {
	if rate <= 0 || len(sequence) == 0 {
		return sequence
	}
	out := []byte(sequence)
	for i := range out {
		if rnd.Float64() >= rate {
			continue
		}
		replacement := Alphabet[rnd.Intn(len(Alphabet))]
		for replacement == out[i] {
			replacement = Alphabet[rnd.Intn(len(Alphabet))]
		}
		out[i] = replacement
	}
	return string(out)
}

// Validate reports whether the sequence consists solely of alphabet bases.
// Validation is case insensitive; an empty sequence is invalid.
func Validate(sequence string) bool {
	if sequence == "" {
		return false
	}
	for i := 0; i < len(sequence); i++ {
		switch sequence[i] {
		case 'A', 'T', 'G', 'C', 'a', 't', 'g', 'c':
		default:
			return false
		}
	}
	return true
}

// codonTable maps DNA codons to single-letter amino acid codes; '*' denotes a
// stop codon.
var codonTable = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

// TranslateCodon returns the single-letter amino acid code for a codon, or 0
// when the codon is not a valid DNA triplet.
func TranslateCodon(codon string) byte {
	if len(codon) != 3 {
		return 0
	}
	aa, ok := codonTable[strings.ToUpper(codon)]
	if !ok {
		return 0
	}
	return aa
}

// Stats holds summary statistics over a series of values.
type Stats struct {
	Min   float64
	Max   float64
	Mean  float64
	Count int
}

// CalculateStats summarises the supplied values; the zero value is returned
// for an empty input.
func CalculateStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	stats := Stats{Min: values[0], Max: values[0], Count: len(values)}
	sum := 0.0
	for _, v := range values {
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
		sum += v
	}
	stats.Mean = sum / float64(len(values))
	return stats
}

// WeightedChoice selects a key with probability proportional to its weight.
// The empty string is returned when no positive weight exists. Iteration is
// performed over sorted keys so the draw is deterministic for a given source.
func WeightedChoice(rnd *rand.Rand, weights map[string]float64) string {
	total := 0.0
	keys := make([]string, 0, len(weights))
	for key, weight := range weights {
		if weight <= 0 {
			continue
		}
		keys = append(keys, key)
		total += weight
	}
	if total == 0 {
		return ""
	}
	sort.Strings(keys)
	target := rnd.Float64() * total
	cumulative := 0.0
	for _, key := range keys {
		cumulative += weights[key]
		if target < cumulative {
			return key
		}
	}
	return keys[len(keys)-1]
}
