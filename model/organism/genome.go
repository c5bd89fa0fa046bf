package organism

import (
	"math/rand"

	"github.com/synthbio/bioos/model/dna"
)

// RandomGenome authors a genome with the given gene names and random
// sequences of sequenceLength bases.
func RandomGenome(rnd *rand.Rand, geneNames []string, sequenceLength int) Genome {
	genome := make(Genome, len(geneNames))
	for _, name := range geneNames {
		genome[name] = NewGene(name, dna.RandomSequence(rnd, sequenceLength))
	}
	return genome
}

// Validate reports whether every gene sequence in the genome is drawn from
// the nucleotide alphabet.
func (g Genome) Validate() bool {
	for _, gene := range g {
		if !dna.Validate(gene.Sequence) {
			return false
		}
	}
	return true
}
