package organism

// Gene represents a single named gene with a bounded expression level. The
// sequence is immutable for the lifetime of the owning genome unless a
// mutation event rewrites it.
type Gene struct {
	Name            string  `json:"name" yaml:"name"`
	Sequence        string  `json:"sequence" yaml:"sequence"`
	ExpressionLevel float64 `json:"expressionLevel" yaml:"expressionLevel"`
}

// NewGene creates a gene with a zero expression level.
func NewGene(name, sequence string) *Gene {
	return &Gene{Name: name, Sequence: sequence}
}

// Express raises the expression level by rate*dt, saturating at max, and
// returns the resulting level. The level never goes negative.
func (g *Gene) Express(dt, rate, max float64) float64 {
	g.ExpressionLevel += rate * dt
	if g.ExpressionLevel > max {
		g.ExpressionLevel = max
	}
	if g.ExpressionLevel < 0 {
		g.ExpressionLevel = 0
	}
	return g.ExpressionLevel
}

// AdjustExpression shifts the expression level by delta, clamped to [0, max].
// Used by mutation events; ordinary expression goes through Express.
func (g *Gene) AdjustExpression(delta, max float64) {
	g.ExpressionLevel += delta
	if g.ExpressionLevel > max {
		g.ExpressionLevel = max
	}
	if g.ExpressionLevel < 0 {
		g.ExpressionLevel = 0
	}
}

// Clone returns an independent copy of the gene.
func (g *Gene) Clone() *Gene {
	if g == nil {
		return nil
	}
	out := *g
	return &out
}

// Genome maps gene name to gene. A genome is exclusively owned by one
// process.
type Genome map[string]*Gene

// Clone deep-copies the genome.
func (g Genome) Clone() Genome {
	if g == nil {
		return nil
	}
	out := make(Genome, len(g))
	for name, gene := range g {
		out[name] = gene.Clone()
	}
	return out
}
