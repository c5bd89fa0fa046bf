package organism

// ConcentrationFloor is the level below which a protein is considered fully
// degraded and removed from its process.
const ConcentrationFloor = 1e-6

// Protein represents a named protein concentration produced by gene
// expression. OriginGene is a lookup reference, not ownership.
type Protein struct {
	Name          string  `json:"name" yaml:"name"`
	OriginGene    string  `json:"originGene" yaml:"originGene"`
	Concentration float64 `json:"concentration" yaml:"concentration"`
}

// NewProtein creates a protein with zero concentration.
func NewProtein(name, originGene string) *Protein {
	return &Protein{Name: name, OriginGene: originGene}
}

// Synthesize raises the concentration by the given amount, capped at max when
// max is positive.
func (p *Protein) Synthesize(amount, max float64) {
	p.Concentration += amount
	if max > 0 && p.Concentration > max {
		p.Concentration = max
	}
}

// Degrade reduces the concentration multiplicatively by rate*dt and reports
// whether the protein is depleted. Concentration is monotonically decreasing
// absent new synthesis and never goes negative.
func (p *Protein) Degrade(dt, rate float64) bool {
	factor := 1 - rate*dt
	if factor < 0 {
		factor = 0
	}
	p.Concentration *= factor
	if p.Concentration < ConcentrationFloor {
		p.Concentration = 0
	}
	return p.Concentration == 0
}
