package organism

import (
	"sort"
)

// Process state constants
const (
	StateReady      = "ready"
	StateRunning    = "running"
	StateSleeping   = "sleeping"
	StateTerminated = "terminated"
)

// Process represents one simulated organism tracked like an OS process. A
// process is owned exclusively by the scheduler; terminated processes stay
// registered so pid lookups remain stable.
type Process struct {
	PID           int                 `json:"pid"`
	Name          string              `json:"name"`
	State         string              `json:"state"`
	Energy        float64             `json:"energy"`
	InitialEnergy float64             `json:"initialEnergy"`
	Age           float64             `json:"age"`
	Genome        Genome              `json:"genome,omitempty"`
	Proteins      map[string]*Protein `json:"proteins,omitempty"`
	Priority      int                 `json:"priority"`

	geneNames []string // cached stable iteration order
}

// UpdateParams carries the configured rates consumed by Update. All values
// are fixed for the lifetime of a simulation run.
type UpdateParams struct {
	EnergyCostPerTick  float64
	MinEnergy          float64
	ExpressionRate     float64
	ExpressionMax      float64
	ProteinDegradation float64
	ProteinMax         float64
}

// NewProcess creates a ready process with the supplied initial energy and
// priority.
func NewProcess(pid int, name string, energy float64, priority int) *Process {
	return &Process{
		PID:           pid,
		Name:          name,
		State:         StateReady,
		Energy:        energy,
		InitialEnergy: energy,
		Priority:      priority,
		Genome:        Genome{},
		Proteins:      map[string]*Protein{},
	}
}

// AttachGenome replaces the process genome and invalidates the cached gene
// iteration order.
func (p *Process) AttachGenome(genome Genome) {
	if genome == nil {
		genome = Genome{}
	}
	p.Genome = genome
	p.geneNames = nil
}

// GeneNames returns the genome's gene names in ascending order. The order is
// cached; AttachGenome and AddGene invalidate it.
func (p *Process) GeneNames() []string {
	if p.geneNames == nil {
		p.geneNames = make([]string, 0, len(p.Genome))
		for name := range p.Genome {
			p.geneNames = append(p.geneNames, name)
		}
		sort.Strings(p.geneNames)
	}
	return p.geneNames
}

// AddGene registers a gene in the genome, replacing any previous gene with
// the same name.
func (p *Process) AddGene(gene *Gene) {
	if gene == nil {
		return
	}
	p.Genome[gene.Name] = gene
	p.geneNames = nil
}

// IsAlive reports whether the process has not terminated.
func (p *Process) IsAlive() bool {
	return p.State != StateTerminated
}

// Terminate marks the process terminated and purges its genome and proteins
// so a dead organism does not retain biological state. Returns false when
// the process was already terminated; the transition happens exactly once.
func (p *Process) Terminate() bool {
	if p.State == StateTerminated {
		return false
	}
	p.State = StateTerminated
	p.Genome = Genome{}
	p.Proteins = map[string]*Protein{}
	p.geneNames = nil
	return true
}

// Sleep moves a live process into the sleeping state.
func (p *Process) Sleep() {
	if p.IsAlive() {
		p.State = StateSleeping
	}
}

// Wake returns a sleeping process to ready.
func (p *Process) Wake() {
	if p.State == StateSleeping {
		p.State = StateReady
	}
}

// Update advances the process by dt: ages it, charges the energy cost,
// expresses genes, synthesizes and degrades proteins. It returns true exactly
// once, on the update that drives energy down to the configured minimum and
// terminates the process. Terminated processes are a no-op.
//
// Update is fully deterministic for a given dt and parameter set; stochastic
// biology (division, mutation, apoptosis) is decided by the kernel, not here.
func (p *Process) Update(dt float64, params UpdateParams) bool {
	if !p.IsAlive() {
		return false
	}
	p.Age += dt
	p.Energy -= params.EnergyCostPerTick * dt
	if p.Energy <= params.MinEnergy {
		p.Energy = params.MinEnergy
		p.Terminate()
		return true
	}
	p.expressGenes(dt, params)
	p.degradeProteins(dt, params)
	return false
}

// ExpressGenes runs one expression pass at the configured base rate. Exposed
// for gene-expression events; the regular per-tick pass goes through Update.
func (p *Process) ExpressGenes(dt float64, params UpdateParams) {
	if !p.IsAlive() {
		return
	}
	p.expressGenes(dt, params)
}

func (p *Process) expressGenes(dt float64, params UpdateParams) {
	for _, name := range p.GeneNames() {
		gene := p.Genome[name]
		level := gene.Express(dt, params.ExpressionRate, params.ExpressionMax)
		if level <= 0 {
			continue
		}
		protein, ok := p.Proteins[name]
		if !ok {
			protein = NewProtein(name+"_protein", name)
			p.Proteins[name] = protein
		}
		protein.Synthesize(level*dt, params.ProteinMax)
	}
}

func (p *Process) degradeProteins(dt float64, params UpdateParams) {
	for name, protein := range p.Proteins {
		if protein.Degrade(dt, params.ProteinDegradation) {
			delete(p.Proteins, name)
		}
	}
}
