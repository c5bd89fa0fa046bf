package bioos

import (
	"context"
	"fmt"
	"sort"

	"github.com/synthbio/bioos/internal/idgen"
	"github.com/synthbio/bioos/model/dna"
	"github.com/synthbio/bioos/model/organism"
	"github.com/synthbio/bioos/service/event"
)

func (r *Runtime) subscribeHandlers() {
	r.events.Subscribe(event.TypeCellDivision, r.handleCellDivision)
	r.events.Subscribe(event.TypeApoptosis, r.handleApoptosis)
	r.events.Subscribe(event.TypeMutation, r.handleMutation)
	r.events.Subscribe(event.TypeGeneExpression, r.handleGeneExpression)
	r.events.Subscribe(event.TypeSignalReception, r.handleSignalReception)
}

// handleCellDivision reproduces the source organism when it has enough
// energy. The division cost is deducted before the child is admitted, so an
// admission failure (memory exhausted) aborts the division with the energy
// already spent; the error is reported rather than silently ignored.
func (r *Runtime) handleCellDivision(e *event.Event) error {
	parent, ok := r.scheduler.Get(e.SourcePID)
	if !ok || !parent.IsAlive() {
		return nil
	}
	if parent.Energy < r.config.Biology.CellDivisionEnergyThreshold {
		return nil
	}
	if r.rng.Float64() >= r.config.Biology.CellDivisionProbability {
		return nil
	}
	parent.Energy -= r.config.Biology.CellDivisionEnergyCost

	childName := parent.Name + "/" + idgen.New()[:8]
	childGenome := r.mutateGenome(parent.Genome.Clone())
	if _, err := r.CreateOrganism(context.Background(), childName, childGenome); err != nil {
		return fmt.Errorf("division of pid %d aborted: %w", e.SourcePID, err)
	}
	return nil
}

// handleApoptosis is programmed cell death: the process terminates, its
// memory is released and a termination event is emitted for observers.
func (r *Runtime) handleApoptosis(e *event.Event) error {
	if !r.scheduler.Terminate(e.SourcePID) {
		return nil
	}
	r.memory.Deallocate(e.SourcePID)
	r.tracker.RecordDeath()
	r.events.Emit(event.NewEvent(r.CurrentTime(), event.TypeProcessTermination, e.SourcePID))
	return nil
}

// handleMutation rewrites one gene of the source organism: its sequence is
// point-mutated and its expression level jittered by up to the configured
// severity. Highly expressed genes are more likely to be hit.
func (r *Runtime) handleMutation(e *event.Event) error {
	process, ok := r.scheduler.Get(e.SourcePID)
	if !ok || !process.IsAlive() {
		return nil
	}
	if len(process.Genome) == 0 {
		return nil
	}
	weights := make(map[string]float64, len(process.Genome))
	for name, gene := range process.Genome {
		weights[name] = gene.ExpressionLevel + 1
	}
	gene := process.Genome[dna.WeightedChoice(r.rng, weights)]
	gene.Sequence = dna.MutateSequence(r.rng, gene.Sequence, r.config.Biology.MutationSeverity)
	delta := (r.rng.Float64()*2 - 1) * r.config.Biology.MutationSeverity
	gene.AdjustExpression(delta, r.config.Biology.GeneExpressionMax)
	return nil
}

// handleGeneExpression runs one extra expression pass for the organism.
func (r *Runtime) handleGeneExpression(e *event.Event) error {
	process, ok := r.scheduler.Get(e.SourcePID)
	if !ok || !process.IsAlive() {
		return nil
	}
	process.ExpressGenes(r.config.Time.Step, r.params)
	return nil
}

// handleSignalReception wakes a sleeping organism; an organism that is
// already awake reacts by raising its scheduling priority one level, never
// past the top level.
func (r *Runtime) handleSignalReception(e *event.Event) error {
	process, ok := r.scheduler.Get(e.SourcePID)
	if !ok || !process.IsAlive() {
		return nil
	}
	if process.State == organism.StateSleeping {
		process.Wake()
		return nil
	}
	if process.Priority > 1 {
		process.Priority--
	}
	return nil
}

// mutateGenome applies independent per-gene mutation with the configured
// rate and severity; used for the genome a child inherits on division.
func (r *Runtime) mutateGenome(genome organism.Genome) organism.Genome {
	for _, name := range sortedGeneNames(genome) {
		if r.rng.Float64() >= r.config.Biology.MutationRate {
			continue
		}
		gene := genome[name]
		gene.Sequence = dna.MutateSequence(r.rng, gene.Sequence, r.config.Biology.MutationSeverity)
		delta := (r.rng.Float64()*2 - 1) * r.config.Biology.MutationSeverity
		gene.AdjustExpression(delta, r.config.Biology.GeneExpressionMax)
	}
	return genome
}

func sortedGeneNames(genome organism.Genome) []string {
	names := make([]string, 0, len(genome))
	for name := range genome {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
