package organism

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testParams() UpdateParams {
	return UpdateParams{
		EnergyCostPerTick:  0.5,
		MinEnergy:          0,
		ExpressionRate:     0.1,
		ExpressionMax:      1.0,
		ProteinDegradation: 0.1,
		ProteinMax:         100.0,
	}
}

func TestGeneExpression(t *testing.T) {
	gene := NewGene("GROWTH", "ATCGATCG")
	assert.Equal(t, 0.0, gene.ExpressionLevel)

	level := gene.Express(1.0, 0.1, 1.0)
	assert.Greater(t, level, 0.0)
	assert.LessOrEqual(t, level, 1.0)
}

func TestGeneExpressionSaturation(t *testing.T) {
	gene := NewGene("GROWTH", "ATCGATCG")
	for i := 0; i < 100; i++ {
		gene.Express(1.0, 0.1, 1.0)
	}
	assert.Equal(t, 1.0, gene.ExpressionLevel)
}

func TestGeneAdjustExpressionClamps(t *testing.T) {
	gene := NewGene("GROWTH", "ATCG")
	gene.AdjustExpression(-0.5, 1.0)
	assert.Equal(t, 0.0, gene.ExpressionLevel)
	gene.AdjustExpression(5.0, 1.0)
	assert.Equal(t, 1.0, gene.ExpressionLevel)
}

func TestGenomeCloneIsIndependent(t *testing.T) {
	genome := Genome{"A": NewGene("A", "ATCG")}
	clone := genome.Clone()
	clone["A"].Sequence = "GGGG"
	clone["A"].ExpressionLevel = 0.7

	assert.Equal(t, "ATCG", genome["A"].Sequence)
	assert.Equal(t, 0.0, genome["A"].ExpressionLevel)
}

func TestProteinDegradation(t *testing.T) {
	protein := NewProtein("TEST_PROTEIN", "TEST_GENE")
	protein.Concentration = 100.0

	depleted := protein.Degrade(1.0, 0.1)
	assert.False(t, depleted)
	assert.Less(t, protein.Concentration, 100.0)

	for i := 0; i < 10; i++ {
		protein.Degrade(1.0, 0.1)
	}
	assert.Less(t, protein.Concentration, 50.0)
}

func TestProteinDepletion(t *testing.T) {
	protein := NewProtein("P", "G")
	protein.Concentration = ConcentrationFloor / 2

	assert.True(t, protein.Degrade(1.0, 0.5))
	assert.Equal(t, 0.0, protein.Concentration)
}

func TestProcessCreation(t *testing.T) {
	process := NewProcess(1, "TestOrganism", 100.0, 5)

	assert.Equal(t, 1, process.PID)
	assert.Equal(t, "TestOrganism", process.Name)
	assert.Equal(t, StateReady, process.State)
	assert.Equal(t, 100.0, process.Energy)
	assert.Equal(t, 0.0, process.Age)
}

func TestProcessUpdate(t *testing.T) {
	process := NewProcess(1, "TestOrganism", 100.0, 5)
	process.AddGene(NewGene("GROWTH", "ATCG"))

	terminated := process.Update(1.0, testParams())

	assert.False(t, terminated)
	assert.Less(t, process.Energy, 100.0)
	assert.Greater(t, process.Age, 0.0)
}

func TestProcessEnergyDecay(t *testing.T) {
	process := NewProcess(1, "TestOrganism", 100.0, 5)
	for i := 0; i < 10; i++ {
		process.Update(1.0, testParams())
	}
	assert.Equal(t, 100.0-10*0.5, process.Energy)
}

func TestProcessTerminatesAtMinEnergy(t *testing.T) {
	process := NewProcess(1, "Starving", 1.0, 5)

	params := testParams()
	terminated := false
	ticks := 0
	for !terminated && ticks < 10 {
		terminated = process.Update(1.0, params)
		ticks++
	}

	assert.True(t, terminated)
	assert.Equal(t, StateTerminated, process.State)
	assert.Equal(t, params.MinEnergy, process.Energy)

	// Terminated processes no longer update and never report again.
	assert.False(t, process.Update(1.0, params))
	assert.Equal(t, params.MinEnergy, process.Energy)
}

func TestProcessTerminationPurgesBiology(t *testing.T) {
	process := NewProcess(1, "TestOrganism", 100.0, 5)
	process.AddGene(NewGene("GROWTH", "ATCG"))
	process.Update(1.0, testParams())
	assert.NotEmpty(t, process.Proteins)

	assert.True(t, process.Terminate())
	assert.Empty(t, process.Genome)
	assert.Empty(t, process.Proteins)
	assert.False(t, process.Terminate())
}

func TestProcessProteinSynthesis(t *testing.T) {
	process := NewProcess(1, "TestOrganism", 100.0, 5)
	process.AddGene(NewGene("GROWTH", "ATCG"))

	process.Update(1.0, testParams())

	protein, ok := process.Proteins["GROWTH"]
	assert.True(t, ok)
	assert.Equal(t, "GROWTH_protein", protein.Name)
	assert.Equal(t, "GROWTH", protein.OriginGene)
	assert.Greater(t, protein.Concentration, 0.0)
}

func TestProcessUpdateDeterminism(t *testing.T) {
	run := func() *Process {
		process := NewProcess(1, "TestOrganism", 100.0, 5)
		process.AddGene(NewGene("B", "ATCG"))
		process.AddGene(NewGene("A", "GCTA"))
		for i := 0; i < 25; i++ {
			process.Update(0.1, testParams())
		}
		return process
	}

	a, b := run(), run()
	assert.Equal(t, a.Energy, b.Energy)
	assert.Equal(t, a.Age, b.Age)
	for name, gene := range a.Genome {
		assert.Equal(t, gene.ExpressionLevel, b.Genome[name].ExpressionLevel)
	}
	for name, protein := range a.Proteins {
		assert.Equal(t, protein.Concentration, b.Proteins[name].Concentration)
	}
}

func TestProcessSleepWake(t *testing.T) {
	process := NewProcess(1, "TestOrganism", 100.0, 5)
	process.Sleep()
	assert.Equal(t, StateSleeping, process.State)
	process.Wake()
	assert.Equal(t, StateReady, process.State)

	process.Terminate()
	process.Sleep()
	assert.Equal(t, StateTerminated, process.State)
}
