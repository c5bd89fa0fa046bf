package updater

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/synthbio/bioos/model/organism"
)

func testParams() organism.UpdateParams {
	return organism.UpdateParams{
		EnergyCostPerTick:  0.5,
		MinEnergy:          0,
		ExpressionRate:     0.1,
		ExpressionMax:      1.0,
		ProteinDegradation: 0.1,
		ProteinMax:         100.0,
	}
}

func makeProcesses(n int) []*organism.Process {
	processes := make([]*organism.Process, 0, n)
	for i := 0; i < n; i++ {
		process := organism.NewProcess(i, fmt.Sprintf("Org%d", i), 100.0, 5)
		process.AddGene(organism.NewGene("GROWTH", "ATCG"))
		processes = append(processes, process)
	}
	return processes
}

func TestSequentialUpdate(t *testing.T) {
	service := New(Config{WorkerCount: 1})
	processes := makeProcesses(5)

	terminated := service.Update(processes, 1.0, testParams())

	assert.Empty(t, terminated)
	for _, process := range processes {
		assert.Equal(t, 99.5, process.Energy)
		assert.Equal(t, 1.0, process.Age)
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	sequential := makeProcesses(50)
	parallel := makeProcesses(50)

	seqService := New(Config{WorkerCount: 1})
	parService := New(Config{WorkerCount: 4})

	for tick := 0; tick < 20; tick++ {
		seqService.Update(sequential, 0.1, testParams())
		parService.Update(parallel, 0.1, testParams())
	}

	for i := range sequential {
		assert.Equal(t, sequential[i].Energy, parallel[i].Energy)
		assert.Equal(t, sequential[i].Age, parallel[i].Age)
		assert.Equal(t, sequential[i].State, parallel[i].State)
	}
}

func TestTerminationsReportedInOrder(t *testing.T) {
	service := New(Config{WorkerCount: 4})
	processes := makeProcesses(10)
	// Processes 2, 5 and 7 are one tick away from starvation.
	for _, pid := range []int{2, 5, 7} {
		processes[pid].Energy = 0.25
	}

	terminated := service.Update(processes, 1.0, testParams())

	assert.Equal(t, []int{2, 5, 7}, terminated)
	for _, pid := range terminated {
		assert.Equal(t, organism.StateTerminated, processes[pid].State)
	}
}

func TestUpdateEmptyInput(t *testing.T) {
	service := New(DefaultConfig())
	assert.Nil(t, service.Update(nil, 1.0, testParams()))
}
