package bioos

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the kernel configuration. It can
// be populated from YAML (see LoadConfig); the zero value is not useful –
// start from DefaultConfig.
type Config struct {
	Time      TimeConfig      `json:"time" yaml:"time"`
	Memory    MemoryConfig    `json:"memory" yaml:"memory"`
	Process   ProcessConfig   `json:"process" yaml:"process"`
	Biology   BiologyConfig   `json:"biology" yaml:"biology"`
	Events    EventsConfig    `json:"events" yaml:"events"`
	Updater   UpdaterConfig   `json:"updater" yaml:"updater"`
	Telemetry TelemetryConfig `json:"telemetry" yaml:"telemetry"`
	Debug     DebugConfig     `json:"debug" yaml:"debug"`
}

// TimeConfig controls simulation timing.
type TimeConfig struct {
	// Step is the simulated seconds added per tick.
	Step float64 `json:"step" yaml:"step"`
	// Duration is the total simulated duration Run advances through.
	Duration float64 `json:"duration" yaml:"duration"`
	// MaxProcesses bounds the number of live processes.
	MaxProcesses int `json:"maxProcesses" yaml:"maxProcesses"`
}

// MemoryConfig controls the biological memory manager.
type MemoryConfig struct {
	TotalCapacity float64 `json:"totalCapacity" yaml:"totalCapacity"`
	PerOrganism   float64 `json:"perOrganism" yaml:"perOrganism"`
}

// ProcessConfig controls per-process energy accounting and scheduling.
type ProcessConfig struct {
	InitialEnergy     float64 `json:"initialEnergy" yaml:"initialEnergy"`
	EnergyCostPerTick float64 `json:"energyCostPerTick" yaml:"energyCostPerTick"`
	MinEnergy         float64 `json:"minEnergy" yaml:"minEnergy"`
	DefaultPriority   int     `json:"defaultPriority" yaml:"defaultPriority"`
}

// BiologyConfig controls gene expression, protein dynamics, division and
// mutation.
type BiologyConfig struct {
	GeneExpressionRate          float64 `json:"geneExpressionRate" yaml:"geneExpressionRate"`
	GeneExpressionMax           float64 `json:"geneExpressionMax" yaml:"geneExpressionMax"`
	ProteinDegradationRate      float64 `json:"proteinDegradationRate" yaml:"proteinDegradationRate"`
	ProteinConcentrationMax     float64 `json:"proteinConcentrationMax" yaml:"proteinConcentrationMax"`
	CellDivisionEnergyCost      float64 `json:"cellDivisionEnergyCost" yaml:"cellDivisionEnergyCost"`
	CellDivisionEnergyThreshold float64 `json:"cellDivisionEnergyThreshold" yaml:"cellDivisionEnergyThreshold"`
	// CellDivisionProbability is the chance a division event above the energy
	// threshold actually commits; distinct from Events.CellDivision, which is
	// the per-tick chance of drawing the event at all.
	CellDivisionProbability float64 `json:"cellDivisionProbability" yaml:"cellDivisionProbability"`
	MutationRate                float64 `json:"mutationRate" yaml:"mutationRate"`
	MutationSeverity            float64 `json:"mutationSeverity" yaml:"mutationSeverity"`
}

// EventsConfig holds the per-tick probability of each stochastic biological
// event, drawn once per live process per tick.
type EventsConfig struct {
	CellDivision    float64 `json:"cellDivision" yaml:"cellDivision"`
	Apoptosis       float64 `json:"apoptosis" yaml:"apoptosis"`
	Mutation        float64 `json:"mutation" yaml:"mutation"`
	GeneExpression  float64 `json:"geneExpression" yaml:"geneExpression"`
	SignalReception float64 `json:"signalReception" yaml:"signalReception"`
}

// UpdaterConfig controls the optional parallel update phase.
type UpdaterConfig struct {
	// Workers is the number of goroutines updating processes; <= 1 keeps the
	// update phase fully sequential.
	Workers int `json:"workers" yaml:"workers"`
}

// TelemetryConfig controls the snapshot feed.
type TelemetryConfig struct {
	Buffer int `json:"buffer" yaml:"buffer"`
}

// DebugConfig holds reproducibility settings.
type DebugConfig struct {
	// RandomSeed seeds the kernel's stochastic source when set; runs with the
	// same seed and configuration are identical tick for tick.
	RandomSeed *int64 `json:"randomSeed" yaml:"randomSeed"`
}

// DefaultConfig returns a Config populated with the reference simulation
// constants.
func DefaultConfig() *Config {
	return &Config{
		Time: TimeConfig{
			Step:         0.1,
			Duration:     10.0,
			MaxProcesses: 1000,
		},
		Memory: MemoryConfig{
			TotalCapacity: 10000.0,
			PerOrganism:   100.0,
		},
		Process: ProcessConfig{
			InitialEnergy:     100.0,
			EnergyCostPerTick: 0.5,
			MinEnergy:         0.0,
			DefaultPriority:   5,
		},
		Biology: BiologyConfig{
			GeneExpressionRate:          0.1,
			GeneExpressionMax:           1.0,
			ProteinDegradationRate:      0.1,
			ProteinConcentrationMax:     100.0,
			CellDivisionEnergyCost:      50.0,
			CellDivisionEnergyThreshold: 80.0,
			CellDivisionProbability:     0.05,
			MutationRate:                0.01,
			MutationSeverity:            0.1,
		},
		Events: EventsConfig{
			CellDivision:    0.01,
			Apoptosis:       0.005,
			Mutation:        0.002,
			GeneExpression:  0.1,
			SignalReception: 0.05,
		},
		Updater: UpdaterConfig{
			Workers: 1,
		},
		Telemetry: TelemetryConfig{
			Buffer: 1024,
		},
	}
}

// Validate returns an error describing the first invalid setting, or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Time.Step <= 0 {
		return fmt.Errorf("time.step must be > 0")
	}
	if c.Time.MaxProcesses <= 0 {
		return fmt.Errorf("time.maxProcesses must be > 0")
	}
	if c.Memory.TotalCapacity < 0 {
		return fmt.Errorf("memory.totalCapacity must be >= 0")
	}
	if c.Memory.PerOrganism < 0 {
		return fmt.Errorf("memory.perOrganism must be >= 0")
	}
	if c.Process.EnergyCostPerTick < 0 {
		return fmt.Errorf("process.energyCostPerTick must be >= 0")
	}
	if c.Process.InitialEnergy <= c.Process.MinEnergy {
		return fmt.Errorf("process.initialEnergy must exceed process.minEnergy")
	}
	if c.Biology.GeneExpressionMax <= 0 {
		return fmt.Errorf("biology.geneExpressionMax must be > 0")
	}
	for name, probability := range map[string]float64{
		"biology.cellDivisionProbability": c.Biology.CellDivisionProbability,
		"events.cellDivision":             c.Events.CellDivision,
		"events.apoptosis":                c.Events.Apoptosis,
		"events.mutation":                 c.Events.Mutation,
		"events.geneExpression":           c.Events.GeneExpression,
		"events.signalReception":          c.Events.SignalReception,
	} {
		if probability < 0 || probability > 1 {
			return fmt.Errorf("%s must be in [0, 1]", name)
		}
	}
	return nil
}

// LoadConfig reads a YAML configuration from the supplied URL (file path,
// file://, s3:// or any other scheme the afs service understands), applied on
// top of DefaultConfig.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", URL, err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	return config, nil
}
