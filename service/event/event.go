package event

import (
	"time"

	"github.com/synthbio/bioos/internal/clock"
	"github.com/synthbio/bioos/internal/idgen"
)

// Type identifies the kind of biological event.
type Type string

const (
	TypeCellDivision       Type = "cellDivision"
	TypeApoptosis          Type = "apoptosis"
	TypeMutation           Type = "mutation"
	TypeGeneExpression     Type = "geneExpression"
	TypeSignalReception    Type = "signalReception"
	TypeProcessTermination Type = "processTermination"
)

// Event is a single biological event. Timestamp is simulated time in
// seconds; CreatedAt is wall-clock emission time for observability only.
type Event struct {
	ID        string                 `json:"id"`
	Timestamp float64                `json:"timestamp"`
	Type      Type                   `json:"type"`
	SourcePID int                    `json:"sourcePid"`
	CreatedAt time.Time              `json:"createdAt"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`

	seq uint64 // emission order, assigned by the service
}

// NewEvent creates an event for the given simulated timestamp.
func NewEvent(timestamp float64, eventType Type, sourcePID int) *Event {
	return &Event{
		ID:        idgen.New(),
		Timestamp: timestamp,
		Type:      eventType,
		SourcePID: sourcePID,
		CreatedAt: clock.Now(),
	}
}

// WithMetadata attaches a metadata entry and returns the event.
func (e *Event) WithMetadata(key string, value interface{}) *Event {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}
