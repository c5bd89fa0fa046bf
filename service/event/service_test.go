package event

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitAndDepth(t *testing.T) {
	service := New()
	service.Emit(NewEvent(1.0, TypeCellDivision, 1))
	assert.Equal(t, 1, service.Depth())
}

func TestSubscribeAndDispatch(t *testing.T) {
	service := New()
	called := false
	service.Subscribe(TypeCellDivision, func(e *Event) error {
		called = true
		assert.Equal(t, 1, e.SourcePID)
		return nil
	})

	service.Emit(NewEvent(0.0, TypeCellDivision, 1))
	dispatched := service.ProcessEvents(1.0)

	assert.True(t, called)
	assert.Equal(t, 1, dispatched)
	assert.Equal(t, 0, service.Depth())
}

func TestChronologicalOrdering(t *testing.T) {
	service := New()
	var order []float64
	service.Subscribe(TypeCellDivision, func(e *Event) error {
		order = append(order, e.Timestamp)
		return nil
	})

	service.Emit(NewEvent(3.0, TypeCellDivision, 1))
	service.Emit(NewEvent(1.0, TypeCellDivision, 1))
	service.Emit(NewEvent(2.0, TypeCellDivision, 1))

	service.ProcessEvents(4.0)

	assert.Equal(t, []float64{1.0, 2.0, 3.0}, order)
	assert.Equal(t, 0, service.Depth())
}

func TestEmissionOrderBreaksTies(t *testing.T) {
	service := New()
	var order []int
	service.Subscribe(TypeMutation, func(e *Event) error {
		order = append(order, e.SourcePID)
		return nil
	})

	for pid := 0; pid < 5; pid++ {
		service.Emit(NewEvent(1.0, TypeMutation, pid))
	}
	service.ProcessEvents(1.0)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestFutureEventsStayQueued(t *testing.T) {
	service := New()
	var seen []float64
	service.Subscribe(TypeApoptosis, func(e *Event) error {
		seen = append(seen, e.Timestamp)
		return nil
	})

	service.Emit(NewEvent(0.5, TypeApoptosis, 1))
	service.Emit(NewEvent(2.5, TypeApoptosis, 1))

	assert.Equal(t, 1, service.ProcessEvents(1.0))
	assert.Equal(t, []float64{0.5}, seen)
	assert.Equal(t, 1, service.Depth())

	assert.Equal(t, 1, service.ProcessEvents(3.0))
	assert.Equal(t, []float64{0.5, 2.5}, seen)
}

func TestUnsubscribedTypeIsConsumed(t *testing.T) {
	service := New()
	service.Emit(NewEvent(0.0, TypeSignalReception, 1))

	assert.Equal(t, 1, service.ProcessEvents(1.0))
	assert.Equal(t, 0, service.Depth())
}

func TestRegistrationOrderInvocation(t *testing.T) {
	service := New()
	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		service.Subscribe(TypeGeneExpression, func(e *Event) error {
			order = append(order, name)
			return nil
		})
	}

	service.Emit(NewEvent(0.0, TypeGeneExpression, 1))
	service.ProcessEvents(1.0)

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestHandlerFailureIsolation(t *testing.T) {
	service := New()
	var delivered []float64
	service.Subscribe(TypeCellDivision, func(e *Event) error {
		if e.Timestamp == 1.0 {
			return fmt.Errorf("transient failure")
		}
		return nil
	})
	service.Subscribe(TypeCellDivision, func(e *Event) error {
		delivered = append(delivered, e.Timestamp)
		return nil
	})

	service.Emit(NewEvent(1.0, TypeCellDivision, 1))
	service.Emit(NewEvent(2.0, TypeCellDivision, 1))
	service.ProcessEvents(3.0)

	// The failing first handler must not block the second handler or the
	// second event.
	assert.Equal(t, []float64{1.0, 2.0}, delivered)
	assert.Equal(t, uint64(1), service.Failures())
}

func TestHandlerPanicIsolation(t *testing.T) {
	service := New()
	survived := 0
	service.Subscribe(TypeMutation, func(e *Event) error {
		panic("handler bug")
	})
	service.Subscribe(TypeMutation, func(e *Event) error {
		survived++
		return nil
	})

	service.Emit(NewEvent(0.0, TypeMutation, 1))
	service.Emit(NewEvent(0.5, TypeMutation, 2))
	assert.NotPanics(t, func() {
		service.ProcessEvents(1.0)
	})

	assert.Equal(t, 2, survived)
	assert.Equal(t, uint64(2), service.Failures())
}

func TestEmitDuringDispatchDefersToNextBatch(t *testing.T) {
	service := New()
	calls := 0
	service.Subscribe(TypeCellDivision, func(e *Event) error {
		calls++
		if calls == 1 {
			service.Emit(NewEvent(e.Timestamp, TypeCellDivision, 99))
		}
		return nil
	})

	service.Emit(NewEvent(1.0, TypeCellDivision, 1))
	assert.Equal(t, 1, service.ProcessEvents(1.0))
	assert.Equal(t, 1, service.Depth())

	assert.Equal(t, 1, service.ProcessEvents(1.0))
	assert.Equal(t, 2, calls)
}

func TestEventQueueScaling(t *testing.T) {
	service := New()
	for i := 0; i < 1000; i++ {
		service.Emit(NewEvent(float64(i), TypeCellDivision, i%10))
	}
	assert.Equal(t, 1000, service.ProcessEvents(1000.0))
	assert.Equal(t, 0, service.Depth())
}

func TestEventMetadata(t *testing.T) {
	e := NewEvent(1.0, TypeMutation, 3).WithMetadata("gene", "GROWTH")
	assert.Equal(t, "GROWTH", e.Metadata["gene"])
	assert.NotEmpty(t, e.ID)
}
