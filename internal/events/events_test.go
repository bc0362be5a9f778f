package events

import (
	"io"
	"log/slog"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOnAndUnsubscribe(t *testing.T) {
	bus := NewBus(testLogger())
	var got []string
	unsub := bus.On(EventAttributeWritten, func(e Event) { got = append(got, e.Type) })

	bus.Emit(Event{Type: EventAttributeWritten})
	bus.Emit(Event{Type: EventTransition})
	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}

	unsub()
	bus.Emit(Event{Type: EventAttributeWritten})
	if len(got) != 1 {
		t.Errorf("handler called after unsubscribe")
	}
}

func TestOnAll(t *testing.T) {
	bus := NewBus(testLogger())
	n := 0
	bus.OnAll(func(Event) { n++ })
	bus.Emit(Event{Type: EventDeviceRegistered})
	bus.Emit(Event{Type: EventReportingConfigured})
	if n != 2 {
		t.Errorf("got %d events, want 2", n)
	}
}

func TestPanicRecovered(t *testing.T) {
	bus := NewBus(testLogger())
	called := false
	bus.On(EventTransition, func(Event) { panic("boom") })
	bus.OnAll(func(Event) { called = true })
	bus.Emit(Event{Type: EventTransition, Data: Transition{Value: 1}})
	if !called {
		t.Error("panicking handler stopped delivery")
	}
}

func TestNilBus(t *testing.T) {
	var bus *Bus
	bus.Emit(Event{Type: EventTransition})
}
