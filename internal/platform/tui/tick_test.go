package tui

import (
	"testing"
)

func TestTickDriverGenerations(t *testing.T) {
	d := NewTickDriver(60)
	steps := 0

	if d.Next() != nil {
		t.Error("idle driver should not schedule ticks")
	}

	d.Start(func() { steps++ })
	first := d.Generation()
	if d.Next() == nil {
		t.Fatal("Start should schedule a tick")
	}
	if d.Next() != nil {
		t.Error("only one tick may be in flight")
	}

	if !d.Handle(TickMsg{Gen: first}) || steps != 1 {
		t.Fatalf("current tick should step, steps = %d", steps)
	}
	if d.Next() == nil {
		t.Error("handled tick should schedule the next one")
	}

	d.Start(func() { steps += 10 })
	if d.Handle(TickMsg{Gen: first}) {
		t.Error("tick from a cancelled generation should be dropped")
	}
	if !d.Handle(TickMsg{Gen: d.Generation()}) || steps != 11 {
		t.Errorf("new generation should run the new step, steps = %d", steps)
	}
}

func TestTickDriverStop(t *testing.T) {
	d := NewTickDriver(30)
	d.Start(func() {})
	d.Stop()

	if d.Active() {
		t.Error("driver should be inactive after Stop")
	}
	if d.Next() != nil {
		t.Error("stopped driver should not schedule ticks")
	}
	if d.Handle(TickMsg{Gen: d.Generation()}) {
		t.Error("ticks after Stop should be dropped")
	}
}

func TestTickDriverStopInsideStep(t *testing.T) {
	d := NewTickDriver(60)
	d.Start(func() { d.Stop() })
	d.Next()

	if !d.Handle(TickMsg{Gen: d.Generation()}) {
		t.Fatal("tick should run")
	}
	if d.Next() != nil {
		t.Error("a step that stops the driver must not schedule another tick")
	}
}

func TestTickDriverDefaultRate(t *testing.T) {
	if d := NewTickDriver(0); d.interval <= 0 {
		t.Errorf("interval = %v, expected a positive default", d.interval)
	}
}
