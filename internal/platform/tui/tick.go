// Package tui provides the Bubble Tea front end for dinojump.
// It handles the terminal UI loop, input mapping and frame drawing.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick. Gen ties it to the Start
// call that scheduled it.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// TickDriver drives a step function from Bubble Tea tick messages.
// Every Start begins a new generation; ticks from an older generation,
// or arriving after Stop, are dropped.
type TickDriver struct {
	interval time.Duration
	gen      int
	step     func()
	active   bool
	pending  bool // a tick must be scheduled by Next
}

// NewTickDriver creates a driver ticking fps times per second.
func NewTickDriver(fps int) *TickDriver {
	if fps <= 0 {
		fps = 60
	}
	return &TickDriver{interval: time.Second / time.Duration(fps)}
}

// Start schedules step on every tick, cancelling ticks already in flight.
func (d *TickDriver) Start(step func()) {
	d.gen++
	d.step = step
	d.active = true
	d.pending = true
}

// Stop cancels further ticks.
func (d *TickDriver) Stop() {
	d.active = false
	d.pending = false
}

// Active reports whether ticks are being delivered.
func (d *TickDriver) Active() bool {
	return d.active
}

// Generation returns the current generation number.
func (d *TickDriver) Generation() int {
	return d.gen
}

// Handle runs the step for a tick of the current generation and reports
// whether it did.
func (d *TickDriver) Handle(msg TickMsg) bool {
	if !d.active || msg.Gen != d.gen {
		return false
	}
	d.step()
	if d.active {
		d.pending = true
	}
	return true
}

// Next returns the command for the next tick, or nil if none is due.
func (d *TickDriver) Next() tea.Cmd {
	if !d.pending {
		return nil
	}
	d.pending = false
	gen := d.gen
	return tea.Tick(d.interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
