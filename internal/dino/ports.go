package dino

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// Presenter receives a renderable snapshot after every state change.
type Presenter interface {
	Present(f Frame)
}

// BestStore persists the best score across runs.
// LoadBest is called once when the controller is built and must return 0
// when nothing has been stored yet.
type BestStore interface {
	LoadBest() int
	SaveBest(score int)
}

// JumpCue plays the jump sound. Errors are ignored by the controller.
type JumpCue interface {
	PlayJumpCue() error
}

// FrameDriver calls step once per display frame between Start and Stop.
// Start replaces any step scheduled by a previous Start.
type FrameDriver interface {
	Start(step func())
	Stop()
}

// Rand is the randomness source for spawning. *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Deps bundles the collaborators of a Controller. Nil fields are replaced
// by no-op implementations so the controller can run headless.
type Deps struct {
	Presenter Presenter
	Best      BestStore
	Audio     JumpCue
	Driver    FrameDriver
	Rand      Rand
	Logger    *log.Logger
}

type nopPresenter struct{}

func (nopPresenter) Present(Frame) {}

// MemoryBest keeps the best score in memory only.
type MemoryBest struct {
	Value int
	Saves int // number of SaveBest calls
}

// LoadBest returns the stored value.
func (m *MemoryBest) LoadBest() int { return m.Value }

// SaveBest stores score and counts the call.
func (m *MemoryBest) SaveBest(score int) {
	m.Value = score
	m.Saves++
}

type nopCue struct{}

func (nopCue) PlayJumpCue() error { return nil }

type nopDriver struct{}

func (nopDriver) Start(func()) {}
func (nopDriver) Stop()        {}

func (d Deps) withDefaults() Deps {
	if d.Presenter == nil {
		d.Presenter = nopPresenter{}
	}
	if d.Best == nil {
		d.Best = &MemoryBest{}
	}
	if d.Audio == nil {
		d.Audio = nopCue{}
	}
	if d.Driver == nil {
		d.Driver = nopDriver{}
	}
	if d.Rand == nil {
		d.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	return d
}
