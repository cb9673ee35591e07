// Package dino implements the dino jump runner: a character jumps over
// approaching obstacles while the score grows each time one scrolls away.
//
// The Controller owns all simulation state. Presentation, persistence,
// audio and frame timing are injected through Deps, so the simulation
// can be stepped headlessly one Tick at a time.
package dino

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dinojump/internal/core"
)

// Controller runs the game-over state machine: Idle -> Running on Start,
// Running -> GameOver on collision, GameOver -> Running on Restart.
// It is not safe for concurrent use; every method must be called from the
// goroutine that drives it.
type Controller struct {
	phase     Phase
	player    Player
	obstacles []Obstacle
	clouds    []Cloud
	score     int
	speed     float64
	best      int
	gate      spawnGate
	ticks     int
	layout    Layout

	obstacleChance float64
	cloudChance    float64

	presenter Presenter
	store     BestStore
	audio     JumpCue
	driver    FrameDriver
	rng       Rand
	logger    *log.Logger
}

// New creates an idle controller and loads the persisted best score.
func New(layout Layout, deps Deps) *Controller {
	deps = deps.withDefaults()

	c := &Controller{
		phase:          PhaseIdle,
		player:         groundedPlayer(),
		obstacles:      make([]Obstacle, 0, 8),
		clouds:         make([]Cloud, 0, 16),
		speed:          BaseSpeed,
		gate:           newSpawnGate(),
		layout:         layout,
		obstacleChance: ObstacleChance,
		cloudChance:    CloudChance,
		presenter:      deps.Presenter,
		store:          deps.Best,
		audio:          deps.Audio,
		driver:         deps.Driver,
		rng:            deps.Rand,
		logger:         deps.Logger,
	}
	c.best = max(c.store.LoadBest(), 0)
	c.presenter.Present(c.Snapshot())
	return c
}

// Phase returns the current state machine phase.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Score returns the score of the current or last run.
func (c *Controller) Score() int {
	return c.score
}

// Best returns the best score seen so far.
func (c *Controller) Best() int {
	return c.best
}

// Start begins a new run from any phase and hands Tick to the frame driver.
func (c *Controller) Start() {
	c.phase = PhaseRunning
	c.score = 0
	c.speed = BaseSpeed
	c.ticks = 0
	c.gate = newSpawnGate()
	c.player = groundedPlayer()
	c.obstacles = c.obstacles[:0]
	c.spawnInitialClouds()

	c.logger.Debug("run started", "best", c.best)
	c.presenter.Present(c.Snapshot())
	c.driver.Start(func() { c.Tick() })
}

// Restart clears the field, grounds the player and starts a new run.
func (c *Controller) Restart() {
	c.obstacles = c.obstacles[:0]
	c.clouds = c.clouds[:0]
	c.player = groundedPlayer()
	c.Start()
}

// Jump launches the player. It does nothing unless a run is in progress
// and the player is on the ground, and reports whether a jump started.
func (c *Controller) Jump() bool {
	if c.phase != PhaseRunning || c.player.Airborne {
		return false
	}
	c.player.Airborne = true
	c.player.Velocity = JumpVelocity

	if err := c.audio.PlayJumpCue(); err != nil {
		c.logger.Debug("jump cue failed", "error", err)
	}
	return true
}

// Resize adapts the field to a new size and spreads a fresh set of clouds
// across it. Obstacles, score and the player are left alone.
func (c *Controller) Resize(width, height float64) {
	c.layout.Width = width
	c.layout.Height = height
	c.spawnInitialClouds()
	c.presenter.Present(c.Snapshot())
}

// Tick advances the simulation by one frame and returns the new state.
// Outside of a run it only returns the current snapshot.
func (c *Controller) Tick() Frame {
	if c.phase != PhaseRunning {
		return c.Snapshot()
	}
	c.ticks++

	c.updatePlayer()

	// The roll happens before the gate check on every tick.
	if c.rng.Float64() < c.obstacleChance && c.gate.open() {
		c.spawnObstacle()
	}
	c.gate.advance()

	if c.rng.Float64() < c.cloudChance {
		c.spawnCloud(c.layout.Width)
	}

	c.moveObstacles()
	c.moveClouds()
	hit := c.checkCollisions()

	if c.score > 0 && c.score%SpeedEvery == 0 {
		c.speed = speedFor(c.score)
	}

	if hit {
		c.gameOver()
	}

	f := c.Snapshot()
	c.presenter.Present(f)
	return f
}

// Snapshot returns a copy of the renderable state.
func (c *Controller) Snapshot() Frame {
	return Frame{
		Phase:     c.phase,
		Player:    c.player,
		Obstacles: append([]Obstacle(nil), c.obstacles...),
		Clouds:    append([]Cloud(nil), c.clouds...),
		Score:     c.score,
		Best:      c.best,
		Speed:     c.speed,
		Ticks:     c.ticks,
		Layout:    c.layout,
	}
}

func (c *Controller) updatePlayer() {
	if !c.player.Airborne {
		return
	}
	c.player.Velocity -= Gravity
	c.player.Y += c.player.Velocity

	if c.player.Y <= GroundLevel {
		c.player = groundedPlayer()
	}
}

func (c *Controller) moveObstacles() {
	kept := c.obstacles[:0]
	for _, o := range c.obstacles {
		o.X -= c.speed
		if o.X < OffField {
			c.addScore(ObstacleReward)
			continue
		}
		kept = append(kept, o)
	}
	c.obstacles = kept
}

func (c *Controller) moveClouds() {
	kept := c.clouds[:0]
	for _, cl := range c.clouds {
		cl.X -= c.speed * Parallax
		if cl.X < OffField {
			continue
		}
		kept = append(kept, cl)
	}
	c.clouds = kept
}

func (c *Controller) checkCollisions() bool {
	player := c.layout.PlayerRect(c.player.Y)
	for _, o := range c.obstacles {
		if core.Collides(player, c.layout.ObstacleRect(o), CollisionPadding) {
			return true
		}
	}
	return false
}

// addScore records points and persists a new best when it is exceeded.
func (c *Controller) addScore(n int) {
	c.score += n
	if c.score > c.best {
		c.best = c.score
		c.store.SaveBest(c.best)
		c.logger.Debug("new best", "score", c.best)
	}
}

func (c *Controller) gameOver() {
	c.phase = PhaseGameOver
	c.driver.Stop()
	c.logger.Info("game over", "score", c.score, "best", c.best, "ticks", c.ticks)
}

func (c *Controller) spawnObstacle() {
	c.obstacles = append(c.obstacles, Obstacle{
		X:      c.layout.Width,
		Height: minObstacleHeight + c.rng.Float64()*obstacleHeightVar,
	})
}

func (c *Controller) spawnCloud(x float64) {
	size := minCloudSize + c.rng.Float64()*cloudSizeVar
	top := minCloudTop + c.rng.Float64()*cloudTopVar
	c.clouds = append(c.clouds, Cloud{X: x, Top: top, Size: size})
}

func (c *Controller) spawnInitialClouds() {
	c.clouds = c.clouds[:0]
	for i := 0; i < InitialClouds; i++ {
		c.spawnCloud(c.rng.Float64() * c.layout.Width)
	}
}
