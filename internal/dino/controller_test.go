package dino

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// constRand always returns the same value.
type constRand float64

func (r constRand) Float64() float64 { return float64(r) }

type recordingPresenter struct {
	frames []Frame
}

func (p *recordingPresenter) Present(f Frame) { p.frames = append(p.frames, f) }

func (p *recordingPresenter) last() Frame { return p.frames[len(p.frames)-1] }

type countingDriver struct {
	starts int
	stops  int
	step   func()
}

func (d *countingDriver) Start(step func()) {
	d.starts++
	d.step = step
}

func (d *countingDriver) Stop() { d.stops++ }

type countingCue struct {
	plays int
	err   error
}

func (c *countingCue) PlayJumpCue() error {
	c.plays++
	return c.err
}

// newQuietController returns a running controller whose rolls never spawn
// anything, so tests can place obstacles by hand.
func newQuietController(t *testing.T, layout Layout) (*Controller, *countingDriver) {
	t.Helper()
	driver := &countingDriver{}
	c := New(layout, Deps{Driver: driver, Rand: constRand(0.5)})
	c.Start()
	return c, driver
}

// farLayout puts the player far to the right so obstacles placed near the
// left edge scroll away without ever reaching it.
func farLayout() Layout {
	l := DefaultLayout()
	l.PlayerX = 600
	return l
}

func TestNewLoadsBest(t *testing.T) {
	best := &MemoryBest{Value: 40}
	p := &recordingPresenter{}

	c := New(DefaultLayout(), Deps{Best: best, Presenter: p, Rand: constRand(0.5)})

	if c.Phase() != PhaseIdle {
		t.Errorf("New controller should be idle, got %v", c.Phase())
	}
	if c.Best() != 40 {
		t.Errorf("Best() = %d, expected 40", c.Best())
	}
	if len(p.frames) != 1 || p.last().Best != 40 {
		t.Errorf("New should present one idle frame with the loaded best, got %d frames", len(p.frames))
	}
}

func TestStartResetsRun(t *testing.T) {
	c, driver := newQuietController(t, DefaultLayout())

	if c.Phase() != PhaseRunning {
		t.Fatalf("Start should enter running, got %v", c.Phase())
	}
	if driver.starts != 1 || driver.step == nil {
		t.Errorf("Start should hand a step to the frame driver, starts=%d", driver.starts)
	}
	if c.score != 0 || c.speed != BaseSpeed {
		t.Errorf("Start should reset score/speed, got %d/%f", c.score, c.speed)
	}
	if len(c.obstacles) != 0 {
		t.Errorf("Start should clear obstacles, got %d", len(c.obstacles))
	}
	if len(c.clouds) != InitialClouds {
		t.Fatalf("Start should spawn %d clouds, got %d", InitialClouds, len(c.clouds))
	}
	for _, cl := range c.clouds {
		if cl.X < 0 || cl.X >= c.layout.Width {
			t.Errorf("initial cloud X=%f outside the visible width", cl.X)
		}
	}
}

func TestDriverStepAdvancesTick(t *testing.T) {
	c, driver := newQuietController(t, DefaultLayout())

	driver.step()
	driver.step()

	if c.ticks != 2 {
		t.Errorf("driver step should call Tick, ticks = %d", c.ticks)
	}
}

func TestTickIdleIsNoop(t *testing.T) {
	c := New(DefaultLayout(), Deps{Rand: constRand(0)})

	f := c.Tick()

	if f.Phase != PhaseIdle || c.ticks != 0 || len(c.obstacles) != 0 {
		t.Errorf("Tick while idle should not change state, got phase=%v ticks=%d", f.Phase, c.ticks)
	}
}

func TestObstacleScrollsOffAndScores(t *testing.T) {
	c, _ := newQuietController(t, farLayout())
	c.obstacles = append(c.obstacles, Obstacle{X: 50, Height: 5})

	for i := 0; i < 7; i++ {
		c.Tick()
	}
	if got := c.obstacles[0].X; got != -6 {
		t.Fatalf("after 7 ticks obstacle X = %f, expected -6", got)
	}
	if c.score != 0 {
		t.Fatalf("score should not change before the threshold, got %d", c.score)
	}

	// 50 - 8*18 = -94 is still on the field, 50 - 8*19 = -102 is not.
	for i := 7; i < 18; i++ {
		c.Tick()
	}
	if len(c.obstacles) != 1 || c.score != 0 {
		t.Fatalf("obstacle at -94 should remain, obstacles=%d score=%d", len(c.obstacles), c.score)
	}

	c.Tick()
	if len(c.obstacles) != 0 {
		t.Errorf("obstacle past the threshold should be removed")
	}
	if c.score != ObstacleReward {
		t.Errorf("score = %d, expected %d", c.score, ObstacleReward)
	}
	if c.Phase() != PhaseRunning {
		t.Errorf("run should continue, got %v", c.Phase())
	}
}

func TestBestSavedOncePerImprovement(t *testing.T) {
	best := &MemoryBest{Value: 10}
	c := New(farLayout(), Deps{Best: best, Rand: constRand(0.5)})
	c.Start()

	// One obstacle leaves the field per tick.
	for i := 0; i < 4; i++ {
		c.obstacles = append(c.obstacles, Obstacle{X: OffField + 1, Height: 4})
		c.Tick()
	}

	if c.score != 20 {
		t.Fatalf("score = %d, expected 20", c.score)
	}
	// 5 and 10 do not beat 10; 15 and 20 do.
	if best.Saves != 2 {
		t.Errorf("SaveBest called %d times, expected 2", best.Saves)
	}
	if best.Value != 20 || c.Best() != 20 {
		t.Errorf("persisted best = %d, controller best = %d, expected 20", best.Value, c.Best())
	}

	// Ticks without scoring never save.
	for i := 0; i < 10; i++ {
		c.Tick()
	}
	if best.Saves != 2 {
		t.Errorf("SaveBest should not be called without a new best, got %d calls", best.Saves)
	}
}

func TestSpeedSteps(t *testing.T) {
	c, _ := newQuietController(t, farLayout())

	c.score = 95
	c.obstacles = append(c.obstacles, Obstacle{X: OffField + 1, Height: 4})
	c.Tick()
	if c.score != 100 || c.speed != 8.5 {
		t.Fatalf("at score 100 speed should be 8.5, got score=%d speed=%f", c.score, c.speed)
	}

	c.score = 195
	c.obstacles = append(c.obstacles, Obstacle{X: OffField + 1, Height: 4})
	c.Tick()
	if c.speed != 9 {
		t.Errorf("at score 200 speed should be 9, got %f", c.speed)
	}

	// Between multiples of 100 the speed holds.
	c.score = 205
	c.Tick()
	if c.speed != 9 {
		t.Errorf("speed should hold between steps, got %f", c.speed)
	}
}

func TestJumpPhysics(t *testing.T) {
	cue := &countingCue{}
	c := New(DefaultLayout(), Deps{Audio: cue, Rand: constRand(0.5)})
	c.Start()

	if !c.Jump() {
		t.Fatal("Jump should start while grounded")
	}
	if !c.player.Airborne || c.player.Velocity != JumpVelocity {
		t.Fatalf("after Jump: airborne=%v velocity=%f", c.player.Airborne, c.player.Velocity)
	}
	if cue.plays != 1 {
		t.Errorf("jump cue played %d times, expected 1", cue.plays)
	}

	// No double jump.
	if c.Jump() {
		t.Error("Jump should be ignored while airborne")
	}
	if c.player.Velocity != JumpVelocity || cue.plays != 1 {
		t.Error("ignored jump must not change velocity or play the cue")
	}

	c.Tick()
	if !near(c.player.Velocity, JumpVelocity-Gravity) {
		t.Errorf("velocity after one tick = %f, expected %f", c.player.Velocity, JumpVelocity-Gravity)
	}
	if want := GroundLevel + JumpVelocity - Gravity; !near(c.player.Y, want) {
		t.Errorf("Y after one tick = %f, expected %f", c.player.Y, want)
	}

	peak := c.player.Y
	for i := 0; i < 100 && c.player.Airborne; i++ {
		c.Tick()
		peak = max(peak, c.player.Y)
	}
	if c.player.Airborne {
		t.Fatal("player should land within 100 ticks")
	}
	if c.player.Y != GroundLevel || c.player.Velocity != 0 {
		t.Errorf("landing should clamp to ground, got Y=%f velocity=%f", c.player.Y, c.player.Velocity)
	}
	if peak <= GroundLevel+JumpVelocity {
		t.Errorf("peak %f is too low", peak)
	}

	if !c.Jump() {
		t.Error("Jump should work again after landing")
	}
}

func TestJumpIgnoredOutsideRun(t *testing.T) {
	cue := &countingCue{}
	c := New(DefaultLayout(), Deps{Audio: cue, Rand: constRand(0.5)})

	if c.Jump() {
		t.Error("Jump should be ignored while idle")
	}
	if c.player.Airborne || c.player.Velocity != 0 || cue.plays != 0 {
		t.Error("ignored jump must not change state")
	}

	c.Start()
	c.obstacles = append(c.obstacles, Obstacle{X: c.layout.PlayerX + BaseSpeed, Height: 6})
	c.Tick()
	if c.Phase() != PhaseGameOver {
		t.Fatalf("expected game over, got %v", c.Phase())
	}
	if c.Jump() {
		t.Error("Jump should be ignored after game over")
	}
}

func TestJumpCueErrorIgnored(t *testing.T) {
	cue := &countingCue{err: errors.New("no audio device")}
	c := New(DefaultLayout(), Deps{Audio: cue, Rand: constRand(0.5)})
	c.Start()

	if !c.Jump() || !c.player.Airborne {
		t.Error("a failing cue must not prevent the jump")
	}
}

func TestCollisionEndsRun(t *testing.T) {
	c, driver := newQuietController(t, DefaultLayout())
	c.obstacles = append(c.obstacles, Obstacle{X: c.layout.PlayerX + BaseSpeed, Height: 6})

	f := c.Tick()

	if f.Phase != PhaseGameOver || c.Phase() != PhaseGameOver {
		t.Fatalf("collision should end the run, got %v", c.Phase())
	}
	if driver.stops != 1 {
		t.Errorf("game over should stop the frame driver, stops=%d", driver.stops)
	}

	ticks := c.ticks
	x := c.obstacles[0].X
	c.Tick()
	if c.ticks != ticks || c.obstacles[0].X != x {
		t.Error("no ticks should be processed after game over")
	}
}

func TestTouchingHitBoxesDoNotCollide(t *testing.T) {
	c, _ := newQuietController(t, DefaultLayout())

	// Player padded box spans x in [58, 102]. An obstacle at x=92 has its
	// padded left edge at 102: touching, not overlapping.
	c.obstacles = append(c.obstacles, Obstacle{X: 92 + BaseSpeed, Height: 4})
	c.Tick()
	if c.Phase() != PhaseRunning {
		t.Fatalf("touching padded boxes must not collide, got %v", c.Phase())
	}

	c.Tick()
	if c.Phase() != PhaseGameOver {
		t.Errorf("overlapping padded boxes must collide, got %v", c.Phase())
	}
}

func TestJumpClearsObstacle(t *testing.T) {
	c, _ := newQuietController(t, DefaultLayout())
	c.obstacles = append(c.obstacles, Obstacle{X: 150, Height: 10})

	c.Jump()
	for i := 0; i < 30; i++ {
		c.Tick()
	}

	if c.Phase() != PhaseRunning {
		t.Errorf("a timely jump should clear the obstacle, got %v", c.Phase())
	}
}

func TestSpawnGateCadence(t *testing.T) {
	g := newSpawnGate()
	var opened []int
	for tick := 1; tick <= 12; tick++ {
		if g.open() {
			opened = append(opened, tick)
		}
		g.advance()
	}

	expected := []int{3, 7, 11}
	if len(opened) != len(expected) {
		t.Fatalf("gate opened on ticks %v, expected %v", opened, expected)
	}
	for i := range expected {
		if opened[i] != expected[i] {
			t.Errorf("gate opened on ticks %v, expected %v", opened, expected)
			break
		}
	}
}

func TestObstacleSpawnRespectsGate(t *testing.T) {
	c := New(DefaultLayout(), Deps{Rand: constRand(0)})
	c.Start()

	for i := 0; i < 8; i++ {
		c.Tick()
	}

	// Every roll succeeds, so only the gate limits spawning.
	if len(c.obstacles) != 2 {
		t.Fatalf("expected 2 obstacles after 8 ticks, got %d", len(c.obstacles))
	}
	for _, o := range c.obstacles {
		if o.Height != minObstacleHeight {
			t.Errorf("obstacle height = %f, expected %f", o.Height, minObstacleHeight)
		}
	}
	// Spawned on tick 7 at the right edge, moved on ticks 7 and 8.
	if got, want := c.obstacles[1].X, c.layout.Width-BaseSpeed*2; got != want {
		t.Errorf("newest obstacle X = %f, expected %f", got, want)
	}
	// A cloud spawns on every tick when the roll is 0.
	if len(c.clouds) != InitialClouds+8 {
		t.Errorf("expected %d clouds, got %d", InitialClouds+8, len(c.clouds))
	}
}

func TestObstacleHeightRange(t *testing.T) {
	c := New(DefaultLayout(), Deps{Rand: rand.New(rand.NewSource(7))})
	c.Start()

	for i := 0; i < 200; i++ {
		c.spawnObstacle()
	}
	for _, o := range c.obstacles {
		if o.Height < 4 || o.Height >= 10 {
			t.Fatalf("obstacle height %f outside [4, 10)", o.Height)
		}
		if o.X != c.layout.Width {
			t.Fatalf("obstacle should spawn at the right edge, got %f", o.X)
		}
	}
}

func TestCloudsParallax(t *testing.T) {
	c, _ := newQuietController(t, DefaultLayout())
	c.clouds = []Cloud{{X: 0, Top: 20, Size: 10}, {X: OffField + 1, Top: 20, Size: 10}}

	c.Tick()

	if len(c.clouds) != 1 {
		t.Fatalf("cloud past the threshold should be removed, got %d clouds", len(c.clouds))
	}
	if want := -BaseSpeed * Parallax; !near(c.clouds[0].X, want) {
		t.Errorf("cloud X = %f, expected %f", c.clouds[0].X, want)
	}
	if c.score != 0 {
		t.Errorf("removing clouds must not score, got %d", c.score)
	}
}

func TestRestartClearsState(t *testing.T) {
	c, driver := newQuietController(t, DefaultLayout())
	c.score = 35
	c.speed = 9
	c.Jump()
	c.Tick()
	c.obstacles = append(c.obstacles, Obstacle{X: c.layout.PlayerX + BaseSpeed, Height: 10})
	c.clouds = append(c.clouds, Cloud{X: -50, Top: 10, Size: 8})
	c.gameOver()

	c.Restart()

	if c.Phase() != PhaseRunning {
		t.Fatalf("Restart should enter running, got %v", c.Phase())
	}
	if len(c.obstacles) != 0 {
		t.Errorf("Restart should clear obstacles, got %d", len(c.obstacles))
	}
	if len(c.clouds) != InitialClouds {
		t.Errorf("Restart should leave only the fresh clouds, got %d", len(c.clouds))
	}
	for _, cl := range c.clouds {
		if cl.X < 0 {
			t.Errorf("old cloud survived restart: %+v", cl)
		}
	}
	if c.player.Airborne || c.player.Velocity != 0 || c.player.Y != GroundLevel {
		t.Errorf("Restart should ground the player, got %+v", c.player)
	}
	if c.score != 0 || c.speed != BaseSpeed || c.ticks != 0 {
		t.Errorf("Restart should reset score/speed/ticks, got %d/%f/%d", c.score, c.speed, c.ticks)
	}
	if driver.starts != 2 {
		t.Errorf("Restart should restart the frame driver, starts=%d", driver.starts)
	}
}

func TestResizeRespawnsClouds(t *testing.T) {
	c, _ := newQuietController(t, DefaultLayout())
	c.score = 25
	c.obstacles = append(c.obstacles, Obstacle{X: 900, Height: 5})
	c.Jump()

	c.Resize(640, 384)

	if len(c.clouds) != InitialClouds {
		t.Fatalf("Resize should respawn %d clouds, got %d", InitialClouds, len(c.clouds))
	}
	for _, cl := range c.clouds {
		if cl.X >= 640 {
			t.Errorf("cloud X=%f outside the new width", cl.X)
		}
	}
	if len(c.obstacles) != 1 || c.obstacles[0].X != 900 {
		t.Error("Resize must not touch obstacles")
	}
	if c.score != 25 || !c.player.Airborne {
		t.Error("Resize must not touch score or player")
	}
	if c.layout.Width != 640 || c.layout.Height != 384 {
		t.Errorf("layout not updated: %+v", c.layout)
	}
}

func TestRunInvariants(t *testing.T) {
	best := &MemoryBest{}
	c := New(DefaultLayout(), Deps{Best: best, Rand: rand.New(rand.NewSource(2024))})
	pilot := DefaultAutopilot()
	c.Start()

	prevScore, prevSpeed := 0, c.speed
	for i := 0; i < 20000 && c.Phase() == PhaseRunning; i++ {
		f := c.Tick()
		if pilot.ShouldJump(f) {
			c.Jump()
		}

		if f.Score < prevScore {
			t.Fatalf("score decreased from %d to %d", prevScore, f.Score)
		}
		if (f.Score-prevScore)%ObstacleReward != 0 {
			t.Fatalf("score changed by %d", f.Score-prevScore)
		}
		if f.Speed < prevSpeed {
			t.Fatalf("speed decreased from %f to %f", prevSpeed, f.Speed)
		}
		if f.Score > 0 && f.Score%SpeedEvery == 0 && f.Speed != speedFor(f.Score) {
			t.Fatalf("speed %f at score %d, expected %f", f.Speed, f.Score, speedFor(f.Score))
		}
		if f.Best < f.Score {
			t.Fatalf("best %d below score %d", f.Best, f.Score)
		}
		if f.Player.Airborne && f.Player.Y <= GroundLevel {
			t.Fatalf("airborne player at or below the ground: %+v", f.Player)
		}
		if !f.Player.Airborne && (f.Player.Y != GroundLevel || f.Player.Velocity != 0) {
			t.Fatalf("grounded player off the ground: %+v", f.Player)
		}
		prevScore, prevSpeed = f.Score, f.Speed
	}

	if c.Score() > 0 && best.Value != c.Score() {
		t.Errorf("persisted best %d should equal the only run's score %d", best.Value, c.Score())
	}
}

func TestDeterminism(t *testing.T) {
	play := func() (int, int) {
		c := New(DefaultLayout(), Deps{Rand: rand.New(rand.NewSource(12345))})
		pilot := DefaultAutopilot()
		c.Start()
		for i := 0; i < 3000 && c.Phase() == PhaseRunning; i++ {
			if pilot.ShouldJump(c.Tick()) {
				c.Jump()
			}
		}
		return c.Score(), c.ticks
	}

	s1, t1 := play()
	s2, t2 := play()
	if s1 != s2 || t1 != t2 {
		t.Errorf("same seed produced different runs: (%d, %d) vs (%d, %d)", s1, t1, s2, t2)
	}
}
