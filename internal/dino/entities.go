package dino

// Simulation constants. The speed rule and spawn rates are fixed.
const (
	BaseSpeed        = 8.0   // Horizontal scroll per tick at score 0
	SpeedStep        = 0.5   // Speed added per SpeedEvery points
	SpeedEvery       = 100   // Score interval between speed steps
	Gravity          = 0.9   // Velocity lost per airborne tick
	JumpVelocity     = 12.0  // Upward velocity at takeoff
	GroundLevel      = 5.0   // Vertical position of the ground, in VH
	ObstacleChance   = 0.02  // Per-tick obstacle spawn probability
	CloudChance      = 0.008 // Per-tick cloud spawn probability
	OffField         = -100  // Entities with X below this are removed
	ObstacleReward   = 5     // Points for each obstacle that leaves the field
	CollisionPadding = 10    // Hit boxes shrink by this much on every side
	Parallax         = 0.3   // Cloud speed relative to obstacles
	InitialClouds    = 5     // Clouds spawned on start and resize

	minObstacleHeight = 4.0
	obstacleHeightVar = 6.0
	minCloudSize      = 8.0
	cloudSizeVar      = 12.0
	minCloudTop       = 10.0
	cloudTopVar       = 40.0
)

// Player is the runner. It is either airborne or grounded.
type Player struct {
	Y        float64 // Vertical position in VH, GroundLevel when grounded
	Velocity float64 // Positive is up
	Airborne bool
}

func groundedPlayer() Player {
	return Player{Y: GroundLevel}
}

// Obstacle is a cactus moving towards the player.
type Obstacle struct {
	X      float64 // Left edge in field units
	Height float64 // In VMin, within [4, 10)
}

// Cloud is a background decoration. It never collides.
type Cloud struct {
	X    float64 // Left edge in field units
	Top  float64 // Distance from the top of the field in VH
	Size float64 // Width in VMin; height is 60% of the width
}

// Phase is the state of the game-over state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Frame is a read-only snapshot of everything the presentation layer draws.
type Frame struct {
	Phase     Phase
	Player    Player
	Obstacles []Obstacle
	Clouds    []Cloud
	Score     int
	Best      int
	Speed     float64
	Ticks     int // Ticks since the current run started
	Layout    Layout
}

// speedFor returns the scroll speed for a score.
func speedFor(score int) float64 {
	return BaseSpeed + float64(score/SpeedEvery)*SpeedStep
}
