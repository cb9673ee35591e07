package dino

const (
	gateStart = 1
	gatePause = gateStart + 1
)

// spawnGate rate-limits obstacle spawning. The counter must exceed the
// pause before a spawn is allowed, and it wraps to zero on the tick it
// does. From a fresh gate this opens on every fourth tick: 1, 2, 3*, 0, 1, 2, 3*.
type spawnGate struct {
	counter int
	pause   int
}

func newSpawnGate() spawnGate {
	return spawnGate{counter: gateStart, pause: gatePause}
}

// open reports whether a spawn may happen on the current tick.
func (g spawnGate) open() bool {
	return g.counter > g.pause
}

// advance moves the counter once per tick.
func (g *spawnGate) advance() {
	if g.open() {
		g.counter = 0
	} else {
		g.counter++
	}
}
