package dino

// Autopilot decides when to jump by looking at the nearest obstacle ahead.
type Autopilot struct {
	// LeadTicks is how many ticks of travel ahead of the player an
	// obstacle may be when the jump starts.
	LeadTicks float64
}

// DefaultAutopilot returns an autopilot tuned for the default layout.
func DefaultAutopilot() Autopilot {
	return Autopilot{LeadTicks: 6}
}

// ShouldJump reports whether a jump should start on this frame.
func (a Autopilot) ShouldJump(f Frame) bool {
	if f.Phase != PhaseRunning || f.Player.Airborne {
		return false
	}
	gap, ok := nearestGap(f)
	if !ok {
		return false
	}
	return gap <= f.Speed*a.LeadTicks
}

// nearestGap returns the horizontal distance from the player's right edge
// to the closest obstacle that has not passed the player yet.
func nearestGap(f Frame) (float64, bool) {
	front := f.Layout.PlayerX + f.Layout.PlayerWidth
	best, found := 0.0, false
	for _, o := range f.Obstacles {
		if o.X+f.Layout.ObstacleWidth < f.Layout.PlayerX {
			continue
		}
		gap := o.X - front
		if !found || gap < best {
			best, found = gap, true
		}
	}
	return best, found
}
