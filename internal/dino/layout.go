package dino

import (
	"math"

	"github.com/vovakirdan/dinojump/internal/core"
)

// Layout describes the play field and sprite geometry in field units.
// Vertical positions are measured in VH (1/100 of the field height) and
// obstacle and cloud sizes in VMin (1/100 of the shorter field side).
type Layout struct {
	Width         float64 // Visible field width
	Height        float64 // Visible field height
	PlayerX       float64 // Left edge of the player
	PlayerWidth   float64
	PlayerHeight  float64
	ObstacleWidth float64
}

// DefaultLayout returns a 1280x768 field with a 64x64 player.
func DefaultLayout() Layout {
	return Layout{
		Width:         1280,
		Height:        768,
		PlayerX:       48,
		PlayerWidth:   64,
		PlayerHeight:  64,
		ObstacleWidth: 32,
	}
}

// VH returns the number of field units per vertical position unit.
func (l Layout) VH() float64 {
	return l.Height / 100
}

// VMin returns the number of field units per size unit.
func (l Layout) VMin() float64 {
	return math.Min(l.Width, l.Height) / 100
}

// PlayerRect returns the player's bounding box for a vertical position y.
func (l Layout) PlayerRect(y float64) core.RectF {
	return core.NewRectF(l.PlayerX, y*l.VH(), l.PlayerWidth, l.PlayerHeight)
}

// ObstacleRect returns the bounding box of an obstacle standing on the ground.
func (l Layout) ObstacleRect(o Obstacle) core.RectF {
	return core.NewRectF(o.X, GroundLevel*l.VH(), l.ObstacleWidth, o.Height*l.VMin())
}

// CloudRect returns the bounding box of a cloud. Clouds hang from the top
// of the field, so the box is measured down from Height.
func (l Layout) CloudRect(c Cloud) core.RectF {
	w := c.Size * l.VMin()
	h := w * 0.6
	top := l.Height - c.Top*l.VH()
	return core.NewRectF(c.X, top-h, w, h)
}
