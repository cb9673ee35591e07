package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dinojump/internal/core"
	"github.com/vovakirdan/dinojump/internal/dino"
)

// Visual characters for rendering
const (
	DinoBody   = '█'
	DinoHead   = '◆'
	DinoLeg1   = '╱'
	DinoLeg2   = '╲'
	CactusChar = '▓'
	CloudChar  = '░'
	GroundChar = '═'
)

// legPeriod is the number of ticks each running-leg pose is held.
const legPeriod = 5

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorBrightWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorBrightGreen: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// projection maps field units onto screen cells. Field y grows upwards,
// screen rows grow downwards.
type projection struct {
	cellW, cellH float64
	cols, rows   int
}

func newProjection(l dino.Layout, cols, rows int) projection {
	p := projection{cellW: 1, cellH: 1, cols: cols, rows: rows}
	if cols > 0 && l.Width > 0 {
		p.cellW = l.Width / float64(cols)
	}
	if rows > 0 && l.Height > 0 {
		p.cellH = l.Height / float64(rows)
	}
	return p
}

// cells returns the screen cells covered by r.
func (p projection) cells(r core.RectF) core.Rect {
	x0 := int(math.Floor(r.X / p.cellW))
	x1 := int(math.Ceil(r.Right() / p.cellW))
	top := p.rows - int(math.Ceil(r.Top()/p.cellH))
	bottom := p.rows - int(math.Floor(r.Y/p.cellH))
	return core.NewRect(x0, top, x1-x0, bottom-top)
}

// groundRow is the row just below anything standing on the ground.
func (p projection) groundRow(l dino.Layout) int {
	row := p.rows - int(math.Floor(dino.GroundLevel*l.VH()/p.cellH))
	return core.Clamp(row, 0, p.rows-1)
}

// DrawFrame draws a game frame onto dst, sized to the whole screen.
func DrawFrame(dst *core.Screen, f dino.Frame) {
	dst.Clear()
	p := newProjection(f.Layout, dst.Width(), dst.Height())

	for _, c := range f.Clouds {
		dst.FillRect(p.cells(f.Layout.CloudRect(c)), CloudChar, core.ColorGray)
	}

	dst.DrawHLine(0, p.groundRow(f.Layout), dst.Width(), GroundChar, core.ColorYellow)

	for _, o := range f.Obstacles {
		dst.FillRect(p.cells(f.Layout.ObstacleRect(o)), CactusChar, core.ColorGreen)
	}

	drawDino(dst, p.cells(f.Layout.PlayerRect(f.Player.Y)), f)
	drawHUD(dst, f)

	switch f.Phase {
	case dino.PhaseIdle:
		drawCenteredMessage(dst, "DINO JUMP", "Enter to start  |  Space to jump")
	case dino.PhaseGameOver:
		drawCenteredMessage(dst,
			"GAME OVER",
			fmt.Sprintf("Score: %d  |  Best: %d", f.Score, f.Best),
			"Enter or R to restart  |  Q to quit",
		)
	}
}

// drawDino renders the player inside its cell box, anchored bottom-left.
//
//	 ◆█
//	███
//	╱ ╲
func drawDino(dst *core.Screen, box core.Rect, f dino.Frame) {
	x := box.X
	legs := box.Bottom() - 1
	c := core.ColorBrightWhite

	dst.SetColored(x+1, legs-2, DinoHead, c)
	dst.SetColored(x+2, legs-2, DinoBody, c)

	dst.DrawHLine(x, legs-1, 3, DinoBody, c)

	switch {
	case f.Player.Airborne:
		dst.SetColored(x, legs, DinoLeg1, c)
		dst.SetColored(x+1, legs, DinoLeg2, c)
	case (f.Ticks/legPeriod)%2 == 0:
		dst.SetColored(x, legs, DinoLeg1, c)
		dst.SetColored(x+2, legs, DinoLeg2, c)
	default:
		dst.SetColored(x+1, legs, DinoLeg1, c)
		dst.SetColored(x+2, legs, DinoLeg2, c)
	}
}

func drawHUD(dst *core.Screen, f dino.Frame) {
	scoreText := fmt.Sprintf(" Score: %d ", f.Score)
	dst.DrawTextColored(2, 0, scoreText, core.ColorBrightWhite)

	bestText := fmt.Sprintf(" Best: %d ", f.Best)
	dst.DrawTextColored(dst.Width()-len(bestText)-2, 0, bestText, core.ColorYellow)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := 4 + len(lines)
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	titleX := box.X + (boxW-len([]rune(title)))/2
	dst.DrawTextColored(titleX, box.Y+1, title, core.ColorRed)

	for i, l := range lines {
		x := box.X + (boxW-len([]rune(l)))/2
		dst.DrawText(x, box.Y+3+i, l)
	}
}
