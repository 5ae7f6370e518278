package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/AnkushinDaniil/diffraction/colormap"
	"github.com/AnkushinDaniil/diffraction/diffraction"
)

// ProfileView keeps the latest profile and draws it as a column plot.
type ProfileView struct {
	values []float64
}

func (v *ProfileView) SetProfile(_, values []float64) {
	v.values = values
}

// Render draws the profile into a width x height block of text. Each column
// shows the peak of the samples that fall into it.
func (v *ProfileView) Render(width, height int) string {
	if width < 1 || height < 1 || len(v.values) == 0 {
		return ""
	}
	peaks := make([]float64, width)
	for i, val := range v.values {
		c := i * width / len(v.values)
		if val > peaks[c] {
			peaks[c] = val
		}
	}

	var b strings.Builder
	for row := 0; row < height; row++ {
		// top row covers (height-1)/height .. 1
		threshold := float64(height-1-row) / float64(height)
		for _, p := range peaks {
			switch {
			case p > threshold+0.5/float64(height):
				b.WriteRune('█')
			case p > threshold:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		if row < height-1 {
			b.WriteByte('\n')
		}
	}
	return profileStyle.Render(b.String())
}

// FieldView keeps the latest screen map and draws it with hot-coloured cells.
type FieldView struct {
	field [][]float64
}

func (v *FieldView) SetField(_ *diffraction.Grid, field [][]float64) {
	v.field = field
}

// Render samples the field onto width x height cells, row 0 of the field at
// the bottom.
func (v *FieldView) Render(width, height int) string {
	rows := len(v.field)
	if width < 1 || height < 1 || rows == 0 || len(v.field[0]) == 0 {
		return ""
	}
	cols := len(v.field[0])

	lines := make([]string, height)
	for y := 0; y < height; y++ {
		r := (height - 1 - y) * (rows - 1) / max(height-1, 1)
		var b strings.Builder
		for x := 0; x < width; x++ {
			c := x * (cols - 1) / max(width-1, 1)
			cell := lipgloss.NewStyle().Background(lipgloss.Color(colormap.Hex(v.field[r][c])))
			b.WriteString(cell.Render(" "))
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}
