package chart

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/AnkushinDaniil/diffraction/colormap"
	"github.com/AnkushinDaniil/diffraction/session"
)

const (
	figureWidth  = 14 * vg.Inch
	figureHeight = 6 * vg.Inch
	paletteSize  = 256
)

// fieldGrid adapts a snapshot field to plotter.GridXYZ.
type fieldGrid struct {
	xs, ys []float64
	z      [][]float64
}

func (g fieldGrid) Dims() (c, r int)   { return len(g.xs), len(g.ys) }
func (g fieldGrid) Z(c, r int) float64 { return g.z[r][c] }
func (g fieldGrid) X(c int) float64    { return g.xs[c] }
func (g fieldGrid) Y(r int) float64    { return g.ys[r] }

// RenderPNG draws the profile and the screen map side by side and writes
// the figure to w as PNG.
func RenderPNG(w io.Writer, snap *session.Snapshot, stride int) error {
	profile, err := newProfilePlot(snap)
	if err != nil {
		return fmt.Errorf("failed to create profile plot: %w", err)
	}
	field := newFieldPlot(snap, stride)

	img := vgimg.New(figureWidth, figureHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Centimeter,
		PadTop:    vg.Millimeter * 5,
		PadBottom: vg.Millimeter * 5,
		PadLeft:   vg.Millimeter * 5,
		PadRight:  vg.Millimeter * 5,
	}
	plots := [][]*plot.Plot{{profile, field}}
	canvases := plot.Align(plots, tiles, dc)
	for j := range plots {
		for i := range plots[j] {
			plots[j][i].Draw(canvases[j][i])
		}
	}

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("failed to write png: %w", err)
	}
	return nil
}

func newProfilePlot(snap *session.Snapshot) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = ProfileTitle
	p.X.Label.Text = "Angle (radians)"
	p.Y.Label.Text = "Intensity"
	p.Y.Min, p.Y.Max = 0, 1
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(snap.Profile))
	for i := range snap.Profile {
		xys[i].X = snap.Angles[i]
		xys[i].Y = snap.Profile[i]
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.Color = color.RGBA{B: 0xff, A: 0xff}
	p.Add(line)
	p.Legend.Add("Diffraction Pattern", line)
	return p, nil
}

func newFieldPlot(snap *session.Snapshot, stride int) *plot.Plot {
	p := plot.New()
	p.Title.Text = FieldTitle
	p.X.Label.Text = "Screen X (m)"
	p.Y.Label.Text = "Screen Y (m)"
	p.Add(newFieldHeatMap(snap, stride))
	return p
}

// newFieldHeatMap pins the palette to the full intensity range so colours
// mean the same thing in every renderer.
func newFieldHeatMap(snap *session.Snapshot, stride int) *plotter.HeatMap {
	xs, ys, field := snap.Sampled(stride)
	hm := plotter.NewHeatMap(fieldGrid{xs: xs, ys: ys, z: field}, colormap.Palette(paletteSize))
	hm.Min, hm.Max = 0, 1
	hm.Rasterized = true
	return hm
}
