// Package window shows the diffraction pattern in a desktop window.
package window

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	log "github.com/sirupsen/logrus"

	"github.com/AnkushinDaniil/diffraction/colormap"
	"github.com/AnkushinDaniil/diffraction/diffraction"
	"github.com/AnkushinDaniil/diffraction/entity/parameters"
	"github.com/AnkushinDaniil/diffraction/session"
)

const (
	screenWidth  = 1000
	screenHeight = 560
	margin       = 20
	mapSize      = 440
	bigStep      = 10
)

var (
	background  = color.RGBA{0x10, 0x10, 0x10, 0xff}
	axisColor   = color.RGBA{0x60, 0x60, 0x60, 0xff}
	profileBlue = color.RGBA{0x40, 0x80, 0xff, 0xff}
)

// fieldImage is the FieldSurface of the window: the field is copied into an
// RGBA buffer and uploaded on the next Draw.
type fieldImage struct {
	pix   []byte
	w, h  int
	dirty bool
}

func (f *fieldImage) SetField(grid *diffraction.Grid, field [][]float64) {
	f.h = grid.Rows()
	f.w = grid.Cols()
	if len(f.pix) != 4*f.w*f.h {
		f.pix = make([]byte, 4*f.w*f.h)
	}
	colormap.FillRGBA(f.pix, 4*f.w, field)
	f.dirty = true
}

// profileLine is the ProfileSurface of the window.
type profileLine struct {
	values []float64
}

func (p *profileLine) SetProfile(_, values []float64) {
	p.values = values
}

type Game struct {
	sess    *session.Session
	field   *fieldImage
	profile *profileLine
	image   *ebiten.Image

	cursor     int
	slitWidth  float64
	wavelength float64
	status     string
}

func newGame(params *parameters.Parameters) (*Game, error) {
	g := &Game{
		field:      &fieldImage{},
		profile:    &profileLine{},
		slitWidth:  parameters.SlitWidthRange.Snap(params.SlitWidth),
		wavelength: parameters.WavelengthRange.Snap(params.Wavelength),
	}
	sess, err := session.New(params,
		session.WithProfileSurface(g.profile),
		session.WithFieldSurface(g.field),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	g.sess = sess
	if err := g.apply(); err != nil {
		return nil, err
	}
	return g, nil
}

// Run opens the window and blocks until it is closed.
func Run(params *parameters.Parameters) error {
	g, err := newGame(params)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Single-Slit Diffraction")
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("failed to run window: %w", err)
	}
	return nil
}

func (g *Game) apply() error {
	if err := g.sess.Update(g.slitWidth, g.wavelength); err != nil {
		g.status = err.Error()
		return err
	}
	g.status = ""
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		g.cursor = 1 - g.cursor
	}

	n := 0
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		n = -1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		n = 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		n *= bigStep
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.slitWidth = parameters.DefaultSlitWidth
		g.wavelength = parameters.DefaultWavelength
		return g.logged(g.apply())
	}
	if n == 0 {
		return nil
	}

	if g.cursor == 0 {
		g.slitWidth = parameters.SlitWidthRange.Increment(g.slitWidth, n)
	} else {
		g.wavelength = parameters.WavelengthRange.Increment(g.wavelength, n)
	}
	return g.logged(g.apply())
}

// logged keeps the window open on a failed update.
func (g *Game) logged(err error) error {
	if err != nil {
		log.WithError(err).Error("Update failed")
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	if g.field.dirty {
		if g.image == nil || g.image.Bounds().Dx() != g.field.w || g.image.Bounds().Dy() != g.field.h {
			g.image = ebiten.NewImage(g.field.w, g.field.h)
		}
		g.image.WritePixels(g.field.pix)
		g.field.dirty = false
	}
	if g.image != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(mapSize/float64(g.field.w), mapSize/float64(g.field.h))
		op.GeoM.Translate(screenWidth-margin-mapSize, margin)
		screen.DrawImage(g.image, op)
	}

	g.drawProfile(screen)

	selected := [2]string{" ", " "}
	selected[g.cursor] = ">"
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"%s Slit Width  %.1f um\n%s Wavelength  %.0f nm\narrows: select/step  shift: x10  r: reset  q: quit\n%s",
		selected[0], g.slitWidth*1e6, selected[1], g.wavelength*1e9, g.status,
	), margin, screenHeight-margin-64)
}

func (g *Game) drawProfile(screen *ebiten.Image) {
	const (
		left   = margin
		top    = margin
		width  = screenWidth - 3*margin - mapSize
		height = mapSize
	)
	vector.StrokeRect(screen, left, top, width, height, 1, axisColor, false)

	n := len(g.profile.values)
	if n < 2 {
		return
	}
	x0 := float32(left)
	y0 := float32(top + height - g.profile.values[0]*height)
	for i := 1; i < n; i++ {
		x1 := float32(left + float64(i)*width/float64(n-1))
		y1 := float32(top + height - g.profile.values[i]*height)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1.5, profileBlue, true)
		x0, y0 = x1, y1
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return screenWidth, screenHeight
}
