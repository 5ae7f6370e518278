// Package tui is a terminal front end: two slider controls drive a session
// whose surfaces are drawn as text.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/AnkushinDaniil/diffraction/entity/parameters"
	"github.com/AnkushinDaniil/diffraction/session"
)

const (
	controlSlit = iota
	controlWavelength
	controlCount
)

const (
	sliderWidth = 40
	bigStep     = 10
)

// shared holds state shared between the Bubble Tea model copies.
type shared struct {
	sess    *session.Session
	profile *ProfileView
	field   *FieldView
}

type Model struct {
	width  int
	height int

	cursor     int
	slitWidth  float64
	wavelength float64
	err        error

	shared *shared
}

// New creates a model and computes the initial view for params.
func New(params *parameters.Parameters) (Model, error) {
	sh := &shared{
		profile: &ProfileView{},
		field:   &FieldView{},
	}
	sess, err := session.New(params,
		session.WithProfileSurface(sh.profile),
		session.WithFieldSurface(sh.field),
	)
	if err != nil {
		return Model{}, fmt.Errorf("failed to create session: %w", err)
	}
	sh.sess = sess

	m := Model{
		width:      80,
		height:     24,
		slitWidth:  parameters.SlitWidthRange.Snap(params.SlitWidth),
		wavelength: parameters.WavelengthRange.Snap(params.Wavelength),
		shared:     sh,
	}
	m = m.apply()
	return m, m.err
}

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, params *parameters.Parameters) error {
	m, err := New(params)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run terminal ui: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c", "esc":
		return m, tea.Quit

	case "up", "k", "shift+tab":
		m.cursor = (m.cursor + controlCount - 1) % controlCount

	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % controlCount

	case "left", "h":
		return m.step(-1), nil

	case "right", "l":
		return m.step(1), nil

	case "shift+left", "H", "pgdown":
		return m.step(-bigStep), nil

	case "shift+right", "L", "pgup":
		return m.step(bigStep), nil

	case "r", "R":
		m.slitWidth = parameters.DefaultSlitWidth
		m.wavelength = parameters.DefaultWavelength
		return m.apply(), nil
	}
	return m, nil
}

func (m Model) step(n int) Model {
	switch m.cursor {
	case controlSlit:
		m.slitWidth = parameters.SlitWidthRange.Increment(m.slitWidth, n)
	case controlWavelength:
		m.wavelength = parameters.WavelengthRange.Increment(m.wavelength, n)
	}
	return m.apply()
}

func (m Model) apply() Model {
	m.err = m.shared.sess.Update(m.slitWidth, m.wavelength)
	if m.err != nil {
		log.WithError(m.err).Error("Update failed")
	}
	return m
}

// SlitWidth returns the slit width currently shown.
func (m Model) SlitWidth() float64 {
	return m.slitWidth
}

// Wavelength returns the wavelength currently shown.
func (m Model) Wavelength() float64 {
	return m.wavelength
}

func (m Model) View() string {
	controlsH := 6
	panelW := max((m.width-4)/2-4, 10)
	panelH := max(m.height-controlsH-4, 4)

	profile := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("1D profile"),
		m.shared.profile.Render(panelW, panelH-1),
	))
	field := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("2D screen"),
		m.shared.field.Render(panelW, panelH-1),
	))

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, profile, field),
		m.controls(),
	)
}

func (m Model) controls() string {
	var b strings.Builder
	b.WriteString(m.slider(controlSlit, "Slit Width", parameters.SlitWidthRange, m.slitWidth,
		fmt.Sprintf("%.1f µm", m.slitWidth*1e6)))
	b.WriteByte('\n')
	b.WriteString(m.slider(controlWavelength, "Wavelength", parameters.WavelengthRange, m.wavelength,
		fmt.Sprintf("%.0f nm", m.wavelength*1e9)))
	b.WriteByte('\n')
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteByte('\n')
	}
	b.WriteString(dimStyle.Render("↑/↓ select  ←/→ step  shift+←/→ ×10  r reset  q quit"))
	return b.String()
}

func (m Model) slider(idx int, name string, r parameters.Range, v float64, value string) string {
	filled := int(r.Fraction(v) * sliderWidth)
	bar := barStyle.Render(strings.Repeat("━", filled)) + "●" +
		dimStyle.Render(strings.Repeat("─", sliderWidth-filled))

	label := labelStyle.Render(fmt.Sprintf("  %-11s", name))
	if idx == m.cursor {
		label = selectedStyle.Render(fmt.Sprintf("▸ %-11s", name))
	}
	return fmt.Sprintf("%s %s %s", label, bar, value)
}
