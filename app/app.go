package app

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/AnkushinDaniil/diffraction/chart"
	"github.com/AnkushinDaniil/diffraction/entity/mode"
	"github.com/AnkushinDaniil/diffraction/entity/parameters"
	"github.com/AnkushinDaniil/diffraction/server"
	"github.com/AnkushinDaniil/diffraction/session"
	"github.com/AnkushinDaniil/diffraction/tui"
	"github.com/AnkushinDaniil/diffraction/window"
)

type App struct {
	Output string
	Params *parameters.Parameters
}

func New(output string, params *parameters.Parameters) *App {
	return &App{
		Output: output,
		Params: params,
	}
}

func (a *App) Run(ctx context.Context) error {
	appTime := time.Now()
	defer func() {
		log.WithField("time", time.Since(appTime)).Debug("App finished")
	}()
	log.WithFields(log.Fields{
		"mode":       a.Params.Mode,
		"format":     a.Params.Format,
		"output":     a.Output,
		"slitWidth":  a.Params.SlitWidth,
		"wavelength": a.Params.Wavelength,
		"samples":    a.Params.Samples,
		"resolution": a.Params.Resolution,
		"screenSize": a.Params.ScreenSize,
	}).Debug("App started")

	if err := a.Params.Validate(); err != nil {
		return fmt.Errorf("invalid parameters: %w", err)
	}

	switch a.Params.Mode {
	case mode.Render:
		return a.render()
	case mode.Terminal:
		return tui.Run(ctx, a.Params)
	case mode.Window:
		return window.Run(a.Params)
	case mode.Serve:
		srv, err := server.New(a.Params)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}
		return srv.ListenAndServe(ctx, a.Params.Addr)
	default:
		return fmt.Errorf("unsupported mode: %v", a.Params.Mode)
	}
}

func (a *App) render() error {
	sess, err := session.New(a.Params)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	if err := sess.Update(a.Params.SlitWidth, a.Params.Wavelength); err != nil {
		return fmt.Errorf("failed to compute intensity: %w", err)
	}
	log.Info("Intensity computed")

	renderTime := time.Now()
	if err := chart.Save(a.Output, a.Params.Format, sess.Snapshot(), a.Params.Stride); err != nil {
		return fmt.Errorf("failed to save chart: %w", err)
	}
	log.WithFields(log.Fields{
		"time":   time.Since(renderTime),
		"output": a.Output,
	}).Info("Chart rendered and saved")

	return nil
}
