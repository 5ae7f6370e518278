package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AnkushinDaniil/diffraction/app"
	"github.com/AnkushinDaniil/diffraction/entity/format"
	"github.com/AnkushinDaniil/diffraction/entity/mode"
	"github.com/AnkushinDaniil/diffraction/entity/parameters"
)

var (
	params = parameters.Default()

	flagMode     string
	flagFormat   string
	flagOutput   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd leaves error reporting to cobra: run returns errors without
// logging them, so each failure is printed once.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "diffraction",
		Short: "Single-slit diffraction intensity explorer",
		Long: `Computes the single-slit Fraunhofer diffraction intensity as a 1D angular
profile and a 2D screen map.

Modes:
  render    write both plots to a file (html, png or csv)
  terminal  interactive sliders in the terminal
  window    interactive sliders in a desktop window
  serve     HTTP server with sliders in the browser`,
		SilenceUsage: true,
		RunE:         run,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&flagMode, "mode", "m", "render", "render, terminal, window or serve")
	flags.StringVarP(&flagFormat, "format", "f", "html", "output format for render mode: html, png or csv")
	flags.StringVarP(&flagOutput, "output", "o", "", "output file (default diffraction.<format>)")
	flags.Float64Var(&params.SlitWidth, "slit-width", params.SlitWidth, "slit width in meters")
	flags.Float64Var(&params.Wavelength, "wavelength", params.Wavelength, "wavelength in meters")
	flags.IntVar(&params.Samples, "samples", params.Samples, "number of angles over [-π/2, π/2]")
	flags.Float64Var(&params.ScreenSize, "screen-size", params.ScreenSize, "half width of the screen in meters")
	flags.IntVar(&params.Resolution, "resolution", params.Resolution, "screen points per axis")
	flags.IntVar(&params.Stride, "stride", params.Stride, "keep every n-th screen point in charts")
	flags.StringVar(&params.Addr, "addr", params.Addr, "listen address for serve mode")
	flags.StringVar(&flagLogLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.StringVar(&flagLogFile, "log-file", "", "write logs to this file")
	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	var err error
	if params.Mode, err = mode.UnmarshalText(flagMode); err != nil {
		return err
	}
	if params.Format, err = format.UnmarshalText(flagFormat); err != nil {
		return err
	}
	if flagOutput == "" {
		flagOutput = "diffraction" + params.Format.Ext()
	}

	closeLog, err := setupLogging(params.Mode)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.New(flagOutput, params).Run(ctx)
}

// setupLogging keeps interactive modes from writing over their own screen:
// without --log-file their logs are discarded.
func setupLogging(m mode.Mode) (func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if flagLogFile == "" {
		if m.Interactive() {
			log.SetOutput(io.Discard)
		}
		return func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return func() { f.Close() }, nil
}
