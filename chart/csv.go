package chart

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/AnkushinDaniil/diffraction/session"
)

// RenderCSV writes the profile as "angle,intensity" rows followed by the
// sampled screen map as "x,y,intensity" rows. Each section starts with its
// own header.
func RenderCSV(w io.Writer, snap *session.Snapshot, stride int) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"angle", "intensity"}); err != nil {
		return fmt.Errorf("failed to write profile header: %w", err)
	}
	for i, v := range snap.Profile {
		if err := cw.Write([]string{formatFloat(snap.Angles[i]), formatFloat(v)}); err != nil {
			return fmt.Errorf("failed to write profile row: %w", err)
		}
	}

	xs, ys, field := snap.Sampled(stride)
	if err := cw.Write([]string{"x", "y", "intensity"}); err != nil {
		return fmt.Errorf("failed to write field header: %w", err)
	}
	for r, row := range field {
		for c, v := range row {
			if err := cw.Write([]string{formatFloat(xs[c]), formatFloat(ys[r]), formatFloat(v)}); err != nil {
				return fmt.Errorf("failed to write field row: %w", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
