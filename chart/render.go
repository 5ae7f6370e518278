package chart

import (
	"fmt"
	"io"
	"os"

	"github.com/AnkushinDaniil/diffraction/entity/format"
	"github.com/AnkushinDaniil/diffraction/session"
)

// Render writes snap to w in the requested format.
func Render(w io.Writer, f format.Format, snap *session.Snapshot, stride int) error {
	if snap == nil {
		return fmt.Errorf("nothing to render: session has no data")
	}
	switch f {
	case format.HTML:
		return RenderHTML(w, snap, stride)
	case format.Png:
		return RenderPNG(w, snap, stride)
	case format.Csv:
		return RenderCSV(w, snap, stride)
	default:
		return fmt.Errorf("unsupported format: %v", f)
	}
}

// Save renders snap into the file at path, replacing it.
func Save(path string, f format.Format, snap *session.Snapshot, stride int) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	return Render(file, f, snap, stride)
}
