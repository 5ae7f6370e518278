// Package chart turns session snapshots into HTML, PNG and CSV documents.
package chart

import (
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	log "github.com/sirupsen/logrus"

	"github.com/AnkushinDaniil/diffraction/colormap"
	"github.com/AnkushinDaniil/diffraction/session"
)

const (
	PageTitle    = "Single-Slit Diffraction"
	ProfileTitle = "1D Single-Slit Diffraction Pattern"
	FieldTitle   = "2D Diffraction Intensity Map"
)

// NewPage builds the two-chart page for snap. The heatmap keeps every
// stride-th screen point.
func NewPage(snap *session.Snapshot, stride int) *components.Page {
	startTime := time.Now()
	defer func() {
		log.WithFields(log.Fields{
			"time":   time.Since(startTime),
			"stride": stride,
		}).Debug("Page created")
	}()

	page := components.NewPage()
	page.PageTitle = PageTitle
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		newProfileChart(snap),
		newFieldChart(snap, stride),
	)
	return page
}

// RenderHTML writes the page for snap to w.
func RenderHTML(w io.Writer, snap *session.Snapshot, stride int) error {
	if err := NewPage(snap, stride).Render(w); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}

func subtitle(snap *session.Snapshot) string {
	return fmt.Sprintf("slit width %.1f µm, wavelength %.0f nm", snap.SlitWidth*1e6, snap.Wavelength*1e9)
}

func newProfileChart(snap *session.Snapshot) *charts.Line {
	line := charts.NewLine()

	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#ffffff",
			Width:           "700px",
			Height:          "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    ProfileTitle,
			Subtitle: subtitle(snap),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "slider",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
			AxisPointer: &opts.AxisPointer{
				Type: "cross",
				Snap: opts.Bool(true),
			},
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: opts.Bool(true),
			Top:  "0%",
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  opts.Bool(true),
					Type:  "png",
					Name:  "profile",
					Title: "Save as image",
				},
				DataView: &opts.ToolBoxFeatureDataView{
					Show:  opts.Bool(true),
					Title: "Data view",
					Lang:  []string{"data view", "turn off", "refresh"},
				},
				Restore: &opts.ToolBoxFeatureRestore{
					Show:  opts.Bool(true),
					Title: "refresh",
				},
			},
		}),
		// AXIS
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Angle (radians)",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Intensity",
			Type: "value",
			Show: opts.Bool(true),
			Min:  0,
			Max:  1,
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
	)

	x := make([]string, len(snap.Angles))
	for i, theta := range snap.Angles {
		x[i] = fmt.Sprintf("%.3f", theta)
	}
	line.SetXAxis(x)

	data := make([]opts.LineData, len(snap.Profile))
	for i, v := range snap.Profile {
		data[i] = opts.LineData{Value: v}
	}
	line.AddSeries("Diffraction Pattern", data)
	return line
}

func newFieldChart(snap *session.Snapshot, stride int) *charts.HeatMap {
	xs, ys, field := snap.Sampled(stride)

	xLabels := axisLabels(xs)
	yLabels := axisLabels(ys)

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			BackgroundColor: "#ffffff",
			Width:           "700px",
			Height:          "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    FieldTitle,
			Subtitle: subtitle(snap),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		// AXIS
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Screen X (m)",
			Type: "category",
			Data: xLabels,
			AxisLabel: &opts.AxisLabel{
				Rotate: 90,
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Screen Y (m)",
			Type: "category",
			Data: yLabels,
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        1,
			InRange: &opts.VisualMapInRange{
				Color: colormap.Stops(8),
			},
		}),
	)

	data := make([]opts.HeatMapData, 0, len(xs)*len(ys))
	for r, row := range field {
		for c, v := range row {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{c, r, v}})
		}
	}
	hm.SetXAxis(xLabels).AddSeries("Intensity", data)
	return hm
}

func axisLabels(values []float64) []string {
	labels := make([]string, len(values))
	for i, v := range values {
		labels[i] = fmt.Sprintf("%.4f", v)
	}
	return labels
}
