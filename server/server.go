// Package server serves the diffraction charts over HTTP. Query parameters
// play the role of the two slider controls.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/AnkushinDaniil/diffraction/chart"
	"github.com/AnkushinDaniil/diffraction/entity/format"
	"github.com/AnkushinDaniil/diffraction/entity/parameters"
	"github.com/AnkushinDaniil/diffraction/session"
)

const (
	shutdownTimeout = 5 * time.Second
	revisionHeader  = "X-Revision"
)

var formTemplate = template.Must(template.New("form").Parse(`<form method="get" style="margin:12px;font-family:sans-serif">
<label>Slit Width (m)
<input type="range" name="slit" min="{{.Slit.Min}}" max="{{.Slit.Max}}" step="{{.Slit.Step}}" value="{{.SlitWidth}}" onchange="this.form.submit()">
{{printf "%.1f" .SlitMicrons}} µm</label>
<label style="margin-left:24px">Wavelength (m)
<input type="range" name="wavelength" min="{{.Wave.Min}}" max="{{.Wave.Max}}" step="{{.Wave.Step}}" value="{{.Wavelength}}" onchange="this.form.submit()">
{{printf "%.0f" .WaveNanometers}} nm</label>
<a style="margin-left:24px" href="/data.csv?slit={{.SlitWidth}}&amp;wavelength={{.Wavelength}}">csv</a>
</form>
`))

type formData struct {
	Slit, Wave     parameters.Range
	SlitWidth      float64
	Wavelength     float64
	SlitMicrons    float64
	WaveNanometers float64
}

// Server owns one session. Requests are serialized so that the session sees
// one update at a time.
type Server struct {
	mu       sync.Mutex
	sess     *session.Session
	params   *parameters.Parameters
	handler  http.Handler
	revision int
}

func New(params *parameters.Parameters) (*Server, error) {
	s := &Server{params: params}
	sess, err := session.New(params, session.WithRedraw(s.redraw))
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.sess = sess

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /data.csv", s.handleCSV)
	s.handler = logRequests(mux)
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("Server started")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve: %w", err)
	}
	log.Info("Server stopped")
	return nil
}

// redraw runs under s.mu from inside Session.Update. Every response carries
// the revision it was rendered from.
func (s *Server) redraw() {
	s.revision++
	log.WithField("revision", s.revision).Debug("Charts invalidated")
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	snap, rev, err := s.update(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var page bytes.Buffer
	if err := chart.Render(&page, format.HTML, snap, s.params.Stride); err != nil {
		log.WithError(err).Error("Failed to render page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	var form bytes.Buffer
	if err := formTemplate.Execute(&form, formData{
		Slit:           parameters.SlitWidthRange,
		Wave:           parameters.WavelengthRange,
		SlitWidth:      snap.SlitWidth,
		Wavelength:     snap.Wavelength,
		SlitMicrons:    snap.SlitWidth * 1e6,
		WaveNanometers: snap.Wavelength * 1e9,
	}); err != nil {
		log.WithError(err).Error("Failed to render form")
		http.Error(w, "failed to render form", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set(revisionHeader, strconv.Itoa(rev))
	w.Write(injectAfterBody(page.Bytes(), form.Bytes()))
}

func (s *Server) handleCSV(w http.ResponseWriter, r *http.Request) {
	snap, rev, err := s.update(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var body bytes.Buffer
	if err := chart.Render(&body, format.Csv, snap, s.params.Stride); err != nil {
		log.WithError(err).Error("Failed to render csv")
		http.Error(w, "failed to render csv", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set(revisionHeader, strconv.Itoa(rev))
	w.Header().Set("Content-Disposition", `attachment; filename="diffraction.csv"`)
	w.Write(body.Bytes())
}

// update reads the two controls from the query, snaps them to their ranges
// and recomputes the session. The returned snapshot is never mutated later.
func (s *Server) update(r *http.Request) (*session.Snapshot, int, error) {
	slit, err := queryFloat(r, "slit", s.params.SlitWidth)
	if err != nil {
		return nil, 0, err
	}
	wavelength, err := queryFloat(r, "wavelength", s.params.Wavelength)
	if err != nil {
		return nil, 0, err
	}
	slit = parameters.SlitWidthRange.Snap(slit)
	wavelength = parameters.WavelengthRange.Snap(wavelength)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sess.Update(slit, wavelength); err != nil {
		return nil, 0, err
	}
	return s.sess.Snapshot(), s.revision, nil
}

func queryFloat(r *http.Request, key string, fallback float64) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return v, nil
}

func injectAfterBody(page, fragment []byte) []byte {
	tag := []byte("<body>")
	i := bytes.Index(page, tag)
	if i < 0 {
		return append(fragment, page...)
	}
	i += len(tag)
	out := make([]byte, 0, len(page)+len(fragment))
	out = append(out, page[:i]...)
	out = append(out, fragment...)
	return append(out, page[i:]...)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		next.ServeHTTP(w, r)
		log.WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"query":  r.URL.RawQuery,
			"time":   time.Since(startTime),
		}).Debug("Request served")
	})
}
