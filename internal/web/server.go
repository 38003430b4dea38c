// Package web serves the roomcal upload → preview → download UI.
//
// The surface is an upload form, a render endpoint that holds the result in
// memory, and two endpoints that serve the rendered image inline and as an
// attachment. Nothing is written to disk; rendered results live in a bounded
// in-memory store and old entries are evicted.
package web

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hctsai/roomcal/pkg/errors"
	"github.com/hctsai/roomcal/pkg/pipeline"
	"github.com/hctsai/roomcal/pkg/workbook"
)

// maxUploadBytes bounds the accepted workbook size. Booking workbooks are a
// few hundred kilobytes; 16 MiB leaves generous headroom.
const maxUploadBytes = 16 << 20

// Server handles the web UI requests.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	theme  string
	store  *resultStore
}

// NewServer creates a web server around a pipeline runner. defaultTheme is
// used when the form leaves the theme unset.
func NewServer(runner *pipeline.Runner, logger *log.Logger, defaultTheme string) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: runner,
		logger: logger,
		theme:  defaultTheme,
		store:  newResultStore(),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleIndex)
	r.Post("/render", s.handleRender)
	r.Get("/image/{id}", s.handleImage)
	r.Get("/download/{id}", s.handleDownload)

	return r
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("web UI listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start))
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, formData{Theme: s.theme})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.renderError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "cannot read the upload"))
		return
	}

	file, _, err := r.FormFile("workbook")
	if err != nil {
		s.renderError(w, r, errors.New(errors.ErrCodeInvalidInput, "please choose a workbook file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		s.renderError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "cannot read the upload"))
		return
	}

	wb, err := workbook.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	opts := pipeline.Options{
		Sheet:   r.FormValue("sheet"),
		Year:    formInt(r, "year"),
		Month:   formInt(r, "month"),
		Title:   r.FormValue("title"),
		Theme:   r.FormValue("theme"),
		Formats: []string{pipeline.FormatPNG},
	}
	if opts.Theme == "" {
		opts.Theme = s.theme
	}

	result, err := s.runner.ExecuteWorkbook(r.Context(), wb, opts)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	id := s.store.Put(result)
	s.logger.Info("rendered upload",
		"sheet", result.Sheet,
		"days", result.Days,
		"events", result.EventCount)

	s.renderPage(w, http.StatusOK, formData{
		Theme: opts.Theme,
		Preview: &previewData{
			ID:       id,
			Sheet:    result.Sheet,
			Year:     result.Year,
			Month:    result.Month,
			Days:     result.Days,
			Events:   result.EventCount,
			Filename: pipeline.OutputName(result.Sheet, pipeline.FormatPNG),
		},
	})
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	result, ok := s.store.Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(result.Artifacts[pipeline.FormatPNG])
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	result, ok := s.store.Get(chi.URLParam(r, "id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition",
		`attachment; filename="`+pipeline.OutputName(result.Sheet, pipeline.FormatPNG)+`"`)
	_, _ = w.Write(result.Artifacts[pipeline.FormatPNG])
}

// renderError re-renders the form with a user-facing message and a status
// code matching the error category.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsInputError(err):
		status = http.StatusBadRequest
	case errors.IsDataQualityError(err):
		status = http.StatusUnprocessableEntity
	default:
		switch errors.GetCode(err) {
		case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidMonth,
			errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidTheme:
			status = http.StatusBadRequest
		}
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("render failed", "err", err)
	} else {
		s.logger.Debug("render rejected", "err", err)
	}

	s.renderPage(w, status, formData{
		Error: errors.UserMessage(err),
		Year:  r.FormValue("year"),
		Month: r.FormValue("month"),
		Sheet: r.FormValue("sheet"),
		Title: r.FormValue("title"),
		Theme: r.FormValue("theme"),
	})
}

func (s *Server) renderPage(w http.ResponseWriter, status int, data formData) {
	if data.Theme == "" {
		data.Theme = s.theme
	}
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.logger.Error("template failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func formInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.FormValue(key))
	if err != nil {
		return 0
	}
	return v
}
