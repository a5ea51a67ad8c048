package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"wsparse/internal/model"
	"wsparse/internal/warpscript"
)

//go:embed help.md
var helpMD string

// HelpText returns the embedded directive guide.
func HelpText() string {
	return strings.ReplaceAll(helpMD, "{{VERSION}}", model.Version)
}

// Server exposes the analyzer over HTTP.
type Server struct {
	analyzer *warpscript.Analyzer
	logger   *zap.Logger
	maxBody  int64
	mux      *http.ServeMux
}

// NewServer wires the API routes.
func NewServer(analyzer *warpscript.Analyzer, logger *zap.Logger, maxBody int64) *Server {
	s := &Server{
		analyzer: analyzer,
		logger:   logger,
		maxBody:  maxBody,
		mux:      http.NewServeMux(),
	}

	s.mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	s.mux.HandleFunc("POST /api/doc", s.handleDoc)
	s.mux.HandleFunc("POST /api/plan", s.handlePlan)
	s.mux.HandleFunc("POST /api/line-context", s.handleLineContext)
	s.mux.HandleFunc("GET /api/completion-kind", s.handleCompletionKind)
	s.mux.HandleFunc("GET /api/help", s.handleHelp)
	s.mux.HandleFunc("GET /api/version", s.handleVersion)

	return s
}

// ServeHTTP logs each request and dispatches it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.mux.ServeHTTP(w, r)
	s.logger.Debug("Request served",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Duration("took", time.Since(start)))
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("Web API listening", zap.String("addr", "http://"+addr))

	select {
	case err := <-errCh:
		return errors.Wrap(err, "serving web API")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutting down web API")
	}
	<-errCh
	return nil
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	src, ok := s.readScript(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.analyzer.Analyze(src))
}

func (s *Server) handleDoc(w http.ResponseWriter, r *http.Request) {
	line, err1 := strconv.Atoi(r.URL.Query().Get("line"))
	col, err2 := strconv.Atoi(r.URL.Query().Get("col"))
	if err1 != nil || err2 != nil {
		writeError(w, http.StatusBadRequest, "line and col are required")
		return
	}

	src, ok := s.readScript(w, r)
	if !ok {
		return
	}

	word := warpscript.WordAt(src, line, col)
	if word == "" {
		writeError(w, http.StatusNotFound, "no word at position")
		return
	}
	writeJSON(w, http.StatusOK, s.analyzer.DocParams(src, word))
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	tab := model.ResultsTab
	if v := r.URL.Query().Get("tab"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid tab")
			return
		}
		tab = n
	}

	src, ok := s.readScript(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.analyzer.PlanExecution(src, tab))
}

func (s *Server) handleLineContext(w http.ResponseWriter, r *http.Request) {
	lineNum, err := strconv.Atoi(r.URL.Query().Get("line"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid line number")
		return
	}

	src, ok := s.readScript(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, model.GetLineContext(src, lineNum))
}

func (s *Server) handleCompletionKind(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	var tags []string
	if raw := r.URL.Query().Get("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"name": name,
		"kind": string(warpscript.ClassifyCompletion(tags, name)),
	})
}

func (s *Server) handleHelp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/markdown")
	io.WriteString(w, HelpText())
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": model.Version})
}

// readScript reads the request body as a script, answering the request
// itself when that fails.
func (s *Server) readScript(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "script too large")
			return "", false
		}
		s.logger.Warn("Reading request body failed", zap.Error(err))
		writeError(w, http.StatusBadRequest, "unreadable body")
		return "", false
	}
	return string(body), true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
