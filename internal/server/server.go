// Package server exposes proposal rendering over HTTP.
//
// Routes:
//
//	POST /proposals/pdf   raw proposal record (JSON), normalized then rendered
//	POST /documents/pdf   normalized proposal document (JSON)
//	GET  /healthz         liveness probe
//
// The PDF is returned inline when the query carries preview=true and as an
// attachment named after the proposal otherwise.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	proposalpdf "github.com/porticus-lab/go-proposal-pdf"
	"github.com/porticus-lab/go-proposal-pdf/internal/config"
	"github.com/porticus-lab/go-proposal-pdf/internal/normalize"
	"github.com/porticus-lab/go-proposal-pdf/proposal"
)

// Renderer renders one proposal document.
type Renderer interface {
	Render(ctx context.Context, doc *proposal.Document, opts *proposalpdf.RenderOptions) (*proposalpdf.Result, error)
}

// Server is the HTTP front end of a Renderer.
type Server struct {
	renderer   Renderer
	normalizer *normalize.Normalizer
	cfg        config.ServerConfig
	log        *zap.Logger
	router     *mux.Router
}

// New returns a Server. A nil normalizer uses the defaults of
// [normalize.New]; a nil logger discards logs.
func New(r Renderer, n *normalize.Normalizer, cfg config.ServerConfig, log *zap.Logger) *Server {
	if n == nil {
		n = normalize.New()
	}
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		renderer:   r,
		normalizer: n,
		cfg:        cfg,
		log:        log,
		router:     mux.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/proposals/pdf", s.handleRecord).Methods(http.MethodPost)
	s.router.HandleFunc("/documents/pdf", s.handleDocument).Methods(http.MethodPost)
	s.router.Use(s.requestID, s.logging, s.recovery)
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on cfg.Addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	rec, err := normalize.ParseJSON(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	doc, err := s.normalizer.Normalize(rec)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.render(w, r, doc)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}
	var doc *proposal.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("server: decoding document: %w", err))
		return
	}
	s.render(w, r, doc)
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	var src io.Reader = r.Body
	if s.cfg.MaxBodyBytes > 0 {
		src = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}
	body, err := io.ReadAll(src)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
			return nil, false
		}
		writeError(w, http.StatusBadRequest, err)
		return nil, false
	}
	return body, true
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, doc *proposal.Document) {
	preview, _ := normalize.ToBool(r.URL.Query().Get("preview"))

	res, err := s.renderer.Render(r.Context(), doc, &proposalpdf.RenderOptions{Preview: preview})
	switch {
	case errors.Is(err, proposalpdf.ErrNilDocument):
		writeError(w, http.StatusBadRequest, err)
		return
	case err != nil:
		s.log.Error("render failed", zap.String("request_id", requestIDFrom(r.Context())), zap.Error(err))
		writeError(w, http.StatusInternalServerError, proposalpdf.ErrRender)
		return
	}

	disposition := "attachment"
	if preview {
		disposition = "inline"
	}
	h := w.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": res.FileName()}))
	h.Set("Content-Length", strconv.Itoa(res.Len()))
	h.Set("X-Render-ID", res.ID())
	h.Set("X-Page-Count", strconv.Itoa(res.PageCount()))
	w.WriteHeader(http.StatusOK)
	res.WriteTo(w)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

type ctxKey struct{}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// requestID tags each request with an ID, reusing X-Request-ID when given.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// statusWriter captures the status code and size of a response.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written int64
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if sw.status == 0 {
		sw.status = http.StatusOK
	}
	n, err := sw.ResponseWriter.Write(b)
	sw.written += int64(n)
	return n, err
}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		s.log.Info("request",
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", sw.status),
			zap.Int64("bytes", sw.written),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func (s *Server) recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				s.log.Error("handler panic",
					zap.String("request_id", requestIDFrom(r.Context())),
					zap.Any("panic", v),
					zap.Stack("stack"))
				writeError(w, http.StatusInternalServerError, errors.New("internal error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
