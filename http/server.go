package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/normdoc"
	"github.com/google/uuid"
)

// DefaultVersion is reported by the index endpoint.
const DefaultVersion = "1.0.0"

// ShutdownTimeout bounds graceful shutdown of in-flight requests.
const ShutdownTimeout = 10 * time.Second

// RequestIDHeader carries the request identifier in both directions.
const RequestIDHeader = "X-Request-ID"

// Server serves the document query API as JSON.
type Server struct {
	Service normdoc.DocumentService

	// Logger receives access logs and internal errors. Nil discards them.
	Logger *slog.Logger

	// Version is reported by the index endpoint.
	Version string

	// MetricsHandler, if set, is served at /metrics.
	MetricsHandler http.Handler

	// Instrument, if set, wraps the router. It sees the matched pattern
	// in Request.Pattern after the router returns.
	Instrument func(http.Handler) http.Handler

	// Now returns the timestamp reported by the health endpoint.
	Now func() time.Time
}

// NewServer creates a Server for svc.
func NewServer(svc normdoc.DocumentService) *Server {
	return &Server{
		Service: svc,
		Version: DefaultVersion,
		Now:     time.Now,
	}
}

// Handler returns the API router with its middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/types", s.handleTypes)
	mux.HandleFunc("GET /api/documents/{category}", s.handleDocuments)
	mux.HandleFunc("GET /api/document", s.handleDocument)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	if s.MetricsHandler != nil {
		mux.Handle("GET /metrics", s.MetricsHandler)
	}
	mux.HandleFunc("/", s.handleNotFound)

	var h http.Handler = mux
	if s.Instrument != nil {
		h = s.Instrument(h)
	}
	h = s.logRequests(h)
	h = requestID(h)
	h = cors(h)
	return h
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()

	s.logger().Info("server listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		s.logger().Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, indexResponse{
		Message: "normdoc API is running",
		Version: s.Version,
		Endpoints: map[string]string{
			"health":    "/api/health",
			"types":     "/api/types",
			"documents": "/api/documents/<type>",
			"document":  "/api/document?url=<url>",
			"search":    "/api/search?q=<query>",
		},
		Status: statusSuccess,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: now(),
		Service:   "normdoc",
	})
}

func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	cats := s.Service.Categories()
	types := make(map[string]string, len(cats))
	for _, c := range cats {
		types[c.Key] = c.Label
	}
	writeJSON(w, http.StatusOK, typesResponse{
		Types:      types,
		Categories: cats,
		Status:     statusSuccess,
	})
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	p := normdoc.Pagination{
		Page:    intParam(r, "page", normdoc.DefaultPage),
		PerPage: intParam(r, "per_page", normdoc.DefaultPerPage),
	}

	page, err := s.Service.ListDocuments(r.Context(), category, p)
	if err != nil {
		s.writeError(w, r, err, s.unknownCategory(category))
		return
	}
	writeJSON(w, http.StatusOK, documentsResponse{DocumentPage: page, Status: statusSuccess})
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")

	doc, err := s.Service.FindDocument(r.Context(), rawURL)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, documentResponse{DocumentDetail: doc, Status: statusSuccess})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := normdoc.SearchQuery{
		Query:    r.URL.Query().Get("q"),
		Category: r.URL.Query().Get("type"),
	}
	if q.Category == "" {
		q.Category = normdoc.CategoryAll
	}

	res, err := s.Service.SearchDocuments(r.Context(), q)
	if err != nil {
		var available []string
		if q.Category != normdoc.CategoryAll {
			available = s.unknownCategory(q.Category)
		}
		s.writeError(w, r, err, available)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{SearchResult: res, Status: statusSuccess})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, normdoc.Errorf(normdoc.ENOTFOUND, "endpoint not found"), nil)
}

// unknownCategory returns the supported keys when key is not one of them.
func (s *Server) unknownCategory(key string) []string {
	cats := s.Service.Categories()
	if _, ok := normdoc.FindCategory(cats, key); ok {
		return nil
	}
	return normdoc.CategoryKeys(cats)
}

// writeError writes the error envelope. Internal errors are logged and
// reported without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, availableTypes []string) {
	code := normdoc.ErrorCode(err)
	if code == normdoc.EINTERNAL {
		s.logger().Error("internal error",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", w.Header().Get(RequestIDHeader),
			"err", err,
		)
	}
	if code != normdoc.EINVALID {
		availableTypes = nil
	}

	writeJSON(w, ErrorStatusCode(code), errorResponse{
		Status:         statusError,
		Code:           code,
		Error:          normdoc.ErrorMessage(err),
		URL:            normdoc.ErrorURL(err),
		AvailableTypes: availableTypes,
	})
}

// ErrorStatusCode maps an application error code to an HTTP status.
func ErrorStatusCode(code string) int {
	switch code {
	case normdoc.EINVALID:
		return http.StatusBadRequest
	case normdoc.ENOTFOUND:
		return http.StatusNotFound
	case normdoc.EFETCH:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

// intParam parses a query parameter, falling back to def when it is missing
// or not an integer.
func intParam(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// cors allows cross-origin GET requests from any origin.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestID echoes the caller's request ID or assigns a new one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func(begin time.Time) {
			s.logger().Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"request_id", w.Header().Get(RequestIDHeader),
				"duration", time.Since(begin),
			)
		}(time.Now())
		next.ServeHTTP(rec, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

const (
	statusSuccess = "success"
	statusError   = "error"
)

type indexResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
	Status    string            `json:"status"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
}

type typesResponse struct {
	Types      map[string]string  `json:"types"`
	Categories []normdoc.Category `json:"categories"`
	Status     string             `json:"status"`
}

type documentsResponse struct {
	*normdoc.DocumentPage
	Status string `json:"status"`
}

type documentResponse struct {
	*normdoc.DocumentDetail
	Status string `json:"status"`
}

type searchResponse struct {
	*normdoc.SearchResult
	Status string `json:"status"`
}

type errorResponse struct {
	Status         string   `json:"status"`
	Code           string   `json:"code"`
	Error          string   `json:"error"`
	URL            string   `json:"url,omitempty"`
	AvailableTypes []string `json:"available_types,omitempty"`
}
