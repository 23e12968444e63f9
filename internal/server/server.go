package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/draiml/draiml/internal/confidence"
	"github.com/draiml/draiml/internal/ethics"
	"github.com/draiml/draiml/internal/logging"
	"github.com/draiml/draiml/internal/logic"
	"github.com/draiml/draiml/internal/metrics"
	"github.com/draiml/draiml/internal/recorder"
	"github.com/draiml/draiml/internal/socratic"

	_ "github.com/draiml/draiml/internal/server/docs" // swagger document
)

const (
	defaultMaxBodyBytes = 1 << 20
	defaultMaxSessions  = 1024
)

var (
	// ErrSessionNotFound is returned when a session id is unknown.
	ErrSessionNotFound = errors.New("session not found")

	// ErrMissingDependency is returned by NewServer when a required
	// collaborator is nil.
	ErrMissingDependency = errors.New("server: missing dependency")
)

// Deps are the pipeline components served by the API.
type Deps struct {
	Validator *logic.Validator
	Analyzer  *logic.Analyzer
	Scorer    *confidence.Scorer
	Ethics    *ethics.Evaluator
	Ledger    *recorder.Ledger

	// Metrics is optional; without it /metrics is not mounted.
	Metrics *metrics.Metrics

	// NewSession builds sessions for POST /v1/sessions. Nil builds them over
	// Validator and Ethics.
	NewSession func() *socratic.Session
}

// Server is the HTTP + WebSocket API surface for drAIML.
type Server struct {
	cfg      Config
	deps     Deps
	router   chi.Router
	upgrader websocket.Upgrader
	logger   logging.Logger

	mu       sync.Mutex
	sessions map[string]*sessionSlot
	tick     uint64
}

// sessionSlot tracks when a session was last used, in request order.
type sessionSlot struct {
	sess *socratic.Session
	used uint64
}

// NewServer wires the router over deps.
func NewServer(cfg Config, deps Deps, logger logging.Logger) (*Server, error) {
	switch {
	case deps.Validator == nil:
		return nil, fmt.Errorf("%w: validator", ErrMissingDependency)
	case deps.Analyzer == nil:
		return nil, fmt.Errorf("%w: analyzer", ErrMissingDependency)
	case deps.Scorer == nil:
		return nil, fmt.Errorf("%w: scorer", ErrMissingDependency)
	case deps.Ethics == nil:
		return nil, fmt.Errorf("%w: ethics evaluator", ErrMissingDependency)
	case deps.Ledger == nil:
		return nil, fmt.Errorf("%w: ledger", ErrMissingDependency)
	}
	if logger == nil {
		logger = logging.NewStdoutLogger("server")
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = defaultMaxSessions
	}
	if deps.NewSession == nil {
		deps.NewSession = func() *socratic.Session {
			return socratic.NewSession(deps.Validator, deps.Ethics, logger)
		}
	}

	s := &Server{
		cfg:      cfg,
		deps:     deps,
		router:   chi.NewRouter(),
		logger:   logger,
		sessions: map[string]*sessionSlot{},
		upgrader: websocket.Upgrader{
			// origin policy is enforced by the CORS layer
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	}).Handler)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/responses/validate", s.handleValidateResponse)
		r.Post("/evaluations", s.handleEvaluate)
		r.Post("/conclusions/validate", s.handleValidateConclusion)
		r.Post("/statements/analyze", s.handleAnalyze)
		r.Post("/statements/equivalence", s.handleEquivalence)
		r.Post("/confidence", s.handleConfidence)
		r.Get("/principles", s.handlePrinciples)
		r.Get("/decisions", s.handleListDecisions)

		r.Post("/sessions", s.handleCreateSession)
		r.Get("/sessions/{id}", s.handleGetSession)
		r.Delete("/sessions/{id}", s.handleDeleteSession)
		r.Post("/sessions/{id}/premises", s.handleAddPremise)
		r.Post("/sessions/{id}/conclusion", s.handleSessionConclusion)
	})

	r.Get("/ws/decisions", s.handleDecisionsWS)

	if s.deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.deps.Metrics.Handler())
	}
	if s.cfg.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	}
}

// instrument logs and counts every request by its route pattern.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		if s.deps.Metrics != nil {
			s.deps.Metrics.ObserveRequest(r.Method, route, ww.Status(), time.Since(start))
		}
		s.logger.Debug("http_request",
			logging.Field{Key: "method", Value: r.Method},
			logging.Field{Key: "route", Value: route},
			logging.Field{Key: "status", Value: ww.Status()},
			logging.Field{Key: "request_id", Value: middleware.GetReqID(r.Context())})
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	var h http.Handler = s
	if s.cfg.EnableH2C {
		h = h2c.NewHandler(h, &http2.Server{})
	}
	return &http.Server{
		Addr:              s.cfg.ListenAddr,
		Handler:           h,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      0, // websocket feed is long-lived
	}
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// decode reads a JSON body into v and validates it. On failure it has
// already written the 400 response.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.logger.Warn("decoding request body", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	if err := validate.Struct(v); err != nil {
		s.logger.Warn("validating request body", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// --- sessions ---

func (s *Server) session(id string) (*socratic.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.tick++
	slot.used = s.tick
	return slot.sess, nil
}

// addSession stores sess, evicting the least recently used session when
// the store is full. It returns the evicted id, if any.
func (s *Server) addSession(sess *socratic.Session) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var evicted string
	if len(s.sessions) >= s.cfg.MaxSessions {
		var oldest uint64
		for id, slot := range s.sessions {
			if evicted == "" || slot.used < oldest {
				evicted, oldest = id, slot.used
			}
		}
		delete(s.sessions, evicted)
	}
	s.tick++
	s.sessions[sess.ID] = &sessionSlot{sess: sess, used: s.tick}
	return evicted
}

func (s *Server) removeSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func sessionResponse(sess *socratic.Session) SessionResponse {
	return SessionResponse{
		ID:          sess.ID,
		CreatedAt:   sess.CreatedAt,
		Premises:    sess.Premises(),
		Rejected:    sess.Rejected(),
		Conclusions: sess.Conclusions(),
	}
}

// sessionParam resolves {id} or writes a 404.
func (s *Server) sessionParam(w http.ResponseWriter, r *http.Request) (*socratic.Session, bool) {
	sess, err := s.session(chi.URLParam(r, "id"))
	if err != nil {
		s.logger.Warn("resolving session", logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusNotFound, ErrSessionNotFound.Error())
		return nil, false
	}
	return sess, true
}

func parseLimit(r *http.Request, def int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		return v
	}
	return def
}
