// Package httpapi exposes the command interpreter as a JSON API. Each
// session is a shell.Session kept in an idle-expiring cache.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	cache "github.com/go-pkgz/expirable-cache/v3"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"pipeterm/internal/config"
	"pipeterm/internal/logging"
	"pipeterm/internal/pipeline"
	"pipeterm/internal/rng"
	"pipeterm/internal/shell"
)

const (
	defaultTTL         = 30 * time.Minute
	defaultMaxSessions = 10000
	maxInputBytes      = 4 << 10
)

type Config struct {
	Owner config.Owner
	// TTL is how long an untouched session survives.
	TTL         time.Duration
	MaxSessions int
	Seed        int64
	Clock       func() time.Time
	Logger      *slog.Logger
}

// entry serializes requests on one session.
type entry struct {
	mu sync.Mutex
	sh *shell.Session
}

type Server struct {
	cfg      Config
	log      *slog.Logger
	sessions cache.Cache[string, *entry]
	engine   *gin.Engine
}

type sessionResponse struct {
	ID      string   `json:"id"`
	History []string `json:"history"`
}

type historyResponse struct {
	History []string `json:"history"`
}

type execRequest struct {
	Input string `json:"input"`
}

type execResponse struct {
	Lines  []string `json:"lines"`
	Effect string   `json:"effect"`
	URL    string   `json:"url,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func New(cfg Config) *Server {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = defaultMaxSessions
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.New("http")
	}
	s := &Server{cfg: cfg, log: cfg.Logger}
	s.sessions = cache.NewCache[string, *entry]().
		WithTTL(cfg.TTL).
		WithMaxKeys(cfg.MaxSessions).
		WithLRU().
		WithOnEvicted(func(id string, _ *entry) {
			s.log.Info("session evicted", "id", id)
		})

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	api := r.Group("/api")
	api.POST("/sessions", s.createSession)
	api.POST("/sessions/:id/exec", s.exec)
	api.GET("/sessions/:id/history", s.history)
	api.DELETE("/sessions/:id", s.deleteSession)
	api.GET("/status", s.status)
	s.engine = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Sessions is the number of live sessions, expired ones included until
// the next sweep.
func (s *Server) Sessions() int {
	return s.sessions.Len()
}

// ListenAndServe serves on addr until ctx is cancelled, then drains for up
// to five seconds.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	sweep := time.NewTicker(s.cfg.TTL)
	defer sweep.Stop()
	for {
		select {
		case err := <-errc:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return errors.Wrap(err, "http server")
		case <-sweep.C:
			s.sessions.DeleteExpired()
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return errors.Wrap(srv.Shutdown(shutdownCtx), "shutting down http server")
		}
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (s *Server) createSession(c *gin.Context) {
	id := uuid.NewString()
	sh := shell.New(shell.Options{
		Owner:  s.cfg.Owner,
		Rand:   rng.New(s.cfg.Seed),
		Now:    s.cfg.Clock,
		Logger: s.log.With("session", id),
	})
	s.sessions.Set(id, &entry{sh: sh}, 0)
	s.log.Info("session created", "id", id)
	writeJSON(c, http.StatusCreated, sessionResponse{ID: id, History: sh.History()})
}

func (s *Server) exec(c *gin.Context) {
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	var req execRequest
	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxInputBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeJSON(c, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	e.mu.Lock()
	res := e.sh.Execute(req.Input)
	e.mu.Unlock()

	lines := res.Lines
	if lines == nil {
		lines = []string{}
	}
	writeJSON(c, http.StatusOK, execResponse{Lines: lines, Effect: res.Effect.String(), URL: res.URL})
}

func (s *Server) history(c *gin.Context) {
	e, ok := s.lookup(c)
	if !ok {
		return
	}
	e.mu.Lock()
	h := e.sh.History()
	e.mu.Unlock()
	if h == nil {
		h = []string{}
	}
	writeJSON(c, http.StatusOK, historyResponse{History: h})
}

func (s *Server) deleteSession(c *gin.Context) {
	id := c.Param("id")
	if _, ok := s.sessions.Peek(id); !ok {
		writeJSON(c, http.StatusNotFound, errorResponse{Error: "session not found"})
		return
	}
	s.sessions.Invalidate(id)
	s.log.Info("session deleted", "id", id)
	c.Status(http.StatusNoContent)
}

func (s *Server) status(c *gin.Context) {
	writeJSON(c, http.StatusOK, pipeline.Cards())
}

// lookup finds the session named in the path and refreshes its TTL. It
// writes the 404 itself.
func (s *Server) lookup(c *gin.Context) (*entry, bool) {
	id := c.Param("id")
	e, ok := s.sessions.Get(id)
	if !ok {
		writeJSON(c, http.StatusNotFound, errorResponse{Error: "session not found"})
		return nil, false
	}
	s.sessions.Set(id, e, 0)
	return e, true
}

func writeJSON(c *gin.Context, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(status, "application/json; charset=utf-8", data)
}
