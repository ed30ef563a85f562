// Package web serves Connect Four to a browser: a static page, a JSON API and
// a websocket that pushes engine notifications.
package web

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"connectfour-local/config"
	"connectfour-local/engine"
	"connectfour-local/engine/local"
	"connectfour-local/types"
)

//go:embed static
var staticFiles embed.FS

// Idle sessions are dropped after maxIdle, checked every pruneInterval.
const (
	maxIdle       = 30 * time.Minute
	pruneInterval = time.Minute
)

type Server struct {
	store  *MemoryStore
	hub    *Hub
	names  engine.GameConfig
	addr   string
	log    zerolog.Logger
	router *gin.Engine
}

func NewServer(cfg config.WebConfig, names engine.GameConfig, log zerolog.Logger) *Server {
	s := &Server{
		store: NewMemoryStore(),
		hub:   NewHub(cfg.AllowedOrigins, log),
		names: names,
		addr:  cfg.Addr,
		log:   log.With().Str("component", "web").Logger(),
	}
	s.router = s.newRouter()
	return s
}

func (s *Server) newRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log))

	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	r.GET("/", func(c *gin.Context) {
		c.FileFromFS("/", http.FS(static))
	})
	r.StaticFS("/static", http.FS(static))

	api := r.Group("/api/sessions")
	api.POST("", s.createSession)
	api.GET("/:id", s.getSession)
	api.DELETE("/:id", s.deleteSession)
	api.GET("/:id/preview/:column", s.preview)
	api.POST("/:id/moves", s.move)
	api.POST("/:id/reset", s.reset)

	// WebSocket for live updates
	r.GET("/ws/:id", s.handleWS)

	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// newEngine builds a session engine whose notifications go to the hub.
func (s *Server) newEngine(sessionID string) engine.GameEngine {
	eng := local.NewEngine(s.names, s.log.With().Str("session", sessionID).Logger())
	eng.OnPiecePlaced(func(p types.Placement) {
		s.hub.Broadcast(sessionID, ActionPiecePlaced, p)
	})
	eng.OnGameWon(func(winner types.Player) {
		s.hub.Broadcast(sessionID, ActionGameWon, gin.H{
			"winner":  winner,
			"message": types.Phase{Kind: types.Won, Winner: winner}.Message(),
			"state":   eng.CurrentState(),
		})
	})
	eng.OnGameTied(func() {
		s.hub.Broadcast(sessionID, ActionGameTied, gin.H{
			"message": types.Phase{Kind: types.Tied}.Message(),
			"state":   eng.CurrentState(),
		})
	})
	eng.OnTurnChanged(func(next types.Player) {
		s.hub.Broadcast(sessionID, ActionTurnChanged, gin.H{"player": next})
	})
	eng.OnReset(func(boardState *types.BoardState) {
		s.hub.Broadcast(sessionID, ActionReset, boardState)
	})
	return eng
}

// Run serves until ctx is cancelled, pruning idle sessions in the background.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.pruneLoop(ctx)

	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.addr).Msg("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) pruneLoop(ctx context.Context) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.prune(now)
		}
	}
}

func (s *Server) prune(now time.Time) {
	for _, id := range s.store.PruneIdle(maxIdle, now) {
		s.hub.CloseSession(id)
		s.log.Info().Str("session", id).Msg("pruned idle session")
	}
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
