package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/alan-mat/careerpath/internal/api"
	"github.com/alan-mat/careerpath/internal/guidance"
)

type ServerConfig struct {
	ListenHost string
	ListenPort int

	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}

func DefaultConfig() ServerConfig {
	return ServerConfig{
		ListenPort:      8080,
		ShutdownTimeout: 15 * time.Second,
		MaxBodyBytes:    100 << 10,
	}
}

// Searcher resolves a raw guidance search body.
type Searcher interface {
	Search(ctx context.Context, body []byte) (*guidance.Result, error)
}

// Server exposes the guidance search over HTTP.
type Server struct {
	config ServerConfig

	searcher Searcher
	router   *gin.Engine
}

func New(config ServerConfig, searcher Searcher) *Server {
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = DefaultConfig().MaxBodyBytes
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = DefaultConfig().ShutdownTimeout
	}

	s := &Server{
		config:   config,
		searcher: searcher,
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(slog.Default()))
	r.Use(gin.CustomRecovery(recoverInternal))

	r.Handle(api.RouteHealth.Method, api.RouteHealth.Path, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.Handle(api.RouteGuidanceSearch.Method, api.RouteGuidanceSearch.Path, s.search)

	return r
}

// Serve listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	lisAddr := fmt.Sprintf("%s:%d", s.config.ListenHost, s.config.ListenPort)
	srv := &http.Server{
		Addr:              lisAddr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server starting", "listener", lisAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to serve", "err", err)
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Server shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
