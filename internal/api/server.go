package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"catalog/internal/api/handlers"
	"catalog/internal/api/middleware"
	"catalog/internal/config"
	"catalog/internal/store"
)

type Server struct {
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config

	ProjectStore store.ProjectStore
}

func NewServer(cfg config.Config, db *pgxpool.Pool, ps store.ProjectStore) *Server {
	r := gin.Default()

	r.Use(middleware.RequestID())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{cfg.AllowedOrigin},
		AllowMethods:  []string{http.MethodGet, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))
	if len(cfg.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			slog.Error("Invalid trusted proxies, trusting none", "proxies", cfg.TrustedProxies, "error", err)
			_ = r.SetTrustedProxies(nil)
		}
	}

	server := &Server{
		Router:       r,
		DB:           db,
		Config:       cfg,
		ProjectStore: ps,
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	s.Router.GET("/health", s.health)

	api := s.Router.Group("/api")
	api.Use(middleware.RateLimitMiddleware(s.Config.RateLimit))
	{
		api.GET("/projects", handlers.ListProjectsHandler(s.ProjectStore, s.Config.MaxLimit, s.Config.QueryTimeout))
	}

	s.Router.NoRoute(handlers.NotFoundHandler)
}

func (s *Server) health(c *gin.Context) {
	if s.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.DB.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Serve listens on the configured port until ctx is cancelled, then drains
// in-flight requests before returning.
func (s *Server) Serve(ctx context.Context) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    ":" + s.Config.Port,
		Handler: s.Router,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutting down server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
