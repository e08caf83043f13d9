// Package server exposes the context engine over a small REST API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hrygo/mindsense/ai/engine"
	"github.com/hrygo/mindsense/ai/metrics"
	"github.com/hrygo/mindsense/internal/profile"
	"github.com/hrygo/mindsense/internal/version"
	"github.com/hrygo/mindsense/server/auth"
	"github.com/hrygo/mindsense/store"
)

// sweepInterval is how often idle sessions are collected.
const sweepInterval = 5 * time.Minute

// Server wires the engine, the persistence layer, and the HTTP surface.
type Server struct {
	Profile *profile.Profile
	Store   *store.Store
	Engine  *engine.Engine

	echoServer *echo.Echo
	exporter   *metrics.PrometheusExporter
}

// NewServer creates a Server and registers all routes.
func NewServer(profile *profile.Profile, st *store.Store, eng *engine.Engine, exporter *metrics.PrometheusExporter) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Debug("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))

	s := &Server{
		Profile:    profile,
		Store:      st,
		Engine:     eng,
		echoServer: e,
		exporter:   exporter,
	}
	s.registerRoutes(e)
	return s
}

func (s *Server) registerRoutes(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)
	if s.exporter != nil && s.Profile.Metrics {
		e.GET("/metrics", echo.WrapHandler(s.exporter.Handler()))
	}

	e.POST("/api/v1/auth/token", s.handleToken)

	api := e.Group("/api/v1", auth.Middleware(s.Profile.SecretKey))
	api.POST("/chat", s.handleChat)
	api.GET("/history", s.handleHistory)
	api.GET("/insights", s.handleInsights)
	api.POST("/documents", s.handleImportDocument)
	api.GET("/documents", s.handleListDocuments)
	api.DELETE("/memory", s.handleResetMemory)
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	go s.sweepSessions(ctx)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.echoServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	slog.Info("server listening", "addr", addr, "version", version.String(), "mode", s.Profile.Mode)
	if err := s.echoServer.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) sweepSessions(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if evicted := s.Engine.Sessions().Sweep(); evicted > 0 {
				slog.Debug("idle sessions evicted", "count", evicted)
			}
			if s.exporter != nil {
				s.exporter.SetActiveSessions(s.Engine.Sessions().Len())
			}
		}
	}
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.String(),
	})
}
