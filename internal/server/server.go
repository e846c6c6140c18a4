// Package server exposes the calculator, the saved data and the shopping
// tools over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/churrascometro/churrascometro/internal/config"
	"github.com/churrascometro/churrascometro/internal/database"
	"github.com/churrascometro/churrascometro/internal/services/planner"
	"github.com/churrascometro/churrascometro/internal/services/shopping"
)

// Server wires the services to a gin router.
type Server struct {
	router   *gin.Engine
	db       *database.DB
	cfg      config.ServerConfig
	planner  *planner.Service
	shopping *shopping.Service
	metrics  *Metrics
}

// New creates a server backed by db.
func New(db *database.DB, cfg config.ServerConfig) *Server {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	s := &Server{
		router:   gin.New(),
		db:       db,
		cfg:      cfg,
		planner:  planner.NewService(db.DB),
		shopping: shopping.NewService(db.DB),
	}
	if cfg.MetricsEnabled {
		s.metrics = NewMetrics()
	}

	s.router.Use(gin.Recovery(), requestID(), observe(s.metrics))
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	if s.metrics != nil {
		s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{})))
	}

	api := s.router.Group("/api/v1")
	{
		api.GET("/catalog", s.handleCatalog)
		api.POST("/calculate", s.handleCalculate)
		api.POST("/budget", s.handleBudget)

		api.GET("/prices", s.handleListPrices)
		api.PUT("/prices/:key", s.handleSetPrice)
		api.DELETE("/prices/:key", s.handleResetPrice)
		api.DELETE("/prices", s.handleResetPrices)
		api.POST("/custom-items", s.handleAddCustomItem)
		api.DELETE("/custom-items/:key", s.handleDeleteCustomItem)

		api.GET("/profiles", s.handleListProfiles)
		api.GET("/profiles/:id", s.handleGetProfile)
		api.POST("/profiles", s.handleSaveProfile)
		api.POST("/profiles/import", s.handleImportProfiles)
		api.DELETE("/profiles/:id", s.handleDeleteProfile)

		api.GET("/history", s.handleListHistory)
		api.GET("/history/:id", s.handleGetHistory)
		api.POST("/history", s.handleSaveEvent)
		api.DELETE("/history/:id", s.handleDeleteHistory)
		api.DELETE("/history", s.handleClearHistory)

		api.GET("/checklist", s.handleChecklist)
		api.GET("/checklist/share", s.handleShareChecklist)
		api.POST("/checklist/:key/toggle", s.handleToggle)
		api.DELETE("/checklist/:key", s.handleRemoveItem)
		api.DELETE("/checklist", s.handleClearChecks)

		api.GET("/stores", s.handleListStores)
		api.GET("/stores/:id", s.handleGetStore)
		api.POST("/stores", s.handleAddStore)
		api.PUT("/stores/:id", s.handleSetStorePrices)
		api.DELETE("/stores/:id", s.handleDeleteStore)
		api.GET("/compare", s.handleCompare)
	}
}

// Router returns the gin router.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := s.cfg.Addr
	if addr == "" {
		addr = config.Default().Server.Addr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", addr, "metrics", s.metrics != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout())
	defer cancel()
	slog.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx := c.Request.Context()
	if err := s.db.HealthCheck(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
		return
	}
	body := gin.H{"status": "ok", "database": "ok"}
	if stats, err := s.db.GetStats(ctx); err == nil {
		body["stats"] = stats
	}
	c.JSON(http.StatusOK, body)
}
