package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"trade-stats/src/interfaces"
	"trade-stats/src/logger"
	"trade-stats/src/models"
	"trade-stats/src/storage"
	"trade-stats/src/utils"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// APIServer
// -----------------------------------------------------------------------------

type APIServer struct {
	Config *models.MConfig
	Logger *logger.Logger
	engine *gin.Engine
	server *http.Server

	stats    interfaces.IStatsEngine
	journal  *storage.JournalWriter // nil when journaling is disabled
	sessions *utils.SessionTracker
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewAPIServer(cfg *models.MConfig, log *logger.Logger, stats interfaces.IStatsEngine,
	journal *storage.JournalWriter, sessions *utils.SessionTracker) *APIServer {

	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &APIServer{
		Config:   cfg,
		Logger:   log,
		engine:   gin.Default(),
		stats:    stats,
		journal:  journal,
		sessions: sessions,
	}

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// setup web routes
	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *APIServer) setupRoutes() {
	// REST API endpoints
	s.engine.POST("/api/add_batch", s.addBatch)
	s.engine.GET("/api/stats", s.getStats)
	s.engine.GET("/api/session", s.getSession)
	s.engine.GET("/api/health", s.getHealth)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *APIServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	s.server = &http.Server{Addr: addr, Handler: s.engine}
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *APIServer) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// -----------------------------------------------------------------------------

// Handler exposes the gin engine for in-process testing.
func (s *APIServer) Handler() http.Handler {
	return s.engine
}
