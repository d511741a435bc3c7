package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// Request Payloads
// -----------------------------------------------------------------------------

type addBatchRequest struct {
	Symbol string    `json:"symbol"`
	Values []float64 `json:"values"`
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *APIServer) addBatch(c *gin.Context) {
	var req addBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "BadRequest",
			"message": "malformed request body",
		})
		return
	}

	if err := s.stats.AddBatch(req.Symbol, req.Values); err != nil {
		writeEngineError(c, err)
		return
	}

	// Journal only after the engine accepted the batch, so the journal never
	// contains rejected values.
	if s.journal != nil {
		s.journal.Enqueue(req.Symbol, req.Values)
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"count":  len(req.Values),
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getStats(c *gin.Context) {
	symbol := c.Query("symbol")

	k, err := strconv.Atoi(c.Query("k"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "InvalidWindowSize",
			"message": "k must be a positive integer",
		})
		return
	}

	result, err := s.stats.Stats(symbol, k)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getSession(c *gin.Context) {
	symbol := c.Query("symbol")
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "InvalidSymbol",
			"message": "symbol cannot be empty",
		})
		return
	}

	c.JSON(http.StatusOK, s.sessions.Session(symbol, time.Now()))
}

// -----------------------------------------------------------------------------

func (s *APIServer) getHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"engine":  s.stats.Status(),
		"journal": s.journal != nil,
	})
}
