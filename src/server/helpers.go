package server

import (
	"net/http"

	"trade-stats/src/helpers"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------

// writeEngineError maps a typed engine error to an HTTP response carrying
// the error's stable name.
func writeEngineError(c *gin.Context, err error) {
	name := helpers.ErrorName(err)
	c.JSON(statusFor(name), gin.H{
		"error":   name,
		"message": err.Error(),
	})
}

// -----------------------------------------------------------------------------

func statusFor(name string) int {
	switch name {
	case "InvalidSymbol", "InvalidValue", "InvalidWindowSize":
		return http.StatusBadRequest
	case "UnknownSymbol", "EmptyWindow":
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
