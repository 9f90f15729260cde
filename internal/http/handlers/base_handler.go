// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"packntrack/internal/metrics"
	"packntrack/internal/trip"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeTripError answers with the caller-facing message of a *trip.Error.
// Anything else is an internal error.
func writeTripError(c *gin.Context, err error) {
	var te *trip.Error
	if !errors.As(err, &te) {
		metrics.PlanRequests.WithLabelValues("internal").Inc()
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	metrics.PlanRequests.WithLabelValues(te.Kind.String()).Inc()
	writeError(c, statusForKind(te.Kind), te.Error())
}

func statusForKind(k trip.Kind) int {
	switch k {
	case trip.KindMethod:
		return http.StatusMethodNotAllowed
	case trip.KindBadRequest:
		return http.StatusBadRequest
	case trip.KindConfig, trip.KindUpstream, trip.KindMalformed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
