// README: Trip planning proxy handler (POST /api/plan-trip).
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"packntrack/internal/http/middleware"
	"packntrack/internal/metrics"
	"packntrack/internal/trip"
)

// maxBodyBytes caps the request body; a selection is a few hundred bytes.
const maxBodyBytes = 64 << 10

type TripPlanner interface {
	PlanInput(ctx context.Context, in trip.Input) (json.RawMessage, error)
}

type TripHandler struct {
	planner TripPlanner
	log     *zap.Logger
}

func NewTripHandler(planner TripPlanner, log *zap.Logger) *TripHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &TripHandler{planner: planner, log: log}
}

// PlanTrip handles /api/plan-trip for every method so that non-POST requests
// get the JSON 405 body instead of the router's default.
func (h *TripHandler) PlanTrip(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		c.Header("Allow", http.MethodPost)
		writeTripError(c, &trip.Error{Kind: trip.KindMethod, Msg: trip.MsgMethodNotAllowed})
		return
	}

	in, err := decodeTripInput(c.Request.Body)
	if err != nil {
		writeTripError(c, &trip.Error{Kind: trip.KindBadRequest, Msg: trip.MsgInvalidBody, Err: err})
		return
	}

	plan, err := h.planner.PlanInput(c.Request.Context(), in)
	if err != nil {
		h.log.Warn("plan-trip failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("city", in.City),
			zap.Error(err),
		)
		writeTripError(c, err)
		return
	}

	metrics.PlanRequests.WithLabelValues("ok").Inc()
	c.Data(http.StatusOK, "application/json; charset=utf-8", plan)
}

// decodeTripInput rejects only bodies that are not JSON at all. Field values
// of any type are passed through to the prompt.
func decodeTripInput(body io.Reader) (trip.Input, error) {
	if body == nil {
		return trip.DecodeInput(nil)
	}
	raw, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return trip.Input{}, err
	}
	return trip.DecodeInput(raw)
}
