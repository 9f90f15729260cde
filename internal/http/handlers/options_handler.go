// README: Wizard options endpoint (GET /api/options).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"packntrack/internal/dashboard"
	"packntrack/internal/trip"
)

type optionsResponse struct {
	Prefs       []string `json:"prefs"`
	Days        []int    `json:"days"`
	DefaultDays int      `json:"default_days"`
	Palette     []string `json:"palette"`
}

type OptionsHandler struct{}

func NewOptionsHandler() *OptionsHandler {
	return &OptionsHandler{}
}

// List handles GET /api/options.
func (h *OptionsHandler) List(c *gin.Context) {
	writeJSON(c, http.StatusOK, optionsResponse{
		Prefs:       trip.Prefs,
		Days:        trip.DayOptions,
		DefaultDays: trip.DefaultDays,
		Palette:     dashboard.Palette,
	})
}
