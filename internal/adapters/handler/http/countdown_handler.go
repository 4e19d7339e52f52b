package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alessiogreco/weekblocks/internal/core/services"
)

type CountdownHandler struct {
	svc *services.CountdownService
}

func NewCountdownHandler(svc *services.CountdownService) *CountdownHandler {
	return &CountdownHandler{svc: svc}
}

func (h *CountdownHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/countdown", h.GetCountdown)
}

// GetCountdown recomputes the life-countdown figures for this instant.
// Clients poll as often as their display refreshes; nothing is cached or
// stored server-side.
func (h *CountdownHandler) GetCountdown(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Current())
}
