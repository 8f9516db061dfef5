package handlers

import (
	"net/http"
	"time"

	"homepanel/internal/service"

	"github.com/gin-gonic/gin"
)

const statusHealthy = "healthy"

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    statusHealthy,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"service":   h.opts.AppName,
		"version":   h.opts.AppVersion,
	})
}

// @Summary      Aggregated climate and switch status
// @Tags         status
// @Produce      json
// @Success      200  {object}  models.StatusReport
// @Router       /climate/status [get]
// @Security     BasicAuth
func (h *Handler) climateStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Monitoring.ClimateStatus(c.Request.Context()))
}

// @Summary      Media server reachability
// @Tags         status
// @Produce      json
// @Success      200  {object}  models.Reachability
// @Router       /check-emby [get]
// @Security     BasicAuth
func (h *Handler) checkEmby(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.Monitoring.CheckEmby(c.Request.Context()))
}

// @Summary      Media server uptime segments
// @Tags         status
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "segments, labels, values"
// @Router       /uptime [get]
// @Security     BasicAuth
func (h *Handler) uptime(c *gin.Context) {
	segments := h.services.Uptime.Segments(c.Request.Context())
	labels, values := service.ChartSeries(segments)
	c.JSON(http.StatusOK, gin.H{
		"segments": segments,
		"labels":   labels,
		"values":   values,
	})
}
