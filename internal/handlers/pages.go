package handlers

import (
	"net/http"

	"homepanel/internal/service"

	"github.com/gin-gonic/gin"
)

const indexTemplate = "index.html"

// dashboard renders the landing page with the uptime chart.
func (h *Handler) dashboard(c *gin.Context) {
	labels, values := service.ChartSeries(h.services.Uptime.Segments(c.Request.Context()))
	c.HTML(http.StatusOK, indexTemplate, gin.H{
		"AppName":  h.opts.AppName,
		"Version":  h.opts.AppVersion,
		"Switches": h.opts.Switches,
		"Labels":   labels,
		"Values":   values,
	})
}
