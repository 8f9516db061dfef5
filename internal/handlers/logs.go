package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"homepanel/internal/service"

	"github.com/gin-gonic/gin"
)

var (
	errFromInvalid  = errors.New("invalid 'from' time; use RFC3339 or YYYY-MM-DD")
	errToInvalid    = errors.New("invalid 'to' time; use RFC3339 or YYYY-MM-DD")
	errLimitInvalid = errors.New("invalid 'limit'; use a positive integer")
)

// accepted journal query layouts, tried in order
var queryLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// @Summary      List command journal
// @Description  Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'). A date-only 'to' covers the whole day.
// @Tags         logs
// @Produce      json
// @Param        from  query   string  false  "Start of range"  example(2025-08-01)
// @Param        to    query   string  false  "End of range. Date-only treated as end of day."  example(2025-08-31)
// @Param        type  query   string  false  "Event type"  Enums(SWITCH,CLIMATE,WAKE,ERROR)
// @Param        device  query  string  false  "Switch or room id"  example(sala)
// @Param        limit   query  int     false  "Newest entries to return (default 100, max 1000)"
// @Success      200   {object}  map[string]interface{}  "count, events"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /logs/ [get]
// @Security     BasicAuth
func (h *Handler) getLogs(c *gin.Context) {
	filter, err := logFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.services.EventLog.List(c.Request.Context(), filter)
	if errors.Is(err, service.ErrInvalidLogFilter) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load journal", "logs_list_failed", err,
			"from", filter.From, "to", filter.To, "type", filter.Type, "device", filter.Device)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

func logFilterFromQuery(c *gin.Context) (service.LogFilter, error) {
	var f service.LogFilter

	if qs := c.Query("from"); qs != "" {
		t, ok := parseQueryTime(qs)
		if !ok {
			return f, errFromInvalid
		}
		f.From = t
	}
	if qs := c.Query("to"); qs != "" {
		t, ok := parseQueryTime(qs)
		if !ok {
			return f, errToInvalid
		}
		if !strings.ContainsAny(qs, "T ") {
			// date only: inclusive through the end of that day
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = t
	}
	if qs := c.Query("limit"); qs != "" {
		n, err := strconv.Atoi(qs)
		if err != nil || n <= 0 {
			return f, errLimitInvalid
		}
		f.Limit = n
	}
	f.Type = c.Query("type")
	f.Device = c.Query("device")
	return f, nil
}

func parseQueryTime(s string) (time.Time, bool) {
	for _, layout := range queryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
