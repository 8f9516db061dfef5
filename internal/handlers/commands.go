package handlers

import (
	"errors"
	"net/http"
	"strings"

	"homepanel/internal/models"
	"homepanel/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errRoomRequired = "roomId is required"
	errDeviceFailed = "device command failed"
)

// commandError maps dispatcher errors onto HTTP responses. Device failures
// carry the device error text; anything unexpected gets a generic message.
func (h *Handler) commandError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	var devErr *service.DeviceError
	switch {
	case errors.Is(err, service.ErrUnknownDevice):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidState), errors.Is(err, service.ErrMissingStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &devErr):
		h.logAndJSONError(c, http.StatusInternalServerError, devErr.Error(), logKey, err, kv...)
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errDeviceFailed, logKey, err, kv...)
	}
}

// @Summary      Turn a smart switch ON or OFF
// @Tags         commands
// @Produce      json
// @Param        device  path      string  true  "Switch id"
// @Param        state   path      string  true  "Target state"  Enums(ON,OFF)
// @Success      200     {object}  models.CommandResult
// @Failure      400     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /switch/{device}/{state} [post]
// @Security     BasicAuth
func (h *Handler) setSwitch(c *gin.Context) {
	device, state := c.Param("device"), c.Param("state")
	res, err := h.services.Commands.Switch(c.Request.Context(), device, state)
	if err != nil {
		h.commandError(c, "switch_failed", err, "device", device, "state", state)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Set a room air-conditioner
// @Description  The response status mirrors the device's HTTP status.
// @Tags         commands
// @Accept       json
// @Produce      json
// @Param        body  body      models.ClimateCommand  true  "Climate command"
// @Success      200   {object}  models.CommandResult
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /climate [post]
// @Security     BasicAuth
func (h *Handler) setClimate(c *gin.Context) {
	var cmd models.ClimateCommand
	if ok := h.bindJSONOrBadRequest(c, &cmd); !ok {
		return
	}
	cmd.RoomID = strings.TrimSpace(cmd.RoomID)
	if cmd.RoomID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": errRoomRequired})
		return
	}

	res, err := h.services.Commands.Climate(c.Request.Context(), cmd)
	if err != nil {
		h.commandError(c, "climate_failed", err, "room", cmd.RoomID)
		return
	}
	code := res.StatusCode
	if code < http.StatusOK || code > 599 {
		code = http.StatusBadGateway
	}
	c.JSON(code, gin.H{
		"success":     res.Success,
		"status_code": res.StatusCode,
		"target":      res.Target,
	})
}

// sendWake serves the dashboard form: wake, then back to the dashboard.
func (h *Handler) sendWake(c *gin.Context) {
	h.runWake(c)
	c.Redirect(http.StatusFound, "/")
}

// @Summary      Run the configured wake action
// @Tags         commands
// @Success      200
// @Router       /wake [post]
// @Security     BasicAuth
func (h *Handler) wake(c *gin.Context) {
	h.runWake(c)
	c.Status(http.StatusOK)
}

// runWake never surfaces a failure to the client.
func (h *Handler) runWake(c *gin.Context) {
	if err := h.services.Commands.Wake(c.Request.Context()); err != nil && h.log != nil {
		h.log.Warnw("wake_failed", "err", err)
	}
}
