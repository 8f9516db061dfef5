package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12

	defaultStreamInterval = 5 * time.Second
	maxStreamInterval     = 60 * time.Second
)

// statusFrame is one snapshot pushed to the dashboard. Trigger names the
// device whose command caused an out-of-schedule frame.
type statusFrame struct {
	Type    string      `json:"type"`
	Trigger string      `json:"trigger,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Same-origin only; the dashboard is served from this host.
var upgrader = websocket.Upgrader{}

// wsStatus streams status reports: one on connect, one per interval and one
// after every successful command, until the client goes away.
func (h *Handler) wsStatus(c *gin.Context) {
	interval := streamInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	closed := make(chan struct{})
	go h.drainClient(conn, closed)

	var updates <-chan string
	if h.services.Updates != nil {
		ch, unsubscribe := h.services.Updates.Subscribe()
		defer unsubscribe()
		updates = ch
	}

	refresh := time.NewTicker(interval)
	defer refresh.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	ctx := c.Request.Context()
	if err := h.pushStatus(ctx, conn, ""); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed", "err", err, "frame", "initial")
		}
		return
	}

	for {
		var trigger string
		select {
		case <-closed:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
			continue
		case <-refresh.C:
		case trigger = <-updates:
		}

		if err := h.pushStatus(ctx, conn, trigger); err != nil {
			if h.log != nil {
				h.log.Infow("ws_write_failed", "err", err, "trigger", trigger)
			}
			return
		}
	}
}

// streamInterval honours ?interval=10s, then ?interval_ms=10000. Values
// outside (0, 60s] fall back to the default.
func streamInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxStreamInterval {
			return d
		}
	}
	if s := c.Query("interval_ms"); s != "" {
		if ms, err := strconv.Atoi(s); err == nil && ms > 0 {
			if d := time.Duration(ms) * time.Millisecond; d <= maxStreamInterval {
				return d
			}
		}
	}
	return defaultStreamInterval
}

// drainClient reads until the connection fails so control frames are
// processed, then closes closed.
func (h *Handler) drainClient(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Debugw("ws_read_closed", "err", err)
			}
			return
		}
	}
}

func (h *Handler) pushStatus(ctx context.Context, conn *websocket.Conn, trigger string) error {
	report := h.services.Monitoring.ClimateStatus(ctx)
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(statusFrame{Type: "status", Trigger: trigger, Data: report})
}
