package devices

import (
	"context"
	"net"
	"strconv"
	"time"
)

// DefaultProbeTimeout bounds a reachability probe.
const DefaultProbeTimeout = 5 * time.Second

// Reachable attempts a raw TCP connection to host:port and reports whether
// it succeeded. DNS failures, refusals and timeouts all yield false; no
// protocol data is exchanged.
func Reachable(ctx context.Context, host string, port int, timeout time.Duration) bool {
	if host == "" || port <= 0 {
		return false
	}
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
