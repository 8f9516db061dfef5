package devices

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"strconv"
)

const (
	wolPort          = 9
	wolBroadcastAddr = "255.255.255.255"
)

// MagicPacket builds the 102-byte wake-on-LAN payload for mac: six 0xFF
// bytes followed by the hardware address repeated sixteen times.
func MagicPacket(mac string) ([]byte, error) {
	hw, err := net.ParseMAC(mac)
	if err != nil {
		return nil, fmt.Errorf("parse mac: %w", err)
	}
	if len(hw) != 6 {
		return nil, fmt.Errorf("parse mac: %q is not a 48-bit address", mac)
	}
	var buf bytes.Buffer
	buf.Write(bytes.Repeat([]byte{0xFF}, 6))
	for i := 0; i < 16; i++ {
		buf.Write(hw)
	}
	return buf.Bytes(), nil
}

// SendMagicPacket broadcasts a wake-on-LAN packet for mac to ip:9 (the
// limited broadcast address when ip is empty).
func SendMagicPacket(mac, ip string) error {
	pkt, err := MagicPacket(mac)
	if err != nil {
		return err
	}
	if ip == "" {
		ip = wolBroadcastAddr
	}
	addr, err := net.ResolveUDPAddr("udp4", net.JoinHostPort(ip, strconv.Itoa(wolPort)))
	if err != nil {
		return fmt.Errorf("resolve %s: %w", ip, err)
	}
	lc := net.ListenConfig{Control: setBroadcast}
	conn, err := lc.ListenPacket(context.Background(), "udp4", ":0")
	if err != nil {
		return fmt.Errorf("open udp socket: %w", err)
	}
	defer conn.Close()

	if _, err := conn.WriteTo(pkt, addr); err != nil {
		return fmt.Errorf("send magic packet: %w", err)
	}
	return nil
}
