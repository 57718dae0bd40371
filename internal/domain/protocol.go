package domain

import (
	"fmt"
	"strings"
)

// Protocol selects which liveness check a target gets. The set is closed;
// anything else fails ParseProtocol.
type Protocol string

const (
	ProtocolPing Protocol = "ping"
	ProtocolTCP  Protocol = "tcp"
	ProtocolUDP  Protocol = "udp"
)

func ParseProtocol(s string) (Protocol, error) {
	switch Protocol(strings.ToLower(strings.TrimSpace(s))) {
	case ProtocolPing:
		return ProtocolPing, nil
	case ProtocolTCP:
		return ProtocolTCP, nil
	case ProtocolUDP:
		return ProtocolUDP, nil
	}
	return "", fmt.Errorf("unknown protocol %q (want ping, tcp or udp)", s)
}

// DefaultPort is the port probed when the target doesn't set one.
// Ping has no port concept and returns 0.
func (p Protocol) DefaultPort() uint16 {
	switch p {
	case ProtocolTCP:
		return 80
	case ProtocolUDP:
		return 53
	}
	return 0
}
