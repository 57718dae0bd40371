package probe

import (
	"testing"
	"time"

	"github.com/nizram/ping-monitor/internal/domain"
)

func TestForProtocol(t *testing.T) {
	c, err := ForProtocol(domain.ProtocolPing, time.Second)
	if err != nil {
		t.Fatalf("ping: %v", err)
	}
	if _, ok := c.(*PingChecker); !ok {
		t.Fatalf("ping: got %T", c)
	}

	c, err = ForProtocol(domain.ProtocolTCP, time.Second)
	if err != nil {
		t.Fatalf("tcp: %v", err)
	}
	if _, ok := c.(*TCPChecker); !ok {
		t.Fatalf("tcp: got %T", c)
	}

	c, err = ForProtocol(domain.ProtocolUDP, time.Second)
	if err != nil {
		t.Fatalf("udp: %v", err)
	}
	if _, ok := c.(*UDPChecker); !ok {
		t.Fatalf("udp: got %T", c)
	}

	if _, err := ForProtocol(domain.Protocol("icmp"), time.Second); err == nil {
		t.Fatalf("expected error for unknown protocol")
	}
}
