package probe

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/nizram/ping-monitor/internal/domain"
)

func TestUDPChecker_SendsDatagram(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer pc.Close()
	port := uint16(pc.LocalAddr().(*net.UDPAddr).Port)

	tgt := domain.Target{
		Name:     "local",
		Host:     "127.0.0.1",
		Port:     port,
		Protocol: domain.ProtocolUDP,
		Enabled:  true,
	}
	res := NewUDPChecker(2 * time.Second).Check(context.Background(), tgt)
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}

	pc.SetReadDeadline(time.Now().Add(2 * time.Second))
	buf := make([]byte, 16)
	n, _, err := pc.ReadFrom(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(buf[:n]) != "ping" {
		t.Fatalf("payload = %q, want %q", buf[:n], "ping")
	}
}

func TestUDPChecker_UnresolvableHost(t *testing.T) {
	tgt := domain.Target{
		Name:     "bad",
		Host:     "no-such-host.invalid",
		Protocol: domain.ProtocolUDP,
	}
	res := NewUDPChecker(2 * time.Second).Check(context.Background(), tgt)
	if res.Success {
		t.Fatalf("expected failure for unresolvable host")
	}
	if res.Message == "" {
		t.Fatalf("expected a failure message")
	}
}
