package probe

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/nizram/ping-monitor/internal/domain"
)

func tcpTarget(port uint16) domain.Target {
	return domain.Target{
		Name:     "local",
		Host:     "127.0.0.1",
		Port:     port,
		Protocol: domain.ProtocolTCP,
		Enabled:  true,
	}
}

func TestTCPChecker_OpenPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	port := uint16(ln.Addr().(*net.TCPAddr).Port)

	res := NewTCPChecker(2 * time.Second).Check(context.Background(), tcpTarget(port))
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Elapsed < 0 {
		t.Fatalf("negative elapsed: %v", res.Elapsed)
	}
}

func TestTCPChecker_ClosedPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := uint16(ln.Addr().(*net.TCPAddr).Port)
	ln.Close()

	res := NewTCPChecker(2 * time.Second).Check(context.Background(), tcpTarget(port))
	if res.Success {
		t.Fatalf("expected failure against closed port")
	}
	if !strings.Contains(res.Message, "connect") {
		t.Fatalf("message = %q, want a connect error", res.Message)
	}
}

func TestTCPChecker_FailsWithinTimeout(t *testing.T) {
	// 203.0.113.0/24 is TEST-NET-3: never routed, so the dial must run into
	// its deadline instead of completing.
	tgt := domain.Target{
		Name:     "blackhole",
		Host:     "203.0.113.1",
		Port:     81,
		Protocol: domain.ProtocolTCP,
	}

	timeout := 500 * time.Millisecond
	start := time.Now()
	res := NewTCPChecker(timeout).Check(context.Background(), tgt)
	took := time.Since(start)

	if res.Success {
		t.Fatalf("expected failure against unroutable address")
	}
	if took > timeout+time.Second {
		t.Fatalf("check took %v, bound was %v", took, timeout)
	}
}

func TestTCPChecker_UnresolvableHost(t *testing.T) {
	tgt := domain.Target{
		Name:     "bad",
		Host:     "no-such-host.invalid",
		Protocol: domain.ProtocolTCP,
	}
	res := NewTCPChecker(2 * time.Second).Check(context.Background(), tgt)
	if res.Success {
		t.Fatalf("expected failure for unresolvable host")
	}
	if !strings.Contains(res.Message, "resolve") {
		t.Fatalf("message = %q, want a resolve error", res.Message)
	}
}
