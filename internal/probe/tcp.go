package probe

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/nizram/ping-monitor/internal/domain"
)

// TCPChecker resolves the target host and opens a connection to its first
// address. The connection is closed as soon as the handshake completes;
// nothing is written.
type TCPChecker struct {
	timeout  time.Duration
	resolver *net.Resolver
}

func NewTCPChecker(timeout time.Duration) *TCPChecker {
	return &TCPChecker{
		timeout:  timeout,
		resolver: &net.Resolver{},
	}
}

func (c *TCPChecker) Check(ctx context.Context, target domain.Target) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	ips, err := c.resolver.LookupIP(ctx, "ip", target.Host)
	if err != nil {
		return Result{Message: fmt.Sprintf("resolve %s: %v", target.Host, err)}
	}
	if len(ips) == 0 {
		return Result{Message: fmt.Sprintf("resolve %s: no addresses", target.Host)}
	}

	addr := net.JoinHostPort(ips[0].String(), strconv.Itoa(int(target.EffectivePort())))
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return Result{Elapsed: time.Since(start), Message: fmt.Sprintf("connect %s: %v", addr, err)}
	}
	conn.Close()
	return Result{Success: true, Elapsed: time.Since(start)}
}
