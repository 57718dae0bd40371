package probe

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/nizram/ping-monitor/internal/domain"
)

// UDPChecker sends a single small datagram to the target. UDP gives no
// delivery confirmation, so success means only that the host resolved and
// the datagram left the local socket; a dead but resolvable host still
// counts as online. Failures it can see are resolution and routing errors
// at dial or send time.
type UDPChecker struct {
	timeout time.Duration
}

func NewUDPChecker(timeout time.Duration) *UDPChecker {
	return &UDPChecker{timeout: timeout}
}

func (c *UDPChecker) Check(ctx context.Context, target domain.Target) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	addr := net.JoinHostPort(target.Host, strconv.Itoa(int(target.EffectivePort())))
	start := time.Now()
	var d net.Dialer
	conn, err := d.DialContext(ctx, "udp", addr)
	if err != nil {
		return Result{Message: fmt.Sprintf("dial %s: %v", addr, err)}
	}
	defer conn.Close()

	if dl, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(dl)
	}
	if _, err := conn.Write([]byte("ping")); err != nil {
		return Result{Elapsed: time.Since(start), Message: fmt.Sprintf("send %s: %v", addr, err)}
	}
	return Result{Success: true, Elapsed: time.Since(start)}
}
