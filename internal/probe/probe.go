package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/nizram/ping-monitor/internal/domain"
)

// Result is the outcome of a single probe. Elapsed is measured around the
// network operation and is only meaningful when Success is true.
type Result struct {
	Success bool
	Elapsed time.Duration
	Message string
}

// Checker performs one liveness check against a target. Checkers hold no
// per-target state, so one instance can serve any number of targets.
type Checker interface {
	Check(ctx context.Context, target domain.Target) Result
}

// ForProtocol returns the checker for p, configured with the given per-probe
// timeout.
func ForProtocol(p domain.Protocol, timeout time.Duration) (Checker, error) {
	switch p {
	case domain.ProtocolPing:
		return NewPingChecker(timeout), nil
	case domain.ProtocolTCP:
		return NewTCPChecker(timeout), nil
	case domain.ProtocolUDP:
		return NewUDPChecker(timeout), nil
	}
	return nil, fmt.Errorf("no checker for protocol %q", p)
}
