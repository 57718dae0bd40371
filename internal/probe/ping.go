package probe

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/nizram/ping-monitor/internal/domain"
)

// PingChecker shells out to the system ping binary for a single echo request.
// ICMP raw sockets need elevated privileges on most systems, the setuid ping
// binary does not.
type PingChecker struct {
	timeout time.Duration
}

func NewPingChecker(timeout time.Duration) *PingChecker {
	return &PingChecker{timeout: timeout}
}

func (p *PingChecker) Check(ctx context.Context, target domain.Target) Result {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	args := pingArgs(runtime.GOOS, p.timeout, target.Host)
	start := time.Now()
	out, err := exec.CommandContext(ctx, "ping", args...).CombinedOutput()
	elapsed := time.Since(start)

	if err == nil {
		return Result{Success: true, Elapsed: elapsed}
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return Result{Elapsed: elapsed, Message: "ping timed out"}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{Elapsed: elapsed, Message: "ping failed: " + pingDiagnostic(out)}
	}
	return Result{Elapsed: elapsed, Message: "ping: " + err.Error()}
}

// pingDiagnostic pulls the most useful line out of ping's output: the last
// non-empty one, where ping prints its loss summary or error.
func pingDiagnostic(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return "no reply"
}

// pingArgs builds the single-echo argument list for the platform's ping.
// The count and timeout flags differ per OS, and Linux takes the wait in
// whole seconds while the others take milliseconds.
func pingArgs(goos string, timeout time.Duration, host string) []string {
	switch goos {
	case "windows":
		return []string{"-n", "1", "-w", strconv.Itoa(int(timeout.Milliseconds())), host}
	case "darwin":
		return []string{"-c", "1", "-W", strconv.Itoa(int(timeout.Milliseconds())), host}
	default:
		secs := int(timeout.Seconds())
		if secs < 1 {
			secs = 1
		}
		return []string{"-c", "1", "-W", strconv.Itoa(secs), host}
	}
}
