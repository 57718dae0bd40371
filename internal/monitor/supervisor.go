package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nizram/ping-monitor/internal/domain"
	"github.com/nizram/ping-monitor/internal/probe"
)

// watch is one registered target: its status record and the handles of the
// loop checking it. Only the loop writes status; everyone else reads copies
// under mu.
type watch struct {
	id      domain.TargetID
	checker probe.Checker
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}

	mu     sync.Mutex
	status domain.Status
}

// run is the check loop. It does an immediate check, then one per tick,
// until the watch is cancelled or the target disappears from the engine.
func (e *Engine) run(w *watch) {
	defer close(w.done)

	t := time.NewTicker(e.interval)
	defer t.Stop()

	if !e.checkOnce(w) {
		return
	}
	for {
		select {
		case <-w.ctx.Done():
			return
		case <-t.C:
			if !e.checkOnce(w) {
				return
			}
		}
	}
}

// checkOnce probes the target and folds the outcome into its status. It
// reports false when the loop should stop: the target was removed or the
// watch cancelled. A result that raced a removal is dropped, never folded.
func (e *Engine) checkOnce(w *watch) bool {
	if _, ok := e.watches.Load(w.id); !ok {
		return false
	}

	tgt := w.status.Target
	if !tgt.Enabled {
		return true
	}

	cctx, cancel := context.WithTimeout(w.ctx, e.timeout)
	res := w.checker.Check(cctx, tgt)
	cancel()

	if w.ctx.Err() != nil {
		return false
	}
	if _, ok := e.watches.Load(w.id); !ok {
		return false
	}

	now := time.Now().UTC()
	w.mu.Lock()
	tr := w.status.Apply(res.Success, res.Elapsed, res.Message, now)
	snap := w.status
	w.mu.Unlock()

	e.logger.Debug("target_checked",
		zap.String("target_id", string(w.id)),
		zap.String("host", tgt.Host),
		zap.Bool("up", res.Success),
		zap.Duration("elapsed", res.Elapsed),
		zap.String("reason", res.Message),
	)
	if tr != domain.TransitionNone {
		e.logger.Info("target_state_changed",
			zap.String("target_id", string(w.id)),
			zap.String("name", tgt.Name),
			zap.String("host", tgt.Host),
			zap.String("state", tr.String()),
		)
		if e.onTransition != nil {
			e.onTransition(snap, tr)
		}
	}
	return true
}
