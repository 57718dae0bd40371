package monitor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
	"go.uber.org/zap"

	"github.com/nizram/ping-monitor/internal/domain"
	"github.com/nizram/ping-monitor/internal/probe"
)

const (
	DefaultInterval = 30 * time.Second
	DefaultTimeout  = 5 * time.Second
)

// ErrClosed is returned by Add after Close has been called.
var ErrClosed = errors.New("monitor: engine closed")

type Options struct {
	// Interval is the pause between checks of one target. Every target
	// shares the same interval.
	Interval time.Duration
	// Timeout bounds a single probe.
	Timeout time.Duration
	// OnTransition, when set, is called from the target's check loop each
	// time a target flips between online and offline. It must not block
	// for long and must not call Remove or Close.
	OnTransition func(domain.Status, domain.Transition)
	// NewChecker overrides probe construction; nil means the protocol
	// default.
	NewChecker func(p domain.Protocol, timeout time.Duration) (probe.Checker, error)
}

// Engine runs one check loop per registered target and keeps the latest
// status for each. All methods are safe for concurrent use; status access
// is per target, so loops never contend with each other.
type Engine struct {
	logger       *zap.Logger
	interval     time.Duration
	timeout      time.Duration
	onTransition func(domain.Status, domain.Transition)
	newChecker   func(p domain.Protocol, timeout time.Duration) (probe.Checker, error)

	watches *xsync.Map[domain.TargetID, *watch]

	mu     sync.Mutex // pairs Add against Close
	closed bool
}

func New(logger *zap.Logger, opts Options) *Engine {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.NewChecker == nil {
		opts.NewChecker = probe.ForProtocol
	}
	return &Engine{
		logger:       logger,
		interval:     opts.Interval,
		timeout:      opts.Timeout,
		onTransition: opts.OnTransition,
		newChecker:   opts.NewChecker,
		watches:      xsync.NewMap[domain.TargetID, *watch](),
	}
}

// Add registers a target and starts its check loop. The first check runs
// right away, later ones on the engine interval.
func (e *Engine) Add(t domain.Target) (domain.TargetID, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	checker, err := e.newChecker(t.Protocol, e.timeout)
	if err != nil {
		return "", err
	}

	st := domain.NewStatus(t, time.Now().UTC())
	ctx, cancel := context.WithCancel(context.Background())
	w := &watch{
		id:      st.ID,
		status:  st,
		checker: checker,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		cancel()
		return "", ErrClosed
	}
	e.watches.Store(st.ID, w)
	go e.run(w)
	e.mu.Unlock()

	e.logger.Info("target_added",
		zap.String("target_id", string(st.ID)),
		zap.String("name", t.Name),
		zap.String("host", t.Host),
		zap.String("protocol", string(t.Protocol)),
		zap.Bool("enabled", t.Enabled),
	)
	return st.ID, nil
}

// Remove drops the target and tells its loop to stop. Removing an unknown
// id is a no-op, so Remove is safe to call twice. The loop may still be
// draining when Remove returns, but it will never touch the status again.
func (e *Engine) Remove(id domain.TargetID) {
	w, ok := e.watches.LoadAndDelete(id)
	if !ok {
		return
	}
	w.cancel()
	e.logger.Info("target_removed", zap.String("target_id", string(id)))
}

// Get returns a copy of the target's current status.
func (e *Engine) Get(id domain.TargetID) (domain.Status, bool) {
	w, ok := e.watches.Load(id)
	if !ok {
		return domain.Status{}, false
	}
	w.mu.Lock()
	st := w.status
	w.mu.Unlock()
	return st, true
}

// List returns copies of every status, sorted by target name.
func (e *Engine) List() []domain.Status {
	var out []domain.Status
	e.watches.Range(func(_ domain.TargetID, w *watch) bool {
		w.mu.Lock()
		out = append(out, w.status)
		w.mu.Unlock()
		return true
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Target.Name != out[j].Target.Name {
			return out[i].Target.Name < out[j].Target.Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Close stops every check loop and waits for them to finish. The engine
// takes no new targets afterwards. ctx bounds the wait.
func (e *Engine) Close(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	var stopping []*watch
	e.watches.Range(func(id domain.TargetID, w *watch) bool {
		e.watches.Delete(id)
		w.cancel()
		stopping = append(stopping, w)
		return true
	})

	for _, w := range stopping {
		select {
		case <-w.done:
		case <-ctx.Done():
			return fmt.Errorf("stop check loops: %w", ctx.Err())
		}
	}
	e.logger.Info("engine_stopped", zap.Int("targets", len(stopping)))
	return nil
}
