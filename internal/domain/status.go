package domain

import "time"

// Transition reports the state change produced by one applied check result.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionOnline
	TransitionOffline
)

func (tr Transition) String() string {
	switch tr {
	case TransitionOnline:
		return "online"
	case TransitionOffline:
		return "offline"
	}
	return "none"
}

// Status is the running reliability record for one target. Only the target's
// own check loop writes it; everyone else reads copies.
type Status struct {
	ID               TargetID   `json:"id"`
	Target           Target     `json:"target"`
	IsOnline         bool       `json:"is_online"`
	LastCheck        time.Time  `json:"last_check"`
	LastOnline       *time.Time `json:"last_online,omitempty"`
	LastOffline      *time.Time `json:"last_offline,omitempty"`
	ResponseTimeMS   *uint64    `json:"response_time_ms,omitempty"`
	UptimePercentage float64    `json:"uptime_percentage"`
	TotalChecks      uint64     `json:"total_checks"`
	SuccessfulChecks uint64     `json:"successful_checks"`
	LastError        string     `json:"last_error,omitempty"`
}

func NewStatus(t Target, now time.Time) Status {
	return Status{
		ID:        NewTargetID(),
		Target:    t,
		LastCheck: now,
	}
}

// Apply folds one check outcome into the record and reports whether the
// target just changed state. elapsed is only recorded for successful checks;
// errMsg must be empty on success. IsOnline is committed after the old state
// is compared so a transition is reported exactly once per actual flip, not
// once per check. Pointer fields are replaced, never written through, so
// copies of the record handed out earlier stay stable.
func (s *Status) Apply(online bool, elapsed time.Duration, errMsg string, now time.Time) Transition {
	s.LastCheck = now
	s.TotalChecks++
	s.LastError = errMsg
	if online {
		ms := uint64(elapsed.Milliseconds())
		s.ResponseTimeMS = &ms
	} else {
		s.ResponseTimeMS = nil
	}

	tr := TransitionNone
	if online {
		s.SuccessfulChecks++
		at := now
		s.LastOnline = &at
		if !s.IsOnline {
			tr = TransitionOnline
		}
	} else if s.IsOnline {
		at := now
		s.LastOffline = &at
		tr = TransitionOffline
	}

	s.IsOnline = online
	s.UptimePercentage = float64(s.SuccessfulChecks) / float64(s.TotalChecks) * 100
	return tr
}
