package domain

import (
	"context"

	"equiptrack/pkg/logger"
)

// SideEffect is the outcome of a best-effort secondary write (movement
// logging, warehouse mirroring). A failed side effect is logged server-side
// and never surfaces as a failure of the primary operation.
type SideEffect struct {
	Action string
	Err    error
}

// Failed reports whether the side effect did not complete
func (s SideEffect) Failed() bool {
	return s.Err != nil
}

// Log writes the outcome to the service log. Failures are warnings, not errors:
// the primary operation has already committed.
func (s SideEffect) Log(ctx context.Context) {
	if s.Err == nil {
		return
	}
	logger.Warn(ctx).
		Err(s.Err).
		Str("side_effect", s.Action).
		Msg("Best-effort side effect failed")
}

// Notifier broadcasts recorded movements to external systems. Delivery is
// best-effort; implementations must not block the caller.
type Notifier interface {
	MovementRecorded(entry MovementLog)
}

// Recorder appends movement entries as explicit side effects
type Recorder struct {
	repo     Repository
	notifier Notifier
}

// NewRecorder creates a movement recorder
func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo}
}

// WithNotifier attaches an external broadcast for recorded movements
func (r *Recorder) WithNotifier(n Notifier) *Recorder {
	r.notifier = n
	return r
}

// Try appends a movement entry and reports the outcome without failing the caller
func (r *Recorder) Try(entry MovementLog) SideEffect {
	err := r.repo.Record(&entry)
	if err == nil && r.notifier != nil {
		r.notifier.MovementRecorded(entry)
	}
	return SideEffect{Action: entry.Action, Err: err}
}
