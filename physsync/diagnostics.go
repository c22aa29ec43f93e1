package physsync

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// DiagnosticKind classifies a non-fatal problem met while building or
// running a session.
type DiagnosticKind string

const (
	DiagUnsupportedShape      DiagnosticKind = "unsupported-shape"
	DiagUnsupportedConstraint DiagnosticKind = "unsupported-constraint"
	DiagUnresolvedParticipant DiagnosticKind = "unresolved-participant"
	DiagConstraintRejected    DiagnosticKind = "constraint-rejected"
	DiagMissingMotionState    DiagnosticKind = "missing-motion-state"
	DiagBodyRejected          DiagnosticKind = "body-rejected"
	DiagMissingObject         DiagnosticKind = "missing-object"
	DiagScriptFailed          DiagnosticKind = "script-failed"
	DiagDuplicateBody         DiagnosticKind = "duplicate-body"
)

// Diagnostic is one recorded problem. Subject names the body or constraint.
type Diagnostic struct {
	Kind    DiagnosticKind
	Subject string
	Message string
}

func (d Diagnostic) String() string {
	if d.Subject == "" {
		return fmt.Sprintf("%s: %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Kind, d.Subject, d.Message)
}

// Diagnostics counts problems by kind and queues them until drained. It is
// safe for concurrent use so a HUD on another goroutine can read counts.
type Diagnostics struct {
	mu     sync.Mutex
	counts map[DiagnosticKind]int
	queue  []Diagnostic
	log    *zap.Logger
}

func NewDiagnostics(log *zap.Logger) *Diagnostics {
	if log == nil {
		log = zap.NewNop()
	}
	return &Diagnostics{counts: make(map[DiagnosticKind]int), log: log}
}

func (d *Diagnostics) Record(kind DiagnosticKind, subject, format string, args ...any) {
	if d == nil {
		return
	}
	diag := Diagnostic{Kind: kind, Subject: subject, Message: fmt.Sprintf(format, args...)}

	d.mu.Lock()
	if d.counts == nil {
		d.counts = make(map[DiagnosticKind]int)
	}
	d.counts[kind]++
	d.queue = append(d.queue, diag)
	d.mu.Unlock()

	if d.log == nil {
		return
	}
	fields := []zap.Field{zap.String("kind", string(kind)), zap.String("subject", subject)}
	if kind == DiagMissingMotionState {
		d.log.Debug(diag.Message, fields...)
		return
	}
	d.log.Warn(diag.Message, fields...)
}

func (d *Diagnostics) Count(kind DiagnosticKind) int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.counts[kind]
}

func (d *Diagnostics) Total() int {
	if d == nil {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, c := range d.counts {
		n += c
	}
	return n
}

// Counts returns a copy of the per-kind counters.
func (d *Diagnostics) Counts() map[DiagnosticKind]int {
	out := make(map[DiagnosticKind]int)
	if d == nil {
		return out
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for k, v := range d.counts {
		out[k] = v
	}
	return out
}

// Drain returns all queued diagnostics and clears the queue. Counters are kept.
func (d *Diagnostics) Drain() []Diagnostic {
	if d == nil {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.queue) == 0 {
		return nil
	}
	out := d.queue
	d.queue = nil
	return out
}

// Reset clears counters and queue.
func (d *Diagnostics) Reset() {
	if d == nil {
		return
	}
	d.mu.Lock()
	d.counts = make(map[DiagnosticKind]int)
	d.queue = nil
	d.mu.Unlock()
}
