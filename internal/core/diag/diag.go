// Package diag collects diagnostics produced during a compilation.
//
// A Tracer is owned exclusively by one Compile call. It separates fatal
// errors (returned directly from the phase that produced them), delayed
// errors (tentative during a layout iteration, promoted to fatal only if
// still present once the layout fixpoint is reached) and warnings
// (always retained, never promoted or dropped).
package diag

import (
	"crypto/sha256"
	"fmt"
	"sync"
)

// Severity classifies a diagnostic.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Span identifies the source region a diagnostic refers to. A zero Span
// (FileID == "") is "detached" — not tied to any source position.
type Span struct {
	FileID string
	Start  int
	End    int
}

// Detached returns a Span that points nowhere, for diagnostics about the
// compilation as a whole rather than a specific source location.
func Detached() Span {
	return Span{}
}

// SourceDiagnostic is a single error, warning, or hint surfaced to the user.
type SourceDiagnostic struct {
	Severity Severity
	Span     Span
	Message  string
	Hint     string
}

// Error renders the diagnostic for places that need a plain error.
func (d SourceDiagnostic) Error() string {
	if d.Hint != "" {
		return fmt.Sprintf("%s (%s)", d.Message, d.Hint)
	}
	return d.Message
}

// Warning builds a warning-severity diagnostic.
func Warning(span Span, message string) SourceDiagnostic {
	return SourceDiagnostic{Severity: SeverityWarning, Span: span, Message: message}
}

// Error builds an error-severity diagnostic.
func Error(span Span, message string) SourceDiagnostic {
	return SourceDiagnostic{Severity: SeverityError, Span: span, Message: message}
}

// WithHint attaches a hint to a diagnostic and returns the modified copy.
func (d SourceDiagnostic) WithHint(hint string) SourceDiagnostic {
	d.Hint = hint
	return d
}

// Tracer is the mutable diagnostic collector threaded through one
// compilation. It is exclusively owned by the Compile call that created it;
// the locking only guards against the memo substrate evaluating independent
// memoized calls concurrently within that same compilation.
type Tracer struct {
	mu       sync.Mutex
	warnings []SourceDiagnostic
	delayed  []SourceDiagnostic
}

// NewTracer constructs an empty Tracer.
func NewTracer() *Tracer {
	return &Tracer{}
}

// Warn records a warning. Warnings are never cleared and always appear in
// the final diagnostic set.
func (t *Tracer) Warn(d SourceDiagnostic) {
	d.Severity = SeverityWarning
	t.mu.Lock()
	defer t.mu.Unlock()
	t.warnings = append(t.warnings, d)
}

// Delay records a delayed (tentative) error. Delayed errors are cleared at
// the start of every layout iteration; only those still present after the
// fixpoint is reached are promoted to fatal.
func (t *Tracer) Delay(d SourceDiagnostic) {
	d.Severity = SeverityError
	t.mu.Lock()
	defer t.mu.Unlock()
	t.delayed = append(t.delayed, d)
}

// ClearDelayed discards any delayed errors accumulated so far, called at the
// start of each layout iteration so a now-converged layout path doesn't drag
// along errors raised by a previous, since-corrected attempt.
func (t *Tracer) ClearDelayed() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.delayed = nil
}

// TakeDelayed returns the delayed errors accumulated since the last clear,
// without clearing them.
func (t *Tracer) TakeDelayed() []SourceDiagnostic {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]SourceDiagnostic, len(t.delayed))
	copy(out, t.delayed)
	return out
}

// Warnings returns every warning recorded so far, independent of outcome.
func (t *Tracer) Warnings() []SourceDiagnostic {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]SourceDiagnostic, len(t.warnings))
	copy(out, t.warnings)
	return out
}

// dedupeKey returns a 128-bit fingerprint of (span, message), taken as the
// first 16 bytes of the SHA-256 digest of their canonical encoding.
func dedupeKey(d SourceDiagnostic) [16]byte {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s\x00%d\x00%d\x00%s", d.Span.FileID, d.Span.Start, d.Span.End, d.Message)))
	var key [16]byte
	copy(key[:], sum[:16])
	return key
}

// Deduplicate keeps only the first occurrence of each (span, message) pair,
// keyed by a 128-bit hash, in input order. Compile does not call it: it
// returns only the first delayed error, and Tracer.Warnings is not
// deduplicated; cli.ReportFormatter.PrintDiagnostics applies it to the
// diagnostics it prints. Deduplicate is idempotent:
// Deduplicate(Deduplicate(x)) == Deduplicate(x).
func Deduplicate(diags []SourceDiagnostic) []SourceDiagnostic {
	seen := make(map[[16]byte]struct{}, len(diags))
	out := make([]SourceDiagnostic, 0, len(diags))
	for _, d := range diags {
		key := dedupeKey(d)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	return out
}
