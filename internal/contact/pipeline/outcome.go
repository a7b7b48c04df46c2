package pipeline

import (
	"fmt"
	"runtime/debug"

	"github.com/banshee-data/contact.report/internal/monitoring"
)

// OutcomeKind tags a stage outcome.
type OutcomeKind string

const (
	KindOK       OutcomeKind = "ok"
	KindRejected OutcomeKind = "rejected"
	KindFault    OutcomeKind = "fault"
)

// CodeInternalFault is the only code a Fault carries today.
const CodeInternalFault = "INTERNAL_FAULT"

// Outcome is the tagged result of one stage. A rejected outcome still
// carries its value so that its diagnostics reach the result; a fault
// carries only a code and message.
type Outcome[T any] struct {
	Kind    OutcomeKind
	Value   T
	Reason  string // rejection reason or fault code
	Message string
}

// OK wraps an accepted stage value.
func OK[T any](v T) Outcome[T] {
	return Outcome[T]{Kind: KindOK, Value: v}
}

// Rejected wraps a stage value that did not detect anything.
func Rejected[T any](v T, reason string) Outcome[T] {
	return Outcome[T]{Kind: KindRejected, Value: v, Reason: reason}
}

// Fault reports an unexpected failure inside a stage.
func Fault[T any](code, message string) Outcome[T] {
	return Outcome[T]{Kind: KindFault, Reason: code, Message: message}
}

// IsOK reports whether the stage accepted its input.
func (o Outcome[T]) IsOK() bool { return o.Kind == KindOK }

// IsFault reports whether the stage failed unexpectedly.
func (o Outcome[T]) IsFault() bool { return o.Kind == KindFault }

// guard runs one stage and converts a panic into a Fault. accept decides
// between OK and Rejected and names the rejection reason.
func guard[T any](stage string, run func() T, accept func(T) (bool, string)) (out Outcome[T]) {
	defer func() {
		if p := recover(); p != nil {
			monitoring.Opsf("pipeline: %s stage panicked: %v\n%s", stage, p, debug.Stack())
			out = Fault[T](CodeInternalFault, fmt.Sprintf("%s: %v", stage, p))
		}
	}()
	v := run()
	if ok, reason := accept(v); !ok {
		return Rejected(v, reason)
	}
	return OK(v)
}

func firstReason(reasons []string, fallback string) string {
	if len(reasons) > 0 {
		return reasons[0]
	}
	return fallback
}
