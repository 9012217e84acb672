// Package ninederr defines the error values shared across the engine.
package ninederr

import "errors"

// ErrInvalidInput is returned whenever external text (a board, a move, a
// config value) fails to parse.
var ErrInvalidInput = errors.New("invalid input")

// ResourceKind names which bounded resource a search gave up on.
type ResourceKind int

const (
	ResourceTime ResourceKind = iota
	ResourceMemory
)

func (k ResourceKind) String() string {
	switch k {
	case ResourceTime:
		return "time exceeded"
	case ResourceMemory:
		return "memory exceeded"
	default:
		return "unknown resource exceeded"
	}
}

// ResourcesExceeded is returned when a search or allocation runs past a
// configured time or memory budget. It is not a coding error and callers
// should handle it as an expected outcome of a deadline-bounded search.
type ResourcesExceeded struct {
	Kind ResourceKind
}

func (e *ResourcesExceeded) Error() string {
	return e.Kind.String()
}

// Time returns a ResourcesExceeded for a blown time budget.
func Time() error { return &ResourcesExceeded{Kind: ResourceTime} }

// Memory returns a ResourcesExceeded for a blown memory budget.
func Memory() error { return &ResourcesExceeded{Kind: ResourceMemory} }

// IsResourcesExceeded reports whether err is (or wraps) a ResourcesExceeded,
// and if so returns its kind.
func IsResourcesExceeded(err error) (kind ResourceKind, ok bool) {
	var re *ResourcesExceeded
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return 0, false
}
