package jinni

import "fmt"

// InvalidRootError is returned when the supplied project root is
// missing or not a directory. It is also returned when a target does
// not exist, and when the root, a target or an override rule contains
// an embedded NUL byte (Root then holds the offending string).
type InvalidRootError struct {
	Root string
	Err  error
}

func (e *InvalidRootError) Error() string {
	return fmt.Sprintf("invalid project root %q: %v", e.Root, e.Err)
}

func (e *InvalidRootError) Unwrap() error { return e.Err }

// TargetOutsideRootError is returned when a resolved target lies
// outside the project root.
type TargetOutsideRootError struct {
	Target string
	Root   string
}

func (e *TargetOutsideRootError) Error() string {
	return fmt.Sprintf("target %q lies outside project root %q", e.Target, e.Root)
}

// RuleReadError is returned when an explicitly named rule file cannot
// be opened or decoded as UTF-8. Missing .gitignore/.contextfiles
// discovered during a walk never produce this error.
type RuleReadError struct {
	Path string
	Err  error
}

func (e *RuleReadError) Error() string {
	return fmt.Sprintf("failed to read rule file %q: %v", e.Path, e.Err)
}

func (e *RuleReadError) Unwrap() error { return e.Err }

// LargestFile is one entry of the oversize diagnostic's top-N list.
type LargestFile struct {
	RelPath string
	Bytes   int64
}

// DetailedContextSizeError is raised when the aggregate size budget is
// exceeded. It carries enough structured data for a front-end to
// render a useful diagnostic without re-scanning the tree.
type DetailedContextSizeError struct {
	LimitBytes    int64
	ObservedBytes int64
	LargestFiles  []LargestFile
}

func (e *DetailedContextSizeError) Error() string {
	return fmt.Sprintf(
		"context size limit of %d bytes exceeded: observed %d bytes across %d largest files",
		e.LimitBytes, e.ObservedBytes, len(e.LargestFiles),
	)
}

// ErrCancelledType is the type of ErrCancelled, returned when external
// cancellation was observed at a directory boundary during the walk.
type ErrCancelledType struct{}

func (ErrCancelledType) Error() string { return "context walk cancelled" }

// ErrCancelled is the sentinel value returned when a caller-supplied
// context is cancelled mid-walk.
var ErrCancelled error = ErrCancelledType{}
