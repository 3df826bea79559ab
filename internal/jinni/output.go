package jinni

import "strings"

// OutputSink accumulates rendered file blocks in the order the walker
// visits them and joins them per mode. It holds no filesystem state
// and is safe to discard after String is called once.
type OutputSink struct {
	listOnly bool
	lines    []string
}

// NewOutputSink returns an empty sink for the given mode.
func NewOutputSink(listOnly bool) *OutputSink {
	return &OutputSink{listOnly: listOnly}
}

// Add appends one processed file's rendered block in visitation order.
func (s *OutputSink) Add(pf *ProcessedFile) {
	s.lines = append(s.lines, pf.Block)
}

// String renders the accumulated blocks. Content mode joins fenced
// blocks with a single blank line between them and no trailing
// newline; list-only mode joins paths with LF and a trailing newline
// when non-empty.
func (s *OutputSink) String() string {
	if len(s.lines) == 0 {
		return ""
	}
	if s.listOnly {
		return strings.Join(s.lines, "\n") + "\n"
	}
	return strings.Join(s.lines, "\n\n")
}
