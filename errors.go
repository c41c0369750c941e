package textlayers

import (
	"fmt"
)

// RenderError is an error type for the textlayers module.
type RenderError string

func (e RenderError) Error() string {
	return string(e)
}

// ErrMalformedRegion is flagged whenever a text region has negative offsets or
// ends before it begins.
const ErrMalformedRegion = RenderError("malformed text region")

// ErrUnbound is returned by a layer's interval source if the layer cannot be
// resolved for a selection. Layers reporting ErrUnbound are rendered empty.
const ErrUnbound = RenderError("highlight layer is unbound")

// ErrUnknownFormat is flagged for output formats other than html, ansi or text.
const ErrUnknownFormat = RenderError("unknown output format")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = RenderError("illegal arguments")

// SelectionError signals a malformed selection, i.e. a selection without
// extractable text. Rendering of the offending selection is aborted, other
// selections are not affected.
type SelectionError struct {
	Selection Selection
	Msg       string
	Err       error // underlying cause, may be nil
}

// Malformed creates a SelectionError for sel.
func Malformed(sel Selection, msg string, cause error) *SelectionError {
	return &SelectionError{Selection: sel, Msg: msg, Err: cause}
}

func (e *SelectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("selection %s: %s: %v", e.Selection, e.Msg, e.Err)
	}
	return fmt.Sprintf("selection %s: %s", e.Selection, e.Msg)
}

func (e *SelectionError) Unwrap() error {
	return e.Err
}

// SinkError wraps an error of the output writer. A SinkError aborts the whole
// render; output already written is not rolled back.
type SinkError struct {
	Err error
}

func (e *SinkError) Error() string {
	return "cannot write output: " + e.Err.Error()
}

func (e *SinkError) Unwrap() error {
	return e.Err
}

// Warning is a non-fatal configuration problem, e.g. a highlight layer which
// could not be bound for a selection. Warnings are sent to a Diagnostics channel.
type Warning struct {
	Layer     int    // layer index, 0 if not layer-specific
	Selection string // selection the warning refers to, may be empty
	Msg       string
	Err       error
}

func (w Warning) String() string {
	s := w.Msg
	if w.Layer > 0 {
		s = fmt.Sprintf("layer %d: %s", w.Layer, s)
	}
	if w.Selection != "" {
		s = fmt.Sprintf("%s (selection %s)", s, w.Selection)
	}
	if w.Err != nil {
		s = s + ": " + w.Err.Error()
	}
	return s
}
