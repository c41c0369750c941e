package textlayers

import (
	"context"
	"sync"

	"github.com/guiguan/caster"
)

// Diagnostics is a channel for non-fatal configuration warnings.
//
// Every warning is written to the tracer and kept for later inspection.
// Additionally, warnings are broadcast to all subscribers. Subscribers must
// drain their channels, as publishing blocks on full subscriber channels.
//
// A nil *Diagnostics is valid and will just trace warnings.
type Diagnostics struct {
	cast     *caster.Caster // broadcaster for warnings
	mx       sync.Mutex     // guards warnings
	warnings []Warning
}

// NewDiagnostics creates a diagnostics channel. Clients should call Close when
// done, to release subscribers.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{
		cast: caster.New(nil),
	}
}

// Warn reports a configuration warning.
func (d *Diagnostics) Warn(w Warning) {
	tracer().Errorf("warning: %s", w)
	if d == nil {
		return
	}
	d.mx.Lock()
	d.warnings = append(d.warnings, w)
	d.mx.Unlock()
	d.cast.Pub(w)
}

// Warnings returns all warnings reported so far.
func (d *Diagnostics) Warnings() []Warning {
	if d == nil {
		return nil
	}
	d.mx.Lock()
	defer d.mx.Unlock()
	ws := make([]Warning, len(d.warnings))
	copy(ws, d.warnings)
	return ws
}

// Subscribe returns a channel which will receive every subsequent warning
// (as values of type Warning). The subscription ends when ctx is done or
// when d is closed.
func (d *Diagnostics) Subscribe(ctx context.Context, capacity uint) (<-chan interface{}, bool) {
	if d == nil {
		return nil, false
	}
	return d.cast.Sub(ctx, capacity)
}

// Close shuts down the broadcaster and closes all subscriber channels.
func (d *Diagnostics) Close() {
	if d == nil {
		return
	}
	d.cast.Close()
}
