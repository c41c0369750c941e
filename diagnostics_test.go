package textlayers

import (
	"context"
	"testing"
	"time"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestDiagnosticsBroadcast(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayers")
	defer teardown()
	//
	diag := NewDiagnostics()
	defer diag.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, ok := diag.Subscribe(ctx, 4)
	if !ok {
		t.Fatalf("cannot subscribe to diagnostics")
	}
	diag.Warn(Warning{Layer: 2, Msg: "variable 'x' not bound", Selection: "s1"})
	select {
	case msg := <-ch:
		w, ok := msg.(Warning)
		if !ok {
			t.Fatalf("expected a Warning, have %T", msg)
		}
		if w.Layer != 2 {
			t.Errorf("expected warning for layer 2, have %d", w.Layer)
		}
		t.Logf("received warning: %s", w)
	case <-time.After(2 * time.Second):
		t.Fatalf("no warning received")
	}
	if n := len(diag.Warnings()); n != 1 {
		t.Errorf("expected 1 warning to be kept, have %d", n)
	}
}

func TestNilDiagnostics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textlayers")
	defer teardown()
	//
	var diag *Diagnostics
	diag.Warn(Warning{Msg: "traced only"})
	if diag.Warnings() != nil {
		t.Errorf("nil diagnostics should not keep warnings")
	}
	diag.Close()
}
