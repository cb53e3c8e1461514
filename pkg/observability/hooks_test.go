package observability

import (
	"context"
	"testing"
	"time"
)

type recordingHooks struct {
	NoopPlacerHooks
	started []string
}

func (r *recordingHooks) OnPhaseStart(_ context.Context, phase string) {
	r.started = append(r.started, phase)
}

func TestSetPlacerHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingHooks{}
	SetPlacerHooks(rec)
	Placer().OnPhaseStart(context.Background(), "free-placement")
	Placer().OnPhaseComplete(context.Background(), "free-placement", 3, time.Second, nil)

	if len(rec.started) != 1 || rec.started[0] != "free-placement" {
		t.Errorf("started = %v", rec.started)
	}
}

func TestSetPlacerHooksNil(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingHooks{}
	SetPlacerHooks(rec)
	SetPlacerHooks(nil)
	if Placer() != PlacerHooks(rec) {
		t.Error("nil registration should keep existing hooks")
	}
}

func TestReset(t *testing.T) {
	SetPlacerHooks(&recordingHooks{})
	Reset()
	if _, ok := Placer().(NoopPlacerHooks); !ok {
		t.Errorf("Placer() = %T after Reset, want NoopPlacerHooks", Placer())
	}
}
