package session

import (
	"context"
	"testing"
)

func TestRecorderUnbounded(t *testing.T) {
	r := NewRecorder(0)
	for i := 0; i < 5; i++ {
		r.OnFrame(FrameRecord{Frame: i})
	}
	if r.Len() != 5 {
		t.Fatalf("expected 5 records, got %d", r.Len())
	}
}

func TestRecorderRing(t *testing.T) {
	r := NewRecorder(3)
	for i := 0; i < 7; i++ {
		r.OnFrame(FrameRecord{Frame: i})
	}

	recs := r.Records()
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	for i, want := range []int{4, 5, 6} {
		if recs[i].Frame != want {
			t.Errorf("record %d: expected frame %d, got %d", i, want, recs[i].Frame)
		}
	}

	r.Reset()
	if r.Len() != 0 {
		t.Errorf("expected empty recorder after reset, got %d", r.Len())
	}
}

func TestRecorderObservesSession(t *testing.T) {
	s := New(DefaultOptions())
	rec := NewRecorder(0)
	s.AddObserver(rec)

	if err := s.Run(context.Background(), 30, 1.0/60); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	recs := rec.Records()
	if len(recs) != 30 {
		t.Fatalf("expected 30 records, got %d", len(recs))
	}
	last := recs[len(recs)-1]
	if last.Frame != 29 {
		t.Errorf("expected last frame 29, got %d", last.Frame)
	}
	if last.P1 != s.State().Points[1].Pos {
		t.Errorf("recorded P1 %v does not match state %v", last.P1, s.State().Points[1].Pos)
	}
}

func TestEnsembleDeterministic(t *testing.T) {
	setup := func(idx int, s *Session) error {
		s.Randomize()
		return s.SetParam("wind", float64(idx))
	}

	run := func() []*Session {
		out, err := NewEnsemble(DefaultOptions(), 4, 100).Run(context.Background(), 60, 1.0/60, setup)
		if err != nil {
			t.Fatalf("ensemble failed: %v", err)
		}
		return out
	}

	a, b := run(), run()
	if len(a) != 4 {
		t.Fatalf("expected 4 sessions, got %d", len(a))
	}
	for i := range a {
		if a[i].State() != b[i].State() {
			t.Errorf("member %d not reproducible", i)
		}
		if a[i].Particles().Len() != b[i].Particles().Len() {
			t.Errorf("member %d particle count differs", i)
		}
		if w, _ := a[i].Param("wind"); w != float64(i) {
			t.Errorf("member %d: expected wind %d, got %f", i, i, w)
		}
	}
	if a[0].State() == a[1].State() {
		t.Error("different seeds produced identical states")
	}
}

func TestEnsembleSetupError(t *testing.T) {
	setup := func(idx int, s *Session) error {
		return s.SetParam("viscosity", 1)
	}
	if _, err := NewEnsemble(DefaultOptions(), 2, 1).Run(context.Background(), 10, 0.016, setup); err == nil {
		t.Error("expected setup error")
	}
}
