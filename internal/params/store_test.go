package params

import "testing"

func TestStore_SetGetLookup(t *testing.T) {
	s := New()
	if _, ok := s.Lookup("mean"); ok {
		t.Fatal("unset parameter reported as present")
	}
	s.Set("mean", 12.5)
	if got := s.Get("mean"); got != 12.5 {
		t.Fatalf("Get(mean) = %v, want 12.5", got)
	}
	if v, ok := s.Lookup("mean"); !ok || v != 12.5 {
		t.Fatalf("Lookup(mean) = %v, %v", v, ok)
	}
}

func TestStore_ReadyLifecycle(t *testing.T) {
	s := New()
	if s.Ready() {
		t.Fatal("new store must not be ready")
	}
	s.Set("n", 10)
	s.MarkReady()
	if !s.Ready() {
		t.Fatal("store should be ready after MarkReady")
	}
	s.Reset()
	if s.Ready() {
		t.Fatal("Reset must clear readiness")
	}
	if _, ok := s.Lookup("n"); ok {
		t.Fatal("Reset must clear values")
	}
}

func TestStore_ResetKeepsRounding(t *testing.T) {
	s := New()
	s.SetRounding(2)
	s.Reset()
	if got := s.Rounding(); got != 2 {
		t.Fatalf("Rounding after Reset = %d, want 2", got)
	}
}

func TestStore_Round(t *testing.T) {
	tests := []struct {
		digits int
		in     float64
		want   float64
	}{
		{4, 0.84134474, 0.8413},
		{2, 0.84134474, 0.84},
		{1, 0.25, 0.3},
		{4, -1.23456, -1.2346},
		{4, 2, 2},
	}
	s := New()
	for _, tt := range tests {
		s.SetRounding(tt.digits)
		if got := s.Round(tt.in); got != tt.want {
			t.Errorf("Round(%v) with %d digits = %v, want %v", tt.in, tt.digits, got, tt.want)
		}
	}
}
