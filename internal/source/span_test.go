package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Fatalf("Cover = %v", got)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("cross-file cover must keep receiver, got %v", got)
	}
}

func TestSpanZeroide(t *testing.T) {
	s := Span{File: 0, Start: 3, End: 9}
	if z := s.ZeroideToEnd(); !z.Empty() || z.Start != 9 {
		t.Fatalf("ZeroideToEnd = %v", z)
	}
	if z := s.ZeroideToStart(); !z.Empty() || z.Start != 3 {
		t.Fatalf("ZeroideToStart = %v", z)
	}
	if s.Len() != 6 {
		t.Fatalf("Len = %d", s.Len())
	}
}
