package source

import "testing"

func TestInterner(t *testing.T) {
	in := NewInterner()
	if s, ok := in.Lookup(NoStringID); !ok || s != "" {
		t.Fatalf("NoStringID must map to empty string")
	}
	a := in.Intern("alpha")
	b := in.Intern("beta")
	if a == b || a == NoStringID {
		t.Fatalf("unexpected ids %d %d", a, b)
	}
	if again := in.Intern("alpha"); again != a {
		t.Fatalf("re-intern returned %d, want %d", again, a)
	}
	if in.MustLookup(b) != "beta" {
		t.Fatalf("MustLookup(b) = %q", in.MustLookup(b))
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Fatalf("unknown id must not resolve")
	}
	if in.Len() != 3 || len(in.Snapshot()) != 3 {
		t.Fatalf("Len = %d", in.Len())
	}
}

func TestInternerMustLookupPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	NewInterner().MustLookup(StringID(5))
}
