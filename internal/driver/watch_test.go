package driver

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

var errStop = errors.New("stop")

func TestWatchReportsChangedInputs(t *testing.T) {
	_, path := writeUnits(t, map[string]string{"a.st": "let a = 1;", "b.st": "let b = 1;", "other.txt": ""})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got := make(chan []string, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{path("a.st"), path("b.st")}, 20*time.Millisecond, func(changed []string) error {
			got <- changed
			return errStop
		})
	}()

	// даём наблюдателю подписаться
	deadline := time.After(4 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case changed := <-got:
			if len(changed) == 0 || changed[0] != path("b.st") {
				t.Fatalf("changed = %v", changed)
			}
			if err := <-done; !errors.Is(err, errStop) {
				t.Fatalf("Watch returned %v", err)
			}
			return
		case <-tick.C:
			if err := os.WriteFile(path("other.txt"), []byte("x"), 0o600); err != nil {
				t.Fatalf("write: %v", err)
			}
			if err := os.WriteFile(path("b.st"), []byte("let b = 2;"), 0o600); err != nil {
				t.Fatalf("write: %v", err)
			}
		case <-deadline:
			t.Fatalf("no change reported")
		}
	}
}
