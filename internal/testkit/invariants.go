// Package testkit holds checks shared by parser tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"strata/internal/ast"
	"strata/internal/source"
)

// CheckSpanInvariants runs the span invariants on a parsed unit:
// the file span covers exactly the unit content, and every top-level item
// span is non-empty, inside the file span and after the previous item.
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.Start != 0 || f.Span.End != lenContent {
		return fmt.Errorf("file span %v does not cover content of %d bytes", f.Span, lenContent)
	}

	var prevEnd uint32
	for i, it := range f.Items {
		item := b.Items.Get(it)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", it)
		}
		sp := item.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty item span: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("item span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if sp.Start < f.Span.Start || sp.End > f.Span.End {
			return fmt.Errorf("item span %v is outside file span %v", sp, f.Span)
		}
		// элементы идут в порядке исходника и не пересекаются
		if i > 0 && sp.Start < prevEnd {
			return fmt.Errorf("item %d span %v overlaps previous item ending at %d", i, sp, prevEnd)
		}
		prevEnd = sp.End
	}
	return nil
}
