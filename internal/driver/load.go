package driver

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"strata/internal/pipeline"
	"strata/internal/source"
)

// Unit is one input file ready to be fed to a session.
type Unit struct {
	Path string
	// Name is the unit name reported in diagnostics.
	Name string
	Text string
	Hash [sha256.Size]byte
}

// LoadUnits reads paths concurrently. The result keeps argument order; CRLF
// and a BOM are normalised. The first read error cancels the rest.
func LoadUnits(ctx context.Context, paths []string, jobs int, sink pipeline.Sink) ([]Unit, error) {
	if sink == nil {
		sink = pipeline.NopSink{}
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	units := make([]Unit, len(paths))
	if len(paths) == 0 {
		return units, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			start := time.Now()
			sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusWorking})
			// #nosec G304 -- path is provided by the caller
			content, err := os.ReadFile(path)
			if err != nil {
				sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusError, Err: err})
				return fmt.Errorf("load %s: %w", path, err)
			}
			content, _ = source.NormalizeContent(content)
			// индекс i уникален для горутины, мьютекс не нужен
			units[i] = Unit{
				Path: path,
				Name: filepath.ToSlash(path),
				Text: string(content),
				Hash: sha256.Sum256(content),
			}
			sink.OnEvent(pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusWorking, Elapsed: time.Since(start)})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}
