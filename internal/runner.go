package internal

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"
)

// Runner fans a set of target files out to a worker pool and gives every
// target its own independent scan. Parallelism exists only across
// targets; each scan itself stays a single forward-progressing task.
type Runner struct {
	scanner *StreamScanner
}

func NewRunner() *Runner {
	return &Runner{scanner: NewStreamScanner()}
}

// Run scans every target of opts and reports events through onResult.
// onResult may be called from several workers at once and must be safe
// for that; events for one target are always in order.
func (rn *Runner) Run(ctx context.Context, opts RunOptions, onResult func(ScanResult)) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	req := opts.Request()

	var scanned AppStats
	scanned.Start()

	targetCh := make(chan target, 256)
	var wg sync.WaitGroup

	pool, err := ants.NewPoolWithFunc(opts.Threads, func(i interface{}) {
		defer wg.Done()
		if ctx.Err() != nil {
			return
		}
		t := i.(target)
		rn.scanTarget(ctx, t, req, onResult, &scanned)
	})
	if err != nil {
		return fmt.Errorf("pool: %w", err)
	}
	defer pool.Release()

	// feeder: expand archives into per-entry targets
	go func() {
		defer close(targetCh)
		for _, path := range opts.Paths {
			if ctx.Err() != nil {
				return
			}
			if opts.Archives && IsArchive(path) {
				walkArchive(ctx, path, func(t target) {
					select {
					case targetCh <- t:
					case <-ctx.Done():
					}
				})
				continue
			}
			select {
			case targetCh <- target{path: path}:
			case <-ctx.Done():
				return
			}
		}
	}()

	// periodic stats
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case t, ok := <-targetCh:
			if !ok {
				wg.Wait()
				return nil
			}
			wg.Add(1)
			if err := pool.Invoke(t); err != nil {
				wg.Done()
				logrus.WithError(err).Error("submit target")
			}
		case <-ticker.C:
			logrus.Infof("Stats: files=%d bytes=%d occurrences=%d errors=%d",
				scanned.FilesScanned.Load(), scanned.BytesScanned.Load(),
				scanned.Occurrences.Load(), scanned.Errors.Load())
		case <-ctx.Done():
			wg.Wait()
			return ctx.Err()
		}
	}
}

func (rn *Runner) scanTarget(ctx context.Context, t target, req ScanRequest, onResult func(ScanResult), stats *AppStats) {
	name := t.String()
	var lastBytes uint64
	onProgress := func(p ScanProgress) {
		stats.Occurrences.Add(int64(len(p.Occurrences)))
		stats.BytesScanned.Add(int64(p.BytesScanned - lastBytes))
		lastBytes = p.BytesScanned
		onResult(ScanResult{Target: name, Progress: p})
	}

	var err error
	if t.isArchive {
		var f io.ReadCloser
		var closeFS func() error
		f, closeFS, err = openArchiveEntry(ctx, t.path, t.innerPath)
		if err == nil {
			err = rn.scanner.Scan(ctx, f, req, onProgress)
			_ = f.Close()
			_ = closeFS()
		}
	} else {
		err = rn.scanner.ScanFile(ctx, t.path, req, onProgress)
	}

	if err != nil {
		if ctx.Err() != nil {
			// cancelled, not an error; nothing further is reported
			return
		}
		stats.Errors.Add(1)
		onResult(ScanResult{Target: name, Err: err})
		return
	}
	stats.FilesScanned.Add(1)
	onResult(ScanResult{Target: name, Done: true})
}
