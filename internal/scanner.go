package internal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// StreamScanner runs one forward-only scan over a UTF-8 byte stream and
// reports every occurrence of the request's token. A single scan owns its
// counters and buffers exclusively; run scans of different streams on
// separate StreamScanner values if you need parallelism.
type StreamScanner struct{}

func NewStreamScanner() *StreamScanner { return &StreamScanner{} }

// Scan decodes r character by character, feeding the boundary tracker and
// the matcher, and invokes onProgress with ordered result batches. It
// returns nil on normal stream exhaustion, ctx.Err() when cancelled, and
// a terminal error otherwise. After cancellation or an error nothing more
// is emitted; occurrences buffered since the last batch are dropped.
func (s *StreamScanner) Scan(ctx context.Context, r io.Reader, req ScanRequest, onProgress func(ScanProgress)) error {
	if err := req.Validate(); err != nil {
		return err
	}

	dec := newRuneDecoder(r)
	pos := newPosition()
	matcher := newTokenMatcher(req.Search)
	reporter := newProgressReporter(onProgress)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		reporter.MaybeFlush(pos.TotalByte)

		ch, size, err := dec.Next()
		if err != nil {
			if err == io.EOF {
				reporter.Final(pos.TotalByte)
				return nil
			}
			return err
		}

		pos.Advance(size)

		switch {
		case ch == '\n':
			pos.Newline()
			matcher.Reset()
		case ch == req.Separator:
			// Compared before folding: the separator is taken
			// literally, even when the token match is not.
			matcher.Reset()
		}

		if matcher.Feed(foldRune(ch)) {
			reporter.Add(Occurrence{
				Line:      pos.Line,
				LineChar:  pos.LineChar,
				LineByte:  pos.LineByte,
				TotalByte: pos.TotalByte,
			})
		}
	}
}

// ScanFile opens path and scans it. Open failures are reported without
// starting the scan.
func (s *StreamScanner) ScanFile(ctx context.Context, path string, req ScanRequest, onProgress func(ScanProgress)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	logrus.WithFields(logrus.Fields{"file": path, "search": req.Search}).Debug("scan started")
	return s.Scan(ctx, f, req, onProgress)
}
