package internal

// flushThreshold is how many bytes must be consumed between two progress
// batches. Fixed, not configurable.
const flushThreshold = 1024 * 1024

// Occurrence is a single located match, anchored at the position of the
// last character that completed it. Offsets count what has been consumed
// so far, so a match of "hi" at the very start of a file ends with
// LineChar == 2.
type Occurrence struct {
	Line      uint64
	LineChar  uint64
	LineByte  uint64
	TotalByte uint64
}

// ScanProgress is one batch of results. Occurrences preserve discovery
// order; consecutive batches carry increasing byte counts.
type ScanProgress struct {
	BytesScanned uint64
	Occurrences  []Occurrence
}

// progressReporter buffers occurrences and hands them to the caller in
// batches, at most once per flushThreshold consumed bytes plus one final
// batch at end of stream. It never flushes on error or cancellation:
// whatever was already delivered stands, the rest is dropped with the
// scan.
type progressReporter struct {
	emit     func(ScanProgress)
	pending  []Occurrence
	lastSent uint64
}

func newProgressReporter(emit func(ScanProgress)) *progressReporter {
	return &progressReporter{emit: emit}
}

func (p *progressReporter) Add(o Occurrence) {
	p.pending = append(p.pending, o)
}

// MaybeFlush emits a batch once enough bytes went by since the last one.
func (p *progressReporter) MaybeFlush(totalBytes uint64) {
	if totalBytes-p.lastSent > flushThreshold {
		p.flush(totalBytes)
	}
}

// Final emits the closing batch for a normally exhausted stream.
func (p *progressReporter) Final(totalBytes uint64) {
	p.flush(totalBytes)
}

func (p *progressReporter) flush(totalBytes uint64) {
	batch := p.pending
	p.pending = nil
	p.lastSent = totalBytes
	p.emit(ScanProgress{BytesScanned: totalBytes, Occurrences: batch})
}
