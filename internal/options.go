package internal

import (
	"errors"
	"runtime"
)

// DefaultSeparator is used when the caller configures nothing else.
const DefaultSeparator = ','

var ErrEmptySearch = errors.New("search string is empty")

// ScanRequest - parameters of a single scan, immutable for its lifetime.
type ScanRequest struct {
	Search    string // folded by the matcher at scan start
	Separator rune   // single character, compared unfolded
}

// Validate rejects requests that must not start a scan.
func (r ScanRequest) Validate() error {
	if r.Search == "" {
		return ErrEmptySearch
	}
	return nil
}

// PickSeparator applies the separator input rule: from the new input,
// keep the first character that differs from the previous separator.
// Empty or unchanged input keeps the previous value.
func PickSeparator(prev rune, input string) rune {
	for _, ch := range input {
		if ch != prev {
			return ch
		}
	}
	return prev
}

// RunOptions - public options from CLI for a whole run over one or more
// target files.
type RunOptions struct {
	Paths     []string
	Search    string
	Separator rune
	Threads   int
	Archives  bool
	CSVPath   string
}

// Validate checks invariants.
func (o *RunOptions) Validate() error {
	if len(o.Paths) == 0 {
		return errors.New("at least one target file is required")
	}
	if o.Search == "" {
		return ErrEmptySearch
	}
	return nil
}

// Prepare sets sensible defaults.
func (o *RunOptions) Prepare() {
	if o.Separator == 0 {
		o.Separator = DefaultSeparator
	}
	if o.Threads <= 0 {
		o.Threads = max(4, runtime.GOMAXPROCS(0))
	}
}

// Request builds the per-scan request shared by every target of the run.
func (o *RunOptions) Request() ScanRequest {
	return ScanRequest{Search: o.Search, Separator: o.Separator}
}
