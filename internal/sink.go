package internal

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// ScanResult is one event reported by the runner for a target: a progress
// batch, a terminal error, or completion.
type ScanResult struct {
	Target   string
	Progress ScanProgress
	Done     bool
	Err      error
}

// ResultSink accumulates occurrences per target in discovery order and
// keeps the run totals. Safe for concurrent use by pool workers.
type ResultSink struct {
	stats *AppStats

	mu       sync.Mutex
	order    []string
	byTarget map[string][]Occurrence
	bytes    map[string]uint64
}

func NewResultSink(stats *AppStats) *ResultSink {
	stats.Start()
	return &ResultSink{
		stats:    stats,
		byTarget: make(map[string][]Occurrence),
		bytes:    make(map[string]uint64),
	}
}

// Handle consumes one runner event.
func (s *ResultSink) Handle(res ScanResult) {
	if res.Err != nil {
		s.stats.Errors.Add(1)
		logrus.WithFields(logrus.Fields{"target": res.Target, "err": res.Err}).Error("scan failed")
		return
	}
	if res.Done {
		s.stats.FilesScanned.Add(1)
		n := len(s.Occurrences(res.Target))
		logrus.WithFields(logrus.Fields{"target": res.Target, "occurrences": n}).Info("scan complete")
		return
	}

	s.stats.Occurrences.Add(int64(len(res.Progress.Occurrences)))

	s.mu.Lock()
	if _, seen := s.byTarget[res.Target]; !seen {
		s.order = append(s.order, res.Target)
	}
	s.byTarget[res.Target] = append(s.byTarget[res.Target], res.Progress.Occurrences...)
	// BytesScanned in a batch is cumulative for its target, count the delta.
	s.stats.BytesScanned.Add(int64(res.Progress.BytesScanned - s.bytes[res.Target]))
	s.bytes[res.Target] = res.Progress.BytesScanned
	s.mu.Unlock()
}

// Occurrences returns the matches collected so far for one target.
func (s *ResultSink) Occurrences(target string) []Occurrence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byTarget[target]
}

// All returns every collected occurrence, targets in first-seen order.
func (s *ResultSink) All() []Occurrence {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []Occurrence
	for _, t := range s.order {
		all = append(all, s.byTarget[t]...)
	}
	return all
}
