package internal

import (
	"context"
	"strings"
	"testing"
)

func BenchmarkScan(b *testing.B) {
	line := "the quick brown fox jumps over the lazy dog, again and again\n"
	input := strings.Repeat(line, 20000)
	req := ScanRequest{Search: "lazy", Separator: ','}
	s := NewStreamScanner()

	b.SetBytes(int64(len(input)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		err := s.Scan(context.Background(), strings.NewReader(input), req, func(ScanProgress) {})
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMatcherFeed(b *testing.B) {
	m := newTokenMatcher("abcabd")
	input := []rune(strings.Repeat("abcabcabd", 1000))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Reset()
		for _, r := range input {
			m.Feed(r)
		}
	}
}
