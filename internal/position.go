package internal

// position tracks where the scan currently is. All counters are measured
// in units consumed so far, so after the first character of a line the
// in-line character offset is 1. Lines are numbered from 1.
type position struct {
	Line      uint64
	LineChar  uint64
	LineByte  uint64
	TotalByte uint64
}

func newPosition() position {
	return position{Line: 1}
}

// Advance accounts for one decoded character of the given encoded length.
// Characters count 1 toward the character offset no matter how many bytes
// encode them.
func (p *position) Advance(size int) {
	p.LineChar++
	p.LineByte += uint64(size)
	p.TotalByte += uint64(size)
}

// Newline moves to the next line. The total byte count is untouched, the
// newline itself has already been accounted for by Advance.
func (p *position) Newline() {
	p.Line++
	p.LineChar = 0
	p.LineByte = 0
}
