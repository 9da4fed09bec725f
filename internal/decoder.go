package internal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// ErrInvalidEncoding is reported when the stream is not well-formed UTF-8.
var ErrInvalidEncoding = errors.New("invalid UTF-8 sequence")

// runeDecoder reads one Unicode scalar value at a time from a byte stream.
// The encoded length is taken from the high bits of the leading byte, the
// continuation bytes are read eagerly, and the whole span is validated
// before the rune is handed out.
type runeDecoder struct {
	br  *bufio.Reader
	buf [utf8.UTFMax]byte
}

func newRuneDecoder(r io.Reader) *runeDecoder {
	return &runeDecoder{br: bufio.NewReaderSize(r, 1024*1024)}
}

// encodedLen classifies a leading byte. Returns 0 for a continuation byte
// or an invalid leading byte.
func encodedLen(first byte) int {
	switch {
	case first&0b1000_0000 == 0:
		return 1 // 0xxxxxxx
	case first&0b1110_0000 == 0b1100_0000:
		return 2 // 110xxxxx
	case first&0b1111_0000 == 0b1110_0000:
		return 3 // 1110xxxx
	case first&0b1111_1000 == 0b1111_0000:
		return 4 // 11110xxx
	default:
		return 0
	}
}

// Next decodes one character and reports its encoded byte length.
// io.EOF is returned only when the stream ends exactly on a character
// boundary; running out of bytes mid-sequence is an encoding error.
func (d *runeDecoder) Next() (rune, int, error) {
	first, err := d.br.ReadByte()
	if err != nil {
		if err == io.EOF {
			return 0, 0, io.EOF
		}
		return 0, 0, fmt.Errorf("read: %w", err)
	}

	size := encodedLen(first)
	if size == 0 {
		return 0, 0, ErrInvalidEncoding
	}

	d.buf[0] = first
	if size > 1 {
		if _, err := io.ReadFull(d.br, d.buf[1:size]); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return 0, 0, ErrInvalidEncoding
			}
			return 0, 0, fmt.Errorf("read: %w", err)
		}
	}

	r, n := utf8.DecodeRune(d.buf[:size])
	if (r == utf8.RuneError && n <= 1) || n != size {
		return 0, 0, ErrInvalidEncoding
	}
	return r, size, nil
}
