package internal

import (
	"bufio"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

const csvHeader = "Byte offset,Line,Char offset in line, Byte offset in line\n"

// csvChunkRows is how many rows are written between flushes.
const csvChunkRows = 1000

// WriteCSV persists the occurrence list, one row per occurrence in the
// given order, under a fixed header.
func WriteCSV(path string, occs []Occurrence) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, o := range occs {
		if _, err := fmt.Fprintf(w, "%d,%d,%d,%d\n", o.TotalByte, o.Line, o.LineChar, o.LineByte); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
		if (i+1)%csvChunkRows == 0 {
			if err := w.Flush(); err != nil {
				return fmt.Errorf("flush: %w", err)
			}
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	logrus.WithFields(logrus.Fields{"file": path, "rows": len(occs)}).Info("CSV export complete")
	return nil
}
