// Package csvio writes and reads the pipeline's CSV files as UTF-8 with a
// byte-order mark, which is what common spreadsheet tools need to render
// Bengali text correctly.
package csvio

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/text/encoding/unicode"

	"github.com/bdvoterdata/voterscan/internal/pdf"
	"github.com/bdvoterdata/voterscan/internal/voter"
)

// rawHeader is the column layout of the raw extraction dump.
var rawHeader = []string{"Page", "Text"}

// WriteRawLines writes the raw per-line extraction dump, one row per
// extracted line. The target file is fully overwritten.
func WriteRawLines(path string, pages []pdf.PageText) error {
	rows := make([][]string, 0, len(pages))
	for _, page := range pages {
		for _, line := range page.Lines {
			if line == "" {
				continue
			}
			rows = append(rows, []string{strconv.Itoa(page.Number), line})
		}
	}
	return writeAll(path, rawHeader, rows)
}

// WriteRecords writes structured voter records in the fixed column order.
// The target file is fully overwritten.
func WriteRecords(path string, records []voter.Record) error {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.Fields())
	}
	return writeAll(path, voter.Header(), rows)
}

// writeAll writes header plus rows through a BOM-emitting UTF-8 encoder.
func writeAll(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	// UTF8BOM's encoder emits the signature before the first byte.
	w := csv.NewWriter(unicode.UTF8BOM.NewEncoder().Writer(f))

	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write header to %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write rows to %s: %w", path, err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// ReadRecords reads a structured CSV back into records, tolerating a
// missing byte-order mark. Used by the final cleanup pass and by tests
// asserting round-trip fidelity.
func ReadRecords(path string) ([]voter.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(unicode.UTF8BOM.NewDecoder().Reader(f))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read %s: missing header row", path)
	}

	want := len(voter.Header())
	records := make([]voter.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != want {
			return nil, fmt.Errorf("read %s: row %d has %d columns, want %d",
				path, i+2, len(row), want)
		}
		page, err := strconv.Atoi(row[7])
		if err != nil {
			return nil, fmt.Errorf("read %s: row %d: bad page number %q", path, i+2, row[7])
		}
		records = append(records, voter.Record{
			Name:       row[0],
			NID:        row[1],
			Father:     row[2],
			Mother:     row[3],
			DOB:        row[4],
			Profession: row[5],
			Address:    row[6],
			Page:       page,
		})
	}
	return records, nil
}
