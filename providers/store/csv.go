// Package store persists roster snapshots between pipeline stages.
package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leofalp/firmscout/core/roster"
	"github.com/leofalp/firmscout/internal/utils"
)

// Store reads and writes named roster snapshots. Names are paths relative
// to wherever the implementation keeps its data.
type Store interface {
	Write(name string, records []roster.Record) error
	Read(name string) ([]roster.Record, error)
}

// CSV stores each snapshot as a headered CSV file under Dir.
type CSV struct {
	Dir string
}

func NewCSV(dir string) *CSV {
	return &CSV{Dir: dir}
}

func (s *CSV) path(name string) string {
	return filepath.Join(s.Dir, name)
}

// Write persists records to name, creating parent directories as needed.
// The file always carries the header row, even when records is empty.
func (s *CSV) Write(name string, records []roster.Record) error {
	path := s.path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer utils.CloseWithLog(f, path)

	w := csv.NewWriter(f)
	if err := w.Write(roster.Columns); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	for _, r := range records {
		if err := w.Write(r.Row()); err != nil {
			return fmt.Errorf("failed to write row to %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

// Read loads a snapshot previously written by Write. Columns are resolved
// by header name so files with reordered or extra columns still load.
// A missing file surfaces as fs.ErrNotExist for callers that treat absent
// stages as empty.
func (s *CSV) Read(name string) ([]roster.Record, error) {
	path := s.path(name)
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer utils.CloseWithLog(f, path)

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, col := range rows[0] {
		index[col] = i
	}
	field := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	records := make([]roster.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, roster.Record{
			Name:           field(row, "Name"),
			Website:        field(row, "Website"),
			HQ:             field(row, "HQ"),
			Category:       roster.Category(field(row, "Category")),
			Fit:            roster.Fit(field(row, "Fit (Core/Stretch)")),
			Notes:          field(row, "Notes"),
			Source:         field(row, "Source"),
			Conference:     field(row, "Conference"),
			Classification: roster.Classification(field(row, "Classification")),
		})
	}
	return records, nil
}
