package tsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var (
	ErrEmptyFile     = errors.New("tsv: empty file")
	ErrMissingColumn = errors.New("tsv: missing column")
)

// Sheet is one parsed tab-separated file: a header row plus data rows.
type Sheet struct {
	Path   string
	Header []string
	Rows   [][]string

	index map[string]int
}

// Read parses the tab-separated file at path into a Sheet.
func Read(path string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tsv read (%s): %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("tsv parse (%s): %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	s := &Sheet{
		Path:   path,
		Header: records[0],
		Rows:   records[1:],
		index:  make(map[string]int, len(records[0])),
	}
	for i, name := range s.Header {
		s.index[strings.TrimSpace(name)] = i
	}
	return s, nil
}

// Column returns the index of the named column.
func (s *Sheet) Column(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// RequireColumns verifies every named column is present in the header.
func (s *Sheet) RequireColumns(names ...string) error {
	for _, name := range names {
		if _, ok := s.index[name]; !ok {
			return fmt.Errorf("%w: %q in %s", ErrMissingColumn, name, s.Path)
		}
	}
	return nil
}

// Field returns the trimmed value at data row and named column.
func (s *Sheet) Field(row int, column string) (string, error) {
	i, ok := s.index[column]
	if !ok {
		return "", fmt.Errorf("%w: %q in %s", ErrMissingColumn, column, s.Path)
	}
	if row < 0 || row >= len(s.Rows) {
		return "", fmt.Errorf("tsv: row %d out of range in %s", row, s.Path)
	}
	if i >= len(s.Rows[row]) {
		return "", fmt.Errorf("tsv: row %d has no %q value in %s", row, column, s.Path)
	}
	return strings.TrimSpace(s.Rows[row][i]), nil
}

// FloatField parses the value at data row and named column as a float64.
func (s *Sheet) FloatField(row int, column string) (float64, error) {
	raw, err := s.Field(row, column)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("tsv: row %d column %q: parse %q: %w", row, column, raw, err)
	}
	return v, nil
}

// IntField parses the value at data row and named column as an int.
func (s *Sheet) IntField(row int, column string) (int, error) {
	raw, err := s.Field(row, column)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("tsv: row %d column %q: parse %q: %w", row, column, raw, err)
	}
	return v, nil
}
