package wholebrain

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// OutputPlaceholder marks where the parcellation label goes in an output
// filename template.
const OutputPlaceholder = "{parcellation}"

// DefaultOutputTemplate matches the canonical output naming convention.
const DefaultOutputTemplate = "desc-" + OutputPlaceholder + "_wholebrainnoddi.csv"

var outputHeader = []string{ColumnParticipantID, "whole_od", "whole_icvf", "whole_isovf"}

// GroupByParcellation buckets whole-brain rows by parcellation label,
// preserving encounter order within each bucket.
func GroupByParcellation(rows []Metrics) map[string][]Metrics {
	groups := make(map[string][]Metrics)
	for _, m := range rows {
		groups[m.Parcellation] = append(groups[m.Parcellation], m)
	}
	return groups
}

// WriteFiles writes one CSV per parcellation label into dir, visiting
// labels in sorted order so output is stable across runs. It returns the
// written paths.
func WriteFiles(dir, template string, rows []Metrics) ([]string, error) {
	groups := GroupByParcellation(rows)
	labels := make([]string, 0, len(groups))
	for label := range groups {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	paths := make([]string, 0, len(labels))
	for _, label := range labels {
		path := filepath.Join(dir, OutputFileName(template, label))
		if err := writeFile(path, groups[label]); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// OutputFileName expands the filename template for one parcellation label.
func OutputFileName(template, label string) string {
	return strings.ReplaceAll(template, OutputPlaceholder, label)
}

func writeFile(path string, rows []Metrics) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wholebrain write (%s): %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(outputHeader); err != nil {
		return fmt.Errorf("wholebrain write (%s): %w", path, err)
	}
	for _, m := range rows {
		record := []string{
			m.ParticipantID,
			formatFloat(m.OD),
			formatFloat(m.ICVF),
			formatFloat(m.IsoVF),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("wholebrain write (%s): %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("wholebrain write (%s): %w", path, err)
	}
	return f.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
