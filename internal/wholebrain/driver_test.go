package wholebrain

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/noddictl/internal/bids"
	"github.com/danmuck/noddictl/internal/testutil/testlog"
)

const resultsHeader = "name\tod_mean\ticvf_mean\tisovf_mean\tn_vx_masked\n"

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
}

func newLayout(t *testing.T, root string) *bids.Layout {
	t.Helper()
	layout, err := bids.NewLayout(root)
	if err != nil {
		t.Fatalf("new layout: %v", err)
	}
	return layout
}

type recordingSink struct {
	rows []Metrics
	err  error
}

func (s *recordingSink) Put(m Metrics) error {
	if s.err != nil {
		return s.err
	}
	s.rows = append(s.rows, m)
	return nil
}

func TestDriverRun(t *testing.T) {
	testlog.Start(t)
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"sub-001/dwi/sub-001_model-noddi_desc-custom_results.tsv": resultsHeader +
			"A\t0.2\t0.5\t0.1\t100\n" +
			"B\t0.4\t0.7\t0.3\t300\n",
	})

	sink := &recordingSink{}
	driver := NewDriver(newLayout(t, root), testAggregator(), sink)
	rows := driver.Run([]string{"sub-001", "sub-002"})

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	m := rows[0]
	if m.ParticipantID != "sub-001" {
		t.Fatalf("participant identifier not preserved: %q", m.ParticipantID)
	}
	if m.Parcellation != "custom" {
		t.Fatalf("parcellation: %q", m.Parcellation)
	}
	if !approx(m.OD, 0.35) || !approx(m.ICVF, 0.65) || !approx(m.IsoVF, 0.25) {
		t.Fatalf("unexpected means: %+v", m)
	}

	if len(sink.rows) != 1 || sink.rows[0] != m {
		t.Fatalf("sink did not receive the row: %+v", sink.rows)
	}
}

func TestDriverRunMultipleSchemes(t *testing.T) {
	testlog.Start(t)
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"sub-001/dwi/sub-001_model-noddi_desc-custom_results.tsv": resultsHeader +
			"A\t0.2\t0.5\t0.1\t100\n",
		"sub-001/dwi/sub-001_model-noddi_desc-aparcaseg_results.tsv": resultsHeader +
			"ctx-lh-precentral\t0.3\t0.6\t0.2\t50\n" +
			"Left-Cerebral-White-Matter\t0.9\t0.9\t0.9\t5000\n",
	})

	driver := NewDriver(newLayout(t, root), testAggregator(), nil)
	rows := driver.Run([]string{"sub-001"})

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// files are visited in path order: aparcaseg sorts first
	if rows[0].Parcellation != "aparcaseg" || rows[1].Parcellation != "custom" {
		t.Fatalf("unexpected schemes: %q, %q", rows[0].Parcellation, rows[1].Parcellation)
	}
	if !approx(rows[0].OD, 0.3) {
		t.Fatalf("gm filter not applied: %+v", rows[0])
	}
}

func TestDriverSkipsDegenerateTables(t *testing.T) {
	testlog.Start(t)
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		// zero voxel weight
		"sub-001/dwi/sub-001_model-noddi_desc-custom_results.tsv": resultsHeader +
			"A\t0.2\t0.5\t0.1\t0\n",
		// malformed table
		"sub-002/dwi/sub-002_model-noddi_desc-custom_results.tsv": "name\tod_mean\nA\t0.2\n",
		// healthy participant keeps the batch going
		"sub-003/dwi/sub-003_model-noddi_desc-custom_results.tsv": resultsHeader +
			"A\t0.2\t0.5\t0.1\t100\n",
	})

	driver := NewDriver(newLayout(t, root), testAggregator(), nil)
	rows := driver.Run([]string{"sub-001", "sub-002", "sub-003"})

	if len(rows) != 1 {
		t.Fatalf("expected only the healthy participant, got %d rows", len(rows))
	}
	if rows[0].ParticipantID != "sub-003" {
		t.Fatalf("unexpected participant: %q", rows[0].ParticipantID)
	}
}

func TestDriverSinkFailureDoesNotDropRow(t *testing.T) {
	testlog.Start(t)
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"sub-001/dwi/sub-001_model-noddi_desc-custom_results.tsv": resultsHeader +
			"A\t0.2\t0.5\t0.1\t100\n",
	})

	sink := &recordingSink{err: errors.New("sink down")}
	driver := NewDriver(newLayout(t, root), testAggregator(), sink)
	rows := driver.Run([]string{"sub-001"})

	if len(rows) != 1 {
		t.Fatalf("sink failure must not drop the row, got %d rows", len(rows))
	}
}

func TestDriverUsesUnstrippedIdentifier(t *testing.T) {
	testlog.Start(t)
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"sub-ABC01/dwi/sub-ABC01_model-noddi_desc-custom_results.tsv": resultsHeader +
			"A\t0.2\t0.5\t0.1\t100\n",
	})

	driver := NewDriver(newLayout(t, root), testAggregator(), nil)
	rows := driver.Run([]string{"sub-ABC01"})
	if len(rows) != 1 || rows[0].ParticipantID != "sub-ABC01" {
		t.Fatalf("expected verbatim roster identifier, got %+v", rows)
	}
}

var _ Sink = (*recordingSink)(nil)
