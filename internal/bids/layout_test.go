package bids

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/noddictl/internal/testutil/testlog"
)

func seedTree(t *testing.T, root string, paths []string) {
	t.Helper()
	for _, rel := range paths {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
}

func TestNewLayoutMissingRoot(t *testing.T) {
	testlog.Start(t)
	if _, err := NewLayout(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatalf("expected error for missing root")
	}
}

func TestNewLayoutRootNotDirectory(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewLayout(path); err == nil {
		t.Fatalf("expected error for non-directory root")
	}
}

func TestLayoutGetFiltersByEntities(t *testing.T) {
	testlog.Start(t)
	root := t.TempDir()
	seedTree(t, root, []string{
		"sub-001/dwi/sub-001_model-noddi_desc-aparcaseg_results.tsv",
		"sub-001/dwi/sub-001_model-noddi_desc-custom_results.tsv",
		"sub-001/dwi/sub-001_model-dti_desc-custom_results.tsv",
		"sub-001/anat/sub-001_model-noddi_desc-custom_results.tsv",
		"sub-002/dwi/sub-002_model-noddi_desc-custom_results.json",
		"sub-002/dwi/sub-002_model-noddi_desc-custom_results.tsv",
		"dataset_description.json",
	})

	layout, err := NewLayout(root)
	if err != nil {
		t.Fatalf("new layout: %v", err)
	}
	if layout.Len() != 7 {
		t.Fatalf("expected 7 indexed files, got %d", layout.Len())
	}

	q := Query{Subject: "001", Datatype: "dwi", Model: "noddi", Suffix: "results", Extension: ".tsv"}
	files := layout.Get(q)
	if len(files) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(files))
	}
	if files[0].Desc() != "aparcaseg" || files[1].Desc() != "custom" {
		t.Fatalf("unexpected match order: %q, %q", files[0].Desc(), files[1].Desc())
	}

	q.Subject = "002"
	files = layout.Get(q)
	if len(files) != 1 {
		t.Fatalf("expected 1 match for sub-002, got %d", len(files))
	}
	if files[0].Subject() != "002" {
		t.Fatalf("unexpected subject: %q", files[0].Subject())
	}

	q.Subject = "003"
	if files = layout.Get(q); len(files) != 0 {
		t.Fatalf("expected no matches for sub-003, got %d", len(files))
	}
}

func TestLayoutSkipsHiddenFiles(t *testing.T) {
	testlog.Start(t)
	root := t.TempDir()
	seedTree(t, root, []string{
		".git/config",
		"sub-001/dwi/.sub-001_model-noddi_desc-custom_results.tsv.swp",
		"sub-001/dwi/sub-001_model-noddi_desc-custom_results.tsv",
	})

	layout, err := NewLayout(root)
	if err != nil {
		t.Fatalf("new layout: %v", err)
	}
	if layout.Len() != 1 {
		t.Fatalf("expected hidden files skipped, indexed %d", layout.Len())
	}
}
