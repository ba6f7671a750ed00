package wholebrain

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/danmuck/noddictl/internal/testutil/testlog"
	"github.com/danmuck/noddictl/internal/tsv"
)

func writeRoster(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "participants.tsv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write roster: %v", err)
	}
	return path
}

func TestLoadRoster(t *testing.T) {
	testlog.Start(t)
	path := writeRoster(t, "participant_id\tage\nsub-001\t31\nsub-002\t44\n")

	got, err := LoadRoster(path)
	if err != nil {
		t.Fatalf("load roster: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"sub-001", "sub-002"}) {
		t.Fatalf("unexpected roster: %v", got)
	}
}

func TestLoadRosterMissingColumn(t *testing.T) {
	testlog.Start(t)
	path := writeRoster(t, "subject\nsub-001\n")
	if _, err := LoadRoster(path); !errors.Is(err, tsv.ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestLoadRosterMissingFile(t *testing.T) {
	testlog.Start(t)
	if _, err := LoadRoster(filepath.Join(t.TempDir(), "absent.tsv")); err == nil {
		t.Fatalf("expected error for missing roster")
	}
}
