package settings

import (
	"path/filepath"
	"testing"

	"github.com/amirhk/gitman/internal/storage"
)

func TestRecordRepo(t *testing.T) {
	t.Parallel()

	var s Settings
	s.RecordRepo("alpha")
	s.RecordRepo("beta")
	s.RecordRepo("alpha") // re-use moves to front without duplicating

	got := s.RecentRepos()
	want := []string{"alpha", "beta"}
	if len(got) != len(want) {
		t.Fatalf("RecentRepos = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("RecentRepos[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRecordRepo_Truncates(t *testing.T) {
	t.Parallel()

	var s Settings
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		s.RecordRepo(name)
	}
	if len(s.Recent) != maxRecent {
		t.Errorf("len(Recent) = %d, want %d", len(s.Recent), maxRecent)
	}
	if s.Recent[0].Repo != "l" {
		t.Errorf("newest entry = %q, want l", s.Recent[0].Repo)
	}
}

func TestLoadFrom_Roundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.json")

	s := Settings{LastBaseDir: "/tmp/repos"}
	s.RecordRepo("alpha")
	if err := storage.SaveJSON(path, &s); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}

	got, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom failed: %v", err)
	}
	if got.LastBaseDir != "/tmp/repos" {
		t.Errorf("LastBaseDir = %q, want /tmp/repos", got.LastBaseDir)
	}
	if len(got.Recent) != 1 || got.Recent[0].Repo != "alpha" {
		t.Errorf("Recent = %+v, want one alpha entry", got.Recent)
	}
}

func TestLoadFrom_Missing(t *testing.T) {
	t.Parallel()

	got, err := loadFrom(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("loadFrom missing file = %v, want zero settings", err)
	}
	if got.LastBaseDir != "" || len(got.Recent) != 0 {
		t.Errorf("loadFrom missing file = %+v, want zero value", got)
	}
}
