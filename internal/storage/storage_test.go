package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSaveLoadJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "data.json")

	want := payload{Name: "repo", Count: 3}
	if err := SaveJSON(path, want); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}

	// No temp file left behind after the atomic rename.
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temp file still exists after save")
	}

	var got payload
	if err := LoadJSON(path, &got); err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if got != want {
		t.Errorf("LoadJSON = %+v, want %+v", got, want)
	}
}

func TestLoadJSON_Missing(t *testing.T) {
	t.Parallel()

	var got payload
	err := LoadJSON(filepath.Join(t.TempDir(), "missing.json"), &got)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadJSON missing file = %v, want os.ErrNotExist", err)
	}
}
