// Package settings persists small bits of cross-run state, like the most
// recently used repositories, in ~/.gitman/settings.json.
package settings

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/amirhk/gitman/internal/storage"
)

const maxRecent = 10

// Settings is the persisted state. Unlike the config file it is owned and
// rewritten by gitman itself, never edited by hand.
type Settings struct {
	LastBaseDir string  `json:"last_base_dir,omitempty"`
	Recent      []Entry `json:"recent,omitempty"`
}

// Entry records one repository use.
type Entry struct {
	Repo   string    `json:"repo"` // repository directory name
	UsedAt time.Time `json:"used_at"`
}

// RecordRepo moves repo to the front of the recent list, truncating to the
// newest entries.
func (s *Settings) RecordRepo(repo string) {
	entries := []Entry{{Repo: repo, UsedAt: time.Now()}}
	for _, e := range s.Recent {
		if e.Repo == repo {
			continue
		}
		entries = append(entries, e)
	}
	if len(entries) > maxRecent {
		entries = entries[:maxRecent]
	}
	s.Recent = entries
}

// RecentRepos returns the recently used repository names, newest first.
func (s *Settings) RecentRepos() []string {
	names := make([]string, 0, len(s.Recent))
	for _, e := range s.Recent {
		names = append(names, e.Repo)
	}
	return names
}

// Load reads the settings file. A missing file yields zero settings.
func Load() (Settings, error) {
	dir, err := storage.Dir()
	if err != nil {
		return Settings{}, err
	}
	return loadFrom(filepath.Join(dir, "settings.json"))
}

// Save writes the settings file atomically.
func (s *Settings) Save() error {
	dir, err := storage.Dir()
	if err != nil {
		return err
	}
	return storage.SaveJSON(filepath.Join(dir, "settings.json"), s)
}

func loadFrom(path string) (Settings, error) {
	var s Settings
	if err := storage.LoadJSON(path, &s); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, err
	}
	return s, nil
}
