package main

import (
	"context"
	"fmt"
	"os"

	"github.com/amirhk/gitman/internal/log"
	"github.com/amirhk/gitman/internal/scan"
	"github.com/amirhk/gitman/internal/settings"
	"github.com/amirhk/gitman/internal/ui/prompt"
)

// resolveBaseDir picks the directory to scan: the --dir flag, then the
// config file, then the last used directory, then the working directory.
func resolveBaseDir() (string, error) {
	if baseDir != "" {
		return baseDir, nil
	}
	if cfg.BaseDir != "" {
		return cfg.BaseDir, nil
	}
	if s, err := settings.Load(); err == nil && s.LastBaseDir != "" {
		return s.LastBaseDir, nil
	}
	return os.Getwd()
}

// scanRepos scans the base directory and remembers it for the next run.
func scanRepos(ctx context.Context) ([]scan.Snapshot, string, error) {
	dir, err := resolveBaseDir()
	if err != nil {
		return nil, "", err
	}

	snapshots, err := scan.Scan(ctx, dir, cfg.StagingBranch)
	if err != nil {
		return nil, "", err
	}

	if s, err := settings.Load(); err == nil && s.LastBaseDir != dir {
		s.LastBaseDir = dir
		if err := s.Save(); err != nil {
			log.FromContext(ctx).Warnf("could not save settings: %v", err)
		}
	}

	return snapshots, dir, nil
}

// resolveRepo picks one repository: by name when given, implicitly when only
// one exists, otherwise via a fuzzy selection prompt.
func resolveRepo(ctx context.Context, snapshots []scan.Snapshot, dir, name string) (scan.Snapshot, error) {
	if len(snapshots) == 0 {
		return scan.Snapshot{}, fmt.Errorf("no git repositories found in %s", dir)
	}

	if name != "" {
		for _, snap := range snapshots {
			if snap.Name == name {
				recordRepoUse(ctx, name)
				return snap, nil
			}
		}
		return scan.Snapshot{}, fmt.Errorf("repository %q not found in %s", name, dir)
	}

	if len(snapshots) == 1 {
		recordRepoUse(ctx, snapshots[0].Name)
		return snapshots[0], nil
	}

	if s, err := settings.Load(); err == nil {
		snapshots = orderByRecency(snapshots, s.RecentRepos())
	}
	names := make([]string, len(snapshots))
	for i, snap := range snapshots {
		names[i] = snap.Name
	}
	result, err := prompt.Select("Select a repository", names)
	if err != nil {
		return scan.Snapshot{}, err
	}
	if result.Cancelled {
		return scan.Snapshot{}, fmt.Errorf("no repository selected")
	}

	recordRepoUse(ctx, result.Value)
	return snapshots[result.Index], nil
}

// orderByRecency puts recently used repositories first, newest use first,
// keeping the rest in scan order.
func orderByRecency(snapshots []scan.Snapshot, recent []string) []scan.Snapshot {
	index := make(map[string]int, len(snapshots))
	for i, snap := range snapshots {
		index[snap.Name] = i
	}

	ordered := make([]scan.Snapshot, 0, len(snapshots))
	taken := make(map[string]bool, len(recent))
	for _, name := range recent {
		if i, ok := index[name]; ok && !taken[name] {
			ordered = append(ordered, snapshots[i])
			taken[name] = true
		}
	}
	for _, snap := range snapshots {
		if !taken[snap.Name] {
			ordered = append(ordered, snap)
		}
	}
	return ordered
}

func recordRepoUse(ctx context.Context, name string) {
	s, err := settings.Load()
	if err != nil {
		return
	}
	s.RecordRepo(name)
	if err := s.Save(); err != nil {
		log.FromContext(ctx).Warnf("could not save settings: %v", err)
	}
}
