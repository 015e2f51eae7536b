// Package scan discovers git repositories under a base directory and
// computes an immutable-per-scan state snapshot for each.
package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/amirhk/gitman/internal/git"
)

// Snapshot records a repository's state at scan time. Snapshots are never
// mutated; recompute with [Load] after any operation that could change refs.
type Snapshot struct {
	Path          string `json:"path"`           // identity key
	Name          string `json:"name"`           // directory basename
	Mainline      string `json:"mainline"`       // detected mainline branch
	CurrentBranch string `json:"current_branch"` // "HEAD" when detached
	StagingExists bool   `json:"staging_exists"`
	PendingCount  int    `json:"pending_count"`
}

// Scan returns snapshots for every git repository that is an immediate child
// of baseDir, ordered lexicographically by directory name. Children without
// git metadata are silently skipped.
func Scan(ctx context.Context, baseDir, staging string) ([]Snapshot, error) {
	info, err := os.Stat(baseDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("base directory %q not found", baseDir)
	}

	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", baseDir, err)
	}

	var snapshots []Snapshot
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		repoPath := filepath.Join(baseDir, entry.Name())
		if !isGitRepo(repoPath) {
			continue
		}
		snap, err := Load(ctx, repoPath, staging)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}

// Load computes a fresh snapshot for a single repository. It also runs the
// idempotent ensure-main side effect so branch comparisons stay reliable.
func Load(ctx context.Context, repoPath, staging string) (Snapshot, error) {
	git.EnsureMain(ctx, repoPath)

	mainline := git.DetectMainline(ctx, repoPath)
	current := git.CurrentBranch(ctx, repoPath)
	stagingExists := git.BranchExists(ctx, repoPath, staging)

	// Pending count semantics depend on the comparison pair: staging vs
	// mainline when the staging branch exists, otherwise mainline vs its
	// remote tracking branch when mainline is checked out.
	var pending int
	switch {
	case stagingExists:
		n, err := git.PendingCount(ctx, repoPath, staging, mainline)
		if err != nil {
			return Snapshot{}, fmt.Errorf("%s: %w", filepath.Base(repoPath), err)
		}
		pending = n
	case current == mainline:
		pending = git.UnpushedCount(ctx, repoPath, mainline)
	}

	return Snapshot{
		Path:          repoPath,
		Name:          filepath.Base(repoPath),
		Mainline:      mainline,
		CurrentBranch: current,
		StagingExists: stagingExists,
		PendingCount:  pending,
	}, nil
}

// isGitRepo checks if a path is a git repository (has .git dir or file)
func isGitRepo(path string) bool {
	info, err := os.Stat(filepath.Join(path, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir() || info.Mode().IsRegular()
}
