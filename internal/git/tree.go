package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/amirhk/gitman/internal/log"
)

// IsClean reports whether the working tree has no staged, unstaged, or
// untracked changes. Untracked files count as dirty because a stash created
// by the move guard includes them.
func IsClean(ctx context.Context, repoPath string) bool {
	output, err := outputGit(ctx, repoPath, "status", "--porcelain")
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(output)) == ""
}

// Stash creates a stash entry labeled with message.
// Includes untracked files (-u) to capture all uncommitted changes.
func Stash(ctx context.Context, repoPath, message string) error {
	if err := runGit(ctx, repoPath, "stash", "push", "-u", "-m", message); err != nil {
		return fmt.Errorf("failed to stash changes: %w", err)
	}
	return nil
}

// StashPop applies and removes the most recent stash entry.
// Returns an error wrapping [ErrStashConflict] when restoring the stash
// itself conflicts; the caller must surface this for manual resolution.
func StashPop(ctx context.Context, repoPath string) error {
	err := runGit(ctx, repoPath, "stash", "pop")
	if err == nil {
		return nil
	}
	if files, ferr := ConflictedFiles(ctx, repoPath); ferr == nil && len(files) > 0 {
		return fmt.Errorf("%w: %v", ErrStashConflict, err)
	}
	return fmt.Errorf("failed to pop stash: %w", err)
}

// InProgressOps returns the names of merge, cherry-pick, or rebase
// operations the repository is currently stuck in.
func InProgressOps(ctx context.Context, repoPath string) []string {
	gitDir := resolveGitDir(ctx, repoPath)
	if gitDir == "" {
		return nil
	}

	var ops []string
	if _, err := os.Stat(filepath.Join(gitDir, "MERGE_HEAD")); err == nil {
		ops = append(ops, "merge")
	}
	if _, err := os.Stat(filepath.Join(gitDir, "CHERRY_PICK_HEAD")); err == nil {
		ops = append(ops, "cherry-pick")
	}
	if _, err := os.Stat(filepath.Join(gitDir, "rebase-merge")); err == nil {
		ops = append(ops, "rebase")
	}
	return ops
}

// AbortInProgress aborts any merge, cherry-pick, or rebase left over from a
// prior failed run. Best-effort: failures are logged, never returned.
func AbortInProgress(ctx context.Context, repoPath string) {
	l := log.FromContext(ctx)
	for _, op := range InProgressOps(ctx, repoPath) {
		if err := runGit(ctx, repoPath, op, "--abort"); err != nil {
			l.Warnf("could not abort %s cleanly; please resolve manually: %v", op, err)
		}
	}
}

// resolveGitDir returns the repository's git directory as an absolute path.
// Returns empty string when repoPath is not a git repository.
func resolveGitDir(ctx context.Context, repoPath string) string {
	output, err := outputGit(ctx, repoPath, "rev-parse", "--git-dir")
	if err != nil {
		return ""
	}
	dir := strings.TrimSpace(string(output))
	if dir == "" {
		return ""
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(repoPath, dir)
	}
	return dir
}
