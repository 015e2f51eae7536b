package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// resolveTempDir returns a temp dir with symlinks resolved.
// Needed on macOS where /var is a symlink to /private/var.
func resolveTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}
	return dir
}

func configureTestRepo(t *testing.T, repoPath string) {
	t.Helper()
	ctx := context.Background()
	cmds := [][]string{
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
	}
	for _, args := range cmds {
		if err := runGit(ctx, repoPath, args...); err != nil {
			t.Fatalf("failed to run git %v: %v", args, err)
		}
	}
}

// setupTestRepo creates a git repo on branch main with one initial commit.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	tmpDir := resolveTempDir(t)
	repoPath := filepath.Join(tmpDir, "test-repo")

	ctx := context.Background()
	if err := runGit(ctx, "", "init", "-b", "main", repoPath); err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}
	configureTestRepo(t, repoPath)

	readme := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readme, []byte("# test\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := runGit(ctx, repoPath, "add", "README.md"); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}
	if err := runGit(ctx, repoPath, "commit", "-m", "Initial commit"); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}

	return repoPath
}

// setupTestRepoWithOrigin creates a repo cloned from a local bare origin.
// Returns (repoPath, originPath).
func setupTestRepoWithOrigin(t *testing.T) (string, string) {
	t.Helper()
	tmpDir := resolveTempDir(t)

	originPath := filepath.Join(tmpDir, "origin.git")
	repoPath := filepath.Join(tmpDir, "repo")

	ctx := context.Background()
	if err := runGit(ctx, "", "init", "--bare", "-b", "main", originPath); err != nil {
		t.Fatalf("failed to init bare repo: %v", err)
	}
	if err := runGit(ctx, "", "clone", originPath, repoPath); err != nil {
		t.Fatalf("failed to clone: %v", err)
	}
	configureTestRepo(t, repoPath)

	readme := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readme, []byte("# test\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := runGit(ctx, repoPath, "add", "README.md"); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}
	if err := runGit(ctx, repoPath, "commit", "-m", "Initial commit"); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
	if err := runGit(ctx, repoPath, "push", "origin", "main"); err != nil {
		t.Fatalf("failed to push: %v", err)
	}

	return repoPath, originPath
}

// addCommit writes content to name and commits it on the current branch,
// returning the new commit hash.
func addCommit(t *testing.T, repoPath, name, content, message string) string {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(repoPath, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	if err := runGit(ctx, repoPath, "add", name); err != nil {
		t.Fatalf("failed to add %s: %v", name, err)
	}
	if err := runGit(ctx, repoPath, "commit", "-m", message); err != nil {
		t.Fatalf("failed to commit %s: %v", name, err)
	}

	output, err := outputGit(ctx, repoPath, "rev-parse", "HEAD")
	if err != nil {
		t.Fatalf("failed to resolve HEAD: %v", err)
	}
	return string(output[:40])
}

// addFile writes content to name without staging or committing it.
func addFile(t *testing.T, repoPath, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(repoPath, name), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

// headOf returns the commit hash a ref points at.
func headOf(t *testing.T, repoPath, ref string) string {
	t.Helper()
	output, err := outputGit(context.Background(), repoPath, "rev-parse", ref)
	if err != nil {
		t.Fatalf("failed to resolve %s: %v", ref, err)
	}
	return string(output[:40])
}

func checkout(t *testing.T, repoPath, ref string) {
	t.Helper()
	if err := Checkout(context.Background(), repoPath, ref); err != nil {
		t.Fatalf("failed to checkout %s: %v", ref, err)
	}
}

func mustRun(t *testing.T, repoPath string, args ...string) {
	t.Helper()
	if err := runGit(context.Background(), repoPath, args...); err != nil {
		t.Fatalf("failed to run git %v: %v", args, err)
	}
}
