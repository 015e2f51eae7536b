//go:build integration

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to run git %v: %v\n%s", args, err, out)
	}
}

// setupTestRepo creates a git repo with an initial pushed commit in dir/name
// plus a bare origin next to it. Returns the repo path.
func setupTestRepo(t *testing.T, dir, name string) string {
	t.Helper()

	dir = resolvePath(t, dir)
	repoPath := filepath.Join(dir, name)
	originPath := filepath.Join(dir, "."+name+"-origin.git")

	runGit(t, "", "init", "--bare", "-b", "main", originPath)
	runGit(t, "", "init", "-b", "main", repoPath)
	runGit(t, repoPath, "config", "user.email", "test@test.com")
	runGit(t, repoPath, "config", "user.name", "Test User")
	runGit(t, repoPath, "config", "commit.gpgsign", "false")

	readmePath := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readmePath, []byte("# "+name+"\n"), 0644); err != nil {
		t.Fatalf("failed to write README: %v", err)
	}
	runGit(t, repoPath, "add", "README.md")
	runGit(t, repoPath, "commit", "-m", "Initial commit")
	runGit(t, repoPath, "remote", "add", "origin", originPath)
	runGit(t, repoPath, "push", "-u", "origin", "main")

	return repoPath
}

// commitTestFile adds and commits a file in the repo.
func commitTestFile(t *testing.T, repoPath, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(repoPath, name), []byte(name+"\n"), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	runGit(t, repoPath, "add", name)
	runGit(t, repoPath, "commit", "-m", "add "+name)
}
