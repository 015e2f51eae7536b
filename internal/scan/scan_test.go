package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/amirhk/gitman/internal/git"
)

const staging = "local_commit"

func setupRepo(t *testing.T, baseDir, name string) string {
	t.Helper()
	ctx := context.Background()

	repoPath := filepath.Join(baseDir, name)
	if err := git.RunGitCommand(ctx, "", "init", "-b", "main", repoPath); err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}
	cmds := [][]string{
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
	}
	for _, args := range cmds {
		if err := git.RunGitCommand(ctx, repoPath, args...); err != nil {
			t.Fatalf("failed to run git %v: %v", args, err)
		}
	}

	readme := filepath.Join(repoPath, "README.md")
	if err := os.WriteFile(readme, []byte("# "+name+"\n"), 0644); err != nil {
		t.Fatalf("failed to write README: %v", err)
	}
	if err := git.RunGitCommand(ctx, repoPath, "add", "README.md"); err != nil {
		t.Fatalf("failed to add: %v", err)
	}
	if err := git.RunGitCommand(ctx, repoPath, "commit", "-m", "Initial commit"); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}

	return repoPath
}

func commitFile(t *testing.T, repoPath, name string) {
	t.Helper()
	ctx := context.Background()

	if err := os.WriteFile(filepath.Join(repoPath, name), []byte(name+"\n"), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	if err := git.RunGitCommand(ctx, repoPath, "add", name); err != nil {
		t.Fatalf("failed to add: %v", err)
	}
	if err := git.RunGitCommand(ctx, repoPath, "commit", "-m", "add "+name); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
}

func TestScan_OrderAndSkip(t *testing.T) {
	t.Parallel()

	baseDir := t.TempDir()
	setupRepo(t, baseDir, "zebra")
	setupRepo(t, baseDir, "alpha")

	// Plain directory without git metadata is skipped.
	if err := os.MkdirAll(filepath.Join(baseDir, "not-a-repo"), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	// Plain file is skipped.
	if err := os.WriteFile(filepath.Join(baseDir, "stray.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	snapshots, err := Scan(context.Background(), baseDir, staging)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("Scan returned %d snapshots, want 2", len(snapshots))
	}
	if snapshots[0].Name != "alpha" || snapshots[1].Name != "zebra" {
		t.Errorf("Scan order = [%s %s], want lexicographic [alpha zebra]",
			snapshots[0].Name, snapshots[1].Name)
	}
}

func TestScan_MissingBaseDir(t *testing.T) {
	t.Parallel()

	_, err := Scan(context.Background(), filepath.Join(t.TempDir(), "missing"), staging)
	if err == nil {
		t.Error("Scan on missing base dir = nil, want error")
	}
}

func TestLoad_PendingFromStaging(t *testing.T) {
	t.Parallel()

	baseDir := t.TempDir()
	repoPath := setupRepo(t, baseDir, "repo")
	ctx := context.Background()

	if err := git.RunGitCommand(ctx, repoPath, "checkout", "-b", staging); err != nil {
		t.Fatalf("failed to create staging: %v", err)
	}
	commitFile(t, repoPath, "a.txt")
	commitFile(t, repoPath, "b.txt")

	snap, err := Load(ctx, repoPath, staging)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !snap.StagingExists {
		t.Error("StagingExists = false, want true")
	}
	if snap.PendingCount != 2 {
		t.Errorf("PendingCount = %d, want 2", snap.PendingCount)
	}
	if snap.CurrentBranch != staging {
		t.Errorf("CurrentBranch = %q, want %q", snap.CurrentBranch, staging)
	}
	if snap.Mainline != "main" {
		t.Errorf("Mainline = %q, want main", snap.Mainline)
	}
}

func TestLoad_DetachedHead(t *testing.T) {
	t.Parallel()

	baseDir := t.TempDir()
	repoPath := setupRepo(t, baseDir, "repo")
	ctx := context.Background()

	if err := git.RunGitCommand(ctx, repoPath, "checkout", "--detach", "HEAD"); err != nil {
		t.Fatalf("failed to detach: %v", err)
	}

	snap, err := Load(ctx, repoPath, staging)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if snap.CurrentBranch != "HEAD" {
		t.Errorf("CurrentBranch = %q, want sentinel HEAD", snap.CurrentBranch)
	}
	if snap.PendingCount != 0 {
		t.Errorf("PendingCount = %d, want 0", snap.PendingCount)
	}
}

func TestLoad_EnsuresMain(t *testing.T) {
	t.Parallel()

	baseDir := t.TempDir()
	repoPath := setupRepo(t, baseDir, "repo")
	ctx := context.Background()

	if err := git.RunGitCommand(ctx, repoPath, "branch", "-m", "main", "master"); err != nil {
		t.Fatalf("failed to rename branch: %v", err)
	}

	if _, err := Load(ctx, repoPath, staging); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !git.BranchExists(ctx, repoPath, "main") {
		t.Error("Load did not run the ensure-main side effect")
	}
}
