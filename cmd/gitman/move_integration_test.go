//go:build integration

package main

import (
	"context"
	"testing"

	"github.com/amirhk/gitman/internal/config"
	"github.com/amirhk/gitman/internal/git"
	"github.com/amirhk/gitman/internal/move"
	"github.com/amirhk/gitman/internal/scan"
)

// TestMove_FlagsOnly exercises the full move path with every decision point
// answered by flags, the way a scripted "gitman move -c 1 -y" runs.
func TestMove_FlagsOnly(t *testing.T) {
	cfg = &config.Config{StagingBranch: "local_commit"}
	ctx := context.Background()

	repoPath := setupTestRepo(t, t.TempDir(), "myrepo")
	runGit(t, repoPath, "checkout", "-b", "local_commit")
	commitTestFile(t, repoPath, "a.txt")
	commitTestFile(t, repoPath, "b.txt")

	snap, err := scan.Load(ctx, repoPath, cfg.StagingBranch)
	if err != nil {
		t.Fatalf("failed to load snapshot: %v", err)
	}
	if snap.PendingCount != 2 {
		t.Fatalf("PendingCount = %d, want 2", snap.PendingCount)
	}

	engine := &move.Engine{
		Staging: cfg.StagingBranch,
		Decider: &terminalDecider{
			ctx:       ctx,
			repo:      snap,
			countFlag: 1,
			stepSet:   true,
			yes:       true,
		},
	}

	res, err := engine.Move(ctx, snap)
	if err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	if !res.Pushed || len(res.Processed) != 1 {
		t.Errorf("Pushed = %v, Processed = %d, want pushed single commit", res.Pushed, len(res.Processed))
	}
	if res.Remaining != 1 {
		t.Errorf("Remaining = %d, want 1", res.Remaining)
	}

	after, err := scan.Load(ctx, repoPath, cfg.StagingBranch)
	if err != nil {
		t.Fatalf("failed to reload snapshot: %v", err)
	}
	if after.PendingCount != 1 {
		t.Errorf("pending after move = %d, want 1", after.PendingCount)
	}
	if got := git.CurrentBranch(ctx, repoPath); got != "local_commit" {
		t.Errorf("current branch = %q, want local_commit", got)
	}
}

// TestRestore_AfterMove verifies the reflog restore path brings back the
// pre-rewrite staging state.
func TestRestore_AfterMove(t *testing.T) {
	cfg = &config.Config{StagingBranch: "local_commit"}
	ctx := context.Background()

	repoPath := setupTestRepo(t, t.TempDir(), "myrepo")
	runGit(t, repoPath, "checkout", "-b", "local_commit")
	commitTestFile(t, repoPath, "a.txt")
	commitTestFile(t, repoPath, "b.txt")

	preMove, err := git.ListPending(ctx, repoPath, "local_commit", "main")
	if err != nil {
		t.Fatalf("ListPending failed: %v", err)
	}

	snap, err := scan.Load(ctx, repoPath, cfg.StagingBranch)
	if err != nil {
		t.Fatalf("failed to load snapshot: %v", err)
	}
	engine := &move.Engine{
		Staging: cfg.StagingBranch,
		Decider: &terminalDecider{ctx: ctx, repo: snap, countFlag: 2, stepSet: true, yes: true},
	}
	if _, err := engine.Move(ctx, snap); err != nil {
		t.Fatalf("Move failed: %v", err)
	}

	sha, err := git.LastGoodStagingState(ctx, repoPath, "local_commit", "main")
	if err != nil {
		t.Fatalf("LastGoodStagingState failed: %v", err)
	}
	if sha == "" {
		t.Fatal("LastGoodStagingState found nothing, want pre-rewrite tip")
	}
	if sha != preMove[len(preMove)-1] {
		t.Errorf("restore target = %s, want pre-move tip %s", sha, preMove[len(preMove)-1])
	}
}
