package main

import (
	"context"
	"fmt"

	"github.com/amirhk/gitman/internal/git"
	"github.com/amirhk/gitman/internal/move"
	"github.com/amirhk/gitman/internal/output"
	"github.com/amirhk/gitman/internal/scan"
	"github.com/amirhk/gitman/internal/ui/prompt"
)

// terminalDecider answers the move engine's decision points with terminal
// prompts, short-circuited by command line flags where given.
type terminalDecider struct {
	ctx  context.Context
	repo scan.Snapshot

	countFlag int  // >0 skips the count prompt
	stepFlag  bool // used when stepSet
	stepSet   bool
	yes       bool // skips the stash prompt
}

func (d *terminalDecider) MoveCount(pending int) (int, error) {
	if d.countFlag > 0 {
		return d.countFlag, nil
	}

	listing, err := git.PendingLog(d.ctx, d.repo.Path, cfg.StagingBranch, d.repo.Mainline)
	if err == nil && listing != "" {
		output.FromContext(d.ctx).Printf("%d pending commits (oldest first):\n%s\n\n", pending, listing)
	}

	result, err := prompt.Number(fmt.Sprintf("How many commits should be moved? [1-%d]", pending), 1, pending)
	if err != nil {
		return 0, err
	}
	if result.Cancelled {
		return 0, move.ErrCancelled
	}
	return result.Value, nil
}

func (d *terminalDecider) StepMode(count int) (bool, error) {
	if d.stepSet {
		return d.stepFlag, nil
	}
	result, err := prompt.Confirm(fmt.Sprintf("Confirm each of the %d commits individually?", count))
	if err != nil {
		return false, err
	}
	if result.Cancelled {
		return false, move.ErrCancelled
	}
	return result.Confirmed, nil
}

func (d *terminalDecider) ConfirmStash() (bool, error) {
	if d.yes {
		return true, nil
	}
	result, err := prompt.Confirm("Working tree has uncommitted changes. Stash them and continue?")
	if err != nil {
		return false, err
	}
	if result.Cancelled {
		return false, move.ErrCancelled
	}
	return result.Confirmed, nil
}

func (d *terminalDecider) ConfirmApply(commit, subject string) (bool, error) {
	result, err := prompt.Confirm(fmt.Sprintf("Apply %s %q?", commit[:min(7, len(commit))], subject))
	if err != nil {
		return false, err
	}
	if result.Cancelled {
		return false, move.ErrCancelled
	}
	return result.Confirmed, nil
}

var conflictChoices = []string{
	"Keep the mainline side (ours)",
	"Take the staging side (theirs)",
	"Skip this commit",
	"Abort the move",
}

func (d *terminalDecider) ResolveConflict(commit string, files []string) (move.Resolution, error) {
	out := output.FromContext(d.ctx)
	out.Printf("Conflicts while applying %s:\n", commit[:min(7, len(commit))])
	for _, file := range files {
		out.Printf("  %s\n", file)
	}

	result, err := prompt.Select("How should the conflicts be resolved?", conflictChoices)
	if err != nil {
		return move.ResolutionAbort, err
	}
	if result.Cancelled {
		return move.ResolutionAbort, move.ErrCancelled
	}

	switch result.Index {
	case 0:
		return move.ResolutionOurs, nil
	case 1:
		return move.ResolutionTheirs, nil
	case 2:
		return move.ResolutionSkip, nil
	default:
		return move.ResolutionAbort, nil
	}
}
