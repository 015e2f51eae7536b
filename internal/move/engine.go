// Package move implements the commit move engine: replaying a prefix of
// staging-branch commits onto the mainline branch, validating authorship
// before pushing, and reconciling the staging branch afterwards.
package move

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amirhk/gitman/internal/git"
	"github.com/amirhk/gitman/internal/log"
	"github.com/amirhk/gitman/internal/scan"
)

// Engine drives the move protocol for one repository at a time. It is the
// sole mutator of the working directory during a move; decision points block
// on the injected Decider.
type Engine struct {
	Staging string // staging branch name, e.g. "local_commit"
	Decider Decider
}

// Result reports what a move actually did. A non-nil Result is returned even
// alongside an error so callers can distinguish pre-push failures from
// post-push degradations: once Pushed is true, later failures no longer undo
// the move and must be reported as warnings, not fatal errors.
type Result struct {
	Pending      int      // pending count re-derived at the start of the move
	Processed    []string // commits that produced new commit objects on mainline
	Remaining    int      // pending count after staging reconciliation
	Stashed      bool
	Pushed       bool
	BackupBranch string
	Declined     bool // user declined the stash prompt; nothing was touched
	Warnings     []string
}

func (r *Result) warn(l *log.Logger, format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
	l.Warnf(format, args...)
}

func short(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}

// Move replays up to a user-chosen number of pending commits from the
// staging branch onto the mainline branch, validates author and date policy,
// pushes, and rewrites the staging branch to hold only what was not moved.
//
// Preconditions are checked before any mutation: both branches must exist,
// identity must be configured, and the pending count is re-derived (it may
// have changed since the snapshot was taken).
func (e *Engine) Move(ctx context.Context, repo scan.Snapshot) (*Result, error) {
	l := log.FromContext(ctx)
	res := &Result{}

	if !git.BranchExists(ctx, repo.Path, e.Staging) {
		return res, &git.ConfigError{Reason: fmt.Sprintf("staging branch %q does not exist", e.Staging)}
	}
	if !git.BranchExists(ctx, repo.Path, repo.Mainline) {
		return res, &git.ConfigError{Reason: fmt.Sprintf("mainline branch %q does not exist locally", repo.Mainline)}
	}
	id, err := git.EnsureIdentity(ctx, repo.Path)
	if err != nil {
		return res, err
	}

	pending, err := git.PendingCount(ctx, repo.Path, e.Staging, repo.Mainline)
	if err != nil {
		return res, err
	}
	res.Pending = pending
	if pending == 0 {
		l.Println("No commits to move.")
		return res, nil
	}

	count, err := e.Decider.MoveCount(pending)
	if err != nil {
		return res, err
	}
	if count < 1 || count > pending {
		return res, &ValidationError{Count: count, Pending: pending}
	}

	commits, err := git.ListPending(ctx, repo.Path, e.Staging, repo.Mainline)
	if err != nil {
		return res, err
	}
	commits = commits[:count]

	step := false
	if count > 1 {
		if step, err = e.Decider.StepMode(count); err != nil {
			return res, err
		}
	}

	start := time.Now()

	// Working tree guard. Declining aborts before any branch switch.
	if !git.IsClean(ctx, repo.Path) {
		ok, err := e.Decider.ConfirmStash()
		if err != nil {
			return res, err
		}
		if !ok {
			res.Declined = true
			l.Println("Working tree not clean; move aborted.")
			return res, nil
		}
		git.AbortInProgress(ctx, repo.Path)
		msg := fmt.Sprintf("gitman auto-stash before moving commits (%s)", start.Format("2006-01-02 15:04:05"))
		if err := git.Stash(ctx, repo.Path, msg); err != nil {
			return res, err
		}
		res.Stashed = true
	}

	l.Printf("All moved commits will be authored by %s\n", id)

	if _, err := git.SwitchToMainline(ctx, repo.Path, repo.Mainline); err != nil {
		return res, err
	}

	processed, err := e.replay(ctx, repo, commits, step, start)
	res.Processed = processed
	if err != nil {
		return res, err
	}

	if len(processed) == 0 {
		l.Println("No commits were applied; aborting move.")
		e.returnToOriginal(ctx, repo, res, l)
		return res, nil
	}

	if err := e.validate(ctx, repo, id, len(processed), start); err != nil {
		return res, err
	}

	l.Printf("Pushing to origin %s...\n", repo.Mainline)
	if err := git.Push(ctx, repo.Path, repo.Mainline); err != nil {
		return res, err
	}
	res.Pushed = true
	l.Printf("Moved %d of %d commits.\n", len(processed), pending)

	// Everything past the push is reported, never fatal to the move itself.
	if err := e.reconcile(ctx, repo, res, start, l); err != nil {
		return res, err
	}

	if res.Stashed {
		e.restoreStash(ctx, repo, res, l)
	}

	return res, nil
}

// replay cherry-picks each commit of the working set onto mainline, oldest
// first, re-dating every created commit to the operation's start time.
func (e *Engine) replay(ctx context.Context, repo scan.Snapshot, commits []string, step bool, start time.Time) ([]string, error) {
	l := log.FromContext(ctx)
	var processed []string

	for _, commit := range commits {
		if step {
			subject, err := git.Subject(ctx, repo.Path, commit)
			if err != nil {
				return processed, err
			}
			ok, err := e.Decider.ConfirmApply(commit, subject)
			if err != nil {
				if errors.Is(err, ErrCancelled) {
					return processed, nil
				}
				return processed, err
			}
			if !ok {
				// Early stop: already-processed commits remain applied.
				return processed, nil
			}
		}

		if err := git.CherryPickNoCommit(ctx, repo.Path, commit); err != nil {
			applied, herr := e.handlePickFailure(ctx, repo, commit, start, err)
			if herr != nil {
				return processed, herr
			}
			if applied {
				processed = append(processed, commit)
			}
			continue
		}

		// A successful pick with an empty status is an already-applied
		// duplicate; nothing to commit and no sequencer to advance.
		if git.StatusEmpty(ctx, repo.Path) {
			l.Printf("Skipping empty commit %s (already applied)\n", short(commit))
			continue
		}

		if err := e.commitRedated(ctx, repo, commit, start); err != nil {
			return processed, err
		}
		processed = append(processed, commit)
	}

	return processed, nil
}

// handlePickFailure deals with a failed cherry-pick: conflict resolution via
// the decider, sequencer-skip of already-applied commits, or propagation.
// Returns whether the commit ended up applied to mainline.
func (e *Engine) handlePickFailure(ctx context.Context, repo scan.Snapshot, commit string, start time.Time, pickErr error) (bool, error) {
	l := log.FromContext(ctx)

	files, err := git.ConflictedFiles(ctx, repo.Path)
	if err == nil && len(files) > 0 {
		resolution, derr := e.Decider.ResolveConflict(commit, files)
		if derr != nil {
			if aerr := git.CherryPickAbort(ctx, repo.Path); aerr != nil {
				l.Warnf("could not abort cherry-pick: %v", aerr)
			}
			return false, fmt.Errorf("%w: %v", ErrConflictAbort, derr)
		}

		switch resolution {
		case ResolutionOurs, ResolutionTheirs:
			side := "ours"
			if resolution == ResolutionTheirs {
				side = "theirs"
			}
			if err := git.TakeConflictSide(ctx, repo.Path, side); err != nil {
				return false, err
			}
			if err := e.commitRedated(ctx, repo, commit, start); err != nil {
				return false, err
			}
			l.Printf("Resolved with %s for %s\n", side, short(commit))
			return true, nil

		case ResolutionSkip:
			if err := git.CherryPickAbort(ctx, repo.Path); err != nil {
				return false, err
			}
			l.Printf("Skipping commit %s after conflicts\n", short(commit))
			return false, nil

		default: // ResolutionAbort
			if err := git.CherryPickAbort(ctx, repo.Path); err != nil {
				l.Warnf("could not abort cherry-pick: %v", err)
			}
			return false, ErrConflictAbort
		}
	}

	// Failure without conflicted files: an already-applied commit shows
	// nothing to commit; advance the sequencer past it.
	if git.NothingToCommit(ctx, repo.Path) {
		l.Printf("Skipping empty commit %s\n", short(commit))
		if err := git.CherryPickSkip(ctx, repo.Path); err != nil {
			return false, err
		}
		return false, nil
	}

	return false, pickErr
}

// commitRedated commits staged changes with the original commit's full
// message, forcing authored and committed timestamps to the operation's
// start time. Moved commits are dated when they were promoted, not drafted.
func (e *Engine) commitRedated(ctx context.Context, repo scan.Snapshot, commit string, start time.Time) error {
	message, err := git.Message(ctx, repo.Path, commit)
	if err != nil {
		return err
	}
	if err := git.CommitWithDates(ctx, repo.Path, message, start); err != nil {
		return err
	}
	if line, err := git.HeadSummary(ctx, repo.Path); err == nil {
		log.FromContext(ctx).Printf("  applied %s\n", line)
	}
	return nil
}

// validate runs the three pre-push checks over the processed commits. Any
// failure leaves mainline holding the new, unpushed commits; that state is
// locally valid and must be resolved manually (push later, or reset).
func (e *Engine) validate(ctx context.Context, repo scan.Snapshot, id git.Identity, processedCount int, start time.Time) error {
	l := log.FromContext(ctx)
	l.Println("Validating commits before push...")

	remoteHead, err := git.RemoteDefaultBranch(ctx, repo.Path)
	if err != nil {
		return err
	}
	if remoteHead != "" && remoteHead != repo.Mainline {
		return &PolicyError{Reason: fmt.Sprintf(
			"remote default branch is %q, but target is %q", remoteHead, repo.Mainline)}
	}

	authors, err := git.LastAuthors(ctx, repo.Path, processedCount)
	if err != nil {
		return err
	}

	today := start.Format("2006-01-02")
	badDates := 0
	for _, a := range authors {
		if a.Date != "" && a.Date != today {
			badDates++
		}
	}
	if badDates > 0 {
		return &PolicyError{Reason: fmt.Sprintf(
			"found %d commit(s) with author date not equal to today", badDates)}
	}

	for _, a := range authors {
		if a.Email != "" && a.Email != id.Email {
			return &PolicyError{Reason: fmt.Sprintf(
				"found commit(s) with author email not matching %q", id.Email)}
		}
		if a.Name != "" && a.Name != id.Name {
			return &PolicyError{Reason: fmt.Sprintf(
				"found commit(s) with author name not matching %q", id.Name)}
		}
	}

	l.Printf("All %d commits will be attributed to %s\n", processedCount, id)
	return nil
}

// reconcile rewrites the staging branch after a successful push so it holds
// exactly the not-yet-moved commits, after creating a timestamped backup.
func (e *Engine) reconcile(ctx context.Context, repo scan.Snapshot, res *Result, start time.Time, l *log.Logger) error {
	backup := fmt.Sprintf("backup_%s_%s", e.Staging, start.Format("20060102150405"))
	if err := git.CreateBranchAt(ctx, repo.Path, backup, e.Staging); err != nil {
		res.warn(l, "failed to create backup branch; proceeding without backup: %v", err)
	} else {
		res.BackupBranch = backup
		l.Printf("Created %s from %s before rewrite\n", backup, e.Staging)
	}

	remaining, err := git.ListPending(ctx, repo.Path, e.Staging, repo.Mainline)
	if err != nil {
		return err
	}

	if err := git.Checkout(ctx, repo.Path, e.Staging); err != nil {
		return err
	}
	if err := git.ResetHard(ctx, repo.Path, repo.Mainline); err != nil {
		return err
	}

	for _, commit := range remaining {
		if err := git.CherryPick(ctx, repo.Path, commit); err != nil {
			if git.NothingToCommit(ctx, repo.Path) {
				l.Printf("Skipping empty commit %s (already on %s)\n", short(commit), repo.Mainline)
				if err := git.CherryPickSkip(ctx, repo.Path); err != nil {
					return err
				}
				continue
			}
			if aerr := git.CherryPickAbort(ctx, repo.Path); aerr != nil {
				l.Warnf("could not abort cherry-pick: %v", aerr)
			}
			return fmt.Errorf("%w: cherry-pick failed for %s while rewriting %s",
				ErrReconcile, short(commit), e.Staging)
		}
	}

	res.Remaining, err = git.PendingCount(ctx, repo.Path, e.Staging, repo.Mainline)
	if err != nil {
		return err
	}
	if res.Remaining > 0 {
		l.Printf("%s rewritten to keep %d remaining commits\n", e.Staging, res.Remaining)
	} else {
		l.Printf("%s is now aligned with %s\n", e.Staging, repo.Mainline)
	}
	return nil
}

// restoreStash returns to the branch checked out before the operation began
// and restores the stash. Conflicts here are warnings, never fatal: the move
// already succeeded.
func (e *Engine) restoreStash(ctx context.Context, repo scan.Snapshot, res *Result, l *log.Logger) {
	if repo.CurrentBranch != "HEAD" {
		if err := git.Checkout(ctx, repo.Path, repo.CurrentBranch); err != nil {
			res.warn(l, "could not return to %s: %v", repo.CurrentBranch, err)
			return
		}
	}
	if err := git.StashPop(ctx, repo.Path); err != nil {
		res.warn(l, "stash pop had conflicts or failed; resolve manually: %v", err)
	}
}

// returnToOriginal is the no-op exit path: nothing was committed, so go back
// to the original branch and restore any stash.
func (e *Engine) returnToOriginal(ctx context.Context, repo scan.Snapshot, res *Result, l *log.Logger) {
	if repo.CurrentBranch != "HEAD" {
		if err := git.Checkout(ctx, repo.Path, repo.CurrentBranch); err != nil {
			res.warn(l, "could not return to %s: %v", repo.CurrentBranch, err)
		}
	}
	if res.Stashed {
		if err := git.StashPop(ctx, repo.Path); err != nil {
			res.warn(l, "stash pop had conflicts or failed; resolve manually: %v", err)
		}
	}
}
