package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/amirhk/gitman/internal/log"
	"github.com/amirhk/gitman/internal/move"
	"github.com/amirhk/gitman/internal/output"
	"github.com/amirhk/gitman/internal/scan"
)

func newMoveCmd() *cobra.Command {
	var (
		count int
		step  bool
		yes   bool
	)

	cmd := &cobra.Command{
		Use:     "move [repo]",
		Short:   "Replay pending commits onto mainline and push",
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `Replay the oldest pending commits from the staging branch onto the
mainline branch, re-dated to now, then validate authorship and push.

After a successful push the staging branch is rewritten on top of mainline
so it holds only the commits that were not moved. A timestamped backup
branch preserves its previous state.`,
		Example: `  gitman move               # Pick a repository, choose interactively
  gitman move myrepo -c 2   # Move the two oldest pending commits
  gitman move myrepo --step # Confirm each commit individually`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			snapshots, dir, err := scanRepos(ctx)
			if err != nil {
				return err
			}
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			snap, err := resolveRepo(ctx, snapshots, dir, name)
			if err != nil {
				return err
			}

			engine := &move.Engine{
				Staging: cfg.StagingBranch,
				Decider: &terminalDecider{
					ctx:       ctx,
					repo:      snap,
					countFlag: count,
					stepFlag:  step,
					stepSet:   cmd.Flags().Changed("step"),
					yes:       yes,
				},
			}

			res, err := engine.Move(ctx, snap)
			return reportMove(ctx, snap, cfg.StagingBranch, res, err)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "c", 0, "Number of pending commits to move (skips the prompt)")
	cmd.Flags().BoolVarP(&step, "step", "s", false, "Confirm each commit before applying it")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Stash a dirty working tree without asking")

	return cmd
}

// reportMove turns the engine's outcome into user output and an exit status.
// Cancelling a prompt is a no-op, not a failure, and once the push happened
// later failures are reported as warnings without failing the command.
func reportMove(ctx context.Context, snap scan.Snapshot, staging string, res *move.Result, err error) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	if err != nil {
		if errors.Is(err, move.ErrCancelled) {
			out.Printf("%s: move cancelled\n", snap.Name)
			return nil
		}
		if res != nil && res.Pushed {
			l.Warnf("%s: pushed %d commits, but cleanup failed: %v",
				snap.Name, len(res.Processed), err)
			return nil
		}
		return err
	}

	switch {
	case res.Declined:
		out.Printf("%s: move aborted\n", snap.Name)
	case res.Pending == 0:
		out.Printf("%s: no commits to move\n", snap.Name)
	case len(res.Processed) == 0:
		out.Printf("%s: no commits were applied\n", snap.Name)
	default:
		out.Printf("%s: moved %d commits to %s and pushed, %d remaining on %s\n",
			snap.Name, len(res.Processed), snap.Mainline, res.Remaining, staging)
		if res.BackupBranch != "" {
			out.Printf("Previous %s state saved as %s\n", staging, res.BackupBranch)
		}
	}
	return nil
}
