package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirhk/gitman/internal/git"
	"github.com/amirhk/gitman/internal/output"
	"github.com/amirhk/gitman/internal/ui/prompt"
)

func newRestoreCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "restore [repo]",
		Short:   "Restore the staging branch from its reflog",
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `Reset the staging branch to its last state before a move rewrote it.

The target is taken from the staging branch's reflog, skipping branch
creations and resets onto mainline. Use this when a move went wrong and
the backup branch is gone.`,
		Example: `  gitman restore            # Pick a repository, then restore it
  gitman restore myrepo -y  # Restore without confirmation`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

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

			if !snap.StagingExists {
				return fmt.Errorf("%s: no %s branch to restore", snap.Name, cfg.StagingBranch)
			}

			sha, err := git.LastGoodStagingState(ctx, snap.Path, cfg.StagingBranch, snap.Mainline)
			if err != nil {
				return err
			}
			if sha == "" {
				return fmt.Errorf("%s: no restorable state found in the %s reflog", snap.Name, cfg.StagingBranch)
			}

			subject, err := git.Subject(ctx, snap.Path, sha)
			if err != nil {
				return err
			}

			if !yes {
				result, err := prompt.Confirm(fmt.Sprintf(
					"Reset %s to %s %q?", cfg.StagingBranch, sha[:min(7, len(sha))], subject))
				if err != nil {
					return err
				}
				if result.Cancelled || !result.Confirmed {
					out.Printf("%s: restore cancelled\n", snap.Name)
					return nil
				}
			}

			if err := git.Checkout(ctx, snap.Path, cfg.StagingBranch); err != nil {
				return err
			}
			if err := git.ResetHard(ctx, snap.Path, sha); err != nil {
				return err
			}

			pending, err := git.PendingCount(ctx, snap.Path, cfg.StagingBranch, snap.Mainline)
			if err != nil {
				return err
			}
			out.Printf("%s: %s restored to %s, %d pending commits\n",
				snap.Name, cfg.StagingBranch, sha[:min(7, len(sha))], pending)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Restore without confirmation")

	return cmd
}
