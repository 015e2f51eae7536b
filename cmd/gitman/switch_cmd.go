package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/amirhk/gitman/internal/git"
	"github.com/amirhk/gitman/internal/log"
	"github.com/amirhk/gitman/internal/output"
	"github.com/amirhk/gitman/internal/scan"
)

func newSwitchCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "switch [repo]",
		Short:   "Toggle a repository between staging and mainline",
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `Toggle the checked out branch of a repository between the staging
branch and the mainline branch.

The staging branch is created from the best available start point when it
doesn't exist yet. With --all, every repository in the base directory is
put on its staging branch.`,
		Example: `  gitman switch             # Pick a repository, then toggle it
  gitman switch myrepo      # Toggle a specific repository
  gitman switch --all       # Put every repository on staging`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			snapshots, dir, err := scanRepos(ctx)
			if err != nil {
				return err
			}

			if all {
				return switchAllToStaging(ctx, snapshots)
			}

			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			snap, err := resolveRepo(ctx, snapshots, dir, name)
			if err != nil {
				return err
			}

			branch, err := toggleBranch(ctx, snap)
			if err != nil {
				return err
			}
			output.FromContext(ctx).Printf("%s: now on %s\n", snap.Name, branch)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Switch every repository to its staging branch")

	return cmd
}

// toggleBranch moves the repository to the other side of the staging and
// mainline pair. On any branch besides staging it switches to staging.
func toggleBranch(ctx context.Context, snap scan.Snapshot) (string, error) {
	if snap.CurrentBranch == cfg.StagingBranch {
		return git.SwitchToMainline(ctx, snap.Path, snap.Mainline)
	}
	return git.SwitchToStaging(ctx, snap.Path, cfg.StagingBranch, snap.Mainline, snap.CurrentBranch)
}

func switchAllToStaging(ctx context.Context, snapshots []scan.Snapshot) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)

	for _, snap := range snapshots {
		if snap.CurrentBranch == cfg.StagingBranch {
			out.Printf("%s: already on %s\n", snap.Name, cfg.StagingBranch)
			continue
		}
		branch, err := git.SwitchToStaging(ctx, snap.Path, cfg.StagingBranch, snap.Mainline, snap.CurrentBranch)
		if err != nil {
			// Keep going; a dirty tree in one repo shouldn't block the rest.
			l.Warnf("%s: %v", snap.Name, err)
			continue
		}
		out.Printf("%s: now on %s\n", snap.Name, branch)
	}
	return nil
}
