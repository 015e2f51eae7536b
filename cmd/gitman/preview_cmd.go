package main

import (
	"github.com/spf13/cobra"

	"github.com/amirhk/gitman/internal/git"
	"github.com/amirhk/gitman/internal/output"
)

func newPreviewCmd() *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:     "preview [repo]",
		Short:   "Show the commits a move would replay",
		GroupID: GroupCore,
		Args:    cobra.MaximumNArgs(1),
		Long: `Show the pending commits on the staging branch, oldest first, in the
order a move would replay them, followed by the latest commits already on
the mainline branch.`,
		Example: `  gitman preview            # Pick a repository, then preview it
  gitman preview myrepo     # Preview a specific repository`,
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
				out.Printf("%s: no %s branch\n", snap.Name, cfg.StagingBranch)
				return nil
			}
			if snap.PendingCount == 0 {
				out.Printf("%s: no commits to move\n", snap.Name)
				return nil
			}

			pending, err := git.PendingLog(ctx, snap.Path, cfg.StagingBranch, snap.Mainline)
			if err != nil {
				return err
			}
			out.Printf("%d pending commits on %s (oldest first):\n%s\n", snap.PendingCount, cfg.StagingBranch, pending)

			latest, err := git.RecentLog(ctx, snap.Path, recent)
			if err != nil {
				return err
			}
			if latest != "" {
				out.Printf("\nLatest on %s:\n%s\n", snap.CurrentBranch, latest)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&recent, "recent", "n", 5, "Number of recent commits to show for context")

	return cmd
}
