package main

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/amirhk/gitman/internal/output"
	"github.com/amirhk/gitman/internal/ui/static"
)

func newListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List repositories and their pending commits",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List every git repository in the base directory with its mainline
branch, checked out branch, and number of pending commits.

When the staging branch exists, pending counts commits on it that are not
yet on mainline. When mainline itself is checked out, pending counts
commits not yet pushed to origin.`,
		Example: `  gitman list              # Table of all repositories
  gitman list --json        # Output as JSON
  gitman list -d ~/work     # Scan a different directory`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			snapshots, dir, err := scanRepos(ctx)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(out.Writer())
				enc.SetIndent("", "  ")
				return enc.Encode(snapshots)
			}

			if len(snapshots) == 0 {
				out.Printf("No git repositories found in %s\n", dir)
				return nil
			}

			headers := []string{"REPO", "BRANCH", "MAINLINE", "STAGING", "PENDING"}
			var rows [][]string
			for _, snap := range snapshots {
				staging := ""
				if snap.StagingExists {
					staging = cfg.StagingBranch
				}
				pending := ""
				if snap.PendingCount > 0 {
					pending = strconv.Itoa(snap.PendingCount)
				}
				rows = append(rows, []string{snap.Name, snap.CurrentBranch, snap.Mainline, staging, pending})
			}

			out.Print(static.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
