package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirhk/gitman/internal/doctor"
	"github.com/amirhk/gitman/internal/output"
	"github.com/amirhk/gitman/internal/ui/styles"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "doctor",
		Short:   "Check repositories for problems that would affect a move",
		GroupID: GroupConfig,
		Args:    cobra.NoArgs,
		Long: `Run health checks over every repository in the base directory:
missing identity, missing mainline, unfinished merges or cherry-picks,
detached HEAD, stale staging branches, and leftover backup branches.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			snapshots, dir, err := scanRepos(ctx)
			if err != nil {
				return err
			}
			out.Printf("Checked %d repositories in %s\n", len(snapshots), dir)

			issues := doctor.Run(ctx, cfg.StagingBranch, snapshots)
			if len(issues) == 0 {
				out.Println(styles.SuccessStyle.Render("No issues found"))
				return nil
			}

			errors := 0
			for _, issue := range issues {
				label := styles.WarnStyle.Render(string(issue.Severity))
				switch issue.Severity {
				case doctor.SeverityError:
					label = styles.ErrorStyle.Render(string(issue.Severity))
					errors++
				case doctor.SeverityInfo:
					label = styles.MutedStyle.Render(string(issue.Severity))
				}
				repo := issue.Repo
				if repo == "" {
					repo = "-"
				}
				out.Printf("  %s  %s: %s\n", label, repo, issue.Description)
				if issue.Hint != "" {
					out.Printf("        %s\n", styles.MutedStyle.Render(issue.Hint))
				}
			}

			if errors > 0 {
				return fmt.Errorf("%d blocking issues found", errors)
			}
			return nil
		},
	}
}
