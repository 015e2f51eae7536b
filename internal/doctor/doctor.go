// Package doctor runs health checks over the environment and every scanned
// repository, reporting anything that would block or degrade a move.
package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirhk/gitman/internal/git"
	"github.com/amirhk/gitman/internal/scan"
)

// Run checks the environment and all repositories and returns the issues
// found. An empty result means everything is ready for moving commits.
func Run(ctx context.Context, staging string, snapshots []scan.Snapshot) []Issue {
	var issues []Issue

	if err := git.CheckGit(); err != nil {
		issues = append(issues, Issue{
			Description: err.Error(),
			Severity:    SeverityError,
		})
		return issues
	}

	for _, snap := range snapshots {
		issues = append(issues, checkRepo(ctx, staging, snap)...)
	}
	return issues
}

func checkRepo(ctx context.Context, staging string, snap scan.Snapshot) []Issue {
	var issues []Issue

	if _, err := git.EnsureIdentity(ctx, snap.Path); err != nil {
		issues = append(issues, Issue{
			Repo:        snap.Name,
			Description: "git user identity not configured",
			Hint:        "set user.name and user.email",
			Severity:    SeverityError,
		})
	}

	if !git.BranchExists(ctx, snap.Path, snap.Mainline) {
		issues = append(issues, Issue{
			Repo:        snap.Name,
			Description: fmt.Sprintf("mainline branch %q missing locally", snap.Mainline),
			Severity:    SeverityError,
		})
	}

	if ops := git.InProgressOps(ctx, snap.Path); len(ops) > 0 {
		issues = append(issues, Issue{
			Repo:        snap.Name,
			Description: fmt.Sprintf("unfinished %s in progress", strings.Join(ops, ", ")),
			Hint:        "resolve or abort it before moving commits",
			Severity:    SeverityError,
		})
	}

	if snap.CurrentBranch == "HEAD" {
		issues = append(issues, Issue{
			Repo:        snap.Name,
			Description: "detached HEAD",
			Hint:        "check out a branch",
			Severity:    SeverityWarn,
		})
	}

	if snap.StagingExists {
		// Commits on mainline missing from staging mean the staging branch
		// was not rewritten after the last move, or mainline moved on.
		behind, err := git.PendingCount(ctx, snap.Path, snap.Mainline, staging)
		if err == nil && behind > 0 {
			issues = append(issues, Issue{
				Repo:        snap.Name,
				Description: fmt.Sprintf("%s is %d commits behind %s", staging, behind, snap.Mainline),
				Hint:        "gitman restore, or rebase the staging branch",
				Severity:    SeverityWarn,
			})
		}
	}

	if backups, err := git.BranchesWithPrefix(ctx, snap.Path, "backup_"+staging+"_"); err == nil && len(backups) > 0 {
		issues = append(issues, Issue{
			Repo:        snap.Name,
			Description: fmt.Sprintf("%d backup branches from previous moves", len(backups)),
			Hint:        "delete them once the moves are verified",
			Severity:    SeverityInfo,
		})
	}

	return issues
}
