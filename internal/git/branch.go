package git

import (
	"context"
	"strings"

	"github.com/amirhk/gitman/internal/log"
)

// BranchExists reports whether a local branch exists.
func BranchExists(ctx context.Context, repoPath, branch string) bool {
	return gitOK(ctx, repoPath, "show-ref", "--verify", "--quiet", "refs/heads/"+branch)
}

// RemoteBranchExists reports whether origin has the branch.
func RemoteBranchExists(ctx context.Context, repoPath, branch string) bool {
	return gitOK(ctx, repoPath, "show-ref", "--verify", "--quiet", "refs/remotes/origin/"+branch)
}

// Checkout switches the working tree to an existing branch or ref.
func Checkout(ctx context.Context, repoPath, ref string) error {
	return runGit(ctx, repoPath, "checkout", ref)
}

// CheckoutNew creates a branch and checks it out. An empty start point
// creates the branch at the current HEAD.
func CheckoutNew(ctx context.Context, repoPath, branch, start string) error {
	if start == "" {
		return runGit(ctx, repoPath, "checkout", "-b", branch)
	}
	return runGit(ctx, repoPath, "checkout", "-b", branch, start)
}

// CurrentBranch returns the checked-out branch name.
// Returns the "HEAD" sentinel when HEAD is detached; never fails.
func CurrentBranch(ctx context.Context, repoPath string) string {
	output, err := outputGit(ctx, repoPath, "symbolic-ref", "--short", "-q", "HEAD")
	if err != nil {
		return "HEAD"
	}
	branch := strings.TrimSpace(string(output))
	if branch == "" {
		return "HEAD"
	}
	return branch
}

// BranchesWithPrefix returns the local branches whose names start with
// prefix, sorted by name.
func BranchesWithPrefix(ctx context.Context, repoPath, prefix string) ([]string, error) {
	output, err := outputGit(ctx, repoPath,
		"for-each-ref", "--format=%(refname:short)", "--sort=refname",
		"refs/heads/"+prefix+"*")
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return nil, nil
	}
	return strings.Split(trimmed, "\n"), nil
}

// DetectMainline determines the repository's mainline branch: a local main,
// else a local master, else the branch origin/HEAD points at, else "main".
func DetectMainline(ctx context.Context, repoPath string) string {
	if BranchExists(ctx, repoPath, "main") {
		return "main"
	}
	if BranchExists(ctx, repoPath, "master") {
		return "master"
	}

	if gitOK(ctx, repoPath, "rev-parse", "--abbrev-ref", "origin/HEAD") {
		output, err := outputGit(ctx, repoPath, "rev-parse", "--abbrev-ref", "origin/HEAD")
		if err == nil {
			head := strings.TrimSpace(string(output))
			if head != "" && head != "HEAD" {
				return strings.TrimPrefix(head, "origin/")
			}
		}
	}
	return "main"
}

// EnsureMain makes sure a local main branch exists, creating it from master,
// origin/main, origin/master, or the current HEAD, in that order. Best-effort:
// failures only degrade later branch comparisons, so they are logged and
// swallowed.
func EnsureMain(ctx context.Context, repoPath string) {
	if BranchExists(ctx, repoPath, "main") {
		return
	}

	var start string
	switch {
	case BranchExists(ctx, repoPath, "master"):
		start = "master"
	case RemoteBranchExists(ctx, repoPath, "main"):
		start = "origin/main"
	case RemoteBranchExists(ctx, repoPath, "master"):
		start = "origin/master"
	}

	args := []string{"branch", "main"}
	if start != "" {
		args = append(args, start)
	}
	if err := runGit(ctx, repoPath, args...); err != nil {
		log.FromContext(ctx).Warnf("could not create main branch in %s: %v", repoPath, err)
	}
}
