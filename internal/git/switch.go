package git

import (
	"context"
	"fmt"
)

// SwitchToStaging checks out the staging branch, creating it from the best
// available start point if it doesn't exist yet: the mainline branch if it
// exists locally, else the current branch, else origin's copy of the
// mainline, else the current HEAD. Returns the staging branch name.
func SwitchToStaging(ctx context.Context, repoPath, staging, mainline, current string) (string, error) {
	if BranchExists(ctx, repoPath, staging) {
		if err := Checkout(ctx, repoPath, staging); err != nil {
			return "", err
		}
		return staging, nil
	}

	start := mainline
	if !BranchExists(ctx, repoPath, start) && current != "" {
		start = current
	}

	if start != "" && BranchExists(ctx, repoPath, start) {
		if err := CheckoutNew(ctx, repoPath, staging, start); err != nil {
			return "", err
		}
		return staging, nil
	}

	if RemoteBranchExists(ctx, repoPath, mainline) {
		if err := CheckoutNew(ctx, repoPath, staging, "origin/"+mainline); err != nil {
			return "", err
		}
		return staging, nil
	}

	if err := CheckoutNew(ctx, repoPath, staging, ""); err != nil {
		return "", err
	}
	return staging, nil
}

// SwitchToMainline checks out the mainline branch, creating it from origin's
// copy if it only exists remotely. Fails with a *ConfigError when the branch
// exists neither locally nor on origin.
func SwitchToMainline(ctx context.Context, repoPath, mainline string) (string, error) {
	if BranchExists(ctx, repoPath, mainline) {
		if err := Checkout(ctx, repoPath, mainline); err != nil {
			return "", err
		}
		return mainline, nil
	}

	if RemoteBranchExists(ctx, repoPath, mainline) {
		if err := CheckoutNew(ctx, repoPath, mainline, "origin/"+mainline); err != nil {
			return "", err
		}
		return mainline, nil
	}

	return "", &ConfigError{Reason: fmt.Sprintf("mainline branch %q not found locally or on origin", mainline)}
}
