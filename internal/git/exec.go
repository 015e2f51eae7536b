package git

import (
	"context"

	"github.com/amirhk/gitman/internal/cmd"
)

// runGit executes a git command in dir with context support and verbose logging.
func runGit(ctx context.Context, dir string, args ...string) error {
	return cmd.RunContext(ctx, dir, "git", args...)
}

// outputGit executes a git command in dir, returning stdout.
func outputGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return cmd.OutputContext(ctx, dir, "git", args...)
}

// outputGitEnv executes a git command with extra environment variables.
func outputGitEnv(ctx context.Context, dir string, extraEnv []string, args ...string) ([]byte, error) {
	return cmd.OutputContextEnv(ctx, dir, extraEnv, "git", args...)
}

// gitOK reports whether a git command exits zero. Output is discarded.
func gitOK(ctx context.Context, dir string, args ...string) bool {
	return cmd.OK(ctx, dir, "git", args...)
}

// RunGitCommand executes a git command in dir.
// This is the exported version of runGit for use by commands and tests.
func RunGitCommand(ctx context.Context, dir string, args ...string) error {
	return runGit(ctx, dir, args...)
}
