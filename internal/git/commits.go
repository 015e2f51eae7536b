package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// isoTimestamp is the format handed to git for forced commit dates.
const isoTimestamp = "2006-01-02T15:04:05-07:00"

// PendingCount returns the number of commits on staging not reachable from
// mainline. Returns 0 when either branch is missing.
func PendingCount(ctx context.Context, repoPath, staging, mainline string) (int, error) {
	if !gitOK(ctx, repoPath, "rev-parse", "--verify", "--quiet", staging) {
		return 0, nil
	}
	if !BranchExists(ctx, repoPath, mainline) {
		return 0, nil
	}
	output, err := outputGit(ctx, repoPath, "rev-list", "--count", mainline+".."+staging)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending commits: %w", err)
	}
	return parseCount(output)
}

// UnpushedCount returns the number of commits on branch not reachable from
// its origin copy. Returns 0 when the remote branch is missing or the count
// cannot be determined.
func UnpushedCount(ctx context.Context, repoPath, branch string) int {
	if !RemoteBranchExists(ctx, repoPath, branch) {
		return 0
	}
	output, err := outputGit(ctx, repoPath, "rev-list", "--count", "origin/"+branch+".."+branch)
	if err != nil {
		return 0
	}
	n, err := parseCount(output)
	if err != nil {
		return 0
	}
	return n
}

func parseCount(output []byte) (int, error) {
	s := strings.TrimSpace(string(output))
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// ListPending returns the commits on staging not yet on mainline,
// ordered oldest first.
func ListPending(ctx context.Context, repoPath, staging, mainline string) ([]string, error) {
	output, err := outputGit(ctx, repoPath, "rev-list", "--reverse", mainline+".."+staging)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending commits: %w", err)
	}
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return nil, nil
	}
	return strings.Split(trimmed, "\n"), nil
}

// PendingLog returns a human-readable oldest-first listing of the pending
// commits, one "hash date subject" line per commit.
func PendingLog(ctx context.Context, repoPath, staging, mainline string) (string, error) {
	output, err := outputGit(ctx, repoPath,
		"log", "--reverse", "--no-decorate", "--date=short",
		"--pretty=format:  %h  %ad  %s", mainline+".."+staging)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(output), "\n"), nil
}

// Subject returns the one-line subject of a commit.
func Subject(ctx context.Context, repoPath, commit string) (string, error) {
	output, err := outputGit(ctx, repoPath, "show", "-s", "--format=%s", commit)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// Message returns the full commit message of a commit.
func Message(ctx context.Context, repoPath, commit string) (string, error) {
	output, err := outputGit(ctx, repoPath, "show", "-s", "--format=%B", commit)
	if err != nil {
		return "", err
	}
	return string(output), nil
}

// CherryPickNoCommit applies a commit's tree changes to the index and
// working tree without committing.
func CherryPickNoCommit(ctx context.Context, repoPath, commit string) error {
	return runGit(ctx, repoPath, "cherry-pick", "--no-commit", commit)
}

// CherryPick applies a commit, carrying over its stored author and date.
func CherryPick(ctx context.Context, repoPath, commit string) error {
	return runGit(ctx, repoPath, "cherry-pick", commit)
}

// CherryPickAbort rolls back an in-progress cherry-pick.
func CherryPickAbort(ctx context.Context, repoPath string) error {
	return runGit(ctx, repoPath, "cherry-pick", "--abort")
}

// CherryPickSkip advances the sequencer past the current commit.
func CherryPickSkip(ctx context.Context, repoPath string) error {
	return runGit(ctx, repoPath, "cherry-pick", "--skip")
}

// ConflictedFiles returns the files currently in conflicted state.
func ConflictedFiles(ctx context.Context, repoPath string) ([]string, error) {
	output, err := outputGit(ctx, repoPath, "diff", "--name-only", "--diff-filter=U")
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return nil, nil
	}
	return strings.Split(trimmed, "\n"), nil
}

// NothingToCommit reports whether git status shows no pending changes.
// Used to detect cherry-picks of already-applied commits.
func NothingToCommit(ctx context.Context, repoPath string) bool {
	output, err := outputGit(ctx, repoPath, "status")
	if err != nil {
		return false
	}
	return strings.Contains(string(output), "nothing to commit")
}

// StatusEmpty reports whether git status --short produces no output.
func StatusEmpty(ctx context.Context, repoPath string) bool {
	output, err := outputGit(ctx, repoPath, "status", "--short")
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(output)) == ""
}

// TakeConflictSide resolves every conflicted file to one side ("ours" or
// "theirs") and stages the result.
func TakeConflictSide(ctx context.Context, repoPath, side string) error {
	if err := runGit(ctx, repoPath, "checkout", "--"+side, "."); err != nil {
		return err
	}
	return runGit(ctx, repoPath, "add", ".")
}

// CommitWithDates commits the staged changes with the given message, forcing
// both the authored and committed timestamps to at.
func CommitWithDates(ctx context.Context, repoPath, message string, at time.Time) error {
	iso := at.Format(isoTimestamp)
	env := []string{
		"GIT_AUTHOR_DATE=" + iso,
		"GIT_COMMITTER_DATE=" + iso,
	}
	_, err := outputGitEnv(ctx, repoPath, env, "commit", "-m", message, "--date", iso)
	return err
}

// HeadSummary returns a "hash date author <email>" line for HEAD.
func HeadSummary(ctx context.Context, repoPath string) (string, error) {
	output, err := outputGit(ctx, repoPath,
		"show", "-s", "--date=iso", "--pretty=format:%h  %ad  %an <%ae>", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}

// RecentLog returns the latest n commits as "hash date author <email>" lines.
func RecentLog(ctx context.Context, repoPath string, n int) (string, error) {
	output, err := outputGit(ctx, repoPath,
		"log", "-n", strconv.Itoa(n), "--no-decorate", "--date=iso",
		"--pretty=format:  %h  %ad  %an <%ae>")
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(output), "\n"), nil
}

// Author describes the recorded authorship of a commit.
type Author struct {
	Date  string // author date, local calendar day (YYYY-MM-DD)
	Email string
	Name  string
}

// LastAuthors returns authorship of the latest n commits on the current
// branch, newest first.
func LastAuthors(ctx context.Context, repoPath string, n int) ([]Author, error) {
	output, err := outputGit(ctx, repoPath,
		"log", "-n", strconv.Itoa(n), "--date=short", "--pretty=format:%ad%x09%ae%x09%an")
	if err != nil {
		return nil, err
	}

	var authors []Author
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("unexpected log line %q", line)
		}
		authors = append(authors, Author{Date: parts[0], Email: parts[1], Name: parts[2]})
	}
	return authors, nil
}

// ResetHard resets the current branch and working tree to ref.
func ResetHard(ctx context.Context, repoPath, ref string) error {
	return runGit(ctx, repoPath, "reset", "--hard", ref)
}

// CreateBranchAt creates a branch pointing at ref without checking it out.
func CreateBranchAt(ctx context.Context, repoPath, branch, ref string) error {
	return runGit(ctx, repoPath, "branch", branch, ref)
}

// Push pushes branch to origin. Failures are surfaced verbatim; local state
// is left intact for retry.
func Push(ctx context.Context, repoPath, branch string) error {
	return runGit(ctx, repoPath, "push", "origin", branch)
}

// RemoteDefaultBranch returns the branch origin advertises as its HEAD.
// Returns empty string when origin doesn't advertise one.
func RemoteDefaultBranch(ctx context.Context, repoPath string) (string, error) {
	output, err := outputGit(ctx, repoPath, "remote", "show", "origin")
	if err != nil {
		return "", fmt.Errorf("failed to query origin: %w", err)
	}
	for _, line := range strings.Split(string(output), "\n") {
		if idx := strings.Index(line, "HEAD branch:"); idx != -1 {
			head := strings.TrimSpace(line[idx+len("HEAD branch:"):])
			if head == "(unknown)" {
				return "", nil
			}
			return head, nil
		}
	}
	return "", nil
}
