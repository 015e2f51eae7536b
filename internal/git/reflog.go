package git

import (
	"context"
	"strconv"
	"strings"
)

// ReflogEntry is one line of a branch's reflog.
type ReflogEntry struct {
	SHA    string
	Detail string // everything after "branch@{n}: ", e.g. "commit: add parser"
}

// ReflogEntries returns up to n reflog entries for branch, newest first.
func ReflogEntries(ctx context.Context, repoPath, branch string, n int) ([]ReflogEntry, error) {
	output, err := outputGit(ctx, repoPath, "reflog", "show", branch, "-"+strconv.Itoa(n))
	if err != nil {
		return nil, err
	}

	var entries []ReflogEntry
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line == "" {
			continue
		}
		// Format: "<sha> <branch>@{<n>}: <action>: <message>"
		fields := strings.SplitN(line, " ", 2)
		entry := ReflogEntry{SHA: fields[0]}
		if len(fields) == 2 {
			if idx := strings.Index(fields[1], ": "); idx != -1 {
				entry.Detail = fields[1][idx+2:]
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// LastGoodStagingState returns the newest reflog entry of the staging branch
// that is not a branch creation and not a reset onto the mainline branch.
// Resets onto a branch named main are always skipped, even when the mainline
// is master; a move may have rewritten staging against either.
// Returns empty string when no such entry exists.
func LastGoodStagingState(ctx context.Context, repoPath, staging, mainline string) (string, error) {
	entries, err := ReflogEntries(ctx, repoPath, staging, 20)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if strings.Contains(entry.Detail, "Created from") {
			continue
		}
		if strings.Contains(entry.Detail, "moving to main") {
			continue
		}
		if strings.Contains(entry.Detail, "moving to "+mainline) {
			continue
		}
		return entry.SHA, nil
	}
	return "", nil
}
