package move

import (
	"errors"
	"fmt"
)

// ValidationError reports a requested commit count outside [1, pending].
type ValidationError struct {
	Count   int
	Pending int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("commit count %d out of range [1, %d]", e.Count, e.Pending)
}

// PolicyError reports a failed pre-push validation. The mainline branch is
// left holding the newly committed, unpushed commits; the engine never
// auto-reverts them.
type PolicyError struct {
	Reason string
}

func (e *PolicyError) Error() string { return e.Reason }

// ErrConflictAbort indicates a cherry-pick conflict was aborted or its
// resolution prompt was cancelled, terminating the move.
var ErrConflictAbort = errors.New("cherry-pick aborted for manual resolution")

// ErrReconcile indicates the staging branch rewrite failed after a
// successful push. Mainline already holds the pushed commits; staging is
// mid-rewrite and needs manual resolution.
var ErrReconcile = errors.New("staging rewrite requires manual resolution")
