package move

import "errors"

// Resolution is the user's choice for a conflicted cherry-pick.
type Resolution int

const (
	// ResolutionOurs resolves all conflicted files to the mainline side.
	ResolutionOurs Resolution = iota
	// ResolutionTheirs resolves all conflicted files to the staging side.
	ResolutionTheirs
	// ResolutionSkip rolls back this commit and continues with the next.
	ResolutionSkip
	// ResolutionAbort rolls back and terminates the whole move.
	ResolutionAbort
)

// ErrCancelled is returned by a Decider when the user cancels a prompt.
// The engine propagates it before any further mutation.
var ErrCancelled = errors.New("cancelled")

// Decider answers the engine's user decision points. Implementations may be
// terminal prompts, dialog boxes, or scripted answers for tests. Calls block
// until a decision is made.
type Decider interface {
	// MoveCount asks how many of the pending commits to move.
	// The returned count is validated by the engine, not the decider.
	MoveCount(pending int) (int, error)

	// StepMode asks whether to confirm each commit before applying it.
	// Only consulted when more than one commit is selected.
	StepMode(count int) (bool, error)

	// ConfirmStash asks whether to stash a dirty working tree and continue.
	ConfirmStash() (bool, error)

	// ConfirmApply asks whether to apply one commit in step mode.
	// Declining stops the loop early without treating it as an error.
	ConfirmApply(commit, subject string) (bool, error)

	// ResolveConflict asks how to handle a conflicted cherry-pick.
	ResolveConflict(commit string, files []string) (Resolution, error)
}
