// Package cmd provides helpers for executing shell commands with proper error handling.
//
// This package wraps [os/exec.Cmd] to capture stderr and include it in a
// typed [*ExecError], making command failures more informative for users.
// Failures always carry the command, working directory, and diagnostic text
// (stderr if non-empty, else stdout).
//
// # Design Notes
//
// gitman shells out to the git CLI rather than using Go libraries.
// This approach is simpler, more reliable, and ensures compatibility with
// user configurations (SSH keys, credential helpers, hooks, etc.).
package cmd
