// Package git wraps git CLI invocations for gitman.
//
// All operations shell out to the git binary in a repository working
// directory. Probes (existence checks) never fail; mutations return a
// [*cmd.ExecError] carrying the command, directory, and captured
// diagnostic output when git exits non-zero.
package git
