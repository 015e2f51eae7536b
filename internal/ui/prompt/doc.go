// Package prompt provides interactive terminal prompts built on bubbletea.
//
// Every prompt refuses to run without a terminal on stdin and returns
// [ErrNotInteractive] instead, so scripted invocations fail fast rather
// than hang waiting for input.
package prompt
