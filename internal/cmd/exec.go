package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/amirhk/gitman/internal/log"
)

// ExecError reports a failed external command. Diagnostic holds the trimmed
// stderr output, falling back to stdout when stderr is empty.
type ExecError struct {
	Name       string
	Args       []string
	Dir        string
	Diagnostic string
	Err        error
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("%s %s failed", e.Name, strings.Join(e.Args, " "))
	if e.Dir != "" {
		msg += " in " + e.Dir
	}
	if e.Diagnostic != "" {
		return msg + ": " + e.Diagnostic
	}
	return msg + ": " + e.Err.Error()
}

func (e *ExecError) Unwrap() error { return e.Err }

// RunContext executes a command in dir with context support and verbose logging.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := OutputContext(ctx, dir, name, args...)
	return err
}

// OutputContext executes a command in dir and returns its stdout.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	return OutputContextEnv(ctx, dir, nil, name, args...)
}

// OutputContextEnv executes a command with additional environment variables
// appended to the current process environment. Used to force authored and
// committed timestamps on git commits.
func OutputContextEnv(ctx context.Context, dir string, extraEnv []string, name string, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.FromContext(ctx).Command(name, args...)

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	if len(extraEnv) > 0 {
		c.Env = append(os.Environ(), extraEnv...)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	if err := c.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		diagnostic := strings.TrimSpace(stderr.String())
		if diagnostic == "" {
			diagnostic = strings.TrimSpace(stdout.String())
		}
		return nil, &ExecError{
			Name:       name,
			Args:       args,
			Dir:        dir,
			Diagnostic: diagnostic,
			Err:        err,
		}
	}

	return stdout.Bytes(), nil
}

// OK runs a command and reports whether it exited successfully.
// All output is discarded; OK never returns an error.
func OK(ctx context.Context, dir, name string, args ...string) bool {
	if ctx.Err() != nil {
		return false
	}
	log.FromContext(ctx).Command(name, args...)

	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	return c.Run() == nil
}
