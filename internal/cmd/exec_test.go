package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/amirhk/gitman/internal/log"
)

func logCtx() context.Context {
	l := log.New(&bytes.Buffer{}, false, false)
	return log.WithLogger(context.Background(), l)
}

func TestRunContext_Success(t *testing.T) {
	t.Parallel()
	err := RunContext(logCtx(), "", "echo", "hello")
	if err != nil {
		t.Errorf("RunContext(echo hello) = %v, want nil", err)
	}
}

func TestRunContext_Failure(t *testing.T) {
	t.Parallel()
	err := RunContext(logCtx(), "", "sh", "-c", "exit 1")
	if err == nil {
		t.Error("RunContext(exit 1) = nil, want error")
	}
}

func TestRunContext_ExecError(t *testing.T) {
	t.Parallel()
	err := RunContext(logCtx(), "/tmp", "sh", "-c", "echo 'bad thing' >&2; exit 1")
	if err == nil {
		t.Fatal("RunContext = nil, want error")
	}

	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("RunContext error = %T, want *ExecError", err)
	}
	if execErr.Diagnostic != "bad thing" {
		t.Errorf("Diagnostic = %q, want %q", execErr.Diagnostic, "bad thing")
	}
	if execErr.Dir != "/tmp" {
		t.Errorf("Dir = %q, want %q", execErr.Dir, "/tmp")
	}
	if !strings.Contains(err.Error(), "bad thing") {
		t.Errorf("Error() = %q, want it to contain the diagnostic", err.Error())
	}
}

func TestRunContext_StdoutFallback(t *testing.T) {
	t.Parallel()
	err := RunContext(logCtx(), "", "sh", "-c", "echo 'stdout only'; exit 1")
	if err == nil {
		t.Fatal("RunContext = nil, want error")
	}

	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("RunContext error = %T, want *ExecError", err)
	}
	if execErr.Diagnostic != "stdout only" {
		t.Errorf("Diagnostic = %q, want stdout fallback", execErr.Diagnostic)
	}
}

func TestRunContext_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(logCtx())
	cancel()
	err := RunContext(ctx, "", "sleep", "10")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RunContext error = %v, want context.Canceled", err)
	}
}

func TestOutputContext_Success(t *testing.T) {
	t.Parallel()
	out, err := OutputContext(logCtx(), "", "echo", "hello")
	if err != nil {
		t.Fatalf("OutputContext(echo hello) = %v, want nil", err)
	}
	if got := string(out); got != "hello\n" {
		t.Errorf("OutputContext output = %q, want %q", got, "hello\n")
	}
}

func TestOutputContextEnv(t *testing.T) {
	t.Parallel()
	out, err := OutputContextEnv(logCtx(), "", []string{"GITMAN_TEST_VAR=forced"}, "sh", "-c", "echo $GITMAN_TEST_VAR")
	if err != nil {
		t.Fatalf("OutputContextEnv = %v, want nil", err)
	}
	if got := strings.TrimSpace(string(out)); got != "forced" {
		t.Errorf("env var = %q, want %q", got, "forced")
	}
}

func TestOK(t *testing.T) {
	t.Parallel()
	if !OK(logCtx(), "", "true") {
		t.Error("OK(true) = false, want true")
	}
	if OK(logCtx(), "", "false") {
		t.Error("OK(false) = true, want false")
	}
}

func TestOK_Cancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(logCtx())
	cancel()
	if OK(ctx, "", "true") {
		t.Error("OK with cancelled context = true, want false")
	}
}
