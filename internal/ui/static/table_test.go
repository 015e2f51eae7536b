package static

import (
	"strings"
	"testing"
)

func TestRenderTable(t *testing.T) {
	t.Parallel()

	out := RenderTable(
		[]string{"REPO", "BRANCH", "PENDING"},
		[][]string{
			{"alpha", "local_commit", "2"},
			{"beta", "main", "0"},
		},
	)

	for _, want := range []string{"REPO", "BRANCH", "PENDING", "alpha", "beta", "local_commit"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderTable output missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("RenderTable output should end with newline")
	}
}

func TestRenderTable_Empty(t *testing.T) {
	t.Parallel()

	if out := RenderTable([]string{"A"}, nil); out != "" {
		t.Errorf("RenderTable with no rows = %q, want empty", out)
	}
}
