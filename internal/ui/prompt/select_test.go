package prompt

import (
	"strings"
	"testing"
)

func TestSelectModel_FilterAndPick(t *testing.T) {
	t.Parallel()

	m := newSelectModel("Pick a repo", []string{"alpha", "beta", "zebra"})

	// Typing narrows the list with fuzzy matching.
	for _, key := range []string{"z", "b"} {
		updated, _ := m.Update(keyPress(key))
		m = updated.(selectModel)
	}
	if len(m.filtered) != 1 {
		t.Fatalf("filtered = %d options after typing zb, want 1", len(m.filtered))
	}

	updated, cmd := m.Update(keyPress("enter"))
	m = updated.(selectModel)
	if cmd == nil || !m.done {
		t.Fatal("enter should finish the prompt")
	}
	if m.selected != 2 {
		t.Errorf("selected = %d, want original index 2 (zebra)", m.selected)
	}
}

func TestSelectModel_CursorMoves(t *testing.T) {
	t.Parallel()

	m := newSelectModel("Pick", []string{"a", "b", "c"})

	updated, _ := m.Update(keyPress("down"))
	m = updated.(selectModel)
	updated, _ = m.Update(keyPress("down"))
	m = updated.(selectModel)
	updated, _ = m.Update(keyPress("down")) // clamped at the end
	m = updated.(selectModel)
	if m.cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.cursor)
	}

	updated, _ = m.Update(keyPress("up"))
	m = updated.(selectModel)
	if m.cursor != 1 {
		t.Errorf("cursor = %d after up, want 1", m.cursor)
	}
}

func TestSelectModel_BackspaceRestoresOptions(t *testing.T) {
	t.Parallel()

	m := newSelectModel("Pick", []string{"alpha", "beta"})

	updated, _ := m.Update(keyPress("x"))
	m = updated.(selectModel)
	if len(m.filtered) != 0 {
		t.Fatalf("filtered = %d for non-matching filter, want 0", len(m.filtered))
	}

	updated, _ = m.Update(keyPress("backspace"))
	m = updated.(selectModel)
	if len(m.filtered) != 2 {
		t.Errorf("filtered = %d after backspace, want all 2", len(m.filtered))
	}
}

func TestSelectModel_Cancel(t *testing.T) {
	t.Parallel()

	m := newSelectModel("Pick", []string{"a"})
	updated, _ := m.Update(keyPress("esc"))
	m = updated.(selectModel)
	if !m.cancelled {
		t.Error("cancelled = false after esc, want true")
	}
}

func TestSelectModel_ViewShowsOptions(t *testing.T) {
	t.Parallel()

	m := newSelectModel("Pick a repo", []string{"alpha", "beta"})
	content := viewContent(m.View())
	for _, want := range []string{"Pick a repo", "alpha", "beta"} {
		if !strings.Contains(content, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
