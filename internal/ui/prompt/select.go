package prompt

import (
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"
	"github.com/sahilm/fuzzy"

	"github.com/amirhk/gitman/internal/ui/styles"
)

// SelectResult holds the result of a selection prompt.
type SelectResult struct {
	Value     string
	Index     int // index into the original options
	Cancelled bool
}

// stringSource implements fuzzy.Source over plain options.
type stringSource []string

func (s stringSource) String(i int) string { return s[i] }
func (s stringSource) Len() int            { return len(s) }

type selectModel struct {
	prompt    string
	options   []string
	filtered  []fuzzy.Match
	cursor    int
	filter    string
	selected  int
	done      bool
	cancelled bool
}

func newSelectModel(prompt string, options []string) selectModel {
	m := selectModel{
		prompt:   prompt,
		options:  options,
		selected: -1,
	}
	m.applyFilter()
	return m
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch s := key.String(); s {
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "ctrl+n":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.filtered) > 0 && m.cursor < len(m.filtered) {
			m.selected = m.filtered[m.cursor].Index
			m.done = true
			return m, tea.Quit
		}
	case "ctrl+c", "esc":
		m.cancelled = true
		m.done = true
		return m, tea.Quit
	case "backspace":
		if len(m.filter) > 0 {
			m.filter = m.filter[:len(m.filter)-1]
			m.applyFilter()
		}
	default:
		if r, size := utf8.DecodeRuneInString(s); size == len(s) && unicode.IsPrint(r) {
			m.filter += s
			m.applyFilter()
		}
	}
	return m, nil
}

func (m *selectModel) applyFilter() {
	if m.filter == "" {
		m.filtered = make([]fuzzy.Match, len(m.options))
		for i, opt := range m.options {
			m.filtered[i] = fuzzy.Match{Str: opt, Index: i}
		}
	} else {
		// Matches come back ranked best first.
		m.filtered = fuzzy.FindFrom(m.filter, stringSource(m.options))
	}
	if m.cursor >= len(m.filtered) {
		m.cursor = max(0, len(m.filtered)-1)
	}
}

const maxVisible = 10

func (m selectModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}

	var b strings.Builder
	b.WriteString(m.prompt + "\n")
	b.WriteString(styles.MutedStyle.Render("Filter: ") + m.filter + "\n\n")

	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := min(start+maxVisible, len(m.filtered))

	if start > 0 {
		b.WriteString(styles.MutedStyle.Render("  ↑ more above") + "\n")
	}

	for i := start; i < end; i++ {
		match := m.filtered[i]
		cursor := "  "
		if i == m.cursor {
			cursor = styles.AccentStyle.Render("> ")
		}
		b.WriteString(cursor + m.renderMatch(match, i == m.cursor) + "\n")
	}

	if end < len(m.filtered) {
		b.WriteString(styles.MutedStyle.Render("  ↓ more below") + "\n")
	}
	if len(m.filtered) == 0 {
		b.WriteString(styles.MutedStyle.Render("  No matching items") + "\n")
	}

	b.WriteString("\n" + styles.MutedStyle.Render("↑/↓ select • type to filter • enter confirm • esc cancel"))
	return tea.NewView(b.String())
}

// renderMatch renders an option with its fuzzy-matched runes highlighted.
func (m selectModel) renderMatch(match fuzzy.Match, active bool) string {
	label := m.options[match.Index]
	if m.filter == "" || len(match.MatchedIndexes) == 0 {
		if active {
			return styles.AccentStyle.Render(label)
		}
		return label
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}

	var out strings.Builder
	for i, r := range []rune(label) {
		switch {
		case matched[i]:
			out.WriteString(styles.HighlightStyle.Render(string(r)))
		case active:
			out.WriteString(styles.AccentStyle.Render(string(r)))
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}

// Select shows a fuzzy-filterable selection prompt over options and returns
// the user's choice.
func Select(prompt string, options []string) (SelectResult, error) {
	if len(options) == 0 {
		return SelectResult{Cancelled: true}, nil
	}
	if !interactive() {
		return SelectResult{}, ErrNotInteractive
	}

	p := tea.NewProgram(newSelectModel(prompt, options), tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return SelectResult{}, err
	}
	m := finalModel.(selectModel)

	if m.cancelled || m.selected < 0 || m.selected >= len(m.options) {
		return SelectResult{Cancelled: true}, nil
	}
	return SelectResult{
		Value: m.options[m.selected],
		Index: m.selected,
	}, nil
}
