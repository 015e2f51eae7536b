package prompt

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/amirhk/gitman/internal/ui/styles"
)

// NumberResult holds the result of a numeric input prompt.
type NumberResult struct {
	Value     int
	Cancelled bool
}

type numberModel struct {
	input     textinput.Model
	prompt    string
	minVal    int
	maxVal    int
	value     int
	errMsg    string
	done      bool
	cancelled bool
}

func (m numberModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m numberModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			n, err := strconv.Atoi(strings.TrimSpace(m.input.Value()))
			if err != nil || n < m.minVal || n > m.maxVal {
				// Re-prompt instead of quitting with a bad value.
				m.errMsg = fmt.Sprintf("enter a number between %d and %d", m.minVal, m.maxVal)
				return m, nil
			}
			m.value = n
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m numberModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	view := fmt.Sprintf("%s\n%s", m.prompt, m.input.View())
	if m.errMsg != "" {
		view += "\n" + styles.ErrorStyle.Render(m.errMsg)
	}
	return tea.NewView(view)
}

// Number shows a numeric input prompt accepting values in [minVal, maxVal].
// Out-of-range input re-prompts inline rather than failing.
func Number(prompt string, minVal, maxVal int) (NumberResult, error) {
	if !interactive() {
		return NumberResult{}, ErrNotInteractive
	}

	ti := textinput.New()
	ti.Placeholder = strconv.Itoa(maxVal)
	ti.Focus()
	ti.CharLimit = 6
	ti.SetWidth(10)

	model := numberModel{
		input:  ti,
		prompt: prompt,
		minVal: minVal,
		maxVal: maxVal,
	}
	p := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return NumberResult{}, err
	}
	m := finalModel.(numberModel)
	return NumberResult{
		Value:     m.value,
		Cancelled: m.cancelled,
	}, nil
}
