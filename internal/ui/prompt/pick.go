package prompt

import (
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/sahilm/fuzzy"

	"github.com/raphi011/prog/internal/ui/styles"
)

// maxVisible is how many options the picker shows at once.
const maxVisible = 10

// Option is one entry of a Pick prompt.
type Option struct {
	Symbol      string // kind marker drawn before the label
	Label       string // filtered on
	Description string // shown muted below the label
}

// PickResult holds the result of a Pick prompt. Index points into the
// options passed to Pick.
type PickResult struct {
	Index     int
	Cancelled bool
}

type optionSource []Option

func (s optionSource) String(i int) string { return s[i].Label }
func (s optionSource) Len() int            { return len(s) }

type pickModel struct {
	title    string
	options  []Option
	filter   string
	filtered []fuzzy.Match
	cursor   int

	done      bool
	cancelled bool
	selected  int
}

func newPickModel(title string, options []Option) *pickModel {
	m := &pickModel{title: title, options: options, selected: -1}
	m.applyFilter()
	return m
}

func (m *pickModel) Init() tea.Cmd {
	return nil
}

// Update only reacts to key presses; window size and mouse events are
// ignored because the list never wraps.
func (m *pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c":
		m.cancelled = true
		return m, tea.Quit
	case "esc":
		if m.filter != "" {
			m.filter = ""
			m.applyFilter()
			return m, nil
		}
		m.cancelled = true
		return m, tea.Quit
	case "enter":
		if m.cursor < len(m.filtered) {
			m.selected = m.filtered[m.cursor].Index
			m.done = true
			return m, tea.Quit
		}
	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "ctrl+n":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "backspace":
		if m.filter != "" {
			r := []rune(m.filter)
			m.filter = string(r[:len(r)-1])
			m.applyFilter()
		}
	default:
		if key.Text != "" {
			m.filter += key.Text
			m.applyFilter()
		}
	}
	return m, nil
}

// applyFilter keeps the original order while the filter is empty and the
// sahilm/fuzzy ranking otherwise.
func (m *pickModel) applyFilter() {
	if m.filter == "" {
		m.filtered = make([]fuzzy.Match, len(m.options))
		for i, opt := range m.options {
			m.filtered[i] = fuzzy.Match{Str: opt.Label, Index: i}
		}
	} else {
		m.filtered = fuzzy.FindFrom(m.filter, optionSource(m.options))
	}
	m.cursor = min(m.cursor, max(len(m.filtered)-1, 0))
}

func (m *pickModel) View() tea.View {
	if m.done || m.cancelled {
		return tea.NewView("")
	}

	var b strings.Builder
	b.WriteString(styles.PrimaryStyle.Bold(true).Render(m.title) + "\n")
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
		opt := m.options[match.Index]

		cursor := "  "
		if i == m.cursor {
			cursor = styles.AccentStyle.Render("> ")
		}
		label := highlight(opt.Label, match.MatchedIndexes, i == m.cursor)
		if opt.Symbol != "" {
			label = opt.Symbol + " " + label
		}
		b.WriteString(cursor + label + "\n")
		if opt.Description != "" {
			b.WriteString("    " + styles.MutedStyle.Render(opt.Description) + "\n")
		}
	}
	if end < len(m.filtered) {
		b.WriteString(styles.MutedStyle.Render("  ↓ more below") + "\n")
	}
	if len(m.filtered) == 0 {
		b.WriteString(styles.MutedStyle.Render("  No matching repositories") + "\n")
	}

	b.WriteString("\n" + styles.MutedStyle.Render("↑/↓ select • type to filter • enter confirm • esc cancel") + "\n")
	return tea.NewView(b.String())
}

func highlight(label string, matched []int, selected bool) string {
	base := styles.NormalStyle
	if selected {
		base = styles.AccentStyle
	}
	if len(matched) == 0 {
		return base.Render(label)
	}

	hit := make(map[int]bool, len(matched))
	for _, idx := range matched {
		hit[idx] = true
	}
	var b strings.Builder
	// MatchedIndexes are byte offsets into label.
	for i, r := range label {
		if hit[i] {
			b.WriteString(styles.HighlightStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// Pick shows a fuzzy-filtered list and returns the chosen option.
func Pick(title string, options []Option) (PickResult, error) {
	if len(options) == 0 {
		return PickResult{Index: -1, Cancelled: true}, nil
	}

	model := newPickModel(title, options)
	profile := colorprofile.Detect(os.Stderr, os.Environ())
	p := tea.NewProgram(model,
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(profile),
	)

	finalModel, err := p.Run()
	if err != nil {
		return PickResult{Index: -1}, err
	}
	m := finalModel.(*pickModel)
	if m.cancelled || !m.done || m.selected < 0 {
		return PickResult{Index: -1, Cancelled: true}, nil
	}
	return PickResult{Index: m.selected}, nil
}
