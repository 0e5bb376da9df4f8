package cli

import (
	"fmt"
	"strings"

	"github.com/bastiangx/wordkey/internal/utils"
	"github.com/bastiangx/wordkey/pkg/session"
	"github.com/bastiangx/wordkey/pkg/shift"
	"github.com/charmbracelet/lipgloss"
)

var (
	textColor   = lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}
	mutedColor  = lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"}
	accentColor = lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"}

	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(textColor)
	statusStyle     = lipgloss.NewStyle().Italic(true).Foreground(mutedColor)
	suggestionStyle = lipgloss.NewStyle().Foreground(accentColor)
	indexStyle      = lipgloss.NewStyle().Foreground(mutedColor)
	keyStyle        = lipgloss.NewStyle().Foreground(textColor).Width(4)
	layerStyle      = lipgloss.NewStyle().Foreground(mutedColor).Width(7)
	docStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(mutedColor).Padding(0, 1)
)

// view is the playground Presenter; it keeps the last pushed state and
// renders it on demand.
type view struct {
	suggestions []string
	mode        shift.Mode
	language    string
	labels      session.KeyLabels
	showLayers  bool
	renders     int
}

func newView(showLayers bool) *view {
	return &view{showLayers: showLayers}
}

func (v *view) RenderSuggestions(words []string) {
	v.suggestions = words
	v.renders++
}

func (v *view) RenderCaseChange(mode shift.Mode) {
	v.mode = mode
}

func (v *view) RenderActiveLanguage(name string) {
	v.language = name
}

func (v *view) RenderKeyLabels(labels session.KeyLabels) {
	v.labels = labels
}

// Render lays the screen out for a terminal in raw mode.
func (v *view) Render(text string) string {
	var lines []string
	lines = append(lines, headerStyle.Render("wordkey playground"))
	lines = append(lines, statusStyle.Render(fmt.Sprintf("%s  ·  shift %s  ·  %s renders",
		v.language, v.mode, utils.FormatWithCommas(v.renders))))
	lines = append(lines, "")

	shown := strings.ReplaceAll(text, "\n", "⏎\n") + "▏"
	lines = append(lines, strings.Split(docStyle.Render(shown), "\n")...)
	lines = append(lines, v.suggestionBar())
	lines = append(lines, "")
	lines = append(lines, v.keyRows()...)
	lines = append(lines, "", statusStyle.Render("esc quit · ↑ shift · ←/→ language · ^W swipe delete · ^E/^T layers · 1-9 accept"))
	return strings.Join(lines, "\r\n") + "\r\n"
}

func (v *view) suggestionBar() string {
	if len(v.suggestions) == 0 {
		return statusStyle.Render("no suggestions")
	}
	parts := make([]string, 0, len(v.suggestions))
	for i, w := range v.suggestions {
		parts = append(parts, indexStyle.Render(fmt.Sprintf("%d", i+1))+" "+suggestionStyle.Render(w))
	}
	return strings.Join(parts, "  ")
}

func (v *view) keyRows() []string {
	rows := make([]string, 0, len(v.labels.Primary))
	for r, row := range v.labels.Primary {
		cells := make([]string, 0, len(row))
		for c, label := range row {
			if v.showLayers {
				cells = append(cells, layerStyle.Render(label+cellAt(v.labels.Secondary, r, c)+cellAt(v.labels.Tertiary, r, c)))
				continue
			}
			cells = append(cells, keyStyle.Render(label))
		}
		rows = append(rows, strings.Repeat(" ", r*2)+lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return rows
}

func cellAt(grid [][]string, r, c int) string {
	if r < len(grid) && c < len(grid[r]) {
		return " " + grid[r][c]
	}
	return ""
}
