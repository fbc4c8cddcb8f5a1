package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// DocEntry is what `pennmush doc` knows about one name.
type DocEntry struct {
	Name      string
	Kind      string // "function" or "command"
	Signature string
	Summary   string
	Params    []string
	Usage     string
}

var (
	docTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	docKindStyle   = lipgloss.NewStyle().Faint(true)
	docSigStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	docLabelStyle  = lipgloss.NewStyle().Bold(true)
	docBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

// RenderDoc lays out entry in a bordered panel at most width cells wide.
func RenderDoc(entry DocEntry, width int) string {
	if width <= 0 {
		width = 80
	}
	inner := max(width-4, 20)

	var parts []string
	parts = append(parts, docTitleStyle.Render(entry.Name)+" "+docKindStyle.Render("("+entry.Kind+")"))
	if entry.Signature != "" {
		parts = append(parts, "", docSigStyle.Render(wrap(entry.Signature, inner)))
	}
	if entry.Summary != "" {
		parts = append(parts, "", wrap(entry.Summary, inner))
	}
	if len(entry.Params) > 0 {
		parts = append(parts, "", docLabelStyle.Render("Parameters"))
		for i, p := range entry.Params {
			parts = append(parts, "  "+strconv.Itoa(i+1)+". "+p)
		}
	}
	if entry.Usage != "" {
		parts = append(parts, "", docLabelStyle.Render("Usage"), entry.Usage)
	}
	return docBorderStyle.Render(strings.Join(parts, "\n"))
}

// wrap breaks text on spaces so no line exceeds width display cells.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	lineWidth := 0
	for i, w := range words {
		ww := runewidth.StringWidth(w)
		if i > 0 {
			if lineWidth+1+ww > width {
				b.WriteByte('\n')
				lineWidth = 0
			} else {
				b.WriteByte(' ')
				lineWidth++
			}
		}
		b.WriteString(w)
		lineWidth += ww
	}
	return b.String()
}
