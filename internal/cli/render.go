package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/finchat/internal/format"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	moneyStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	barStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table with headers and rows. Every column
// after the first is right-aligned. A row of just "---" draws a separator.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		measure := func(row []string) {
			for i, cell := range row {
				if i < numCols {
					widths[i] = max(widths[i], lipgloss.Width(cell))
				}
			}
		}
		measure(t.Headers)
		for _, row := range t.Rows {
			measure(row)
		}
	}

	rule := func(left, mid, right string) string {
		parts := make([]string, numCols)
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return dimStyle.Render(left+strings.Join(parts, mid)+right) + "\n"
	}
	line := func(row []string, style lipgloss.Style, alignRight bool) string {
		var b strings.Builder
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := strings.Repeat(" ", max(0, widths[i]-lipgloss.Width(cell)))
			if alignRight && i > 0 {
				cell = pad + cell
			} else {
				cell += pad
			}
			b.WriteString(style.Render(" " + cell + " "))
			b.WriteString(dimStyle.Render("│"))
		}
		return b.String() + "\n"
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}
	b.WriteString(rule("╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(line(t.Headers, headerStyle, false))
		b.WriteString(rule("├", "┼", "┤"))
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}
		b.WriteString(line(row, valueStyle, true))
	}
	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}

// RenderHorizontalBar renders a labelled bar scaled to maxWidth at maxValue.
func RenderHorizontalBar(label string, value, maxValue float64, maxWidth int, note string) string {
	barLen := 0
	if maxValue > 0 {
		barLen = min(maxWidth, max(0, int(value/maxValue*float64(maxWidth))))
	}
	return fmt.Sprintf("  %-16s %s%s %s",
		Truncate(label, 16),
		barStyle.Render(strings.Repeat("█", barLen)),
		dimStyle.Render(strings.Repeat("░", maxWidth-barLen)),
		mutedStyle.Render(note),
	)
}

// RenderKeyValue renders an aligned "label  value" line.
func RenderKeyValue(label, value string) string {
	return fmt.Sprintf("  %-22s %s", mutedStyle.Render(label), moneyStyle.Render(value))
}

// RenderWarning renders a one-line warning.
func RenderWarning(msg string) string {
	return warnStyle.Render("  ! " + msg)
}

// BlockStyles controls how RenderBlocks draws each block kind.
type BlockStyles struct {
	Heading lipgloss.Style
	Text    lipgloss.Style
	Marker  lipgloss.Style
	Bold    lipgloss.Style
}

// DefaultBlockStyles uses the CLI palette.
func DefaultBlockStyles() BlockStyles {
	return BlockStyles{
		Heading: headerStyle,
		Text:    valueStyle,
		Marker:  lipgloss.NewStyle().Foreground(ColorAccent),
		Bold:    valueStyle.Bold(true),
	}
}

// RenderBlocks renders report text block by block, wrapping to width.
// Numbered items are renumbered per run since the formatter strips numerals.
// Inline **bold** spans inside a line are drawn with st.Bold.
func RenderBlocks(text string, width int, st BlockStyles) string {
	width = max(width, 20)
	var out []string
	n := 0
	for blk := range format.Blocks(text) {
		if blk.Kind != format.NumberedItem {
			n = 0
		}
		switch blk.Kind {
		case format.Heading:
			out = append(out, st.Heading.Width(width).Render(blk.Text))
		case format.ListItem:
			out = append(out, item(st.Marker.Render("  • "), blk.Text, width, st))
		case format.NumberedItem:
			n++
			out = append(out, item(st.Marker.Render("  "+strconv.Itoa(n)+". "), blk.Text, width, st))
		case format.Paragraph:
			out = append(out, st.Text.Width(width).Render(inline(blk.Text, st)))
		case format.LineBreak:
			out = append(out, "")
		}
	}
	return strings.Join(out, "\n")
}

func item(marker, text string, width int, st BlockStyles) string {
	body := st.Text.Width(max(1, width-lipgloss.Width(marker))).Render(inline(text, st))
	return lipgloss.JoinHorizontal(lipgloss.Top, marker, body)
}

// inline draws the odd "**"-separated segments in bold.
func inline(s string, st BlockStyles) string {
	if !strings.Contains(s, "**") {
		return s
	}
	parts := strings.Split(s, "**")
	var b strings.Builder
	for i, p := range parts {
		if i%2 == 1 {
			b.WriteString(st.Bold.Render(p))
		} else {
			b.WriteString(p)
		}
	}
	return b.String()
}
