package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/matzehuels/due/pkg/envelope"
	"github.com/matzehuels/due/pkg/pipeline"
	"github.com/matzehuels/due/pkg/postoffice"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
	styleBorder = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Printer
// =============================================================================

// printer writes styled status lines to a command's output.
type printer struct {
	w io.Writer
}

func (p printer) line(s string) {
	fmt.Fprintln(p.w, s)
}

func (p printer) success(format string, args ...any) {
	p.line(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func (p printer) failure(format string, args ...any) {
	p.line(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func (p printer) warning(format string, args ...any) {
	p.line(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (p printer) info(format string, args ...any) {
	p.line(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

func (p printer) file(path string) {
	p.line("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func (p printer) keyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	p.line(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// stats prints dim facts joined by dots on one indented line.
func (p printer) stats(parts ...string) {
	var b strings.Builder
	b.WriteString("  ")
	for i, part := range parts {
		if i > 0 {
			b.WriteString(StyleDim.Render(" · "))
		}
		b.WriteString(StyleDim.Render(part))
	}
	p.line(b.String())
}

func (p printer) block(s string) {
	p.line(s)
}

// =============================================================================
// Formatting
// =============================================================================

// count formats n with thousands separators.
func count(n int) string {
	return humanize.Comma(int64(n))
}

// plural formats n followed by noun, adding an s when n != 1.
func plural(n int, noun string) string {
	if n == 1 {
		return count(n) + " " + noun
	}
	return count(n) + " " + noun + "s"
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styleBorder).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell
		})
}

// cellTable renders envelope cells, showing at most limit rows when limit > 0.
func cellTable(cells []envelope.Cell, limit int) string {
	t := newTable("#", "line", "slope", "intercept", "left", "right")
	for i, c := range cells {
		if limit > 0 && i == limit {
			t.Row("…", fmt.Sprintf("%s more", count(len(cells)-limit)), "", "", "", "")
			break
		}
		t.Row(
			strconv.Itoa(i),
			strconv.Itoa(c.Line.ID),
			strconv.FormatInt(c.Line.M, 10),
			strconv.FormatInt(c.Line.B, 10),
			strconv.FormatInt(c.Left, 10),
			strconv.FormatInt(c.Right, 10),
		)
	}
	return t.String()
}

// timingTable renders one row per compared algorithm.
func timingTable(timings []pipeline.Timing) string {
	t := newTable("algorithm", "time", "cells", "result")
	for _, tm := range timings {
		result := styleIconSuccess.Render(iconSuccess + " agrees")
		if !tm.Agrees() {
			result = styleIconError.Render(fmt.Sprintf("%s differs at cell %d", iconError, tm.Mismatch))
		}
		t.Row(tm.Algorithm.String(), tm.Duration.String(), count(tm.Cells), result)
	}
	return t.String()
}

// siteGrid renders the nearest-site ID of every grid point, row 1 first.
func siteGrid(tr *postoffice.Transform) string {
	u := tr.U()
	ids := make([][]string, u)
	width := 1
	for y := int64(1); y <= u; y++ {
		row := make([]string, u)
		for x := int64(1); x <= u; x++ {
			row[x-1] = strconv.Itoa(tr.Query(x, y))
			width = max(width, len(row[x-1]))
		}
		ids[y-1] = row
	}

	var b strings.Builder
	for _, row := range ids {
		for x, id := range row {
			if x > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strings.Repeat(" ", width-len(id)))
			b.WriteString(id)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
