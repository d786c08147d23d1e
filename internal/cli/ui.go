package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/depinv/pkg/deps"
	"github.com/matzehuels/depinv/pkg/inventory"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary values
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleHeader      = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleCell        = lipgloss.NewStyle().Padding(0, 1)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconNone    = "—"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

// printWarning prints a warning message.
func printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

// printStats prints labelled counts on a single dim line, skipping zeros.
func printStats(w io.Writer, stats ...stat) {
	line := " "
	n := 0
	for _, s := range stats {
		if s.value == 0 {
			continue
		}
		if n > 0 {
			line += StyleDim.Render(" ·")
		}
		line += " " + StyleDim.Render(strconv.Itoa(s.value)+" "+s.label)
		n++
	}
	if n > 0 {
		fmt.Fprintln(w, line)
	}
}

type stat struct {
	value int
	label string
}

// =============================================================================
// Inventory Output
// =============================================================================

// dependencyTable renders ds as a bordered table.
func dependencyTable(ds []deps.Dependency) string {
	rows := make([][]string, 0, len(ds))
	for _, d := range ds {
		vendor := iconNone
		if d.HasVendor() {
			vendor = d.Vendor
		}
		rows = append(rows, []string{d.Name, d.Version, vendor, string(d.Method), d.Source})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Version", "Vendor", "Method", "Source").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader.Padding(0, 1)
			case col == 0:
				return styleCell.Foreground(colorCyan)
			case col == 4:
				return styleCell.Foreground(colorDim)
			default:
				return styleCell
			}
		})
	return t.Render()
}

// printReport prints a scan report as a table followed by a summary.
func printReport(w io.Writer, rep inventory.Report, feed feedStats) {
	ds := rep.Dependencies.Sorted()
	if len(ds) == 0 {
		printWarning(w, "No dependencies found in %d archives", rep.Paths)
	} else {
		fmt.Fprintln(w, dependencyTable(ds))
		printSuccess(w, "%s dependencies from %d archives",
			StyleTitle.Render(strconv.Itoa(len(ds))), rep.Paths)
	}

	printStats(w,
		stat{rep.Unresolved, "without metadata"},
		stat{rep.Evicted, "missing"},
		stat{rep.Failed, "unreadable"},
		stat{feed.dropped, "dropped (registry full)"},
	)
}
