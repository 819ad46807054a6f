package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/forcechart/pkg/flow"
)

// out receives all status output of the headless commands.
var out io.Writer = os.Stdout

// =============================================================================
// Palette & Styles
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // primary, pinned nodes
	colorGreen  = lipgloss.Color("35")  // success
	colorYellow = lipgloss.Color("220") // warnings, selection
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // nodes, commands
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // links, labels
	colorDim    = lipgloss.Color("240") // muted text
)

var (
	// StyleTitle for headings and dialog titles.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for paths and values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warnings.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// status line prefixes
var (
	markSuccess = lipgloss.NewStyle().Foreground(colorGreen).Render("✓")
	markError   = lipgloss.NewStyle().Foreground(colorRed).Render("✗")
	markWarning = lipgloss.NewStyle().Foreground(colorYellow).Render("!")
	markInfo    = lipgloss.NewStyle().Foreground(colorGray).Render("›")
	markFile    = StyleDim.Render("→")
)

// =============================================================================
// Status Output
// =============================================================================

func emit(parts ...string) {
	fmt.Fprintln(out, strings.Join(parts, " "))
}

func printSuccess(format string, args ...any) {
	emit(markSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	emit(markError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	emit(markWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	emit(markInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line.
func printDetail(format string, args ...any) {
	emit(" ", StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written file.
func printFile(path string) {
	emit(" ", markFile, StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	emit(styleKey.Render(key), StyleValue.Render(value))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	emit(StyleDim.Render(description+":"), styleCommand.Render(cmd))
}

// =============================================================================
// Board Summary
// =============================================================================

// printBoard prints node, link and pin counts on one line.
func printBoard(g *flow.Graph) {
	parts := []string{
		fmt.Sprintf("%d nodes", g.NodeCount()),
		fmt.Sprintf("%d links", g.EdgeCount()),
	}
	if n := pinnedCount(g); n > 0 {
		parts = append(parts, fmt.Sprintf("%d pinned", n))
	}
	printDetail("%s", strings.Join(parts, " · "))
}

func pinnedCount(g *flow.Graph) int {
	n := 0
	for _, node := range g.Nodes() {
		if node.Pinned() {
			n++
		}
	}
	return n
}
