package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/radialtree/pkg/pipeline"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Styles shared by command output and the inspect view.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber    = lipgloss.NewStyle().Foreground(colorCyan)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// status prints one line prefixed with a colored icon.
func status(icon string, color lipgloss.Color, msg string) {
	fmt.Println(lipgloss.NewStyle().Foreground(color).Render(icon) + " " + msg)
}

func printSuccess(format string, args ...any) {
	status(iconSuccess, colorGreen, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	status(iconError, colorRed, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status(iconWarning, colorYellow, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status(iconInfo, colorGray, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// statsLine joins layout counters into one dimmed line ending in whether the
// result came from the cache.
func statsLine(st pipeline.Stats, cached bool) string {
	parts := []string{
		fmt.Sprintf("%d/%d nodes placed", st.Placed, st.NodeCount),
		fmt.Sprintf("%d edges", st.EdgeCount),
		fmt.Sprintf("%d slots", st.Capacity),
	}
	if st.Issues > 0 {
		parts = append(parts, fmt.Sprintf("%d issues", st.Issues))
	}
	if cached {
		parts = append(parts, StyleSuccess.Render("cached"))
	} else {
		parts = append(parts, fmt.Sprintf("computed in %s", st.LayoutTime.Round(time.Millisecond)))
	}
	return "  " + StyleDim.Render(strings.Join(parts, " · "))
}

func printStats(st pipeline.Stats, cached bool) {
	fmt.Println(statsLine(st, cached))
}

// printNextStep prints a blank line and a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println()
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}
