// Package ui holds the Lip Gloss styles and small renderers shared by the
// one-shot commands and the TUI.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette (256-colour codes).
const (
	green  = lipgloss.Color("42")
	orange = lipgloss.Color("214")
	blue   = lipgloss.Color("12")
	red    = lipgloss.Color("9")
	grey   = lipgloss.Color("8")
)

var (
	bold  = lipgloss.NewStyle().Bold(true)
	faint = lipgloss.NewStyle().Faint(true)

	TitleStyle   = bold
	MutedStyle   = faint
	HelpStyle    = faint.Italic(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(green)
	PendingStyle = lipgloss.NewStyle().Foreground(orange)
	WarnStyle    = bold.Foreground(orange)
	AccentStyle  = lipgloss.NewStyle().Foreground(blue)
	ErrorStyle   = bold.Foreground(red)

	// Selection and the active page button share one look.
	SelectedStyle = bold.Reverse(true)
	ActivePage    = SelectedStyle
	DoneStyle     = faint.Strikethrough(true)
)

// Checkbox glyphs.
const (
	BoxChecked   = "☑"
	BoxUnchecked = "☐"
)

// OK writes a success line.
func OK(w io.Writer, msg string) {
	fmt.Fprintln(w, SuccessStyle.Render("✔ "+msg))
}

// Fail writes an error line.
func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, ErrorStyle.Render("✖ "+msg))
}

// Warn writes a warning line.
func Warn(w io.Writer, msg string) {
	fmt.Fprintln(w, WarnStyle.Render("! "+msg))
}

// Frame wraps inner in the rounded border used everywhere.
func Frame(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(grey).
		Padding(0, 1)
	return border.Render(inner)
}

// Panel prints lines inside a frame.
func Panel(w io.Writer, lines []string) {
	fmt.Fprintln(w, Frame(strings.Join(lines, "\n")))
}

// ProgressBar draws done/total as a bar of width cells followed by the
// counts, e.g. "[██░░] 1/2". A non-positive width means 28.
func ProgressBar(done, total, width int) string {
	if width <= 0 {
		width = 28
	}
	filled := 0
	if total > 0 {
		filled = min(width, max(0, done)*width/total)
	}
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(strings.Repeat("█", filled))
	b.WriteString(strings.Repeat("░", width-filled))
	fmt.Fprintf(&b, "] %d/%d", done, total)
	return b.String()
}
