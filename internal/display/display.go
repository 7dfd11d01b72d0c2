package display

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	DimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	NameStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	WarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// IsTerminal returns true if stdout is a TTY.
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// PrintError prints a styled error to stderr.
func PrintError(msg string) {
	if IsTerminal() {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("tably: "+msg))
	} else {
		fmt.Fprintln(os.Stderr, "tably: "+msg)
	}
}

// PrintWarning prints a styled warning to stderr.
func PrintWarning(msg string) {
	if IsTerminal() {
		fmt.Fprintln(os.Stderr, WarnStyle.Render("tably: "+msg))
	} else {
		fmt.Fprintln(os.Stderr, "tably: "+msg)
	}
}

// FormatListing renders name/description pairs as an aligned two-column
// listing, with the name styled when stdout is a TTY.
func FormatListing(title string, entries [][2]string) string {
	var b strings.Builder
	tty := IsTerminal()

	if title != "" {
		if tty {
			b.WriteString(HeaderStyle.Render(title))
		} else {
			b.WriteString(title)
		}
		b.WriteString("\n")
	}

	width := 0
	for _, e := range entries {
		if len(e[0]) > width {
			width = len(e[0])
		}
	}

	for _, e := range entries {
		name := fmt.Sprintf("%-*s", width, e[0])
		if tty {
			name = NameStyle.Render(name)
		}
		b.WriteString("  ")
		b.WriteString(name)
		if e[1] != "" {
			b.WriteString("  ")
			b.WriteString(e[1])
		}
		b.WriteString("\n")
	}

	return b.String()
}
