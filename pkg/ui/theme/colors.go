// Package theme defines the color palette and log styles for CLI output.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	log "github.com/charmbracelet/log"
	"github.com/fatih/color"
)

// Colors is the palette for plain terminal messages.
var Colors = struct {
	Info    *color.Color
	Success *color.Color
	Warning *color.Color
	Error   *color.Color
}{
	Info:    color.New(color.FgCyan),
	Success: color.New(color.FgGreen),
	Warning: color.New(color.FgYellow),
	Error:   color.New(color.FgRed),
}

// Hex colors for lipgloss styles.
const (
	ColorCyan   = "#00BFFF"
	ColorGreen  = "#00FF7F"
	ColorYellow = "#FFD700"
	ColorRed    = "#FF6B6B"
	ColorGray   = "#808080"
)

// GetLogStyles returns charm/log styles with badge-like level labels.
func GetLogStyles() *log.Styles {
	styles := log.DefaultStyles()

	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBU").
		Foreground(lipgloss.Color(ColorGray))
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Foreground(lipgloss.Color(ColorCyan))
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Foreground(lipgloss.Color(ColorYellow))
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERRO").
		Foreground(lipgloss.Color(ColorRed))

	return styles
}
