package report

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorBold   = color.New(color.Bold)
	colorFaint  = color.New(color.Faint)
)

// SectionTitle renders a bold section title.
func SectionTitle(title string) string {
	return colorBold.Sprint(title)
}

// ColorCount colours a count: 0 is green, anything else yellow.
func ColorCount(val string) string {
	if val == "0" {
		return colorGreen.Sprint(val)
	}
	return colorYellow.Sprint(val)
}

// ColorFlags colours a human flag count. A single flag is already worth attention.
func ColorFlags(val string) string {
	if val == "0" {
		return colorGreen.Sprint(val)
	}
	return colorRed.Sprint(val)
}

// severityColor picks a printer by the ratio of a severity to the snapshot maximum.
func severityColor(severity, maxSeverity float64) *color.Color {
	switch {
	case severity <= 0:
		return colorGreen
	case maxSeverity > 0 && severity/maxSeverity >= 0.5:
		return colorRed
	default:
		return colorYellow
	}
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
