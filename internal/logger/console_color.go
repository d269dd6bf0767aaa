package logger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/jvmtune/internal/models"
)

// colorScheme defines consistent colors for setting descriptions.
// Cyan: setting names
// Green: current values
// Yellow: configured defaults
// White: bounds
type colorScheme struct {
	enabled bool
	label   *color.Color
	value   *color.Color
	def     *color.Color
	bound   *color.Color
}

// newColorScheme creates the standard color scheme. When enabled is false
// every helper returns plain text.
func newColorScheme(enabled bool) *colorScheme {
	return &colorScheme{
		enabled: enabled,
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgGreen, color.Bold),
		def:     color.New(color.FgYellow),
		bound:   color.New(color.FgWhite),
	}
}

func (s *colorScheme) paint(c *color.Color, text string) string {
	if !s.enabled {
		return text
	}
	return c.Sprint(text)
}

// formatNumber renders a float without trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatSettingLine formats one described setting.
// Format: "name: value=<v> range=[min..max] step=<s> unit=<u> default=<d>"
func formatSettingLine(name string, d models.SettingDescription, scheme *colorScheme) string {
	parts := []string{scheme.paint(scheme.label, name) + ":"}
	if d.Value != nil {
		parts = append(parts, "value="+scheme.paint(scheme.value, formatNumber(*d.Value)))
	}
	parts = append(parts,
		"range="+scheme.paint(scheme.bound, fmt.Sprintf("[%s..%s]", formatNumber(d.Min), formatNumber(d.Max))),
		"step="+scheme.paint(scheme.bound, formatNumber(d.Step)),
	)
	if d.Unit != "" {
		parts = append(parts, "unit="+d.Unit)
	}
	if d.Default != nil {
		parts = append(parts, "default="+scheme.paint(scheme.def, formatNumber(*d.Default)))
	}
	return strings.Join(parts, " ")
}
