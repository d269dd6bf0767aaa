package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/jvmtune/internal/models"
	"github.com/harrison/jvmtune/internal/setting"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Settings   []string // Related settings (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning, in yellow when colored is set
func (w Warning) Display(out io.Writer, colored bool) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Settings) > 0 {
		b.WriteString("    ")
		if len(w.Settings) == 1 {
			b.WriteString("Affected setting:\n")
		} else {
			b.WriteString("Affected settings:\n")
		}
		for i, name := range w.Settings {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, name))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	c := color.New(color.FgYellow)
	if colored {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	c.Fprint(out, b.String())
}

// WarnOutOfRange returns a warning listing settings whose current value lies
// outside their configured range or off the step grid, or nil if there are none.
func WarnOutOfRange(descr *models.Description) *Warning {
	if descr == nil {
		return nil
	}

	var affected []string
	for pair := descr.Oldest(); pair != nil; pair = pair.Next() {
		d := pair.Value
		if d.Value == nil {
			continue
		}
		v := *d.Value
		switch {
		case v < d.Min:
			affected = append(affected, fmt.Sprintf("%s = %s (below %s)", pair.Key, formatNumber(v), formatNumber(d.Min)))
		case v > d.Max:
			affected = append(affected, fmt.Sprintf("%s = %s (above %s)", pair.Key, formatNumber(v), formatNumber(d.Max)))
		case d.Min < d.Max && d.Step > 0 && !setting.OnStep(v, d.Min, d.Step):
			affected = append(affected, fmt.Sprintf("%s = %s (off step %s)", pair.Key, formatNumber(v), formatNumber(d.Step)))
		}
	}
	if len(affected) == 0 {
		return nil
	}

	return &Warning{
		Title:      "Current values outside configured range",
		Message:    "Encoding these values again would be rejected.",
		Settings:   affected,
		Suggestion: "Widen the configured range or pick values on the step grid.",
	}
}
