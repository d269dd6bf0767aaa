package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/jvmtune/internal/models"
)

var tableHeader = []string{"SETTING", "VALUE", "MIN", "MAX", "STEP", "UNIT", "DEFAULT"}

const columnGap = 2

// formatNumber renders a float without trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatNumber(*v)
}

// WriteDescription prints descr as an aligned table. Setting names are cyan
// and values green when colored is set.
func WriteDescription(out io.Writer, descr *models.Description, colored bool) error {
	rows := [][]string{tableHeader}
	if descr != nil {
		for pair := descr.Oldest(); pair != nil; pair = pair.Next() {
			d := pair.Value
			unit := d.Unit
			if unit == "" {
				unit = "-"
			}
			rows = append(rows, []string{
				pair.Key,
				formatOptional(d.Value),
				formatNumber(d.Min),
				formatNumber(d.Max),
				formatNumber(d.Step),
				unit,
				formatOptional(d.Default),
			})
		}
	}

	widths := make([]int, len(tableHeader))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	// padding is applied before painting so escape codes do not skew widths
	painters := map[int]*color.Color{
		0: color.New(color.FgCyan),
		1: color.New(color.FgGreen, color.Bold),
	}
	for _, c := range painters {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	var b strings.Builder
	for r, row := range rows {
		for i, cell := range row {
			last := i == len(row)-1
			text := cell
			if !last {
				text += strings.Repeat(" ", widths[i]-len(cell)+columnGap)
			}
			if c, ok := painters[i]; ok && r > 0 {
				text = c.Sprint(cell) + text[len(cell):]
			}
			b.WriteString(text)
		}
		b.WriteString("\n")
	}

	_, err := fmt.Fprint(out, b.String())
	return err
}
