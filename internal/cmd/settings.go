package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/harrison/jvmtune/internal/setting"
	"github.com/spf13/cobra"
)

// NewSettingsCommand creates the settings command
func NewSettingsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "List the supported JVM settings and their built-in bounds",
		Long: `List every setting the jvm encoder supports, with its unit and built-in
bounds. A configuration may override these bounds; settings marked "locked"
only accept overrides that stay inside them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listSettings(cmd.OutOrStdout())
		},
	}
}

func listSettings(out io.Writer) error {
	fmt.Fprintf(out, "%-14s %-6s %-5s %-6s %-6s %-6s %s\n", "NAME", "KIND", "UNIT", "MIN", "MAX", "STEP", "BOUNDS")
	for _, def := range setting.Definitions() {
		bounds := "relaxable"
		if !def.CanRelax {
			bounds = "locked"
		}
		unit := def.Unit
		if unit == "" {
			unit = "-"
		}
		fmt.Fprintf(out, "%-14s %-6s %-5s %-6s %-6s %-6s %s\n",
			def.Name, def.Kind, unit,
			formatBound(def.Builtin.Min), formatBound(def.Builtin.Max), formatBound(def.Builtin.Step),
			bounds)
	}
	return nil
}

func formatBound(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
