package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/harrison/jvmtune/internal/models"
	"github.com/harrison/jvmtune/internal/setting"
	"github.com/spf13/cobra"
)

// NewSchemaCommand creates the schema command
func NewSchemaCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the configuration",
		Long: `Print the JSON Schema of one encoder section, or with --file of a whole
configuration file (a single section or named sections under "encoders").
Editors can use it to validate and complete jvmtune.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			whole, _ := cmd.Flags().GetBool("file")

			var names []string
			for _, def := range setting.Definitions() {
				names = append(names, def.Name)
			}

			var schema any = models.EncoderSectionSchema(names)
			if whole {
				schema = models.ConfigFileSchema(names)
			}
			data, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode schema: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().Bool("file", false, "Describe a whole configuration file instead of one section")

	return cmd
}
