package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for jvmtune
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jvmtune",
		Short: "Encode and describe tunable JVM -XX settings",
		Long: `jvmtune turns numeric values for a configured set of JVM settings into
a java command line, and recovers those values from an existing command line.

Each setting is a bounded range (min, max, step) with an optional default.
The configuration file lists the settings in emission order together with
literal tokens to place before and after them.

Configuration is loaded from jvmtune.yaml unless --config or JVMTUNE_CONFIG
names another YAML or TOML file.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints the error once, with its phase
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Path to config file (default: jvmtune.yaml, env JVMTUNE_CONFIG)")
	cmd.PersistentFlags().String("encoder", "", "Encoder section of a multi-encoder config file (env JVMTUNE_ENCODER)")
	cmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error (env JVMTUNE_LOG_LEVEL)")

	// Add subcommands
	cmd.AddCommand(NewEncodeCommand())
	cmd.AddCommand(NewDescribeCommand())
	cmd.AddCommand(NewSettingsCommand())
	cmd.AddCommand(NewSchemaCommand())
	cmd.AddCommand(NewValidateCommand())

	return cmd
}
