package cmd

import (
	"fmt"
	"io"

	"github.com/harrison/jvmtune/internal/config"
	"github.com/harrison/jvmtune/internal/encoder"
	"github.com/harrison/jvmtune/internal/logger"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates and returns the validate subcommand
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [config-file]...",
		Short: "Validate encoder configuration files",
		Long: `Load configuration files and build every encoder section they define,
checking for:
  - Unknown or misspelled keys
  - Unsupported settings and options
  - Missing, colliding or relaxed bounds
  - Ranges that are not a multiple of their step
  - Defaults outside their range

Without arguments the configured file (--config, JVMTUNE_CONFIG or
jvmtune.yaml) is validated. With --encoder only that section is checked.

Exit code: 0 if valid, 1 if errors found`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := resolveEnv(cmd)
			if err != nil {
				return err
			}
			paths := args
			if len(paths) == 0 {
				paths = []string{env.ConfigPath}
			}
			return validateFiles(paths, env.Encoder, cmd.OutOrStdout(), newLogger(cmd, env))
		},
	}

	return cmd
}

// validateFiles validates every section of every file, reporting each failure
// and returning an error if any was found.
func validateFiles(paths []string, section string, output io.Writer, log *logger.ConsoleLogger) error {
	checked, failed := 0, 0

	for _, path := range paths {
		f, err := config.LoadFile(path)
		if err != nil {
			fmt.Fprintf(output, "✗ %s: %s\n", path, FormatError(err))
			log.LogFailure(fmt.Errorf("%s: %w", path, err))
			checked++
			failed++
			continue
		}

		names := f.Names()
		if section != "" {
			names = []string{section}
		}

		for _, name := range names {
			checked++
			cfg, err := f.Section(name)
			if err == nil {
				var e *encoder.Encoder
				e, err = encoder.New(cfg, encoder.WithLogger(log))
				if err == nil {
					fmt.Fprintf(output, "✓ %s [%s]: %d settings\n", path, name, len(e.Settings()))
					continue
				}
			}
			failed++
			fmt.Fprintf(output, "✗ %s [%s]: %s\n", path, name, FormatError(err))
			log.LogFailure(err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d encoder sections invalid", failed, checked)
	}
	return nil
}
