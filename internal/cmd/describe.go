package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/harrison/jvmtune/internal/display"
	"github.com/harrison/jvmtune/internal/encoder"
	"github.com/harrison/jvmtune/internal/models"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
)

// NewDescribeCommand creates the describe command
func NewDescribeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe [flags] -- <token>...",
		Short: "Recover setting values from an existing JVM command line",
		Long: `Describe reads a JVM command line and reports, for every configured setting,
its effective range and the value currently set by its -XX argument. Settings
missing from the command line report their configured default.

Tokens that do not belong to a configured setting are ignored.

Examples:
  jvmtune describe -- java -XX:MaxHeapSize=4096m -jar /app.jar
  jvmtune describe --env "$JAVA_OPTS"
  jvmtune describe --json -- java -XX:GCTimeRatio=19`,
		RunE: runDescribe,
	}

	cmd.Flags().Bool("env", false, "Read the command line from a single shell-quoted argument")
	cmd.Flags().Bool("json", false, "Print the description as JSON")

	return cmd
}

func runDescribe(cmd *cobra.Command, args []string) error {
	env, err := resolveEnv(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd, env)

	fromEnv, _ := cmd.Flags().GetBool("env")
	asJSON, _ := cmd.Flags().GetBool("json")

	tokens, err := describeTokens(args, fromEnv)
	if err != nil {
		return err
	}

	cfg, err := loadSection(env)
	if err != nil {
		return err
	}

	descr, err := encoder.Describe(cfg, tokens, encoder.WithLogger(log))
	if err != nil {
		return err
	}
	log.LogDescription(descr)

	out := cmd.OutOrStdout()
	if asJSON {
		return writeDescriptionJSON(out, descr)
	}

	if err := display.WriteDescription(out, descr, colorEnabled(out)); err != nil {
		return err
	}
	if w := display.WarnOutOfRange(descr); w != nil {
		w.Display(cmd.ErrOrStderr(), colorEnabled(cmd.ErrOrStderr()))
	}
	return nil
}

// describeTokens returns args as-is, or splits the single --env argument the
// way a POSIX shell would.
func describeTokens(args []string, fromEnv bool) ([]string, error) {
	if !fromEnv {
		return args, nil
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("--env expects exactly one argument, got %d", len(args))
	}
	tokens, err := shellquote.Split(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to split command line: %w", err)
	}
	return tokens, nil
}

func writeDescriptionJSON(out io.Writer, descr *models.Description) error {
	data, err := json.MarshalIndent(descr, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode description: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}
