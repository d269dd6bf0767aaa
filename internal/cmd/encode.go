package cmd

import (
	"fmt"
	"strings"

	"github.com/harrison/jvmtune/internal/encoder"
	"github.com/harrison/jvmtune/internal/filelock"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
)

// NewEncodeCommand creates the encode command
func NewEncodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Build a JVM command line from setting values",
		Long: `Encode validates one value per configured setting and prints the resulting
command line: the configured "before" tokens, one -XX argument per setting in
configured order, then the "after" tokens.

Values come from --set flags and/or a JSON document given with --values
(a file path, or - for stdin). The document may be flat, {"MaxHeapSize": 4},
or carry {"settings": {"MaxHeapSize": {"value": 4}}}, optionally nested under
application.components.<name>. --set wins over the document.

Every configured setting needs a value, and values for unconfigured settings
are rejected.

Examples:
  jvmtune encode --set MaxHeapSize=4 --set GCTimeRatio=19
  jvmtune encode --values values.json --component api
  jvmtune encode --set MaxHeapSize=4 --set GCTimeRatio=19 --env
  jvmtune encode --values - --output /etc/app/jvm.args < values.json`,
		Args: cobra.NoArgs,
		RunE: runEncode,
	}

	cmd.Flags().StringArray("set", nil, "Setting value as NAME=VALUE (repeatable)")
	cmd.Flags().String("values", "", "JSON file with setting values, or - for stdin")
	cmd.Flags().String("component", "", "Component to read under application.components in --values")
	cmd.Flags().Bool("env", false, "Print a single shell-quoted line instead of one token per line")
	cmd.Flags().String("output", "", "Write the result to this file atomically instead of stdout")

	return cmd
}

func runEncode(cmd *cobra.Command, args []string) error {
	env, err := resolveEnv(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd, env)

	values, err := collectValues(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadSection(env)
	if err != nil {
		return err
	}

	tokens, err := encoder.Encode(cfg, values, encoder.WithLogger(log))
	if err != nil {
		return err
	}
	log.LogEncoded(len(cfg.Settings), tokens)

	asEnv, _ := cmd.Flags().GetBool("env")
	var text string
	if asEnv {
		text = shellquote.Join(tokens...) + "\n"
	} else if len(tokens) > 0 {
		text = strings.Join(tokens, "\n") + "\n"
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	if err := filelock.LockAndWrite(commandContext(cmd), output, []byte(text), 0644); err != nil {
		return err
	}
	log.LogInfo(fmt.Sprintf("Wrote %s", output))
	return nil
}

// collectValues merges --values and --set, with --set taking precedence.
func collectValues(cmd *cobra.Command) (map[string]any, error) {
	values := make(map[string]any)

	path, _ := cmd.Flags().GetString("values")
	component, _ := cmd.Flags().GetString("component")
	if path != "" {
		data, err := readValuesFile(path, cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		parsed, err := parseValues(data, component)
		if err != nil {
			return nil, err
		}
		for name, value := range parsed {
			values[name] = value
		}
	} else if component != "" {
		return nil, fmt.Errorf("--component requires --values")
	}

	assignments, _ := cmd.Flags().GetStringArray("set")
	for _, assignment := range assignments {
		name, value, err := parseSetFlag(assignment)
		if err != nil {
			return nil, err
		}
		values[name] = value
	}

	return values, nil
}
