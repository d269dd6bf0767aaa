package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/harrison/jvmtune/internal/config"
	"github.com/harrison/jvmtune/internal/encerr"
	"github.com/harrison/jvmtune/internal/encoder"
	"github.com/harrison/jvmtune/internal/logger"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// resolveEnv layers changed persistent flags over JVMTUNE_* variables.
func resolveEnv(cmd *cobra.Command) (*config.Env, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	changed := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	env.MergeWithFlags(changed("config"), changed("encoder"), changed("log-level"))

	if err := env.Validate(); err != nil {
		return nil, err
	}
	return env, nil
}

// newLogger returns a console logger on the command's stderr.
func newLogger(cmd *cobra.Command, env *config.Env) *logger.ConsoleLogger {
	return logger.NewConsoleLogger(cmd.ErrOrStderr(), env.LogLevel)
}

// loadSection reads the configured file and selects the requested section.
func loadSection(env *config.Env) (encoder.Config, error) {
	f, err := config.LoadFile(env.ConfigPath)
	if err != nil {
		return encoder.Config{}, fmt.Errorf("failed to load config from %s: %w", env.ConfigPath, err)
	}
	return f.Section(env.Encoder)
}

// colorEnabled reports whether w is a terminal that should receive colors.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// FormatError renders err for the final "Error: ..." line, naming
// configuration problems as such.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	if encerr.IsConfig(err) {
		return "configuration error: " + err.Error()
	}
	return err.Error()
}
