package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/harrison/jvmtune/internal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", cmd.FormatError(err))
		stop()
		os.Exit(1)
	}
}
