// Compass: orientation questionnaire scoring engine.
//
// Compass maps a respondent's answers across four themed phases onto two
// axes (epistemic stance and intervention focus), checks how consistent
// the answers are and reports the resulting quadrant.
//
// Usage:
//
//	compass serve     # Start the MCP server (stdio transport)
//	compass take      # Take the questionnaire in the terminal
//	compass rules     # Print the scoring table
//	compass journal   # List recently journaled reports
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/HendryAvila/compass/internal/config"
	compassserver "github.com/HendryAvila/compass/internal/server"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compass",
		Short: "Orientation questionnaire scoring engine",
		Long: `Compass scores a four-phase self-assessment questionnaire on two axes,
flags inconsistent response patterns and places the result in a quadrant.

Settings are read from the environment:
  COMPASS_CONFIG        YAML scoring table (optional)
  COMPASS_DATA_DIR      journal directory (default ~/.compass)
  COMPASS_JOURNAL       record finished reports (default true)
  COMPASS_MAX_SESSIONS  concurrent MCP sessions (default 64)`,
		SilenceUsage: true,
	}

	cmd.AddCommand(serveCmd(), takeCmd(), rulesCmd(), journalCmd(), versionCmd())
	return cmd
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.LoadEnv()
			if err != nil {
				return err
			}
			s, cleanup, err := compassserver.New(env)
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}
			defer cleanup()
			return server.ServeStdio(s)
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "compass v%s\n", compassserver.Version)
		},
	}
}

// signalContext is cancelled on interrupt or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
