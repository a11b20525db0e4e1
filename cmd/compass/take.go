package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/HendryAvila/compass/internal/assessment"
	"github.com/HendryAvila/compass/internal/config"
	compassserver "github.com/HendryAvila/compass/internal/server"
	"github.com/HendryAvila/compass/internal/terminal"
	"github.com/HendryAvila/compass/internal/tools"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func takeCmd() *cobra.Command {
	var (
		accessible bool
		markdown   bool
	)

	cmd := &cobra.Command{
		Use:   "take",
		Short: "Take the questionnaire in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.LoadEnv()
			if err != nil {
				return err
			}
			deps, cleanup, err := compassserver.NewDeps(env)
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := signalContext()
			defer cancel()

			r := &terminal.Runner{
				Session: assessment.NewSession(uuid.NewString(), deps.Catalog, deps.Scoring),
				Asker:   terminal.FormAsker{Accessible: accessible},
				Out:     cmd.OutOrStdout(),
			}
			if bridge := tools.NewJournalBridge(deps.Journal); bridge != nil {
				r.OnReport = bridge.OnReport
			}

			report, err := r.Run(ctx)
			if errors.Is(err, terminal.ErrAborted) || errors.Is(err, context.Canceled) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Questionnaire aborted; nothing was recorded.")
				return nil
			}
			if err != nil {
				return err
			}
			if markdown {
				fmt.Fprintln(cmd.OutOrStdout(), report.Markdown())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&accessible, "accessible", false, "Use screen-reader friendly prompts")
	cmd.Flags().BoolVar(&markdown, "markdown", false, "Also print the report as markdown")
	return cmd
}
