package main

import (
	"fmt"
	"io"

	"github.com/HendryAvila/compass/internal/config"
	"github.com/HendryAvila/compass/internal/journal"
	"github.com/HendryAvila/compass/internal/scoring"
	compassserver "github.com/HendryAvila/compass/internal/server"
	"github.com/HendryAvila/compass/internal/terminal"
	"github.com/spf13/cobra"
)

func rulesCmd() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the scoring table",
		Long: `Print every question with its options and their axis contributions.
With --yaml, print the active scoring constants as YAML; the output is a
valid starting point for COMPASS_CONFIG.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.LoadEnv()
			if err != nil {
				return err
			}
			cfg, err := compassserver.LoadScoring(env.ScoringPath)
			if err != nil {
				return err
			}
			if asYAML {
				data, err := config.Marshal(cfg)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			printRules(cmd.OutOrStdout(), scoring.DefaultCatalog(cfg))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the scoring constants as YAML")
	return cmd
}

func printRules(w io.Writer, c *scoring.Catalog) {
	for _, p := range c.Phases() {
		fmt.Fprintln(w, terminal.Styles.Title.Render(fmt.Sprintf("Phase %d: %s", p.Number, p.Title)))
		for _, q := range c.Questions(p.Number) {
			fmt.Fprintf(w, "  %s [%s] %s\n", terminal.Styles.Bold.Render(q.Tag), q.Rule.Kind(), q.Prompt)
			switch r := q.Rule.(type) {
			case *scoring.Slider:
				fmt.Fprintf(w, "      axis %s, scale %d-%d, midpoint %d, coefficient %.2f\n",
					r.Axis, r.Min, r.Max, r.Midpoint, r.Coefficient)
			case *scoring.RankedPair:
				first, second := r.Weights()
				fmt.Fprintf(w, "      rank weights %.2f / %.2f\n", first, second)
			}
			for _, o := range q.Rule.Options() {
				fmt.Fprintf(w, "      %-14s %s  %s\n", o.ID, o.Delta, terminal.Styles.Muted.Render(o.Label))
			}
		}
		fmt.Fprintln(w)
	}
}

func journalCmd() *cobra.Command {
	var (
		limit int
		full  bool
	)

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List recently journaled reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := config.LoadEnv()
			if err != nil {
				return err
			}
			store, err := journal.New(journal.Config{DataDir: env.DataDir})
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(limit)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(w, "No reports journaled yet.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(w, "%s  %s  quadrant %-3s A %+6.2f  B %+6.2f  %s (%d events)\n",
					e.CreatedAt.Local().Format("2006-01-02 15:04"), e.SessionID,
					e.Quadrant, e.TotalA, e.TotalB, e.Classification, e.Events)
				if full {
					fmt.Fprintln(w, e.Markdown)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", journal.DefaultLimit, "Number of reports to list")
	cmd.Flags().BoolVar(&full, "full", false, "Print each report in full")
	return cmd
}
