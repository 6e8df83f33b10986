package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrwolf/drmind/internal/db"
	"github.com/mrwolf/drmind/internal/export"
	"github.com/mrwolf/drmind/internal/fallback"
	"github.com/mrwolf/drmind/internal/models"
	"github.com/mrwolf/drmind/internal/sentiment"
)

var (
	exportFormat string
	exportOut    string

	respondMood    string
	respondJournal string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write all journal entries as json, csv or txt",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		cfg, err := setup()
		if err != nil {
			return err
		}

		database, err := db.Open(cfg.DB.Path)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		entries, err := database.ListEntries(cmd.Context(), 0)
		if err != nil {
			return fmt.Errorf("listing entries: %w", err)
		}

		var w io.Writer = cmd.OutOrStdout()
		if exportOut != "" {
			file, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("creating %s: %w", exportOut, err)
			}
			defer file.Close()
			w = file
		}
		if err := export.Write(w, f, entries); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		if exportOut != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d entries to %s\n", len(entries), exportOut)
		}
		return nil
	},
}

var moodsCmd = &cobra.Command{
	Use:   "moods",
	Short: "List the mood catalog",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, m := range models.Moods {
			fmt.Fprintf(tw, "%s\t%s\t%+.1f\n", m.Emoji, m.Label, m.Value)
		}
		tw.Flush()
	},
}

var respondCmd = &cobra.Command{
	Use:   "respond",
	Short: "Generate a comfort message and suggestions without saving an entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		mood := strings.TrimSpace(respondMood)
		journal := strings.TrimSpace(respondJournal)
		if _, ok := models.LookupMood(mood); !ok {
			return fmt.Errorf("unknown mood %q, run 'drmind moods' for the catalog", mood)
		}
		if journal == "" {
			return fmt.Errorf("--journal is required")
		}

		cfg, err := setup()
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		providers, err := newBackends(ctx, cfg)
		if err != nil {
			return err
		}
		defer providers.Close()

		score := sentiment.NewLexicon().Score(journal)
		res := providers.orchestrator(fallback.NewRandomSource()).Run(ctx, mood, journal, score)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Sentiment: %.2f\n", score)
		fmt.Fprintf(out, "Source: %s\n\n", res.Source)
		fmt.Fprintf(out, "%s\n\n", res.Comfort)
		for i, s := range res.Suggestions {
			fmt.Fprintf(out, "%d. %s\n", i+1, s)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", string(export.JSON), "export format: json, csv or txt")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default stdout)")

	respondCmd.Flags().StringVar(&respondMood, "mood", "", "mood label from the catalog")
	respondCmd.Flags().StringVar(&respondJournal, "journal", "", "journal text")
	respondCmd.MarkFlagRequired("mood")
	respondCmd.MarkFlagRequired("journal")
}
