package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"dailyvocab/internal/app"
	"dailyvocab/internal/config"
	"dailyvocab/internal/database"
	"dailyvocab/internal/domain"
	"dailyvocab/internal/logger"
	"dailyvocab/internal/practice"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const requestTimeout = 60 * time.Second

func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	// Keep the terminal quiet unless asked otherwise
	level := cfg.LogLevel
	if level == "info" {
		level = "warn"
	}
	log, err := logger.New(level)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func getApp() (*app.App, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(cfg, log)
}

func printWords(w io.Writer, words []domain.Word) {
	if len(words) == 0 {
		fmt.Fprintln(w, "No words.")
		return
	}
	for i, word := range words {
		fmt.Fprintf(w, "%2d. %-16s %-18s %s\n", i+1, word.Text, word.Phonetic, word.Translation)
	}
}

func printWord(w io.Writer, word domain.Word) {
	fmt.Fprintf(w, "%s %s\n", word.Text, word.Phonetic)
	if word.PartOfSpeech != "" {
		fmt.Fprintf(w, "  %s %s\n", word.PartOfSpeech, word.Translation)
	} else {
		fmt.Fprintf(w, "  %s\n", word.Translation)
	}
	if word.Example != "" {
		fmt.Fprintf(w, "  e.g. %s\n", word.Example)
		fmt.Fprintf(w, "       %s\n", word.ExampleTranslation)
	}
	if word.OtherForms != "" {
		fmt.Fprintf(w, "  forms: %s\n", word.OtherForms)
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg, log)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(db, cfg.Database.Driver, log); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied (%s)\n", cfg.Database.Driver)
			return nil
		},
	}
}

func todayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Words for %s\n", a.Words.Today())
			printWords(out, a.Words.GetTodayWords(userID))
			return nil
		},
	}
}

func generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Fetch new words and merge them into today's list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			out := cmd.OutOrStdout()
			level := a.Settings.Difficulty(userID)
			fmt.Fprintf(out, "Generating %s words... ", level.DisplayName())
			words := a.Words.GenerateNewWords(ctx, userID)
			fmt.Fprintln(out, "done")
			printWords(out, words)
			return nil
		},
	}
}

func recordsCmd() *cobra.Command {
	var page int

	cmd := &cobra.Command{
		Use:   "records [date]",
		Short: "List cached days, or the words of one day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()

			if len(args) == 1 {
				words, err := a.Words.GetWordsByDate(userID, args[0])
				if err != nil {
					return err
				}
				printWords(out, words)
				return nil
			}

			records, totalPages := a.Words.GetRecordsPage(userID, page)
			if len(records) == 0 {
				fmt.Fprintln(out, "No records yet. Use 'vocabctl today' to create one.")
				return nil
			}

			now := a.Words.Now()
			for _, r := range records {
				fmt.Fprintf(out, "%s  %-14s %d words\n", r.Date, r.DisplayString(now), len(r.Words))
			}
			fmt.Fprintf(out, "Page %d/%d\n", max(page, 1), totalPages)
			return nil
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "page of records to show")
	return cmd
}

func difficultyCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "difficulty [level]",
		Short:     "Show or change the word difficulty",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"ELEMENTARY", "MIDDLE_SCHOOL", "HIGH_SCHOOL", "UNIVERSITY"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()

			if len(args) == 1 {
				level, err := domain.ParseDifficulty(args[0])
				if err != nil {
					return err
				}
				if err := a.Settings.SetDifficulty(userID, level); err != nil {
					return err
				}
			}

			current := a.Settings.Difficulty(userID)
			for _, level := range domain.DifficultyLevels() {
				mark := " "
				if level == current {
					mark = "*"
				}
				fmt.Fprintf(out, "%s %-14s %s\n", mark, level, level.Description())
			}
			return nil
		},
	}
}

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached day of the user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Words.ClearCache(userID); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Word cache cleared")
			return nil
		},
	}
}

func detailsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "details [word]",
		Short: "Look up a word and its related words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			out := cmd.OutOrStdout()
			printWord(out, a.Words.WordDetails(ctx, userID, args[0]))

			fmt.Fprintln(out, "Related:")
			for _, r := range a.Words.RelatedWords(args[0]) {
				fmt.Fprintf(out, "  %s (%s) %s\n", r.Word, r.Relationship, r.Translation)
			}
			return nil
		},
	}
}

func practiceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "practice",
		Short: "Fill in masked letters of cached words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := getApp()
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			session := a.Practice.NewSession(userID)
			if session.Total() == 0 {
				fmt.Fprintln(out, "No words to practice.")
				return nil
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				current, ok := session.Current()
				if !ok {
					break
				}

				fmt.Fprintf(out, "[%d/%d] %s  (%s)\n> ", session.Index()+1, session.Total(), current.Masked, current.Word.Translation)
				if !scanner.Scan() {
					break
				}

				input := strings.TrimSpace(scanner.Text())
				// An empty line skips the word
				var result practice.Result
				if input == "" {
					result, _ = session.Skip()
				} else {
					result, _ = session.Submit(input)
				}
				if result.Correct {
					fmt.Fprintln(out, "Correct!")
				} else {
					fmt.Fprintf(out, "Answer: %s\n", result.Answer)
				}
			}

			fmt.Fprintf(out, "Score: %d/%d\n", session.Score(), session.Total())
			return scanner.Err()
		},
	}
}
