package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"ariss-articles/internal/console"
	"ariss-articles/internal/export"
	"ariss-articles/internal/pipeline"
	"ariss-articles/internal/source"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	arissFile string
	newsURL   string
	dateArg   string
	exportDir string
)

// fail prints a user facing error and stops the run.
func fail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logger.Debug("Run aborted", zap.String("reason", msg))
	fmt.Printf("Erreur: %s\n", msg)
	os.Exit(1)
}

func parseDateArg() *pipeline.Day {
	if dateArg == "" {
		return nil
	}
	day, err := pipeline.ParseDay(dateArg)
	if err != nil {
		fail("%v", err)
	}
	return &day
}

// loadText reads the newsletter from the positional source argument, or from
// the configured file when none is given.
func loadText(args []string) string {
	src := cfg.Newsletter.File
	if len(args) > 0 {
		src = args[0]
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Newsletter.Timeout)
	defer cancel()

	text, err := source.NewFetcher(cfg.Newsletter.Timeout).Fetch(ctx, src)
	if err != nil {
		fail("%v", err)
	}
	return text
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print an article for every contact of the newsletter",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		file := cfg.Newsletter.File
		if cmd.Flags().Changed("ariss-file") {
			file = arissFile
		}

		filter := parseDateArg()
		if filter != nil {
			fmt.Printf("Recherche des contacts pour la date du %s\n", dateArg)
		}

		fetcher := source.NewFetcher(cfg.Newsletter.Timeout)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Newsletter.Timeout)
		defer cancel()

		if newsURL != "" {
			fmt.Printf("Téléchargement de la newsletter depuis %s...\n", newsURL)
			text, err := fetcher.Fetch(ctx, newsURL)
			if err != nil {
				fail("%v", err)
			}
			if err := os.WriteFile(file, []byte(text), 0644); err != nil {
				fail("%v", err)
			}
			fmt.Printf("Newsletter sauvegardée dans %s\n", file)
		} else if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			fail("Le fichier %s n'existe pas.", file)
		}

		text, err := fetcher.Fetch(ctx, file)
		if err != nil {
			fmt.Printf("Erreur lors de la lecture du fichier %s: %v\n", file, err)
			os.Exit(1)
		}

		_, gen, err := newGenerator()
		if err != nil {
			logger.Fatal("Failed to init generator", zap.Error(err))
		}

		result := gen.Generate(text, filter)
		console.PrintArticles(os.Stdout, result.Articles)
		console.PrintSummary(os.Stdout, result.Count(), dateArg)

		logger.Debug("Generation complete",
			zap.Int("skipped_blocks", result.Report.Skipped),
			zap.Int("date_failures", result.Report.DateFailures))
	},
}

var listCmd = &cobra.Command{
	Use:   "list [source]",
	Short: "Show the scheduled contacts as a table",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filter := parseDateArg()
		text := loadText(args)

		_, gen, err := newGenerator()
		if err != nil {
			logger.Fatal("Failed to init generator", zap.Error(err))
		}

		result := gen.Generate(text, filter)
		console.PrintTable(os.Stdout, result.Contacts)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [source]",
	Short: "Write each article as a Markdown file with front matter",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filter := parseDateArg()
		text := loadText(args)

		_, gen, err := newGenerator()
		if err != nil {
			logger.Fatal("Failed to init generator", zap.Error(err))
		}

		result := gen.Generate(text, filter)
		res, err := export.NewExporter(exportDir, logger).Export(result.Articles)
		if err != nil {
			logger.Fatal("Export failed", zap.Error(err))
		}

		logger.Info("Export complete",
			zap.String("dir", exportDir),
			zap.Int("written", len(res.Written)),
			zap.Int("kept", len(res.Skipped)))
	},
}

func init() {
	generateCmd.Flags().StringVarP(&arissFile, "ariss-file", "f", "arissnews.txt", "Newsletter file to read, and to write when downloading")
	generateCmd.Flags().StringVarP(&newsURL, "url-newsletter", "u", "", "Download the newsletter first (default URL when given without value)")
	generateCmd.Flags().Lookup("url-newsletter").NoOptDefVal = source.DefaultURL

	for _, c := range []*cobra.Command{generateCmd, listCmd, exportCmd} {
		c.Flags().StringVarP(&dateArg, "date", "d", "", "Only contacts on this UTC date (JJ/MM/AAAA)")
	}
	exportCmd.Flags().StringVar(&exportDir, "dir", "articles", "Output directory")
}
