package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tianji-daily/internal/archive"
	"tianji-daily/internal/config"
	"tianji-daily/internal/enhance"
	"tianji-daily/internal/services"
	"tianji-daily/internal/transcripts"
	"tianji-daily/pkg/catalog"
	"tianji-daily/pkg/task"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// generate flags
	dateFlag  string
	noEnhance bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "tianji-daily",
	Short: "Daily learning page generator for the Tianji course",
	Long: `tianji-daily generates a rotating daily study page and its dated archive
from a fixed table of learning modules.

Each calendar date maps deterministically onto one module (days elapsed since
the start date, modulo the table size), so every page - today's and every
archived one - can be reproduced byte-for-byte from its date alone.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// load .env if it exists - a scheduled job usually sets env directly
		if err := godotenv.Load(); err != nil {
			fmt.Fprintf(os.Stderr, "note: no .env file loaded: %v\n", err)
		}

		// Initialize logger
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// generateCmd builds today's page and archives it
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the daily page and update the archive",
	Long: `Resolves which module today's date rotates onto, optionally asks the
enhancement service for supplementary text (falling back to static defaults
on any failure), renders the page in both link contexts, and writes the
current page, its dated archive copy, and the archive listing.`,
	RunE: runGenerate,
}

// regenerateCmd rewrites the whole archive from file names alone
var regenerateCmd = &cobra.Command{
	Use:   "regenerate",
	Short: "Rewrite every archived page from its date and the module table",
	Long: `Walks archive/*.html, re-derives each page's module from its file name,
and rewrites it. Use after template or module-content fixes so history stays
consistent with what the generator produces today.`,
	RunE: runRegenerate,
}

// transcriptsCmd is the standalone yt-dlp batch tool
var transcriptsCmd = &cobra.Command{
	Use:   "transcripts",
	Short: "Extract subtitle transcripts for every playlist video",
	Long: `Runs yt-dlp against the course playlist and writes one transcript text
file per video. Videos whose transcript file already exists above the size
threshold are skipped, so reruns only fill the gaps. Individual failures are
counted and reported, not raised.`,
	RunE: runTranscripts,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	cfg, gen, err := buildPipeline()
	if err != nil {
		return err
	}

	date := time.Now()
	if dateFlag != "" {
		date, err = time.Parse("2006-01-02", dateFlag)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", dateFlag, err)
		}
	}

	logger.Info("generating daily page",
		zap.String("date", date.Format("2006-01-02")),
		zap.String("site_root", cfg.SiteRoot))
	return gen.GenerateFor(ctx, date)
}

func runRegenerate(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	_, gen, err := buildPipeline()
	if err != nil {
		return err
	}

	count, err := gen.Regenerate(ctx)
	if err != nil {
		return err
	}
	logger.Info("archive regeneration complete", zap.Int("pages", count))
	return nil
}

func runTranscripts(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	extractor := transcripts.NewExtractor(
		cfg.PlaylistURL,
		cfg.TranscriptDir,
		cfg.TranscriptMinSize,
		task.NewManager(),
		logger,
	)

	summary, err := extractor.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("transcripts: %d total, %d extracted, %d skipped, %d failed\n",
		summary.Total, summary.Extracted, summary.Skipped, summary.Failed)
	return nil
}

// buildPipeline loads config plus the module table and wires the generator
func buildPipeline() (*config.Config, *services.Generator, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	cat, err := catalog.Load(cfg.ModulesPath)
	if err != nil {
		// no table, no pages - this is the one fatal load error
		return nil, nil, err
	}
	logger.Info("loaded module table",
		zap.String("path", cfg.ModulesPath),
		zap.Int("modules", cat.Len()))

	writer := archive.NewWriter(cfg.SiteRoot, logger)
	gen := services.NewGenerator(cat, selectEnhancer(cfg), writer, cfg.StartDate, logger)
	return cfg, gen, nil
}

// selectEnhancer picks the configured implementation, degrading to the
// static one instead of failing - enhancement is never worth aborting over
func selectEnhancer(cfg *config.Config) enhance.Enhancer {
	if noEnhance || cfg.EnhancerProvider != "gemini" {
		return enhance.Static{}
	}
	if cfg.GeminiAPIKey == "" {
		logger.Warn("ENHANCER=gemini but no GEMINI_API_KEY set, using static content")
		return enhance.Static{}
	}
	g, err := enhance.NewGemini(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.EnhanceTimeout, logger)
	if err != nil {
		logger.Warn("could not create gemini enhancer, using static content", zap.Error(err))
		return enhance.Static{}
	}
	return g
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to config file")
	generateCmd.Flags().StringVar(&dateFlag, "date", "", "generate for a specific date (YYYY-MM-DD) instead of today")
	generateCmd.Flags().BoolVar(&noEnhance, "no-enhance", false, "skip the AI enhancement call and use static content")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(regenerateCmd)
	rootCmd.AddCommand(transcriptsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
