package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jobradar/jobradar/internal/aggregate"
	"github.com/jobradar/jobradar/internal/ai/gemini"
	"github.com/jobradar/jobradar/internal/cache"
	"github.com/jobradar/jobradar/internal/jobs"
	"github.com/jobradar/jobradar/internal/logger"
	"github.com/jobradar/jobradar/internal/match"
	"github.com/jobradar/jobradar/internal/quota"
	"github.com/jobradar/jobradar/internal/render"
	"github.com/jobradar/jobradar/internal/secrets"
	"github.com/jobradar/jobradar/internal/source"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptExport = "Export matches to file"
	PromptEmail  = "Show outreach email for the top match"
	PromptQuit   = "Quit"

	defaultQuotaFile  = ".jobradar-quotas.json"
	defaultExportFile = "matches.json"
)

var actionPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptExport, PromptEmail, PromptQuit},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Collect listings from all configured sources and rank them against the candidate profile",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringSliceP("keywords", "k", nil, "search keywords steering crawls and filtering feeds")
	runCmd.Flags().StringSlice("only", nil, "restrict the run to sources whose name contains one of these fragments")
	runCmd.Flags().StringP("profile", "p", "", "candidate profile JSON file")
	runCmd.Flags().StringP("export", "o", "", "write the export bundle to this file and skip the interactive menu")

	viper.BindPFlag("profile", runCmd.Flags().Lookup("profile"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting jobradar", zap.String("version", version))

	if config == nil || len(config.Sources) == 0 {
		logger.Fatal("at least one source is required under the sources key")
	}
	if config.Profile == "" {
		logger.Fatal("a candidate profile is required", zap.String("hint", "set the profile key or pass --profile"))
	}

	candidate, err := jobs.LoadProfile(config.Profile)
	if err != nil {
		logger.Fatal("loading candidate profile", zap.Error(err))
	}

	logger.Info("loaded candidate profile",
		zap.String("headline", candidate.Headline),
		zap.Int("skills", len(candidate.Skills)),
	)

	scorer := buildScorer(ctx, config, logger)
	aggregator := buildAggregator(config, logger)

	progress := jobs.ProgressFunc(func(msg string) {
		logger.Info(msg)
	})

	keywords, _ := cmd.Flags().GetStringSlice("keywords")
	only, _ := cmd.Flags().GetStringSlice("only")

	listings := aggregator.Collect(ctx, progress, aggregate.Options{
		IncludeSources: only,
		Keywords:       keywords,
	})

	if len(listings) == 0 {
		// A valid empty result: every source empty, failed, or quota-skipped.
		logger.Info("exiting", zap.String("reason", "no jobs found"))
		return
	}

	filtered := match.PreFilter(candidate, listings)
	progress.Report("[FILTER] Pre-filtered to %d relevant jobs from %d total", len(filtered), len(listings))

	if len(filtered) == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs left after pre-filtering"))
		return
	}

	matches, err := scorer.Score(ctx, candidate, filtered, progress)
	if err != nil {
		// Distinct from an empty result: no ranking happened at all.
		logger.Fatal("scoring failed", zap.Error(err))
	}

	printMatches(matches)

	if exportFile, _ := cmd.Flags().GetString("export"); exportFile != "" {
		if err := writeExport(exportFile, candidate, matches); err != nil {
			logger.Fatal("writing export", zap.Error(err))
		}
		logger.Info("export written", zap.String("file", exportFile))
		return
	}

	if len(matches) == 0 {
		return
	}

	for {
		_, action, err := actionPrompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		switch action {
		case PromptExport:
			if err := writeExport(defaultExportFile, candidate, matches); err != nil {
				logger.Error("writing export", zap.Error(err))
				continue
			}
			fmt.Printf("wrote %s\n", defaultExportFile)
		case PromptEmail:
			fmt.Println(match.OutreachEmail(matches[0], candidate))
		case PromptQuit:
			return
		}
	}
}

func buildAggregator(config *Config, logger *zap.Logger) *aggregate.Aggregator {
	renderCfg := config.Render
	if renderCfg == nil {
		logger.Fatal("render service configuration is required under the render key")
	}

	renderKey, err := secrets.Load(secrets.Source{
		Name:  "render service api key",
		Value: renderCfg.APIKey,
		File:  renderCfg.APIKeyFile,
	})
	if err != nil {
		logger.Warn("render service api key not configured, proceeding unauthenticated", zap.Error(err))
	}

	crawler := render.NewClient(renderCfg.URL, renderKey, renderCfg.RequestsPerSecond, logger)
	limiter := render.NewHostLimiter(renderCfg.RequestsPerSecond, 1)
	adapters := source.NewSet(crawler, nil, limiter, logger)

	capacity := 0
	var cacheTTL time.Duration
	if config.Cache != nil {
		capacity = config.Cache.Capacity
		cacheTTL = config.Cache.TTL
	}
	listingCache := cache.New(capacity)

	quotaFile := defaultQuotaFile
	defaultLimit := 0
	if config.Quota != nil {
		if config.Quota.File != "" {
			quotaFile = config.Quota.File
		}
		defaultLimit = config.Quota.DefaultLimit
	}
	tracker := quota.New(quotaFile, config.quotaLimits(), defaultLimit, logger)

	return aggregate.New(config.Sources, adapters, listingCache, tracker, cacheTTL, logger)
}

func buildScorer(ctx context.Context, config *Config, logger *zap.Logger) *match.Scorer {
	if config.AI == nil || config.AI.Gemini == nil {
		logger.Fatal("gemini configuration is required under ai.gemini")
	}

	geminiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: config.AI.Gemini.APIKey,
		File:  config.AI.Gemini.APIKeyFile,
	})
	if err != nil {
		logger.Fatal(
			"loading gemini api key",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY_FILE or the ai.gemini.api-key key in the configuration file"),
		)
	}

	generator, err := gemini.NewGenerator(ctx, geminiKey, config.AI.Gemini.Model)
	if err != nil {
		logger.Fatal("creating gemini client", zap.Error(err))
	}

	batchSize, maxMatches := 0, 0
	if config.Matching != nil {
		batchSize = config.Matching.BatchSize
		maxMatches = config.Matching.MaxMatches
	}

	return match.NewScorer(generator, logger, batchSize, maxMatches)
}

func printMatches(matches []jobs.Match) {
	if len(matches) == 0 {
		fmt.Println("No matches above the score threshold.")
		return
	}

	fmt.Printf("\n%-5s %-45s %-25s %s\n", "SCORE", "TITLE", "COMPANY", "SOURCE")
	for _, m := range matches {
		fmt.Printf("%-5.0f %-45s %-25s %s\n", m.Score, clip(m.Title, 45), clip(m.Company, 25), m.Source)
	}
	fmt.Println()
}

func writeExport(path string, candidate *jobs.CandidateProfile, matches []jobs.Match) error {
	export := match.BuildExport(candidate, matches)
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func clip(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
