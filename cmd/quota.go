package cmd

import (
	"fmt"
	"log"
	"sort"

	"github.com/jobradar/jobradar/internal/logger"
	"github.com/jobradar/jobradar/internal/quota"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var quotaCmd = &cobra.Command{
	Use:   "quota",
	Short: "Show today's per-source quota usage",
	Run: func(_ *cobra.Command, _ []string) {
		logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}

		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		quotaFile := defaultQuotaFile
		defaultLimit := 0
		if config.Quota != nil {
			if config.Quota.File != "" {
				quotaFile = config.Quota.File
			}
			defaultLimit = config.Quota.DefaultLimit
		}
		tracker := quota.New(quotaFile, config.quotaLimits(), defaultLimit, logger)

		stats := tracker.Stats()
		names := make([]string, 0, len(stats))
		for name := range stats {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Printf("%-25s %-8s %s\n", "SOURCE", "USED", "LIMIT")
		for _, name := range names {
			fmt.Printf("%-25s %-8d %d\n", name, stats[name].Count, tracker.Limit(name))
		}
	},
}

func init() {
	rootCmd.AddCommand(quotaCmd)
}
