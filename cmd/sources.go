package cmd

import (
	"fmt"
	"log"

	"github.com/jobradar/jobradar/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured job sources",
	Run: func(_ *cobra.Command, _ []string) {
		logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}

		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		fmt.Printf("%-25s %-8s %-12s %-10s %s\n", "NAME", "KIND", "DAILY QUOTA", "MAX PAGES", "URL")
		for _, src := range config.Sources {
			quota := "default"
			if src.DailyQuota > 0 {
				quota = fmt.Sprintf("%d", src.DailyQuota)
			}
			fmt.Printf("%-25s %-8s %-12s %-10d %s\n", src.Name, src.Kind, quota, src.MaxPages, src.BaseURL)
		}
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
