package cmd

import (
	"log"
	"time"

	"github.com/jobradar/jobradar/internal/jobs"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "jobradar"

// Config is the full YAML configuration, unmarshalled via viper.
type Config struct {
	Profile  string          `mapstructure:"profile"`
	Sources  []jobs.Source   `mapstructure:"sources"`
	Cache    *CacheConfig    `mapstructure:"cache"`
	Quota    *QuotaConfig    `mapstructure:"quota"`
	Render   *RenderConfig   `mapstructure:"render"`
	Matching *MatchingConfig `mapstructure:"matching"`
	AI       *AIConfig       `mapstructure:"ai"`
}

// CacheConfig bounds the in-memory listing cache.
type CacheConfig struct {
	Capacity int           `mapstructure:"capacity"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// QuotaConfig controls the persisted per-source daily counters.
type QuotaConfig struct {
	File         string `mapstructure:"file"`
	DefaultLimit int    `mapstructure:"default-limit"`
}

// RenderConfig points at the external rendering/crawl service.
type RenderConfig struct {
	URL               string  `mapstructure:"url"`
	APIKey            string  `mapstructure:"api-key"`
	APIKeyFile        string  `mapstructure:"api-key-file"`
	RequestsPerSecond float64 `mapstructure:"requests-per-second"`
}

// MatchingConfig holds the scoring cost-control knobs.
type MatchingConfig struct {
	BatchSize  int `mapstructure:"batch-size"`
	MaxMatches int `mapstructure:"max-matches"`
}

// AIConfig selects and configures the reasoning provider.
type AIConfig struct {
	Gemini *GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig stores Gemini provider configuration.
type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobradar aggregates job postings from configured sources and ranks them against a candidate profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobradar.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}

	return config, nil
}

// quotaLimits collects per-source ceilings from the source list.
func (c *Config) quotaLimits() map[string]int {
	limits := make(map[string]int, len(c.Sources))
	for _, src := range c.Sources {
		if src.DailyQuota > 0 {
			limits[src.Name] = src.DailyQuota
		}
	}
	return limits
}
