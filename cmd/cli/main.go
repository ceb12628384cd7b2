package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pantryplan/grocery-service/config"
	"github.com/pantryplan/grocery-service/internal/catalog"
	"github.com/pantryplan/grocery-service/internal/compare"
	"github.com/pantryplan/grocery-service/internal/oracle"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "grocery-service",
	Short: "Grocery Service CLI - price comparison from the terminal",
	Long: `A CLI for the grocery price comparison engine. Compares shopping list
prices across the store catalog, lists nearby stores, and exports comparison
workbooks without running the HTTP server.`,
	PersistentPreRunE: persistentPreRun,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml or ./config.yaml)")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		// Config is optional for the CLI, don't fail here
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
	}
}

func persistentPreRun(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}

	logger = initLogger()
	return nil
}

// newService builds a comparison service backed by the synthetic oracle. The
// CLI stays offline; pointing it at the HTTP or postgres backends goes
// through the server instead.
func newService() *compare.Service {
	cat := catalog.Default()
	synthetic := oracle.NewSynthetic(cat)

	rankCfg := compare.DefaultConfig()
	if cfg != nil {
		rankCfg = &compare.Config{
			PriceWeight:         cfg.Ranking.PriceWeight,
			DistanceWeight:      cfg.Ranking.DistanceWeight,
			PreferenceBonus:     cfg.Ranking.PreferenceBonus,
			MaxConcurrentQuotes: int64(cfg.Ranking.MaxConcurrentQuotes),
			QuoteTimeout:        cfg.Ranking.QuoteTimeout,
			MaxItems:            cfg.Ranking.MaxItems,
		}
	}

	return compare.NewService(cat, synthetic, synthetic, rankCfg, *logger)
}

func initLogger() *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level := zerolog.WarnLevel
	if cfg != nil && cfg.Logging.Level != "" {
		if parsedLevel, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
			level = parsedLevel
		}
	}

	// Always use console format for CLI
	var output io.Writer
	noColor := false
	if cfg != nil {
		noColor = cfg.Logging.NoColor
	}
	output = zerolog.ConsoleWriter{Out: os.Stderr, NoColor: noColor}

	log := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &log
}

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
