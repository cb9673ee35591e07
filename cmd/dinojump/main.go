// dinojump is a terminal endless runner: jump over the cacti, the score
// grows with every cactus that scrolls away.
//
// Usage:
//
//	dinojump play            - Play in the terminal
//	dinojump scores          - Show the run history
//	dinojump sim             - Run the autopilot headless
//	dinojump config          - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Config file (YAML or TOML)
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible runs
//	--db <path>         - Set database path (default: ~/.dinojump/dinojump.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinojump/internal/config"
	"github.com/vovakirdan/dinojump/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	// appConfig is loaded before any subcommand runs.
	appConfig config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dinojump",
	Short: "Dino Jump - an endless runner in your terminal",
	Long: `Dino Jump is a terminal endless runner. Jump over the cacti; every
cactus that scrolls away is worth 5 points and the game speeds up every
100 points.

Available commands:
  play     - Play in the terminal
  scores   - View the run history
  sim      - Let the autopilot play headless
  config   - Print the effective configuration

Examples:
  dinojump play
  dinojump play --autopilot
  dinojump scores -n 20
  dinojump sim --ticks 5000 --seed 42
  dinojump config --format toml`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (.yaml or .toml)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dinojump/dinojump.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the config file and applies explicitly set flags on top.
func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Runtime.FPS = flagFPS
	}
	if flags.Changed("seed") {
		cfg.Runtime.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.Storage.DB = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	appConfig = cfg
	return nil
}

// newLogger creates the application logger writing to w.
func newLogger(w io.Writer, cfg config.Config) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "dinojump",
		Level:           cfg.LogLevel(),
	})
}

// openLogFile opens the log file used while the terminal UI owns the screen.
// The caller closes it.
func openLogFile(cfg config.Config) (*os.File, error) {
	path, err := storage.ExpandHome(cfg.Log.File)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

// openStore opens the database, or returns nil with a warning so the game
// still works without it.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	store, err := storage.Open(cfg.Storage.DB)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		return nil
	}
	return store
}

// newRand seeds the spawn randomness. Seed 0 is time-based.
func newRand(cfg config.Config) *rand.Rand {
	seed := cfg.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
