package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinojump/internal/config"
)

var (
	flagConfigFormat  string
	flagConfigDefault bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after files, environment variables and flags
are applied. The output can be saved as ~/.dinojump/config.yaml or
~/.dinojump/config.toml.

Environment overrides:
  DINOJUMP_AUDIO_ENABLED  - true/false
  DINOJUMP_VOLUME         - 0-100
  DINOJUMP_LOG_LEVEL      - debug, info, warn, error
  DINOJUMP_DB             - database path

Examples:
  dinojump config
  dinojump config --format toml > ~/.dinojump/config.toml
  dinojump config --default`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigFormat, "format", config.FormatYAML, "Output format: yaml or toml")
	configCmd.Flags().BoolVar(&flagConfigDefault, "default", false, "Print the built-in defaults instead")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	if flagConfigDefault {
		cfg = config.Default()
	}

	data, err := config.Encode(cfg, flagConfigFormat)
	if err != nil {
		return err
	}

	if cfg.Source != "" {
		fmt.Fprintf(os.Stderr, "# loaded from %s\n", cfg.Source)
	}
	_, err = os.Stdout.Write(data)
	return err
}
