package main

import (
	"fmt"
	"os"

	"github.com/gopxl/beep"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dinojump/internal/audio"
	"github.com/vovakirdan/dinojump/internal/dino"
	"github.com/vovakirdan/dinojump/internal/platform/tui"
)

var flagAutopilot bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the game in the terminal.

Controls:
  Enter        - Start (title screen) / restart (game over)
  Space/Up/W   - Jump (left click works too)
  R            - Restart (after game over)
  Tab          - Scoreboard (when no run is in progress)
  Ctrl+S       - Save a screenshot to ~/.dinojump/screenshots
  Q/Ctrl+C     - Quit

Logs go to the file set by log.file while the game is running.

Examples:
  dinojump play
  dinojump play --autopilot
  dinojump play --seed 42 --fps 30`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagAutopilot, "autopilot", false, "Let the autopilot play")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg := appConfig

	logFile, err := openLogFile(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := newLogger(logFile, cfg)

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store := openStore(cfg, logger)
	if store == nil {
		fmt.Fprintln(os.Stderr, "Warning: could not open scores database, scores will not be saved")
	} else {
		defer store.Close()
	}

	var cue dino.JumpCue = audio.Silent{}
	if cfg.Audio.Enabled {
		player := audio.NewPlayer(audio.Options{
			Enabled:    true,
			Volume:     cfg.Audio.Volume,
			SampleRate: beepRate(cfg.Audio.SampleRate),
		})
		defer player.Close()
		cue = player
	}

	opts := tui.Options{
		Config:    cfg,
		Width:     width,
		Height:    height,
		Store:     store,
		Audio:     cue,
		Rand:      newRand(cfg),
		Autopilot: flagAutopilot,
		Logger:    logger,
	}

	logger.Info("session started", "autopilot", flagAutopilot, "config", cfg.Source)
	for {
		res, err := tui.Run(opts)
		if err != nil {
			return fmt.Errorf("error running game: %w", err)
		}
		logger.Info("session ended", "best", res.Best)
		if !res.WantsScoreboard {
			return nil
		}

		goBack, err := tui.RunScoreboard(store, cfg.Storage.BestKey, width, height)
		if err != nil {
			return fmt.Errorf("error running scoreboard: %w", err)
		}
		if !goBack {
			return nil
		}
	}
}

// beepRate converts a configured sample rate, falling back to the default.
func beepRate(hz int) beep.SampleRate {
	if hz <= 0 {
		return audio.DefaultSampleRate
	}
	return beep.SampleRate(hz)
}
