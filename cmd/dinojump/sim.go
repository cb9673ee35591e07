package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinojump/internal/dino"
	"github.com/vovakirdan/dinojump/internal/loop"
	"github.com/vovakirdan/dinojump/internal/storage"
)

var (
	flagSimTicks    int
	flagSimRuns     int
	flagSimRecord   bool
	flagSimRealtime bool
	flagSimCols     int
	flagSimRows     int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Let the autopilot play headless",
	Long: `Run the game without a display, with the autopilot jumping.
Each run ends on a collision or after --ticks ticks.

Examples:
  dinojump sim
  dinojump sim --runs 10 --seed 42
  dinojump sim --ticks 0 --record`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 10000, "Tick limit per run (0 = until game over)")
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save runs and the best score to the database")
	simCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Pace ticks at --fps")
	simCmd.Flags().IntVar(&flagSimCols, "cols", 80, "Field width in terminal cells")
	simCmd.Flags().IntVar(&flagSimRows, "rows", 24, "Field height in terminal cells")
}

// pilotView lets the autopilot react to every frame the controller presents.
type pilotView struct {
	pilot dino.Autopilot
	ctrl  *dino.Controller
	last  dino.Frame
}

func (v *pilotView) Present(f dino.Frame) {
	v.last = f
	if v.ctrl != nil && v.pilot.ShouldJump(f) {
		v.ctrl.Jump()
	}
}

func runSim(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	logger := newLogger(os.Stderr, cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var best dino.BestStore = &dino.MemoryBest{}
	var store *storage.Store
	if flagSimRecord {
		store = openStore(cfg, logger)
		if store != nil {
			defer store.Close()
			best = storage.NewBestKeeper(store, cfg.Storage.BestKey, logger)
		}
	}

	stepper := &loop.Stepper{}
	if flagSimRealtime {
		stepper.Interval = time.Second / time.Duration(cfg.Runtime.FPS)
	}

	view := &pilotView{pilot: dino.DefaultAutopilot()}
	ctrl := dino.New(cfg.Field(flagSimCols, flagSimRows), dino.Deps{
		Presenter: view,
		Best:      best,
		Driver:    stepper,
		Rand:      newRand(cfg),
		Logger:    logger,
	})
	view.ctrl = ctrl

	for run := 1; run <= flagSimRuns; run++ {
		if run == 1 {
			ctrl.Start()
		} else {
			ctrl.Restart()
		}

		n, err := stepper.Run(ctx, flagSimTicks)
		f := view.last
		status := "game over"
		if f.Phase == dino.PhaseRunning {
			status = "tick limit"
		}
		fmt.Printf("run %d: score %d, %d ticks, speed %.1f (%s)\n", run, f.Score, n, f.Speed, status)

		if store != nil {
			if _, saveErr := store.SaveRun(storage.RunRecord{Score: f.Score, Ticks: f.Ticks, Autopilot: true}); saveErr != nil {
				logger.Warn("cannot save run", "error", saveErr)
			}
		}

		if err != nil {
			return err
		}
	}

	fmt.Printf("best: %d\n", ctrl.Best())
	return nil
}
