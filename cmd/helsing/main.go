// Command helsing enumerates vampire numbers within a closed integer
// interval [MIN, MAX].
//
// Usage:
//
//	helsing MIN MAX [flags]
package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jaskij/helsing/internal/checkpoint"
	"github.com/jaskij/helsing/internal/config"
	"github.com/jaskij/helsing/internal/driver"
	"github.com/jaskij/helsing/internal/herr"
	"github.com/jaskij/helsing/internal/output"
	"github.com/jaskij/helsing/internal/resultlist"
)

// isTerminal reports whether f is an interactive terminal, gating the
// --progress carriage-return counter (§6).
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd())
}

var (
	flagThreads      int
	flagMode         string
	flagMinFangPairs uint8
	flagTileSize     uint64
	flagNoCache      bool
	flagWide         bool
	flagCheckpoint   string
	flagChecksum     bool
	flagProgress     bool
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		if cmd.SilenceErrors {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "helsing MIN MAX",
		Short: "Enumerate vampire numbers in [MIN, MAX]",
		Args:  cobra.ExactArgs(2),
		RunE:  runHelsing,
	}

	cmd.Flags().IntVarP(&flagThreads, "threads", "j", 0, "worker thread count (0 = GOMAXPROCS)")
	cmd.Flags().StringVar(&flagMode, "mode", "print-vampires", "count-pairs|dump-pairs|count-vampires|print-vampires")
	cmd.Flags().Uint8Var(&flagMinFangPairs, "min-fang-pairs", 1, "minimum fang-pair count for a product to be reported")
	cmd.Flags().Uint64Var(&flagTileSize, "tile-size", 0, "tile size in products (0 = auto)")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "disable the fingerprint cache")
	cmd.Flags().BoolVar(&flagWide, "wide", true, "use the 64-bit wide fingerprint encoding (false selects 32-bit narrow)")
	cmd.Flags().StringVar(&flagCheckpoint, "checkpoint", "", "checkpoint file path (enables resume)")
	cmd.Flags().BoolVar(&flagChecksum, "checksum", false, "print a CRC-32 of the stdout stream at the end of the run")
	cmd.Flags().BoolVar(&flagProgress, "progress", false, "print tile-commit progress to stderr")

	return cmd
}

func runHelsing(cmd *cobra.Command, args []string) error {
	min, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: MIN: %v", herr.ErrInputParse, err)
	}
	max, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: MAX: %v", herr.ErrInputParse, err)
	}
	mode, err := output.ParseMode(flagMode)
	if err != nil {
		return err
	}

	threads := flagThreads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}

	cfg := config.Config{
		Min: min, Max: max,
		Threads:        threads,
		Mode:           mode,
		MinFangPairs:   flagMinFangPairs,
		TileSize:       flagTileSize,
		CacheEnabled:   !flagNoCache,
		Wide:           flagWide,
		CheckpointPath: flagCheckpoint,
		Checksum:       flagChecksum,
		Progress:       flagProgress,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// From here on the args are known-good; stop cobra from repeating
	// usage text on errors raised by the engine itself.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	return run(cmd, cfg)
}

func run(cmd *cobra.Command, cfg config.Config) error {
	sink := output.NewSink(cmd.OutOrStdout(), cfg.Mode, cfg.Checksum)
	stderr := cmd.ErrOrStderr()

	var ckptState checkpoint.State
	var haveCkpt bool
	var writer *checkpoint.Writer
	if cfg.CheckpointPath != "" {
		st, ok, err := checkpoint.Load(cfg.CheckpointPath)
		if err != nil {
			return err
		}
		ckptState, haveCkpt = st, ok

		w, err := checkpoint.NewWriter(cfg.CheckpointPath, cfg.Min, cfg.Max)
		if err != nil {
			return err
		}
		writer = w
		defer writer.Close()
	}

	opts := driver.Options{
		Threads:      cfg.Threads,
		TileSize:     cfg.TileSize,
		MinFangPairs: cfg.MinFangPairs,
		CacheEnabled: cfg.CacheEnabled,
		Wide:         cfg.Wide,
		Dedup:        cfg.Mode == output.CountVampires || cfg.Mode == output.PrintVampires,
		OnPair:       sink.OnPair,
		StatusFn: func(sub driver.Subrange) {
			fmt.Fprintf(stderr, "Checking interval: [%d, %d]\n", sub.LMin, sub.LMax)
		},
	}
	if haveCkpt {
		opts.Resume = func(sub driver.Subrange) *uint64 {
			if sub.LMax > ckptState.LastCommitted {
				return nil
			}
			// whole subrange already committed before the crash: skip it.
			v := sub.LMax + 1
			return &v
		}
	}
	if writer != nil {
		opts.SubrangeDone = func(sub driver.Subrange) error {
			return writer.Save(sub.LMax, ckptState.Count+sink.Count())
		}
	}

	showProgress := cfg.Progress && isTerminal(os.Stderr)
	tiles := uint64(0)
	err := driver.Run(cfg.Min, cfg.Max, opts, func(list *resultlist.List) error {
		if err := sink.Emit(list); err != nil {
			return err
		}
		tiles++
		if showProgress {
			fmt.Fprintf(stderr, "\rcommitted %d tiles", tiles)
		}
		return nil
	})
	if showProgress && tiles > 0 {
		fmt.Fprintln(stderr)
	}
	if err != nil {
		return err
	}

	if ferr := sink.Flush(); ferr != nil {
		return ferr
	}
	sink.ReportFound(stderr)
	sink.ReportChecksum(stderr)
	return nil
}
