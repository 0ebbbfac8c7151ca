package main

import (
	"fmt"
	"log"
	"math"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"ppv2/difficulty"
	"ppv2/mods"
	"ppv2/pp"
)

var batchCmd = &cobra.Command{
	Use:   "batch <map.osu>...",
	Short: "Compute stars and SS pp for many maps concurrently",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modString, _ := cmd.Flags().GetString("mods")
		workers, _ := cmd.Flags().GetInt("workers")
		asJSON, _ := cmd.Flags().GetBool("json")

		paths, err := expandPaths(args)
		if err != nil {
			return err
		}

		start := time.Now()

		results, failures := runBatch(paths, mods.Parse(modString), workers)

		log.Println("Processed", humanize.Comma(int64(len(paths))), "maps in", time.Since(start).Truncate(time.Millisecond).String())

		out := cmd.OutOrStdout()

		if asJSON {
			outputs := make([]starsOutput, 0, len(results))

			for _, r := range results {
				if r.err == nil {
					outputs = append(outputs, newStarsOutput(r.path, r.stars))
				}
			}

			if err := printJSON(out, outputs); err != nil {
				return err
			}
		} else {
			printBatchTable(out, results)
		}

		if n := failures.Len(); n > 0 {
			failures.Report(cmd.ErrOrStderr())
			return fmt.Errorf("%d/%d maps failed", n, len(paths))
		}

		return nil
	},
}

func init() {
	batchCmd.Flags().IntP("workers", "w", runtime.NumCPU(), "Number of maps calculated at once")
}

type batchResult struct {
	path     string
	name     string
	maxCombo int
	stars    *difficulty.Result
	pp       *pp.Result
	err      error
}

// expandPaths resolves directories to the .osu files directly inside them.
func expandPaths(args []string) ([]string, error) {
	var paths []string

	for _, arg := range args {
		if !strings.EqualFold(filepath.Ext(arg), ".osu") {
			matches, err := filepath.Glob(filepath.Join(arg, "*.osu"))
			if err != nil {
				return nil, err
			}

			if len(matches) > 0 {
				paths = append(paths, matches...)
				continue
			}
		}

		paths = append(paths, arg)
	}

	return paths, nil
}

// runBatch keeps the result order of paths.
func runBatch(paths []string, m mods.Mods, workers int) ([]batchResult, *Failures) {
	pool := newCalcPool(max(1, workers))
	failures := &Failures{}
	results := make([]batchResult, len(paths))

	var wg sync.WaitGroup

	for i, path := range paths {
		calcs, release := pool.GetToken()

		results[i].path = path

		Run(&wg, func() {
			defer release()

			if err := calcOne(&results[i], calcs, m); err != nil {
				results[i].err = err
				failures.Fail(path, err)
			}
		}, func(err error) {
			results[i].err = err
			failures.Fail(path, err)
		})
	}

	wg.Wait()

	return results, failures
}

func calcOne(r *batchResult, calcs *calculators, m mods.Mods) error {
	bmap, err := openMap(r.path)
	if err != nil {
		return err
	}

	stars, err := calcStars(calcs.stars, bmap, m, difficulty.DefaultSingletapThreshold)
	if err != nil {
		return err
	}

	perf, err := calcs.perf.Calculate(pp.Params{Stars: stars})
	if err != nil {
		return err
	}

	if math.IsNaN(perf.Total) || math.IsInf(perf.Total, 0) {
		PanicF("non-finite pp for %s: %v", r.path, perf)
	}

	r.name = fmt.Sprintf("%s - %s [%s]", bmap.Artist, bmap.Title, bmap.Version)
	r.maxCombo = bmap.MaxCombo()
	r.stars = stars
	r.pp = perf

	return nil
}
