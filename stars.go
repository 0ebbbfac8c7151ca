package main

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"ppv2/beatmap"
	"ppv2/difficulty"
	"ppv2/mods"
)

var starsCmd = &cobra.Command{
	Use:   "stars <map.osu>",
	Short: "Print the star rating of a map",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modString, _ := cmd.Flags().GetString("mods")
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		asJSON, _ := cmd.Flags().GetBool("json")
		showObjects, _ := cmd.Flags().GetBool("objects")

		bmap, err := openMap(args[0])
		if err != nil {
			return err
		}

		res, err := calcStars(difficulty.NewCalculator(), bmap, mods.Parse(modString), threshold)
		if err != nil {
			return err
		}

		if asJSON {
			return printJSON(cmd.OutOrStdout(), newStarsOutput(args[0], res))
		}

		out := cmd.OutOrStdout()

		fmt.Fprint(out, bmap)

		if res.Mods != mods.NoMod {
			fmt.Fprintln(out, "+"+res.Mods.String())
		}

		if showObjects {
			for _, o := range res.Objects {
				fmt.Fprintln(out, o)
			}
		}

		fmt.Fprintln(out, res)
		fmt.Fprintf(out, "%d singletaps, %d spaced over %.0fms\n", res.Singletaps, res.SingletapsOverThreshold, threshold)

		return nil
	},
}

func init() {
	starsCmd.Flags().Float64("threshold", difficulty.DefaultSingletapThreshold, "Singletap interval threshold in milliseconds")
	starsCmd.Flags().Bool("objects", false, "Print the per-object strains")
}

func openMap(path string) (*beatmap.Beatmap, error) {
	start := time.Now()

	bmap, err := beatmap.DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	for _, w := range bmap.Warnings {
		log.Println(path, w)
	}

	log.Println("Decoded", path, "in", time.Since(start).Truncate(time.Millisecond).String())

	return bmap, nil
}

func calcStars(calc *difficulty.Calculator, bmap *beatmap.Beatmap, m mods.Mods, threshold float64) (*difficulty.Result, error) {
	log.Println("Calculating stars for", bmap.Title, "["+bmap.Version+"]")

	start := time.Now()

	res, err := calc.Calc(difficulty.WithMap(bmap), difficulty.WithMods(m), difficulty.WithSingletapThreshold(threshold))
	if err != nil {
		return nil, err
	}

	log.Println("Calculations finished in", time.Since(start).Truncate(time.Millisecond).String())

	return res, nil
}
