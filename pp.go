package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"ppv2/accuracy"
	"ppv2/beatmap"
	"ppv2/difficulty"
	"ppv2/mods"
	"ppv2/pp"
)

var ppCmd = &cobra.Command{
	Use:   "pp [map.osu]",
	Short: "Print the pp of a play",
	Long: `Print the pp of a play on a map. Without a map, the star ratings and
object counts are read from --aim, --speed, --max-combo, --circles, --sliders
and --objects.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := ppParamsFromFlags(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		asJSON, _ := cmd.Flags().GetBool("json")

		if len(args) == 1 {
			bmap, err := openMap(args[0])
			if err != nil {
				return err
			}

			stars, err := calcStars(difficulty.NewCalculator(), bmap, params.Mods, difficulty.DefaultSingletapThreshold)
			if err != nil {
				return err
			}

			params.Stars = stars

			if !asJSON {
				fmt.Fprint(out, bmap)

				if stars.Mods != mods.NoMod {
					fmt.Fprintln(out, "+"+stars.Mods.String())
				}

				fmt.Fprintln(out, stars)
			}
		}

		res, err := pp.Calculate(params)
		if err != nil {
			return err
		}

		maxCombo := params.MaxCombo
		if params.Stars != nil {
			maxCombo = params.Stars.Map.MaxCombo()
		}

		combo := maxCombo - params.Miss
		if params.Combo != nil {
			combo = *params.Combo
		}

		if asJSON {
			return printJSON(out, newPPOutput(res, combo, maxCombo))
		}

		fmt.Fprintln(out, res.Accuracy)
		fmt.Fprintf(out, "%d/%dx\n", combo, maxCombo)
		fmt.Fprintln(out, res)

		printPPTable(out, res)

		return nil
	},
}

func init() {
	ppCmd.Flags().Float64("acc", 100, "Accuracy percent; overrides --n100 and --n50")
	ppCmd.Flags().Int("n300", 0, "Number of 300s (default: objects minus the other counts)")
	ppCmd.Flags().Int("n100", 0, "Number of 100s")
	ppCmd.Flags().Int("n50", 0, "Number of 50s")
	ppCmd.Flags().Int("miss", 0, "Number of misses")
	ppCmd.Flags().Int("combo", 0, "Max combo reached (default: max combo minus misses)")
	ppCmd.Flags().Int("score-version", 1, "Score version, 1 or 2")

	ppCmd.Flags().Float64("aim", 0, "Aim stars, when no map is given")
	ppCmd.Flags().Float64("speed", 0, "Speed stars, when no map is given")
	ppCmd.Flags().Int("max-combo", 0, "Map max combo, when no map is given")
	ppCmd.Flags().Int("circles", 0, "Circle count, when no map is given")
	ppCmd.Flags().Int("sliders", 0, "Slider count, when no map is given")
	ppCmd.Flags().Int("objects", 0, "Object count, when no map is given")
	ppCmd.Flags().Float64("ar", 5, "Base approach rate, when no map is given")
	ppCmd.Flags().Float64("od", 5, "Base overall difficulty, when no map is given")
}

// ppParamsFromFlags only sets the optional fields whose flags were given.
func ppParamsFromFlags(cmd *cobra.Command) (pp.Params, error) {
	flags := cmd.Flags()

	modString, _ := flags.GetString("mods")

	p := pp.Params{
		Mode: beatmap.Standard,
		Mods: mods.Parse(modString),
	}

	p.Good, _ = flags.GetInt("n100")
	p.Meh, _ = flags.GetInt("n50")
	p.Miss, _ = flags.GetInt("miss")
	p.ScoreVersion, _ = flags.GetInt("score-version")

	p.AimStars, _ = flags.GetFloat64("aim")
	p.SpeedStars, _ = flags.GetFloat64("speed")
	p.MaxCombo, _ = flags.GetInt("max-combo")
	p.Circles, _ = flags.GetInt("circles")
	p.Sliders, _ = flags.GetInt("sliders")
	p.Objects, _ = flags.GetInt("objects")

	if flags.Changed("n300") {
		n300, _ := flags.GetInt("n300")
		p.Great = accuracy.Int(n300)
	}

	if flags.Changed("combo") {
		combo, _ := flags.GetInt("combo")
		p.Combo = accuracy.Int(combo)
	}

	if flags.Changed("ar") {
		ar, _ := flags.GetFloat64("ar")
		p.BaseAR = accuracy.Float(ar)
	}

	if flags.Changed("od") {
		od, _ := flags.GetFloat64("od")
		p.BaseOD = accuracy.Float(od)
	}

	// counts take precedence over the default 100% accuracy
	if flags.Changed("acc") || !(flags.Changed("n300") || flags.Changed("n100") || flags.Changed("n50")) {
		acc, _ := flags.GetFloat64("acc")
		p.AccPercent = accuracy.Float(acc)
	}

	if p.AccPercent != nil && flags.Changed("n300") {
		return p, fmt.Errorf("--acc and --n300 are mutually exclusive")
	}

	log.Printf("pp params: mods=%s miss=%d score version=%d", p.Mods, p.Miss, p.ScoreVersion)

	return p, nil
}
