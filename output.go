package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"ppv2/difficulty"
	"ppv2/pp"
)

type starsOutput struct {
	Path       string  `json:"path"`
	Mods       string  `json:"mods"`
	Total      float64 `json:"stars"`
	Aim        float64 `json:"aim"`
	Speed      float64 `json:"speed"`
	Singletaps int     `json:"singletaps"`
	OverThresh int     `json:"singletaps_over_threshold"`
	MaxCombo   int     `json:"max_combo,omitempty"`
}

func newStarsOutput(path string, res *difficulty.Result) starsOutput {
	out := starsOutput{
		Path:       path,
		Mods:       res.Mods.String(),
		Total:      res.Total,
		Aim:        res.Aim,
		Speed:      res.Speed,
		Singletaps: res.Singletaps,
		OverThresh: res.SingletapsOverThreshold,
	}

	if res.Map != nil {
		out.MaxCombo = res.Map.MaxCombo()
	}

	return out
}

type ppOutput struct {
	Total    float64 `json:"pp"`
	Aim      float64 `json:"aim"`
	Speed    float64 `json:"speed"`
	Acc      float64 `json:"acc"`
	Accuracy float64 `json:"accuracy"`
	Great    int     `json:"n300"`
	Good     int     `json:"n100"`
	Meh      int     `json:"n50"`
	Miss     int     `json:"miss"`
	Combo    int     `json:"combo"`
	MaxCombo int     `json:"max_combo"`
}

func newPPOutput(res *pp.Result, combo, maxCombo int) ppOutput {
	return ppOutput{
		Total:    res.Total,
		Aim:      res.Aim,
		Speed:    res.Speed,
		Acc:      res.Acc,
		Accuracy: res.Accuracy.Accuracy() * 100,
		Great:    res.Accuracy.Great,
		Good:     res.Accuracy.Good,
		Meh:      res.Accuracy.Meh,
		Miss:     res.Accuracy.Miss,
		Combo:    combo,
		MaxCombo: maxCombo,
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))

	return err
}

func printPPTable(w io.Writer, res *pp.Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Aim", "Speed", "Acc", "Total"})
	table.Append([]string{
		fmt.Sprintf("%.2f", res.Aim),
		fmt.Sprintf("%.2f", res.Speed),
		fmt.Sprintf("%.2f", res.Acc),
		fmt.Sprintf("%.2f", res.Total),
	})
	table.Render()
}

func printBatchTable(w io.Writer, results []batchResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Map", "Mods", "Objects", "Max combo", "Stars", "Aim", "Speed", "SS pp"})

	for _, r := range results {
		if r.err != nil {
			continue
		}

		table.Append([]string{
			r.name,
			r.stars.Mods.String(),
			humanize.Comma(int64(len(r.stars.Map.Objects))),
			humanize.Comma(int64(r.maxCombo)) + "x",
			fmt.Sprintf("%.2f", r.stars.Total),
			fmt.Sprintf("%.2f", r.stars.Aim),
			fmt.Sprintf("%.2f", r.stars.Speed),
			fmt.Sprintf("%.2f", r.pp.Total),
		})
	}

	table.Render()
}
