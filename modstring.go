package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ppv2/mods"
)

var modsCmd = &cobra.Command{
	Use:   "mods <string>...",
	Short: "Normalise a mod string and print its bitmask",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m := mods.Parse(strings.Join(args, ""))
		speed := mods.SpeedMultiplier(m)

		out := cmd.OutOrStdout()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return printJSON(out, map[string]any{
				"mods":  m.String(),
				"mask":  uint32(m),
				"speed": speed,
			})
		}

		fmt.Fprintf(out, "+%s (%d), %.2fx speed\n", m, uint32(m), speed)

		return nil
	},
}
