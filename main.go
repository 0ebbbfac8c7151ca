package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ppv2",
	Short: "osu!standard star rating and pp calculator",
	Long:  "ppv2 computes osu!standard difficulty (stars) and performance points for .osu beatmaps.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); !verbose {
			log.SetOutput(io.Discard)
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log progress and timings to stderr")
	rootCmd.PersistentFlags().String("mods", "", "Mods, e.g. HDDT or +hd,hr")
	rootCmd.PersistentFlags().Bool("json", false, "Print results as JSON")

	rootCmd.AddCommand(starsCmd)
	rootCmd.AddCommand(ppCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(modsCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
