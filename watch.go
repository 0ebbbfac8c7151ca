package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"ppv2/mods"
)

var watchCmd = &cobra.Command{
	Use:   "watch <map.osu|dir>...",
	Short: "Recalculate stars and SS pp every time a map is saved",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modString, _ := cmd.Flags().GetString("mods")

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()

		for _, arg := range args {
			if err := watcher.Add(arg); err != nil {
				return fmt.Errorf("watch %s: %w", arg, err)
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		calcs, release := newCalcPool(1).GetToken()
		defer release()

		watchMaps(ctx, watcher.Events, watcher.Errors, calcs, mods.Parse(modString), cmd.OutOrStdout())

		return nil
	},
}

// watchMaps prints a summary for every written .osu file until ctx is done
// or events is closed.
func watchMaps(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, calcs *calculators, m mods.Mods, out io.Writer) {
	for {
		select {
		case <-ctx.Done():
			return

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.Println("watch:", err)

		case ev, ok := <-events:
			if !ok {
				return
			}

			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), ".osu") {
				continue
			}

			r := batchResult{path: ev.Name}
			if err := calcOne(&r, calcs, m); err != nil {
				fmt.Fprintf(out, "%s: %v\n", filepath.Base(ev.Name), err)
				continue
			}

			fmt.Fprintf(out, "%s: %s, %s\n", filepath.Base(ev.Name), r.stars, r.pp)
		}
	}
}
