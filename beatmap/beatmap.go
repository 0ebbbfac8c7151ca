// Package beatmap is the partial beatmap model used for star and pp
// calculation. A Beatmap is read-only once built.
package beatmap

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"ppv2/mods"
)

type Mode int

const (
	Standard Mode = iota
	Taiko
	Catch
	Mania
)

func (m Mode) String() string {
	switch m {
	case Standard:
		return "osu"
	case Taiko:
		return "taiko"
	case Catch:
		return "fruits"
	case Mania:
		return "mania"
	}

	return "mode(" + strconv.Itoa(int(m)) + ")"
}

// TimingPoint only keeps what slider tick counting needs. An inherited
// point (Change == false) stores its slider velocity multiplier as
// MsPerBeat = -100 / multiplier.
type TimingPoint struct {
	Time      float64
	MsPerBeat float64
	Change    bool
}

var defaultTimingPoint = TimingPoint{MsPerBeat: 600, Change: true}

func (t TimingPoint) String() string {
	return fmt.Sprintf("{ time: %.2f, ms_per_beat: %.2f, change: %t }", t.Time, t.MsPerBeat, t.Change)
}

type Beatmap struct {
	FormatVersion int
	Mode          Mode

	Title, TitleUnicode   string
	Artist, ArtistUnicode string
	Creator, Version      string

	AR, OD, CS, HP float64

	SliderVelocity float64
	TickRate       float64

	Circles  int
	Sliders  int
	Spinners int

	Objects      []HitObject
	TimingPoints []TimingPoint

	// Warnings describes lines the decoder could not use.
	Warnings []string
}

// Stats returns the base difficulty settings.
func (b *Beatmap) Stats() mods.Stats {
	return mods.NewStats(b.AR, b.OD, b.HP, b.CS)
}

// MaxCombo is circles + spinners + slider heads, tails, repeats and ticks.
//
// Ticks are approximated from the playfield pixels per beat of the timing
// section a slider starts in: distance travelled over pixels per beat gives
// beats, and beats times the tick rate gives ticks.
func (b *Beatmap) MaxCombo() int {
	res := b.Circles + b.Spinners

	tindex := -1
	tnext := math.Inf(-1)
	pxPerBeat := 0.0

	for _, obj := range b.Objects {
		sl, ok := obj.(Slider)
		if !ok {
			continue
		}

		// walk timing points alongside the objects instead of searching for every slider
		for sl.Time >= tnext {
			tindex++

			if len(b.TimingPoints) > tindex+1 {
				tnext = b.TimingPoints[tindex+1].Time
			} else {
				tnext = math.Inf(1)
			}

			t := defaultTimingPoint
			if tindex < len(b.TimingPoints) {
				t = b.TimingPoints[tindex]
			}

			svMultiplier := 1.0
			if !t.Change && t.MsPerBeat < 0 {
				svMultiplier = -100.0 / t.MsPerBeat
			}

			// maps older than format v8 don't apply the multiplier to slider ticks
			if b.FormatVersion < 8 {
				pxPerBeat = b.SliderVelocity * 100.0
			} else {
				pxPerBeat = b.SliderVelocity * 100.0 * svMultiplier
			}
		}

		reps := max(1, sl.Repetitions)
		numBeats := sl.Distance * float64(reps) / pxPerBeat

		// the epsilon keeps values like 2.00000001 from ceiling to 3
		ticks := int(math.Ceil((numBeats - 0.1) / float64(reps) * b.TickRate))
		ticks--
		ticks *= reps
		ticks += reps + 1

		res += max(0, ticks)
	}

	return res
}

func (b *Beatmap) String() string {
	var sb strings.Builder

	sb.WriteString(b.Artist + " - " + b.Title + " [")

	if b.TitleUnicode != "" || b.ArtistUnicode != "" {
		sb.WriteString("(" + b.ArtistUnicode + " - " + b.TitleUnicode + ")")
	}

	sb.WriteString(b.Version + "] mapped by " + b.Creator + "\n\n")

	fmt.Fprintf(&sb, "AR%s OD%s CS%s HP%s\n", trimFloat(b.AR), trimFloat(b.OD), trimFloat(b.CS), trimFloat(b.HP))
	fmt.Fprintf(&sb, "%d circles, %d sliders, %d spinners\n", b.Circles, b.Sliders, b.Spinners)
	fmt.Fprintf(&sb, "%d max combo\n", b.MaxCombo())

	return sb.String()
}

// trimFloat rounds to two decimals and drops trailing zeros.
func trimFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
