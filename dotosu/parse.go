package dotosu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"ppv2/mutils"
)

const (
	headerPrefix = "osu file format v"
	maxLine      = 1024 * 1024
)

var errNaN = errors.New("not a number")

type setter func(string) error

func stringField(dst *string) setter {
	return func(v string) error {
		*dst = v
		return nil
	}
}

func intField(dst *int) setter {
	return func(v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	}
}

func floatField(dst *float64) setter {
	return func(v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		if math.IsNaN(f) {
			return errNaN
		}
		*dst = f
		return nil
	}
}

// decoder accumulates a Beatmap one line at a time.
type decoder struct {
	b       *Beatmap
	line    int
	section string
	seenAR  bool
	fields  map[string]map[string]setter
}

func newDecoder(version int) *decoder {
	b := &Beatmap{FormatVersion: version, Difficulty: defaultDifficulty}
	d := &decoder{b: b}

	ar := floatField(&b.Difficulty.ApproachRate)
	approachRate := func(v string) error {
		if err := ar(v); err != nil {
			return err
		}
		d.seenAR = true
		return nil
	}

	d.fields = map[string]map[string]setter{
		"General": {
			"Mode": intField(&b.General.Mode),
		},
		"Metadata": {
			"Title":         stringField(&b.Metadata.Title),
			"TitleUnicode":  stringField(&b.Metadata.TitleUnicode),
			"Artist":        stringField(&b.Metadata.Artist),
			"ArtistUnicode": stringField(&b.Metadata.ArtistUnicode),
			"Creator":       stringField(&b.Metadata.Creator),
			"Version":       stringField(&b.Metadata.Version),
			"BeatmapID":     intField(&b.Metadata.BeatmapID),
			"BeatmapSetID":  intField(&b.Metadata.BeatmapSetID),
		},
		"Difficulty": {
			"HPDrainRate":       floatField(&b.Difficulty.HPDrainRate),
			"CircleSize":        floatField(&b.Difficulty.CircleSize),
			"OverallDifficulty": floatField(&b.Difficulty.OverallDifficulty),
			"ApproachRate":      approachRate,
			"SliderMultiplier":  floatField(&b.Difficulty.SliderMultiplier),
			"SliderTickRate":    floatField(&b.Difficulty.SliderTickRate),
		},
	}

	return d
}

func (d *decoder) skip(text, reason string) {
	d.b.Skipped = append(d.b.Skipped, SkipNote{Line: d.line, Text: text, Reason: reason})
}

func (d *decoder) feed(raw string) {
	d.line++

	// lines starting with a space or underscore are comments
	if strings.HasPrefix(raw, " ") || strings.HasPrefix(raw, "_") {
		return
	}

	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "//") {
		return
	}

	if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
		d.section = line[1 : len(line)-1]
		return
	}

	if fields, ok := d.fields[d.section]; ok {
		key, value, _ := strings.Cut(line, ":")
		if set, ok := fields[strings.TrimSpace(key)]; ok {
			// a bad value keeps whatever was there before
			_ = set(strings.TrimSpace(value))
		}
		return
	}

	switch d.section {
	case "TimingPoints":
		d.timingPoint(line)
	case "HitObjects":
		d.hitObject(line)
	}
}

func (d *decoder) timingPoint(line string) {
	parts := splitCSV(line)
	if len(parts) < 2 {
		d.skip(line, "ignoring malformed timing point")
		return
	}

	t, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		d.skip(line, "ignoring malformed timing point")
		return
	}
	msPerBeat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		d.skip(line, "ignoring malformed timing point")
		return
	}

	d.b.TimingPoints = append(d.b.TimingPoints, TimingPoint{
		Time:         t,
		BeatLength:   msPerBeat,
		TimingChange: len(parts) < 7 || parts[6] != "0",
	})
}

func (d *decoder) hitObject(line string) {
	parts := splitCSV(line)
	if len(parts) < 4 {
		d.skip(line, "ignoring malformed hitobject")
		return
	}

	t, errT := strconv.ParseFloat(parts[2], 64)
	typ, errType := strconv.Atoi(parts[3])
	if errT != nil || errType != nil {
		d.skip(line, "ignoring malformed hitobject")
		return
	}

	// position is optional for spinners, which always sit in the middle
	x, errX := strconv.ParseFloat(parts[0], 64)
	y, errY := strconv.ParseFloat(parts[1], 64)
	pos := Vec2{X: x, Y: y}

	switch {
	case typ&typeCircle != 0:
		if errX != nil || errY != nil {
			d.skip(line, "ignoring malformed hitobject")
			return
		}
		d.b.HitObjects = append(d.b.HitObjects, Circle{Position: pos, Time: t})

	case typ&typeSpinner != 0:
		d.b.HitObjects = append(d.b.HitObjects, Spinner{Position: pos, Time: t})

	case typ&typeSlider != 0:
		s, ok := parseSlider(parts)
		if !ok || errX != nil || errY != nil {
			d.skip(line, "ignoring malformed slider")
			return
		}
		s.Position, s.Time = pos, t
		d.b.HitObjects = append(d.b.HitObjects, s)

	default:
		d.skip(line, "ignoring hitobject of unknown type")
	}
}

// parseSlider reads the repeat count and pixel length of a slider line.
func parseSlider(parts []string) (Slider, bool) {
	if len(parts) < 8 {
		return Slider{}, false
	}

	slides, err := strconv.Atoi(parts[6])
	if err != nil {
		return Slider{}, false
	}

	var length float64
	if floatField(&length)(parts[7]) != nil {
		return Slider{}, false
	}

	return Slider{Slides: max(slides, 1), Length: length}, true
}

// finish fills in values old formats leave out and clamps the rest.
func (d *decoder) finish() *Beatmap {
	diff := &d.b.Difficulty

	// on old maps there's no ar and ar = od
	if !d.seenAR {
		diff.ApproachRate = diff.OverallDifficulty
	}

	diff.HPDrainRate = mutils.Clamp(diff.HPDrainRate, 0, 10)
	diff.CircleSize = mutils.Clamp(diff.CircleSize, 0, 10)
	diff.OverallDifficulty = mutils.Clamp(diff.OverallDifficulty, 0, 10)
	diff.ApproachRate = mutils.Clamp(diff.ApproachRate, 0, 10)
	diff.SliderMultiplier = mutils.Clamp(diff.SliderMultiplier, 0.4, 3.6)
	diff.SliderTickRate = mutils.Clamp(diff.SliderTickRate, 0.5, 8)

	return d.b
}

func parseHeader(line string) (int, error) {
	line = strings.TrimSpace(strings.TrimPrefix(line, "\ufeff"))

	rest, ok := strings.CutPrefix(line, headerPrefix)
	if !ok {
		return 0, fmt.Errorf("invalid .osu header: %q", line)
	}

	version, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return 0, fmt.Errorf("invalid .osu version in %q: %w", line, err)
	}

	return version, nil
}

func splitCSV(line string) []string {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func DecodeFile(path string) (*Beatmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a .osu file. Malformed timing points and hit objects are
// recorded in Beatmap.Skipped instead of failing the whole file.
func Decode(r io.Reader) (*Beatmap, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var header string
	headerLine := 0
	for sc.Scan() {
		headerLine++
		if header = strings.TrimSpace(sc.Text()); header != "" && header != "\ufeff" {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	version, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	d := newDecoder(version)
	d.line = headerLine

	for sc.Scan() {
		d.feed(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", d.line, err)
	}

	return d.finish(), nil
}
