package dotosu

import "fmt"

// Beatmap holds the parts of a .osu file that star and pp calculation read.
type Beatmap struct {
	FormatVersion int
	General       General
	Metadata      Metadata
	Difficulty    Difficulty

	TimingPoints []TimingPoint
	HitObjects   []HitObject

	// Skipped lists malformed lines that were ignored.
	Skipped []SkipNote
}

type General struct {
	Mode int
}

type Metadata struct {
	Title, TitleUnicode   string
	Artist, ArtistUnicode string
	Creator, Version      string
	BeatmapID             int
	BeatmapSetID          int
}

type Difficulty struct {
	HPDrainRate       float64
	CircleSize        float64
	OverallDifficulty float64
	ApproachRate      float64
	SliderMultiplier  float64
	SliderTickRate    float64
}

var defaultDifficulty = Difficulty{
	HPDrainRate:       5,
	CircleSize:        5,
	OverallDifficulty: 5,
	SliderMultiplier:  1,
	SliderTickRate:    1,
}

type TimingPoint struct {
	Time       float64
	BeatLength float64
	// TimingChange is false for inherited (green) points, whose negative
	// BeatLength encodes a slider velocity multiplier as -100/multiplier.
	TimingChange bool
}

type SkipNote struct {
	Line   int
	Text   string
	Reason string
}

func (n SkipNote) String() string {
	return fmt.Sprintf("line %d: %s\n-> %s <-", n.Line, n.Reason, n.Text)
}

type ObjectKind uint8

const (
	KindCircle ObjectKind = iota
	KindSlider
	KindSpinner
)

// type bits of a hit object line
const (
	typeCircle  = 1 << 0
	typeSlider  = 1 << 1
	typeSpinner = 1 << 3
)

type Vec2 struct{ X, Y float64 }

type HitObject interface {
	Kind() ObjectKind
	StartTime() float64
	Pos() Vec2
}

type Circle struct {
	Position Vec2
	Time     float64
}

func (Circle) Kind() ObjectKind     { return KindCircle }
func (c Circle) StartTime() float64 { return c.Time }
func (c Circle) Pos() Vec2          { return c.Position }

type Slider struct {
	Position Vec2
	Time     float64
	// Slides counts passes along the path; 1 means no repeats.
	Slides int
	// Length is the distance travelled in one slide, in osu!pixels.
	Length float64
}

func (Slider) Kind() ObjectKind     { return KindSlider }
func (s Slider) StartTime() float64 { return s.Time }
func (s Slider) Pos() Vec2          { return s.Position }

type Spinner struct {
	Position Vec2
	Time     float64
}

func (Spinner) Kind() ObjectKind     { return KindSpinner }
func (s Spinner) StartTime() float64 { return s.Time }
func (s Spinner) Pos() Vec2          { return s.Position }
