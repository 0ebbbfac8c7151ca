package beatmap

import "fmt"

type Kind uint8

const (
	KindCircle Kind = iota
	KindSlider
	KindSpinner
)

func (k Kind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindSlider:
		return "slider"
	case KindSpinner:
		return "spinner"
	}

	return fmt.Sprintf("kind(%d)", uint8(k))
}

// HitObject is one of Circle, Slider or Spinner.
type HitObject interface {
	Kind() Kind
	// StartTime is in milliseconds.
	StartTime() float64

	hitObject()
}

// Circle positions are playfield coordinates.
type Circle struct {
	Time float64
	Pos  Vec
}

func (Circle) Kind() Kind           { return KindCircle }
func (c Circle) StartTime() float64 { return c.Time }
func (Circle) hitObject()           {}

func (c Circle) String() string {
	return fmt.Sprintf("{ time: %.2f, type: circle, pos: [%.2f, %.2f] }", c.Time, c.Pos.X, c.Pos.Y)
}

// Slider stores the distance travelled in one repetition and the number of
// repetitions, enough to count ticks from timing information. One repetition
// means no repeats.
type Slider struct {
	Time        float64
	Pos         Vec
	Distance    float64
	Repetitions int
}

func (Slider) Kind() Kind           { return KindSlider }
func (s Slider) StartTime() float64 { return s.Time }
func (Slider) hitObject()           {}

func (s Slider) String() string {
	return fmt.Sprintf(
		"{ time: %.2f, type: slider, pos: [%.2f, %.2f], distance: %.2f, repetitions: %d }",
		s.Time, s.Pos.X, s.Pos.Y, s.Distance, s.Repetitions,
	)
}

type Spinner struct {
	Time float64
}

func (Spinner) Kind() Kind           { return KindSpinner }
func (s Spinner) StartTime() float64 { return s.Time }
func (Spinner) hitObject()           {}

func (s Spinner) String() string {
	return fmt.Sprintf("{ time: %.2f, type: spinner }", s.Time)
}
