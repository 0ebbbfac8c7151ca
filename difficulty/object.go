package difficulty

import (
	"fmt"
	"math"

	"ppv2/beatmap"
)

// Skill indexes the strain kinds.
type Skill int

const (
	Speed Skill = iota
	Aim
)

func (s Skill) String() string {
	if s == Aim {
		return "aim"
	}

	return "speed"
}

// Object is a hit object together with the values derived from it during a
// calculation. It is rebuilt on every calculation.
type Object struct {
	BaseObject beatmap.HitObject

	Strains [2]float64

	// NormPos is the position scaled as if every map used the same circle size.
	NormPos beatmap.Vec

	// Angle at the previous object between the two jumps, in radians,
	// unsigned. NaN for the first two objects.
	Angle float64

	IsSingle bool

	// DeltaTime is the time since the previous object divided by the clock rate.
	DeltaTime float64

	// Distance is the normalized jump distance from the previous object.
	Distance float64
}

func (o *Object) reset(base beatmap.HitObject) {
	*o = Object{
		BaseObject: base,
		Angle:      math.NaN(),
	}
}

func (o *Object) isCircleOrSlider() bool {
	switch o.BaseObject.(type) {
	case beatmap.Circle, beatmap.Slider:
		return true
	}

	return false
}

func (o Object) String() string {
	return fmt.Sprintf(
		"{ strains: [%.2f, %.2f], normpos: [%.2f, %.2f], is_single: %t }",
		o.Strains[Speed], o.Strains[Aim], o.NormPos.X, o.NormPos.Y, o.IsSingle,
	)
}
