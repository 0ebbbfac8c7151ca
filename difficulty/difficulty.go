// Package difficulty computes aim and speed star ratings from strain.
//
// Sliders are treated as circles at their head: slider paths are expensive
// to compute and not worth the small accuracy increase.
package difficulty

import (
	"fmt"
	"math"

	"ppv2/beatmap"
	"ppv2/calcerr"
	"ppv2/mods"
)

const (
	// StarScalingFactor is a global stars multiplier
	StarScalingFactor float64 = 0.0675

	// ExtremeScalingFactor weights the gap between aim and speed in the total.
	ExtremeScalingFactor float64 = 0.5

	// DefaultSingletapThreshold is 240 bpm 1/2 singletaps: (60000 / 240) / 2.
	DefaultSingletapThreshold float64 = 125.0
)

type Settings struct {
	CircleSize      float64
	SpeedMultiplier float64

	// SingletapThreshold is the interval in milliseconds counted in
	// Result.SingletapsOverThreshold.
	SingletapThreshold float64

	TouchDevice bool
}

type Result struct {
	// Map and Mods are set when the result comes from a Calculator.
	Map  *beatmap.Beatmap
	Mods mods.Mods

	Total float64
	Aim   float64
	Speed float64

	// AimRawTotal and SpeedRawTotal are the unweighted sums of
	// section peak^1.2, used for the length bonuses.
	AimRawTotal   float64
	SpeedRawTotal float64

	AimLengthBonus   float64
	SpeedLengthBonus float64

	// Singletaps counts notes the speed strain treats as singletapped.
	Singletaps int

	// SingletapsOverThreshold counts circles and sliders whose interval
	// from the previous object is at least the singletap threshold. Like
	// Singletaps it does not feed into the star rating.
	SingletapsOverThreshold int

	// Objects is overwritten by the next calculation of the Calculator
	// that produced it.
	Objects []Object
}

func (r *Result) String() string {
	return fmt.Sprintf("%.2f stars (%.2f aim, %.2f speed)", r.Total, r.Aim, r.Speed)
}

// Calculate computes star ratings for a sequence of hit objects ordered by
// start time.
func Calculate(objects []beatmap.HitObject, settings Settings) (*Result, error) {
	return calculate(nil, objects, settings)
}

func calculate(buffer []Object, objects []beatmap.HitObject, settings Settings) (*Result, error) {
	if len(objects) == 0 {
		return nil, calcerr.Invalid("no hit objects")
	}

	if !(settings.SpeedMultiplier > 0) {
		return nil, calcerr.Invalid("speed multiplier must be > 0, got %v", settings.SpeedMultiplier)
	}

	speedMul := settings.SpeedMultiplier

	diffObjects := initObjects(buffer, objects, settings.CircleSize)

	speed := calcSkill(Speed, diffObjects, speedMul)
	aim := calcSkill(Aim, diffObjects, speedMul)

	res := &Result{
		AimRawTotal:      aim.total,
		SpeedRawTotal:    speed.total,
		AimLengthBonus:   lengthBonus(aim.difficulty, aim.total),
		SpeedLengthBonus: lengthBonus(speed.difficulty, speed.total),
		Aim:              math.Sqrt(aim.difficulty) * StarScalingFactor,
		Speed:            math.Sqrt(speed.difficulty) * StarScalingFactor,
		Objects:          diffObjects,
	}

	if settings.TouchDevice {
		res.Aim = math.Pow(res.Aim, 0.8)
	}

	// heavily aim or speed focused maps get a bonus
	res.Total = res.Aim + res.Speed + math.Abs(res.Speed-res.Aim)*ExtremeScalingFactor

	for i := 1; i < len(diffObjects); i++ {
		obj := &diffObjects[i]
		prev := &diffObjects[i-1]

		if obj.IsSingle {
			res.Singletaps++
		}

		if !obj.isCircleOrSlider() {
			continue
		}

		interval := (obj.BaseObject.StartTime() - prev.BaseObject.StartTime()) / speedMul
		if interval >= settings.SingletapThreshold {
			res.SingletapsOverThreshold++
		}
	}

	return res, nil
}

// modeCalculators holds the star rating implementation of every supported mode.
var modeCalculators = map[beatmap.Mode]func(c *Calculator) (*Result, error){
	beatmap.Standard: (*Calculator).calcStandard,
}

// Calculator computes star ratings and keeps its per-object buffer between
// calls. Map, Mods and SingletapThreshold hold the values of the last call
// and are used again when a call leaves them out. A Calculator is not safe
// for concurrent use.
type Calculator struct {
	Map                *beatmap.Beatmap
	Mods               mods.Mods
	SingletapThreshold float64

	objects []Object
}

type Option func(c *Calculator)

func WithMap(m *beatmap.Beatmap) Option {
	return func(c *Calculator) {
		c.Map = m
	}
}

func WithMods(m mods.Mods) Option {
	return func(c *Calculator) {
		c.Mods = m
	}
}

func WithSingletapThreshold(ms float64) Option {
	return func(c *Calculator) {
		c.SingletapThreshold = ms
	}
}

func NewCalculator() *Calculator {
	return &Calculator{
		SingletapThreshold: DefaultSingletapThreshold,
	}
}

// Calc calculates the star rating of c.Map after applying opts.
func (c *Calculator) Calc(opts ...Option) (*Result, error) {
	for _, opt := range opts {
		opt(c)
	}

	if c.Map == nil {
		return nil, calcerr.Invalid("no map given")
	}

	calc, ok := modeCalculators[c.Map.Mode]
	if !ok {
		return nil, fmt.Errorf("%w: %s", calcerr.ErrUnsupportedMode, c.Map.Mode)
	}

	return calc(c)
}

func (c *Calculator) calcStandard() (*Result, error) {
	stats := mods.Adjust(mods.Stats{CS: c.Map.CS, Present: mods.StatCS}, c.Mods)

	res, err := calculate(c.objects, c.Map.Objects, Settings{
		CircleSize:         stats.CS,
		SpeedMultiplier:    stats.SpeedMultiplier,
		SingletapThreshold: c.SingletapThreshold,
		TouchDevice:        c.Mods.Any(mods.TouchDevice),
	})
	if err != nil {
		return nil, err
	}

	c.objects = res.Objects

	res.Map = c.Map
	res.Mods = c.Mods

	return res, nil
}
