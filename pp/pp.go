// Package pp computes osu!standard performance points (ppv2).
package pp

import (
	"fmt"
	"math"

	"ppv2/accuracy"
	"ppv2/beatmap"
	"ppv2/calcerr"
	"ppv2/difficulty"
	"ppv2/mods"
)

const (
	PerformanceBaseMultiplier float64 = 1.12

	defaultBaseAR = 5.0
	defaultBaseOD = 5.0
)

// Params describes a play.
//
// If Stars is set, the map, mods and star ratings come from it. Otherwise, if
// Map is set, the object counts, max combo and base AR/OD come from the map
// and the stars are calculated on the fly with Mods. Without either, the
// manual fields are used.
type Params struct {
	Stars *difficulty.Result
	Map   *beatmap.Beatmap

	// Mode is only read when there is no map.
	Mode beatmap.Mode
	Mods mods.Mods

	AimStars   float64
	SpeedStars float64
	MaxCombo   int
	Sliders    int
	Circles    int
	Objects    int
	// BaseAR and BaseOD default to 5.
	BaseAR *float64
	BaseOD *float64

	// Combo defaults to MaxCombo - Miss.
	Combo *int
	// Great defaults to Objects - Good - Meh - Miss.
	Great *int
	Good  int
	Meh   int
	Miss  int

	// AccPercent, when set, replaces Good and Meh with the closest counts
	// that reach it.
	AccPercent *float64

	// ScoreVersion is 1 or 2; 0 means 1.
	ScoreVersion int
}

type Result struct {
	Aim   float64
	Speed float64
	Acc   float64
	Total float64

	// Accuracy holds the hit counts the values were computed with.
	Accuracy accuracy.Breakdown
}

func (r *Result) String() string {
	return fmt.Sprintf("%.2f pp (%.2f aim, %.2f speed, %.2f acc)", r.Total, r.Aim, r.Speed, r.Acc)
}

type Calculator interface {
	Calculate(p Params) (*Result, error)
}

// modeCalculators holds the pp implementation of every supported mode.
var modeCalculators = map[beatmap.Mode]func() Calculator{
	beatmap.Standard: func() Calculator { return NewPPCalculator() },
}

// Calculate picks the calculator for the play's mode.
func Calculate(p Params) (*Result, error) {
	mode := p.Mode

	switch {
	case p.Stars != nil && p.Stars.Map != nil:
		mode = p.Stars.Map.Mode
	case p.Map != nil:
		mode = p.Map.Mode
	}

	newCalculator, ok := modeCalculators[mode]
	if !ok {
		return nil, fmt.Errorf("%w: %s", calcerr.ErrUnsupportedMode, mode)
	}

	return newCalculator().Calculate(p)
}

// PPv2 is the osu!standard calculator. It keeps a stats cache between calls
// and is not safe for concurrent use.
type PPv2 struct {
	modifier *mods.Modifier

	mods  mods.Mods
	stats mods.Stats

	aimStars   float64
	speedStars float64

	maxCombo     int
	combo        int
	countSliders int
	countCircles int
	totalHits    int
	scoreVersion int

	hits     accuracy.Breakdown
	accuracy float64
}

func NewPPCalculator() *PPv2 {
	return &PPv2{}
}

func (pp *PPv2) Calculate(p Params) (*Result, error) {
	if err := pp.load(p); err != nil {
		return nil, err
	}

	// common values used in all pp calculations
	lengthBonus := 0.95 + 0.4*min(1.0, float64(pp.totalHits)/2000.0)
	if pp.totalHits > 2000 {
		lengthBonus += math.Log10(float64(pp.totalHits)/2000.0) * 0.5
	}

	missPenalty := math.Pow(0.97, float64(pp.hits.Miss))
	comboBreak := math.Pow(float64(pp.combo), 0.8) / math.Pow(float64(pp.maxCombo), 0.8)

	accValue, err := pp.computeAccuracyValue()
	if err != nil {
		return nil, err
	}

	res := &Result{
		Aim:      pp.computeAimValue(lengthBonus, missPenalty, comboBreak),
		Speed:    pp.computeSpeedValue(lengthBonus, missPenalty, comboBreak),
		Acc:      accValue,
		Accuracy: pp.hits,
	}

	multiplier := PerformanceBaseMultiplier

	if pp.mods.Any(mods.NoFail) {
		multiplier *= 0.9
	}

	if pp.mods.Any(mods.SpunOut) {
		multiplier *= 0.95
	}

	res.Total = math.Pow(
		math.Pow(res.Aim, 1.1)+
			math.Pow(res.Speed, 1.1)+
			math.Pow(res.Acc, 1.1),
		1.0/1.1,
	) * multiplier

	return res, nil
}

// load resolves Params into the calculator's fields.
func (pp *PPv2) load(p Params) error {
	stars := p.Stars
	bmap := p.Map

	if stars != nil && stars.Map != nil {
		bmap = stars.Map
	}

	baseAR, baseOD := defaultBaseAR, defaultBaseOD

	if bmap != nil {
		pp.maxCombo = bmap.MaxCombo()
		pp.countSliders = bmap.Sliders
		pp.countCircles = bmap.Circles
		pp.totalHits = len(bmap.Objects)
		baseAR = bmap.AR
		baseOD = bmap.OD

		if stars == nil {
			var err error

			stars, err = difficulty.NewCalculator().Calc(difficulty.WithMap(bmap), difficulty.WithMods(p.Mods))
			if err != nil {
				return err
			}
		}
	} else {
		pp.maxCombo = p.MaxCombo
		pp.countSliders = p.Sliders
		pp.countCircles = p.Circles
		pp.totalHits = p.Objects

		if p.BaseAR != nil {
			baseAR = *p.BaseAR
		}

		if p.BaseOD != nil {
			baseOD = *p.BaseOD
		}

		if pp.countSliders < 0 || pp.countCircles < 0 {
			return calcerr.Invalid("slider and circle counts must not be negative")
		}

		if pp.totalHits < pp.countSliders+pp.countCircles {
			return calcerr.Invalid("object count (%d) must be >= sliders + circles (%d)", pp.totalHits, pp.countSliders+pp.countCircles)
		}
	}

	if pp.maxCombo <= 0 {
		return calcerr.Invalid("max combo must be > 0, got %d", pp.maxCombo)
	}

	if pp.totalHits <= 0 {
		return calcerr.Invalid("object count must be > 0")
	}

	if stars != nil && stars.Map != nil {
		pp.mods = stars.Mods
	} else {
		pp.mods = p.Mods
	}

	if stars != nil {
		pp.aimStars = stars.Aim
		pp.speedStars = stars.Speed
	} else {
		pp.aimStars = p.AimStars
		pp.speedStars = p.SpeedStars
	}

	if math.IsNaN(pp.aimStars) || math.IsNaN(pp.speedStars) {
		return calcerr.Invalid("aim and speed stars must be numbers")
	}

	pp.combo = pp.maxCombo - p.Miss
	if p.Combo != nil {
		pp.combo = *p.Combo
	}

	if pp.combo < 0 {
		return calcerr.Invalid("combo must not be negative, got %d", pp.combo)
	}

	pp.scoreVersion = p.ScoreVersion
	if pp.scoreVersion == 0 {
		pp.scoreVersion = 1
	}

	base := mods.Stats{AR: baseAR, OD: baseOD, Present: mods.StatAR | mods.StatOD, SpeedMultiplier: 1}
	if pp.modifier == nil || pp.modifier.Base() != base {
		pp.modifier = mods.NewModifier(base)
	}

	pp.stats = pp.modifier.WithMods(pp.mods)

	hits, err := accuracy.Resolve(accuracy.Params{
		Percent: p.AccPercent,
		Objects: pp.totalHits,
		Great:   p.Great,
		Good:    p.Good,
		Meh:     p.Meh,
		Miss:    p.Miss,
	})
	if err != nil {
		return err
	}

	pp.hits = hits
	pp.accuracy = hits.Accuracy()

	return nil
}

// base pp value for stars
func base(stars float64) float64 {
	return math.Pow(5.0*max(1.0, stars/0.0675)-4.0, 3.0) / 100000.0
}

func (pp *PPv2) approachRateBonus() float64 {
	ar := pp.stats.AR

	if ar > 10.33 {
		return 1.0 + 0.3*(ar-10.33)
	} else if ar < 8.0 {
		return 1.0 + 0.01*(8.0-ar)
	}

	return 1.0
}

func (pp *PPv2) hiddenBonus() float64 {
	if pp.mods.Any(mods.Hidden) {
		return 1.0 + 0.04*(12.0-pp.stats.AR)
	}

	return 1.0
}

func (pp *PPv2) computeAimValue(lengthBonus, missPenalty, comboBreak float64) float64 {
	aimValue := base(pp.aimStars)

	aimValue *= lengthBonus
	aimValue *= missPenalty
	aimValue *= comboBreak
	aimValue *= pp.approachRateBonus()
	aimValue *= pp.hiddenBonus()

	if pp.mods.Any(mods.Flashlight) {
		n := float64(pp.totalHits)

		flBonus := 1.0 + 0.35*min(1.0, n/200.0)
		if pp.totalHits > 200 {
			flBonus += 0.3 * min(1.0, (n-200)/300.0)
		}

		if pp.totalHits > 500 {
			flBonus += (n - 500) / 1200.0
		}

		aimValue *= flBonus
	}

	aimValue *= 0.5 + pp.accuracy/2.0
	aimValue *= 0.98 + math.Pow(pp.stats.OD, 2)/2500.0

	return aimValue
}

func (pp *PPv2) computeSpeedValue(lengthBonus, missPenalty, comboBreak float64) float64 {
	speedValue := base(pp.speedStars)

	speedValue *= lengthBonus
	speedValue *= missPenalty
	speedValue *= comboBreak

	if pp.stats.AR > 10.33 {
		speedValue *= pp.approachRateBonus()
	}

	speedValue *= pp.hiddenBonus()

	// similar to aim acc and od bonus
	speedValue *= 0.02 + pp.accuracy
	speedValue *= 0.96 + math.Pow(pp.stats.OD, 2)/1600.0

	return speedValue
}

func (pp *PPv2) computeAccuracyValue() (float64, error) {
	realAcc := pp.accuracy
	circles := pp.countCircles

	switch pp.scoreVersion {
	case 1:
		// scorev1 ignores sliders and spinners since they are free 300s
		spinners := pp.totalHits - pp.countSliders - pp.countCircles

		realAcc = max(0.0, accuracy.Breakdown{
			Great: max(0, pp.hits.Great-pp.countSliders-spinners),
			Good:  pp.hits.Good,
			Meh:   pp.hits.Meh,
			Miss:  pp.hits.Miss,
		}.Accuracy())
	case 2:
		circles = pp.totalHits
	default:
		return 0, fmt.Errorf("%w: scorev%d", calcerr.ErrUnsupportedScoreVersion, pp.scoreVersion)
	}

	accValue := math.Pow(1.52163, pp.stats.OD) * math.Pow(realAcc, 24.0) * 2.83

	// bonus for many hitcircles, it's harder to keep good accuracy up for longer
	accValue *= min(1.15, math.Pow(float64(circles)/1000.0, 0.3))

	if pp.mods.Any(mods.Hidden) {
		accValue *= 1.08
	}

	if pp.mods.Any(mods.Flashlight) {
		accValue *= 1.02
	}

	return accValue, nil
}
