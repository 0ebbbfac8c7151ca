package difficulty

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppv2/beatmap"
	"ppv2/calcerr"
	"ppv2/mods"
)

const epsilon = 1e-9

func twoCircles() []beatmap.HitObject {
	return []beatmap.HitObject{
		beatmap.Circle{Time: 1000, Pos: beatmap.Vec{X: 0, Y: 0}},
		beatmap.Circle{Time: 1300, Pos: beatmap.Vec{X: 100, Y: 0}},
	}
}

func TestCalculateTwoCircles(t *testing.T) {
	res, err := Calculate(twoCircles(), Settings{CircleSize: 5, SpeedMultiplier: 1, SingletapThreshold: DefaultSingletapThreshold})
	require.NoError(t, err)

	// 100px at CS5 normalizes to 162.5, so the speed strain is 1400 * 1.95 / 300
	assert.InEpsilon(t, math.Sqrt(9.1)*StarScalingFactor, res.Speed, epsilon)
	assert.InEpsilon(t, 0.20362189224147784, res.Speed, epsilon)
	assert.InEpsilon(t, 0.24813053684802924, res.Aim, epsilon)
	assert.InEpsilon(t, 0.4740067513927828, res.Total, epsilon)
	assert.InEpsilon(t, 22.745917604992847, res.AimRawTotal, epsilon)
	assert.InEpsilon(t, 14.153037936822907, res.SpeedRawTotal, epsilon)
	assert.Equal(t, 1, res.Singletaps)
	assert.Equal(t, 1, res.SingletapsOverThreshold)

	require.Len(t, res.Objects, 2)
	assert.True(t, math.IsNaN(res.Objects[1].Angle))
	assert.InEpsilon(t, 162.5, res.Objects[1].Distance, epsilon)
	assert.InEpsilon(t, 300.0, res.Objects[1].DeltaTime, epsilon)
	assert.Equal(t, "{ strains: [9.10, 13.51], normpos: [162.50, 0.00], is_single: true }", res.Objects[1].String())
	assert.Equal(t, "0.47 stars (0.25 aim, 0.20 speed)", res.String())
}

func TestCalculateSingleObject(t *testing.T) {
	res, err := Calculate(twoCircles()[:1], Settings{CircleSize: 5, SpeedMultiplier: 1})
	require.NoError(t, err)

	assert.Zero(t, res.Total)
	assert.Zero(t, res.Aim)
	assert.Zero(t, res.Speed)
	assert.Zero(t, res.AimLengthBonus)
	assert.Zero(t, res.Singletaps)
}

func TestCalculateInvalid(t *testing.T) {
	_, err := Calculate(nil, Settings{CircleSize: 5, SpeedMultiplier: 1})
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)

	_, err = Calculate(twoCircles(), Settings{CircleSize: 5})
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)

	_, err = Calculate(twoCircles(), Settings{CircleSize: 5, SpeedMultiplier: math.NaN()})
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)
}

func TestCalculateSpinnerHasNoStrain(t *testing.T) {
	objects := []beatmap.HitObject{
		beatmap.Circle{Time: 0, Pos: beatmap.Vec{X: 0, Y: 0}},
		beatmap.Spinner{Time: 200},
	}

	res, err := Calculate(objects, Settings{CircleSize: 5, SpeedMultiplier: 1, SingletapThreshold: DefaultSingletapThreshold})
	require.NoError(t, err)

	assert.Zero(t, res.Objects[1].Strains[Speed])
	assert.Zero(t, res.Objects[1].Strains[Aim])
	assert.Equal(t, normalizerVector(5).Mul(beatmap.CenterPos), res.Objects[1].NormPos)
	assert.Zero(t, res.SingletapsOverThreshold)
}

func TestCalculatorSample(t *testing.T) {
	bmap, err := beatmap.DecodeFile("../beatmap/testdata/sample.osu")
	require.NoError(t, err)

	tests := []struct {
		name              string
		mods              mods.Mods
		total, aim, speed float64
		singletaps        int
		overThreshold     int
	}{
		{"nomod", mods.NoMod, 5.879477930903254, 3.169537896404368, 2.250342172593403, 108, 106},
		{"HDDT", mods.Hidden | mods.DoubleTime, 7.847289588987407, 4.150778611128683, 3.2422433445887666, 108, 51},
		{"HR", mods.HardRock, 6.3208600395715955, 3.458198964867209, 2.2671231845415636, 110, 106},
		{"EZHT", mods.Easy | mods.HalfTime, 4.539331973260829, 2.4237645429608663, 1.80737031763906, 97, 106},
		{"TD", mods.TouchDevice, 4.899919558928518, 2.5164989817545447, 2.250342172593403, 108, 106},
	}

	calc := NewCalculator()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := calc.Calc(WithMap(bmap), WithMods(tt.mods))
			require.NoError(t, err)

			assert.InEpsilon(t, tt.total, res.Total, epsilon)
			assert.InEpsilon(t, tt.aim, res.Aim, epsilon)
			assert.InEpsilon(t, tt.speed, res.Speed, epsilon)
			assert.Equal(t, tt.singletaps, res.Singletaps)
			assert.Equal(t, tt.overThreshold, res.SingletapsOverThreshold)
			assert.Same(t, bmap, res.Map)
			assert.Equal(t, tt.mods, res.Mods)
		})
	}
}

func TestCalculatorLengthBonus(t *testing.T) {
	bmap, err := beatmap.DecodeFile("../beatmap/testdata/sample.osu")
	require.NoError(t, err)

	res, err := NewCalculator().Calc(WithMap(bmap))
	require.NoError(t, err)

	assert.InEpsilon(t, 0.8591008445317887, res.AimLengthBonus, epsilon)
	assert.InEpsilon(t, 0.8553354340646993, res.SpeedLengthBonus, epsilon)
}

func TestCalculatorDefaults(t *testing.T) {
	bmap, err := beatmap.DecodeFile("../beatmap/testdata/sample.osu")
	require.NoError(t, err)

	calc := NewCalculator()

	first, err := calc.Calc(WithMap(bmap), WithMods(mods.Hidden|mods.DoubleTime))
	require.NoError(t, err)

	firstTotal := first.Total

	// map and mods carry over from the previous call
	again, err := calc.Calc()
	require.NoError(t, err)
	assert.Equal(t, firstTotal, again.Total)
	assert.Equal(t, mods.Hidden|mods.DoubleTime, again.Mods)

	// an explicit NoMod is honoured
	nomod, err := calc.Calc(WithMods(mods.NoMod))
	require.NoError(t, err)
	assert.InEpsilon(t, 5.879477930903254, nomod.Total, epsilon)

	lower, err := calc.Calc(WithSingletapThreshold(100))
	require.NoError(t, err)
	assert.Equal(t, 100.0, calc.SingletapThreshold)
	assert.GreaterOrEqual(t, lower.SingletapsOverThreshold, nomod.SingletapsOverThreshold)
}

func TestCalculatorErrors(t *testing.T) {
	_, err := NewCalculator().Calc()
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)

	_, err = NewCalculator().Calc(WithMap(&beatmap.Beatmap{Mode: beatmap.Taiko, Objects: twoCircles()}))
	assert.ErrorIs(t, err, calcerr.ErrUnsupportedMode)

	_, err = NewCalculator().Calc(WithMap(&beatmap.Beatmap{CS: 5}))
	assert.ErrorIs(t, err, calcerr.ErrInvalidInput)
}
