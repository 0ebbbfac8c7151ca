package difficulty

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"ppv2/beatmap"
)

func TestNormalizerVector(t *testing.T) {
	assert.InEpsilon(t, 1.625, normalizerVector(5).X, epsilon)

	// CS7 has a radius of 23.04, so it gets the full 10% small circle bonus
	radius := 32 * (1 - 0.7*2/5.0)
	assert.InEpsilon(t, 52/radius*1.1, normalizerVector(7).X, epsilon)
}

func TestAngle(t *testing.T) {
	objects := []beatmap.HitObject{
		beatmap.Circle{Time: 0, Pos: beatmap.Vec{X: 0, Y: 0}},
		beatmap.Circle{Time: 100, Pos: beatmap.Vec{X: 100, Y: 0}},
		beatmap.Circle{Time: 200, Pos: beatmap.Vec{X: 100, Y: 100}},
		beatmap.Circle{Time: 300, Pos: beatmap.Vec{X: 200, Y: 100}},
	}

	diffObjects := initObjects(nil, objects, 5)

	assert.True(t, math.IsNaN(diffObjects[0].Angle))
	assert.True(t, math.IsNaN(diffObjects[1].Angle))
	assert.InEpsilon(t, math.Pi/2, diffObjects[2].Angle, epsilon)
	assert.InEpsilon(t, math.Pi/2, diffObjects[3].Angle, epsilon)

	// the buffer is reused and fully reset
	again := initObjects(diffObjects, objects[:3], 5)
	assert.Len(t, again, 3)
	assert.Same(t, &diffObjects[0], &again[0])
	assert.Zero(t, again[2].Strains)
}

func TestSpeedSpacingWeight(t *testing.T) {
	tests := []struct {
		name      string
		distance  float64
		deltaTime float64
		angle     float64
		want      float64
	}{
		{"right angle is not acute", 50, 100, math.Pi / 2, 0.012679217350165852},
		{"quarter pi uses the sine taper", 50, 100, math.Pi / 4, 0.010344425770346728},
		{"just under right angle", 95, 100, math.Pi/2 - 0.01, 0.017058437177957658},
		{"just under quarter pi", 80, 60, math.Pi/4 - 0.01, 0.021910508541666665},
		{"acute and close", 80, 60, math.Pi / 3, 0.024251787814754233},
		{"wide fast jump", 130, 40, 2.7, 0.07144921875},
		{"no angle", 30, 100, math.NaN(), 0.009567723492408468},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := spacingWeight(Speed, tt.distance, tt.deltaTime, 0, 0, tt.angle)
			assert.InEpsilon(t, tt.want, got, epsilon)
		})
	}
}

func TestAimSpacingWeight(t *testing.T) {
	tests := []struct {
		name                       string
		distance, deltaTime        float64
		prevDistance, prevDeltaTim float64
		angle                      float64
		want                       float64
	}{
		{"angle bonus", 200, 150, 180, 150, 2.0, 2.0406103798888466},
		{"fast jump uses raw spacing", 50, 30, 0, 0, math.NaN(), 0.9616350847573034},
		{"no bonus at the boundary", 300, 80, 250, 200, math.Pi / 3, 3.5420937787910916},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := spacingWeight(Aim, tt.distance, tt.deltaTime, tt.prevDistance, tt.prevDeltaTim, tt.angle)
			assert.InEpsilon(t, tt.want, got, epsilon)
		})
	}
}

func TestCalcSkillSections(t *testing.T) {
	objects := initObjects(nil, twoCircles(), 5)

	got := calcSkill(Speed, objects, 1)

	// sections end at 1200 and 1600: the first is empty, the second peaks at 9.1
	assert.InEpsilon(t, 9.1, got.difficulty, epsilon)
	assert.InEpsilon(t, math.Pow(9.1, 1.2), got.total, epsilon)
}

func TestLengthBonus(t *testing.T) {
	assert.Zero(t, lengthBonus(0, 0))
	assert.InEpsilon(t, 0.32+0.5*math.Log10(2), lengthBonus(3, 3), epsilon)
}
