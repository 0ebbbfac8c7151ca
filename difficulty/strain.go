package difficulty

import (
	"cmp"
	"math"
	"slices"

	"ppv2/beatmap"
)

const (
	// SingleSpacing is the jump distance above which a note counts as singletapped.
	SingleSpacing float64 = 125.0

	decayWeight             = 0.9
	strainStep              = 400.0
	circleSizeBuffThreshold = 30.0

	// ~200BPM 1/4 streams
	minSpeedBonus = 75.0
	// ~330BPM 1/4 streams
	maxSpeedBonus = 45.0

	angleBonusScale      = 90.0
	aimTimingThreshold   = 107.0
	speedAngleBonusBegin = 5 * math.Pi / 6
	aimAngleBonusBegin   = math.Pi / 3
	minStrainTime        = 50.0
)

var (
	decayBase     = [2]float64{Speed: 0.3, Aim: 0.15}
	weightScaling = [2]float64{Speed: 1400.0, Aim: 26.25}
)

// normalizerVector scales positions by circle radius so every map can be
// treated as if it had the same circle size.
func normalizerVector(circleSize float64) beatmap.Vec {
	radius := (beatmap.PlayfieldSize.X / 16.0) * (1.0 - (0.7*(circleSize-5.0))/5.0)
	scalingFactor := 52.0 / radius

	// small circle bonus
	if radius < circleSizeBuffThreshold {
		scalingFactor *= 1.0 + min(circleSizeBuffThreshold-radius, 5.0)/50.0
	}

	return beatmap.Vec{X: scalingFactor, Y: scalingFactor}
}

// initObjects resizes diffObjects to the map and fills in positions and angles.
func initObjects(diffObjects []Object, objects []beatmap.HitObject, circleSize float64) []Object {
	if cap(diffObjects) < len(objects) {
		diffObjects = make([]Object, len(objects))
	}

	diffObjects = diffObjects[:len(objects)]

	scalingVec := normalizerVector(circleSize)
	normalizedCenter := beatmap.CenterPos.Mul(scalingVec)

	for i, obj := range objects {
		o := &diffObjects[i]
		o.reset(obj)

		switch obj := obj.(type) {
		case beatmap.Spinner:
			o.NormPos = normalizedCenter
		case beatmap.Circle:
			o.NormPos = obj.Pos.Mul(scalingVec)
		case beatmap.Slider:
			o.NormPos = obj.Pos.Mul(scalingVec)
		}

		if i >= 2 {
			prev1 := &diffObjects[i-1]
			prev2 := &diffObjects[i-2]

			v1 := prev2.NormPos.Sub(prev1.NormPos)
			v2 := o.NormPos.Sub(prev1.NormPos)

			o.Angle = math.Abs(math.Atan2(v1.Cross(v2), v1.Dot(v2)))
		}
	}

	return diffObjects
}

func aimSpacingWeight(distance, strainTime, prevDistance, prevStrainTime, angle float64) float64 {
	result := 0.0

	if !math.IsNaN(angle) && angle > aimAngleBonusBegin {
		angleBonus := math.Sqrt(
			max(prevDistance-angleBonusScale, 0.0) *
				math.Pow(math.Sin(angle-aimAngleBonusBegin), 2.0) *
				max(distance-angleBonusScale, 0.0),
		)

		result = 1.5 * math.Pow(max(0.0, angleBonus), 0.99) / max(aimTimingThreshold, prevStrainTime)
	}

	weightedDistance := math.Pow(distance, 0.99)

	// very fast large jumps are never worth less than their raw spacing
	return max(
		result+weightedDistance/max(aimTimingThreshold, strainTime),
		weightedDistance/strainTime,
	)
}

func speedSpacingWeight(distance, deltaTime, strainTime, angle float64) float64 {
	distance = min(distance, SingleSpacing)
	deltaTime = max(deltaTime, maxSpeedBonus)

	speedBonus := 1.0
	if deltaTime < minSpeedBonus {
		speedBonus += math.Pow((minSpeedBonus-deltaTime)/40.0, 2)
	}

	angleBonus := 1.0

	if !math.IsNaN(angle) && angle < speedAngleBonusBegin {
		s := math.Sin(1.5 * (speedAngleBonusBegin - angle))
		angleBonus += math.Pow(s, 2) / 3.57

		if angle < math.Pi/2.0 {
			angleBonus = 1.28

			if distance < angleBonusScale && angle < math.Pi/4.0 {
				angleBonus += (1.0 - angleBonus) * min((angleBonusScale-distance)/10.0, 1.0)
			} else if distance < angleBonusScale {
				angleBonus += (1.0 - angleBonus) *
					min((angleBonusScale-distance)/10.0, 1.0) *
					math.Sin((math.Pi/2.0-angle)*4.0/math.Pi)
			}
		}
	}

	return (1 + (speedBonus-1)*0.75) *
		angleBonus *
		(0.95 + speedBonus*math.Pow(distance/SingleSpacing, 3.5)) /
		strainTime
}

func spacingWeight(skill Skill, distance, deltaTime, prevDistance, prevDeltaTime, angle float64) float64 {
	strainTime := max(deltaTime, minStrainTime)

	if skill == Aim {
		return aimSpacingWeight(distance, strainTime, prevDistance, max(prevDeltaTime, minStrainTime), angle)
	}

	return speedSpacingWeight(distance, deltaTime, strainTime, angle)
}

// calcStrain stores the strain of current, given the previous object.
func calcStrain(skill Skill, current, previous *Object, speedMul float64) {
	value := 0.0

	timeElapsed := (current.BaseObject.StartTime() - previous.BaseObject.StartTime()) / speedMul
	decay := math.Pow(decayBase[skill], timeElapsed/1000.0)

	current.DeltaTime = timeElapsed

	if current.isCircleOrSlider() {
		distance := current.NormPos.Sub(previous.NormPos).Len()
		current.Distance = distance

		if skill == Speed {
			current.IsSingle = distance > SingleSpacing
		}

		value = spacingWeight(skill, distance, timeElapsed, previous.Distance, previous.DeltaTime, current.Angle)
		value *= weightScaling[skill]
	}

	current.Strains[skill] = previous.Strains[skill]*decay + value
}

type skillValue struct {
	// difficulty is the decay-weighted sum of the section peaks.
	difficulty float64
	// total is the unweighted sum of peak^1.2.
	total float64
}

// calcSkill analyzes the map in sections of strainStep duration. The peak
// strain of each section goes into a list which is then collapsed into a
// weighted sum, much like scores are weighted on a user's profile.
//
// A section starts from the previous object's strain decayed to the section
// boundary. The first object has no strain, hence the first boundary is
// rounded up from its start time.
func calcSkill(skill Skill, objects []Object, speedMul float64) skillValue {
	strains := make([]float64, 0, 64)

	step := strainStep * speedMul
	intervalEnd := math.Ceil(objects[0].BaseObject.StartTime()/step) * step
	maxStrain := 0.0

	for i := range objects {
		if i > 0 {
			calcStrain(skill, &objects[i], &objects[i-1], speedMul)
		}

		for objects[i].BaseObject.StartTime() > intervalEnd {
			strains = append(strains, maxStrain)

			if i > 0 {
				prev := &objects[i-1]
				decay := math.Pow(decayBase[skill], (intervalEnd-prev.BaseObject.StartTime())/1000.0)
				maxStrain = prev.Strains[skill] * decay
			} else {
				maxStrain = 0.0
			}

			intervalEnd += step
		}

		maxStrain = max(maxStrain, objects[i].Strains[skill])
	}

	// peak of the last section
	strains = append(strains, maxStrain)

	slices.SortFunc(strains, func(a, b float64) int {
		return cmp.Compare(b, a)
	})

	var result skillValue

	weight := 1.0

	for _, strain := range strains {
		result.total += math.Pow(strain, 1.2)
		result.difficulty += strain * weight
		weight *= decayWeight
	}

	return result
}

func lengthBonus(stars, difficulty float64) float64 {
	if stars == 0 {
		return 0
	}

	return 0.32 + 0.5*(math.Log10(difficulty+stars)-math.Log10(stars))
}
