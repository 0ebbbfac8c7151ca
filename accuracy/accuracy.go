// Package accuracy reconciles osu!standard hit counts and computes accuracy.
package accuracy

import (
	"fmt"
	"math"

	"ppv2/calcerr"
	"ppv2/mutils"
)

// Params describes a play. Nil pointers are unspecified.
//
// When Objects is set the counts are fitted to it. When Percent is set too,
// Good and Meh are solved to land as close as possible to it.
type Params struct {
	Percent *float64
	Objects int

	Great *int
	Good  int
	Meh   int
	Miss  int
}

// Breakdown is a resolved set of hit counts. Great is -1 when it could not be
// derived because the object count was unknown.
type Breakdown struct {
	Great int
	Good  int
	Meh   int
	Miss  int
}

func Float(v float64) *float64 { return &v }

func Int(v int) *int { return &v }

func Resolve(p Params) (Breakdown, error) {
	b := Breakdown{
		Great: -1,
		Good:  p.Good,
		Meh:   p.Meh,
		Miss:  p.Miss,
	}

	if p.Great != nil {
		b.Great = *p.Great
	}

	if p.Good < 0 || p.Meh < 0 || p.Miss < 0 || p.Objects < 0 || (p.Great != nil && *p.Great < 0) {
		return b, calcerr.Invalid("hit counts must not be negative")
	}

	if p.Objects > 0 {
		b.fit(p.Objects)
	}

	if p.Percent != nil {
		if p.Objects <= 0 {
			return b, calcerr.Invalid("object count is required when specifying percent")
		}

		if math.IsNaN(*p.Percent) {
			return b, calcerr.Invalid("accuracy percent is not a number")
		}

		b.solve(*p.Percent, p.Objects)
	}

	return b, nil
}

// fit removes excess counts, greats first and misses last, then recomputes
// greats as the remainder.
func (b *Breakdown) fit(objects int) {
	great := b.Great
	if great < 0 {
		great = max(0, objects-b.Good-b.Meh-b.Miss)
	}

	counts := []*int{&great, &b.Good, &b.Meh, &b.Miss}

	for _, c := range counts {
		hits := great + b.Good + b.Meh + b.Miss
		if hits > objects {
			*c -= min(*c, hits-objects)
		}
	}

	b.Great = objects - b.Good - b.Meh - b.Miss
}

// solve is the accuracy formula inverted for goods, falling back to mehs
// when the percentage is below all goods.
func (b *Breakdown) solve(percent float64, objects int) {
	maxGreat := objects - b.Miss

	maxAcc := Breakdown{Great: maxGreat, Miss: b.Miss}.value(0) * 100.0
	percent = mutils.Clamp(percent, 0, maxAcc)

	n := float64(objects)
	miss := float64(b.Miss)

	b.Good = int(mutils.RoundHalfUp(-3.0 * ((percent*0.01-1.0)*n + miss) * 0.5))

	if b.Good > maxGreat {
		// acc lower than all 100s, use 50s
		b.Good = 0
		b.Meh = int(mutils.RoundHalfUp(-6.0 * ((percent*0.01-1.0)*n + miss) * 0.5))
		b.Meh = min(maxGreat, b.Meh)
	}

	b.Great = objects - b.Good - b.Meh - b.Miss
}

func (b Breakdown) value(objects int) float64 {
	great := b.Great

	if great < 0 {
		great = objects - b.Good - b.Meh - b.Miss
	} else {
		objects = great + b.Good + b.Meh + b.Miss
	}

	if objects <= 0 {
		return 0
	}

	res := float64(great*300+b.Good*100+b.Meh*50) / float64(objects*300)

	return mutils.Clamp(res, 0, 1)
}

// Value returns accuracy in 0..1. objects is only needed, and only read,
// when Great is unresolved.
func (b Breakdown) Value(objects int) (float64, error) {
	if b.Great < 0 && objects <= 0 {
		return 0, calcerr.Invalid("either great or the object count must be specified")
	}

	return b.value(objects), nil
}

// Accuracy is Value for a breakdown with Great resolved.
func (b Breakdown) Accuracy() float64 {
	return b.value(0)
}

func (b Breakdown) Objects() int {
	return b.Great + b.Good + b.Meh + b.Miss
}

func (b Breakdown) String() string {
	return fmt.Sprintf("%.2f%% %dx100 %dx50 %dxmiss", b.Accuracy()*100, b.Good, b.Meh, b.Miss)
}
