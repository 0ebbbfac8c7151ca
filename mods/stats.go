package mods

import (
	"math"

	"ppv2/mutils"
)

const (
	od0Ms  = 80.0
	od10Ms = 20.0
	ar0Ms  = 1800.0
	ar5Ms  = 1200.0
	ar10Ms = 450.0

	odMsStep  = (od0Ms - od10Ms) / 10.0
	arMsStep1 = (ar0Ms - ar5Ms) / 5.0
	arMsStep2 = (ar5Ms - ar10Ms) / 5.0

	cacheLimit = 32
)

// Stat flags which difficulty settings a Stats value carries.
type Stat uint8

const (
	StatAR Stat = 1 << iota
	StatOD
	StatHP
	StatCS

	StatAll = StatAR | StatOD | StatHP | StatCS
)

// Stats are beatmap difficulty settings, optionally adjusted by mods.
// Settings missing from Present are neither read nor computed.
type Stats struct {
	AR, OD, HP, CS float64

	Present Stat

	// SpeedMultiplier is the clock rate the adjusted settings were computed for.
	SpeedMultiplier float64
}

func NewStats(ar, od, hp, cs float64) Stats {
	return Stats{
		AR:              ar,
		OD:              od,
		HP:              hp,
		CS:              cs,
		Present:         StatAll,
		SpeedMultiplier: 1,
	}
}

func (s Stats) Has(stat Stat) bool {
	return s.Present&stat == stat
}

// ApproachRateToPreempt converts approach rate to the approach window in milliseconds.
func ApproachRateToPreempt(ar float64) float64 {
	if ar < 5 {
		return ar0Ms - arMsStep1*ar
	}

	return ar5Ms - arMsStep2*(ar-5)
}

// PreemptToAR is the inverse of ApproachRateToPreempt.
func PreemptToAR(preempt float64) float64 {
	if preempt > ar5Ms {
		return (ar0Ms - preempt) / arMsStep1
	}

	return 5 + (ar5Ms-preempt)/arMsStep2
}

// Window300 converts overall difficulty to the great hit window in milliseconds.
func Window300(od float64) float64 {
	return od0Ms - math.Ceil(odMsStep*od)
}

func Window300ToOD(window float64) float64 {
	return (od0Ms - window) / odMsStep
}

// SpeedMultiplier returns the clock rate implied by m.
func SpeedMultiplier(m Mods) float64 {
	speed := 1.0

	if m.Any(DoubleTime | Nightcore) {
		speed = 1.5
	}

	if m.Any(HalfTime) {
		speed *= 0.75
	}

	return speed
}

func statMultiplier(m Mods) float64 {
	mul := 1.0

	if m.Any(HardRock) {
		mul = 1.4
	}

	if m.Any(Easy) {
		mul *= 0.5
	}

	return mul
}

// Stats are clamped to 0-10 before the speed change, which can then take
// them to -5..11 for AR and about -4.44..11.11 for OD.
func modifyAR(base, speed, mul float64) float64 {
	preempt := mutils.Clamp(ApproachRateToPreempt(base*mul), ar10Ms, ar0Ms)
	return PreemptToAR(preempt / speed)
}

func modifyOD(base, speed, mul float64) float64 {
	window := mutils.Clamp(Window300(base*mul), od10Ms, od0Ms)
	return Window300ToOD(window / speed)
}

// Adjust applies m to base.
func Adjust(base Stats, m Mods) Stats {
	stats := base
	stats.SpeedMultiplier = 1

	if !m.Any(MapChanging) {
		return stats
	}

	stats.SpeedMultiplier = SpeedMultiplier(m)
	mul := statMultiplier(m)

	if stats.Has(StatAR) {
		stats.AR = modifyAR(stats.AR, stats.SpeedMultiplier, mul)
	}

	if stats.Has(StatOD) {
		stats.OD = modifyOD(stats.OD, stats.SpeedMultiplier, mul)
	}

	if stats.Has(StatCS) {
		if m.Any(HardRock) {
			stats.CS *= 1.3
		}

		if m.Any(Easy) {
			stats.CS *= 0.5
		}

		stats.CS = min(10, stats.CS)
	}

	if stats.Has(StatHP) {
		stats.HP = min(10, stats.HP*mul)
	}

	return stats
}

// Modifier memoizes Adjust for one set of base stats. It is not safe for
// concurrent use; give each goroutine its own.
type Modifier struct {
	base  Stats
	cache map[Mods]Stats
}

func NewModifier(base Stats) *Modifier {
	return &Modifier{
		base:  base,
		cache: make(map[Mods]Stats),
	}
}

func (m *Modifier) Base() Stats {
	return m.base
}

func (m *Modifier) WithMods(mods Mods) Stats {
	if stats, ok := m.cache[mods]; ok {
		return stats
	}

	if len(m.cache) >= cacheLimit {
		clear(m.cache)
	}

	stats := Adjust(m.base, mods)
	m.cache[mods] = stats

	return stats
}
