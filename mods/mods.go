package mods

import "strings"

// Mods is the legacy gameplay modifier bitmask.
type Mods uint32

// TouchDevice shares its bit with the retired NoVideo mod.
const (
	NoFail Mods = 1 << iota
	Easy
	TouchDevice
	Hidden
	HardRock
	_ // sudden death
	DoubleTime
	_ // relax
	HalfTime
	Nightcore
	Flashlight
	_ // autoplay
	SpunOut

	NoMod Mods = 0

	SpeedChanging = DoubleTime | HalfTime | Nightcore
	MapChanging   = HardRock | Easy | SpeedChanging
)

type code struct {
	name string
	mod  Mods
}

// codes is the serialisation order.
var codes = []code{
	{"NF", NoFail},
	{"EZ", Easy},
	{"TD", TouchDevice},
	{"HD", Hidden},
	{"HR", HardRock},
	{"DT", DoubleTime},
	{"HT", HalfTime},
	{"NC", Nightcore},
	{"FL", Flashlight},
	{"SO", SpunOut},
}

// Active reports whether every bit of m2 is set.
func (m Mods) Active(m2 Mods) bool {
	return m&m2 == m2 && m2 != 0
}

// Any reports whether at least one bit of m2 is set.
func (m Mods) Any(m2 Mods) bool {
	return m&m2 != 0
}

// Parse reads a string such as "HDHR" or "hd,dt". Two-character codes are
// matched greedily and case-insensitively; anything unrecognised is skipped
// one character at a time.
func Parse(s string) Mods {
	s = strings.ToUpper(s)

	var mask Mods

	for len(s) > 0 {
		n := 1

		for _, c := range codes {
			if strings.HasPrefix(s, c.name) {
				mask |= c.mod
				n = 2

				break
			}
		}

		s = s[n:]
	}

	return mask
}

// String returns the codes in a fixed order. DT is dropped when NC is
// present since NC implies it.
func (m Mods) String() string {
	var sb strings.Builder

	for _, c := range codes {
		if c.mod == DoubleTime && m&Nightcore != 0 {
			continue
		}

		if m&c.mod != 0 {
			sb.WriteString(c.name)
		}
	}

	return sb.String()
}
