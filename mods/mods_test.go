package mods

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Mods
	}{
		{"", NoMod},
		{"HDDT", Hidden | DoubleTime},
		{"hdhr", Hidden | HardRock},
		{"+HD,HR", Hidden | HardRock},
		{"NFEZTDHDHRDTHTNCFLSO", NoFail | Easy | TouchDevice | Hidden | HardRock | DoubleTime | HalfTime | Nightcore | Flashlight | SpunOut},
		{"XHD", Hidden},
		{"HDX", Hidden},
		{"nc", Nightcore},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in))
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "", NoMod.String())
	assert.Equal(t, "HDDT", (DoubleTime | Hidden).String())
	assert.Equal(t, "HDNC", (Hidden | DoubleTime | Nightcore).String())
	assert.Equal(t, "NFEZHR", (HardRock | Easy | NoFail).String())
}

func TestParseStringRoundTrip(t *testing.T) {
	var all Mods
	for _, c := range codes {
		all |= c.mod
	}

	for m := NoMod; m <= all; m++ {
		if m&^all != 0 {
			continue
		}

		want := m
		if m.Any(Nightcore) {
			want &^= DoubleTime
		}

		assert.Equal(t, want, Parse(m.String()), "mods %d (%s)", uint32(m), m)
	}
}

func TestActiveAny(t *testing.T) {
	m := Hidden | HardRock

	assert.True(t, m.Active(Hidden))
	assert.True(t, m.Active(Hidden|HardRock))
	assert.False(t, m.Active(Hidden|DoubleTime))
	assert.False(t, m.Active(NoMod))

	assert.True(t, m.Any(Hidden|DoubleTime))
	assert.False(t, m.Any(SpeedChanging))
	assert.True(t, m.Any(MapChanging))
}
