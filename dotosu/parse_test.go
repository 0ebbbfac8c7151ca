package dotosu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFile(t *testing.T) {
	b, err := DecodeFile("../beatmap/testdata/sample.osu")
	require.NoError(t, err)

	assert.Equal(t, 14, b.FormatVersion)
	assert.Equal(t, 0, b.General.Mode)
	assert.Equal(t, "Sample Stream", b.Metadata.Title)
	assert.Equal(t, "Insane", b.Metadata.Version)
	assert.Equal(t, 1, b.Metadata.BeatmapID)

	assert.Equal(t, 9.0, b.Difficulty.ApproachRate)
	assert.Equal(t, 8.0, b.Difficulty.OverallDifficulty)
	assert.Equal(t, 4.0, b.Difficulty.CircleSize)
	assert.Equal(t, 6.0, b.Difficulty.HPDrainRate)
	assert.Equal(t, 1.8, b.Difficulty.SliderMultiplier)

	require.Len(t, b.TimingPoints, 3)
	assert.True(t, b.TimingPoints[0].TimingChange)
	assert.False(t, b.TimingPoints[1].TimingChange)
	assert.Equal(t, -50.0, b.TimingPoints[1].BeatLength)

	require.Len(t, b.HitObjects, 120)
	assert.Empty(t, b.Skipped)

	counts := map[ObjectKind]int{}
	for _, o := range b.HitObjects {
		counts[o.Kind()]++
	}

	assert.Equal(t, 96, counts[KindCircle])
	assert.Equal(t, 23, counts[KindSlider])
	assert.Equal(t, 1, counts[KindSpinner])

	sl, ok := b.HitObjects[3].(Slider)
	require.True(t, ok)
	assert.Equal(t, 3, sl.Slides)
	assert.Equal(t, 106.0, sl.Length)
	assert.Equal(t, Vec2{X: 242, Y: 311}, sl.Pos())
	assert.Equal(t, 1501.0, sl.StartTime())
}

const oldMap = "\ufeffosu file format v7\n" +
	"[General]\n" +
	"Mode: 0\n" +
	"[Difficulty]\n" +
	"OverallDifficulty:7\n" +
	"CircleSize:12\n" +
	"SliderMultiplier:1.4\n" +
	"[TimingPoints]\n" +
	"0,500\n" +
	"oops\n" +
	"[HitObjects]\n" +
	" 1,1,1,1,0\n" +
	"_ comment\n" +
	"// comment\n" +
	"64,64,100,1,0\n" +
	"64,64,200,2,0,B|100:100,1\n" +
	"256,192,300,12,0,800\n" +
	"1,2,400,128,0,500:0:0:0:\n" +
	"x,y,z\n"

func TestDecodeOldFormat(t *testing.T) {
	b, err := Decode(strings.NewReader(oldMap))
	require.NoError(t, err)

	assert.Equal(t, 7, b.FormatVersion)

	// no AR on old maps means AR = OD
	assert.Equal(t, 7.0, b.Difficulty.ApproachRate)
	assert.Equal(t, 10.0, b.Difficulty.CircleSize)
	assert.Equal(t, 5.0, b.Difficulty.HPDrainRate)
	assert.Equal(t, 1.0, b.Difficulty.SliderTickRate)

	require.Len(t, b.TimingPoints, 1)
	assert.True(t, b.TimingPoints[0].TimingChange)

	require.Len(t, b.HitObjects, 2)
	assert.Equal(t, KindCircle, b.HitObjects[0].Kind())
	assert.Equal(t, KindSpinner, b.HitObjects[1].Kind())

	require.Len(t, b.Skipped, 4)
	assert.Equal(t, "ignoring malformed timing point", b.Skipped[0].Reason)
	assert.Equal(t, "ignoring malformed slider", b.Skipped[1].Reason)
	assert.Equal(t, "ignoring hitobject of unknown type", b.Skipped[2].Reason)
	assert.Equal(t, "ignoring malformed hitobject", b.Skipped[3].Reason)
	assert.Equal(t, "line 10: ignoring malformed timing point\n-> oops <-", b.Skipped[0].String())
}

func TestDecodeInvalidHeader(t *testing.T) {
	_, err := Decode(strings.NewReader("not a beatmap\n[HitObjects]\n"))
	assert.Error(t, err)

	_, err = Decode(strings.NewReader("osu file format vX\n"))
	assert.Error(t, err)
}
