package beatmap

import (
	"fmt"
	"io"

	"ppv2/dotosu"
)

func DecodeFile(path string) (*Beatmap, error) {
	d, err := dotosu.DecodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return FromDotOsu(d), nil
}

func Decode(r io.Reader) (*Beatmap, error) {
	d, err := dotosu.Decode(r)
	if err != nil {
		return nil, err
	}

	return FromDotOsu(d), nil
}

// FromDotOsu converts a decoded .osu file into the calculation model.
func FromDotOsu(d *dotosu.Beatmap) *Beatmap {
	b := &Beatmap{
		FormatVersion:  d.FormatVersion,
		Mode:           Mode(d.General.Mode),
		Title:          d.Metadata.Title,
		TitleUnicode:   d.Metadata.TitleUnicode,
		Artist:         d.Metadata.Artist,
		ArtistUnicode:  d.Metadata.ArtistUnicode,
		Creator:        d.Metadata.Creator,
		Version:        d.Metadata.Version,
		AR:             d.Difficulty.ApproachRate,
		OD:             d.Difficulty.OverallDifficulty,
		CS:             d.Difficulty.CircleSize,
		HP:             d.Difficulty.HPDrainRate,
		SliderVelocity: d.Difficulty.SliderMultiplier,
		TickRate:       d.Difficulty.SliderTickRate,
		Objects:        make([]HitObject, 0, len(d.HitObjects)),
		TimingPoints:   make([]TimingPoint, 0, len(d.TimingPoints)),
	}

	for _, tp := range d.TimingPoints {
		b.TimingPoints = append(b.TimingPoints, TimingPoint{
			Time:      tp.Time,
			MsPerBeat: tp.BeatLength,
			Change:    tp.TimingChange,
		})
	}

	for _, note := range d.Skipped {
		b.Warnings = append(b.Warnings, note.String())
	}

	for _, object := range d.HitObjects {
		pos := Vec{X: object.Pos().X, Y: object.Pos().Y}

		switch object := object.(type) {
		case dotosu.Circle:
			b.Circles++
			b.Objects = append(b.Objects, Circle{Time: object.Time, Pos: pos})
		case dotosu.Slider:
			b.Sliders++
			b.Objects = append(b.Objects, Slider{
				Time:        object.Time,
				Pos:         pos,
				Distance:    object.Length,
				Repetitions: object.Slides,
			})
		case dotosu.Spinner:
			b.Spinners++
			b.Objects = append(b.Objects, Spinner{Time: object.Time})
		}
	}

	return b
}
