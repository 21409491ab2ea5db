package duration

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBeatTypeMapQuarterNote(t *testing.T) {
	assert := assert.New(t)
	d := BeatTypeMap(1.0, 2)
	assert.Equal(Quarter, d.Duration)
	assert.Equal(None, d.Modifier)
}

func TestBeatTypeMapDottedEighth(t *testing.T) {
	assert := assert.New(t)
	d := BeatTypeMap(0.75, 2)
	assert.Equal(Eighth, d.Duration)
	assert.Equal(Dotted, d.Modifier)
}

func TestBeatTypeMapShiftsDownForEighthBeat(t *testing.T) {
	assert := assert.New(t)
	d := BeatTypeMap(1.0, 3)
	assert.Equal(Eighth, d.Duration)
	assert.Equal(None, d.Modifier)
}

func TestBeatTypeMapShiftsUpForHalfBeat(t *testing.T) {
	assert := assert.New(t)
	d := BeatTypeMap(1.0, 1)
	assert.Equal(Half, d.Duration)
	assert.Equal(None, d.Modifier)
}

func TestBeatTypeMapTwoBeatsOfAnEighth(t *testing.T) {
	assert := assert.New(t)
	d := BeatTypeMap(2.0, 3)
	assert.Equal(Quarter, d.Duration)
	assert.Equal(None, d.Modifier)
}

func TestBeatTypeMapUnknownValue(t *testing.T) {
	d := BeatTypeMap(0.3, 2)
	assert.Equal(t, NaN, d.Duration)
}

func TestGetBeatCount(t *testing.T) {
	cases := []struct {
		duration DurationType
		beatType uint8
		want     float64
	}{
		{DurationType{Quarter, None}, 2, 1.0},
		{DurationType{Quarter, None}, 3, 2.0},
		{DurationType{Quarter, Dotted}, 2, 1.5},
		{DurationType{Eighth, Dotted}, 3, 1.5},
		{DurationType{Eighth, None}, 2, 0.5},
		{DurationType{Sixteenth, None}, 2, 0.25},
		{DurationType{ThirtySecond, None}, 2, 0.125},
	}
	for _, c := range cases {
		name := fmt.Sprintf("%v in beat type %v", c.duration, c.beatType)
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c.want, c.duration.GetBeatCount(c.beatType))
		})
	}
}

// Every entry in the possible-lengths table must classify to something
// notatable and convert back to the exact beats it was looked up with.
func TestClassifierRoundTripsOverWholeTable(t *testing.T) {
	for _, beatType := range []uint8{1, 2, 3} {
		for _, beats := range PossibleNoteLengths {
			d := BeatTypeMap(beats, beatType)
			if d.Duration == NaN {
				// Lengths that shift off either end of the
				// taxonomy for this beat type have no name.
				continue
			}
			assert.Equal(t, beats, d.GetBeatCount(beatType),
				"beats %v, beat type %v", beats, beatType)
		}
	}
}

func TestQuantizeIsIdempotent(t *testing.T) {
	assert := assert.New(t)
	precision := DefaultPrecision.GetBeatCount(2)
	d := BeatTypeMap(0.75, 2)
	once := d.Quantize(2, precision)
	assert.Equal(once, once.Quantize(2, precision))
}

func TestQuantizeRoundsShortNotesUpToOneCell(t *testing.T) {
	assert := assert.New(t)
	precision := DurationType{Eighth, None}.GetBeatCount(2)
	d := BeatTypeMap(0.25, 2).Quantize(2, precision)
	assert.Equal(Eighth, d.Duration)
	assert.Equal(None, d.Modifier)
}

func TestQuantizeClipsToGridLine(t *testing.T) {
	assert := assert.New(t)
	precision := DurationType{Quarter, None}.GetBeatCount(2)
	d := BeatTypeMap(1.5, 2).Quantize(2, precision)
	assert.Equal(Quarter, d.Duration)
	assert.Equal(None, d.Modifier)
}

func TestParsePrecision(t *testing.T) {
	cases := []struct {
		in   string
		want DurationType
	}{
		{"eighth", DurationType{Eighth, None}},
		{"dotted-eighth", DurationType{Eighth, Dotted}},
		{"double-dotted-sixteenth", DurationType{Sixteenth, DoubleDotted}},
		{"ThirtySecond", DurationType{ThirtySecond, None}},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParsePrecision(c.in)
			assert.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}

	_, err := ParsePrecision("humpback")
	assert.Error(t, err)
}

func TestDurationTypeString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("quarter note", DurationType{Quarter, None}.String())
	assert.Equal("dotted eighth note", DurationType{Eighth, Dotted}.String())
	assert.Equal("double dotted half note", DurationType{Half, DoubleDotted}.String())
}
