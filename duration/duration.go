// Package duration implements the closed duration taxonomy used when
// transcribing midi input: the fixed set of notatable note lengths, the
// classifier that maps a beat count onto one of them, and the
// quantization grid arithmetic.
package duration

import (
	"fmt"
	"math"
	"strings"
)

// NoteDuration is the base value of a notated duration.
type NoteDuration uint8

const (
	Whole NoteDuration = iota
	Half
	Quarter
	Eighth
	Sixteenth
	ThirtySecond
	SixtyFourth

	// NaN marks a beat count with no single notatable name. It only
	// ever appears internally, as the trigger for tied-note
	// decomposition; finished pieces never contain it.
	NaN
)

// NoteDurationModifier augments a base duration.
type NoteDurationModifier uint8

const (
	None NoteDurationModifier = iota
	Dotted
	DoubleDotted
)

// DurationType is a (base, modifier) pair, e.g. a dotted eighth note.
type DurationType struct {
	Duration NoteDuration
	Modifier NoteDurationModifier
}

// DefaultPrecision is the grid used when the caller doesn't pick one.
var DefaultPrecision = DurationType{Duration: ThirtySecond, Modifier: None}

// PossibleNoteLengths holds the beat lengths of every notatable
// duration, ascending, expressed with a quarter-note beat (beat type
// 2). The values are exact binary fractions, so float comparisons
// against them are safe.
var PossibleNoteLengths = [21]float64{
	0.0625, 0.09375, 0.109375, 0.125, 0.1875, 0.21875,
	0.25, 0.375, 0.4375, 0.5, 0.75, 0.875, 1.0, 1.5,
	1.75, 2.0, 3.0, 3.5, 4.0, 6.0, 7.0,
}

func (d NoteDuration) String() string {
	switch d {
	case Whole:
		return "whole note"
	case Half:
		return "half note"
	case Quarter:
		return "quarter note"
	case Eighth:
		return "eighth note"
	case Sixteenth:
		return "sixteenth note"
	case ThirtySecond:
		return "thirtysecond note"
	case SixtyFourth:
		return "sixtyfourth note"
	}
	return "unknown note"
}

func (m NoteDurationModifier) String() string {
	switch m {
	case Dotted:
		return "dotted"
	case DoubleDotted:
		return "double dotted"
	}
	return ""
}

// String renders e.g. "dotted eighth note".
func (d DurationType) String() string {
	if d.Modifier == None {
		return d.Duration.String()
	}
	return d.Modifier.String() + " " + d.Duration.String()
}

// shiftDown moves to the next shorter base duration.
func (d NoteDuration) shiftDown() NoteDuration {
	switch d {
	case Whole:
		return Half
	case Half:
		return Quarter
	case Quarter:
		return Eighth
	case Eighth:
		return Sixteenth
	case Sixteenth:
		return ThirtySecond
	case ThirtySecond:
		return SixtyFourth
	}
	return NaN
}

// shiftUp moves to the next longer base duration.
func (d NoteDuration) shiftUp() NoteDuration {
	switch d {
	case Half:
		return Whole
	case Quarter:
		return Half
	case Eighth:
		return Quarter
	case Sixteenth:
		return Eighth
	case ThirtySecond:
		return Sixteenth
	case SixtyFourth:
		return ThirtySecond
	}
	return NaN
}

// shift rescales a base duration from the quarter-note frame (beat
// type 2) into the frame of beatType. A 6/8 piece (beat type 3) calls
// the length of one beat an eighth note where a 4/4 piece calls it a
// quarter.
func (d NoteDuration) shift(beatType uint8) NoteDuration {
	res := d
	if beatType > 2 {
		for i := uint8(2); i < beatType; i++ {
			res = res.shiftDown()
		}
	} else if beatType < 2 {
		for i := beatType; i < 2; i++ {
			res = res.shiftUp()
		}
	}
	return res
}

// reverseShift undoes shift.
func (d NoteDuration) reverseShift(beatType uint8) NoteDuration {
	res := d
	if beatType > 2 {
		for i := uint8(2); i < beatType; i++ {
			res = res.shiftUp()
		}
	} else if beatType < 2 {
		for i := beatType; i < 2; i++ {
			res = res.shiftDown()
		}
	}
	return res
}

func (m NoteDurationModifier) factor() float64 {
	switch m {
	case Dotted:
		return 1.5
	case DoubleDotted:
		return 1.75
	}
	return 1.0
}

// BeatTypeMap classifies a beat count as a DurationType relative to
// beatType (the power-of-two exponent of the time signature
// denominator: 2 for x/4, 3 for x/8). The table is keyed in the
// quarter-note frame and shifted afterwards. Callers must keep beat
// arithmetic in binary fractions: the lookup is exact-equality, and a
// value off the table classifies as NaN.
func BeatTypeMap(beats float64, beatType uint8) DurationType {
	var base NoteDuration
	var mod NoteDurationModifier
	switch beats {
	case 7.0:
		base, mod = Whole, DoubleDotted
	case 6.0:
		base, mod = Whole, Dotted
	case 4.0:
		base, mod = Whole, None
	case 3.5:
		base, mod = Half, DoubleDotted
	case 3.0:
		base, mod = Half, Dotted
	case 2.0:
		base, mod = Half, None
	case 1.75:
		base, mod = Quarter, DoubleDotted
	case 1.5:
		base, mod = Quarter, Dotted
	case 1.0:
		base, mod = Quarter, None
	case 0.875:
		base, mod = Eighth, DoubleDotted
	case 0.75:
		base, mod = Eighth, Dotted
	case 0.5:
		base, mod = Eighth, None
	case 0.4375:
		base, mod = Sixteenth, DoubleDotted
	case 0.375:
		base, mod = Sixteenth, Dotted
	case 0.25:
		base, mod = Sixteenth, None
	case 0.21875:
		base, mod = ThirtySecond, DoubleDotted
	case 0.1875:
		base, mod = ThirtySecond, Dotted
	case 0.125:
		base, mod = ThirtySecond, None
	case 0.109375:
		base, mod = SixtyFourth, DoubleDotted
	case 0.09375:
		base, mod = SixtyFourth, Dotted
	case 0.0625:
		base, mod = SixtyFourth, None
	default:
		return DurationType{Duration: NaN, Modifier: None}
	}
	return DurationType{Duration: base.shift(beatType), Modifier: mod}
}

// GetBeatCount returns the number of beats this duration spans under
// beatType. Inverse of BeatTypeMap for every table entry.
func (d DurationType) GetBeatCount(beatType uint8) float64 {
	var base float64
	switch d.Duration.reverseShift(beatType) {
	case Whole:
		base = 4.0
	case Half:
		base = 2.0
	case Quarter:
		base = 1.0
	case Eighth:
		base = 0.5
	case Sixteenth:
		base = 0.25
	case ThirtySecond:
		base = 0.125
	case SixtyFourth:
		base = 0.0625
	default:
		return 0.0
	}
	return base * d.Modifier.factor()
}

// Quantize clips the duration onto a grid of precisionBeats-sized
// cells. Durations shorter than one cell round up to one cell; others
// floor to the nearest grid line.
func (d DurationType) Quantize(beatType uint8, precisionBeats float64) DurationType {
	beats := d.GetBeatCount(beatType)
	if beats < precisionBeats {
		return BeatTypeMap(precisionBeats, beatType)
	}
	return BeatTypeMap(beats-math.Mod(beats, precisionBeats), beatType)
}

// ParsePrecision reads a precision flag value such as "eighth",
// "dotted-eighth" or "double-dotted-sixteenth".
func ParsePrecision(s string) (DurationType, error) {
	res := DurationType{Modifier: None}
	name := strings.ToLower(strings.TrimSpace(s))
	if rest, ok := cutPrefix(name, "double-dotted-"); ok {
		res.Modifier = DoubleDotted
		name = rest
	} else if rest, ok := cutPrefix(name, "dotted-"); ok {
		res.Modifier = Dotted
		name = rest
	}
	switch name {
	case "whole":
		res.Duration = Whole
	case "half":
		res.Duration = Half
	case "quarter":
		res.Duration = Quarter
	case "eighth":
		res.Duration = Eighth
	case "sixteenth":
		res.Duration = Sixteenth
	case "thirtysecond":
		res.Duration = ThirtySecond
	case "sixtyfourth":
		res.Duration = SixtyFourth
	default:
		return res, fmt.Errorf("unrecognized precision %q", s)
	}
	return res, nil
}

func cutPrefix(s, prefix string) (string, bool) {
	if strings.HasPrefix(s, prefix) {
		return s[len(prefix):], true
	}
	return s, false
}
