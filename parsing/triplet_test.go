package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gb0808/beatblox-midi/duration"
	"github.com/gb0808/beatblox-midi/model"
)

var eighthPrecision = duration.DurationType{Duration: duration.Eighth, Modifier: duration.None}

func TestTripletDivisionsResolvesGridAndThrees(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(6, tripletDivisions(0.5))    // eighth grid
	assert.Equal(24, tripletDivisions(0.125)) // thirtysecond grid
	assert.Equal(3, tripletDivisions(1.0))
}

func TestBuildNotesDetectsEvenTriplet(t *testing.T) {
	third := 1.0 / 3.0
	raw := []RawNote{
		{Value: 60, Onset: 0, Beats: third, Velocity: 100},
		{Value: 64, Onset: third, Beats: third, Velocity: 95},
		{Value: 67, Onset: 2 * third, Beats: third, Velocity: 90},
		{Value: 72, Onset: 1.0, Beats: 1.0, Velocity: 100},
	}

	notes := BuildNotes(raw, 2, eighthPrecision, true)

	assert := assert.New(t)
	assert.Len(notes, 2)

	triplet, ok := notes[0].(model.Triplet)
	assert.True(ok)
	assert.Len(triplet.Notes, 3)
	for i, want := range []uint8{60, 64, 67} {
		child := triplet.Notes[i].(model.Note)
		assert.Equal(want, child.Value)
		// triplet children read as the duplet equivalent
		assert.Equal(duration.Eighth, child.Duration.Duration)
		assert.Equal(duration.None, child.Duration.Modifier)
	}

	after, ok := notes[1].(model.Note)
	assert.True(ok)
	assert.Equal(uint8(72), after.Value)
	assert.Equal(duration.Quarter, after.Duration.Duration)
}

func TestBuildNotesWithoutScanLeavesTripletsAlone(t *testing.T) {
	third := 1.0 / 3.0
	raw := []RawNote{
		{Value: 60, Onset: 0, Beats: third, Velocity: 100},
		{Value: 64, Onset: third, Beats: third, Velocity: 100},
		{Value: 67, Onset: 2 * third, Beats: third, Velocity: 100},
	}

	notes := BuildNotes(raw, 2, eighthPrecision, false)

	for _, n := range notes {
		_, isTriplet := n.(model.Triplet)
		assert.False(t, isTriplet)
	}
}

func TestClusteredOnsetsAreNotATriplet(t *testing.T) {
	// three onsets crammed into the front of the beat: gaps are wildly
	// uneven, so this is a fast run, not a triplet
	raw := []RawNote{
		{Value: 60, Onset: 0, Beats: 1.0 / 6.0, Velocity: 100},
		{Value: 64, Onset: 1.0 / 6.0, Beats: 1.0 / 6.0, Velocity: 100},
		{Value: 67, Onset: 2.0 / 6.0, Beats: 4.0 / 6.0, Velocity: 100},
	}

	beats := tripletBeats(raw, tripletDivisions(0.5))
	assert.Empty(t, beats)
}

func TestFourOnsetsAreNotATriplet(t *testing.T) {
	raw := []RawNote{
		{Value: 60, Onset: 0, Beats: 0.25, Velocity: 100},
		{Value: 62, Onset: 0.25, Beats: 0.25, Velocity: 100},
		{Value: 64, Onset: 0.5, Beats: 0.25, Velocity: 100},
		{Value: 65, Onset: 0.75, Beats: 0.25, Velocity: 100},
	}

	beats := tripletBeats(raw, tripletDivisions(0.125))
	assert.Empty(t, beats)
}

func TestRestOnsetsDoNotCountTowardTriplets(t *testing.T) {
	third := 1.0 / 3.0
	raw := []RawNote{
		{Value: 60, Onset: 0, Beats: third, Velocity: 100},
		{Value: model.RestValue, Onset: third, Beats: third},
		{Value: 67, Onset: 2 * third, Beats: third, Velocity: 100},
	}

	beats := tripletBeats(raw, tripletDivisions(0.5))
	assert.Empty(t, beats)
}

func TestTripletsDetectedPerBeat(t *testing.T) {
	third := 1.0 / 3.0
	raw := []RawNote{
		// beat 0: plain quarter
		{Value: 48, Onset: 0, Beats: 1.0, Velocity: 100},
		// beat 1: triplet
		{Value: 60, Onset: 1.0, Beats: third, Velocity: 100},
		{Value: 64, Onset: 1.0 + third, Beats: third, Velocity: 100},
		{Value: 67, Onset: 1.0 + 2*third, Beats: third, Velocity: 100},
	}

	notes := BuildNotes(raw, 2, eighthPrecision, true)

	assert := assert.New(t)
	assert.Len(notes, 2)
	_, plain := notes[0].(model.Note)
	assert.True(plain)
	triplet, ok := notes[1].(model.Triplet)
	assert.True(ok)
	assert.Len(triplet.Notes, 3)
}
