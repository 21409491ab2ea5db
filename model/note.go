package model

import "github.com/gb0808/beatblox-midi/duration"

// RestValue is the sentinel pitch marking silence. It sits above the
// playable midi range (0-127) so it can never collide with a real key.
const RestValue uint8 = 255

// NoteWrapper is the tagged union of everything that can appear in a
// transcribed track: plain notes, rests, and the composite groupings.
// Composites hold leaves in performance order; nesting stays shallow by
// construction even though the type permits more.
type NoteWrapper interface {
	noteWrapper()
}

// Note is a single sounding pitch with a notated duration.
type Note struct {
	Value    uint8
	Duration duration.DurationType
	Velocity uint8
}

// Rest is a notated silence.
type Rest struct {
	Duration duration.DurationType
}

// Chord groups notes whose onsets landed in the same grid cell.
type Chord struct {
	Notes []NoteWrapper
}

// TiedNote represents one sounding length with no single notatable
// name, split into consecutive tied leaves. The first leaf sounds
// first.
type TiedNote struct {
	Notes []NoteWrapper
}

// Triplet groups three onsets that evenly subdivide a beat. Children
// carry the duplet-equivalent duration; "triplet" is conveyed only by
// the wrapper.
type Triplet struct {
	Notes []NoteWrapper
}

func (Note) noteWrapper()     {}
func (Rest) noteWrapper()     {}
func (Chord) noteWrapper()    {}
func (TiedNote) noteWrapper() {}
func (Triplet) noteWrapper()  {}

// NewNoteWrapper builds the right leaf for a pitch value: a Rest for
// the sentinel, a Note otherwise.
func NewNoteWrapper(value uint8, d duration.DurationType, velocity uint8) NoteWrapper {
	if value == RestValue {
		return Rest{Duration: d}
	}
	return Note{Value: value, Duration: d, Velocity: velocity}
}

// TimeSignature is a meter meta event from track 0.
type TimeSignature struct {
	// BeatCount is the number of beats in a measure.
	BeatCount uint8
	// BeatType is the power-of-two exponent of the denominator as
	// midi stores it: 2 for x/4, 3 for x/8.
	BeatType uint8
	// TimeOfOccurrence is the cumulative tick at which the signature
	// takes effect, allowing for mid-piece meter changes.
	TimeOfOccurrence uint32
}

// Track is one transcribed midi track, frozen after construction.
type Track struct {
	Name  string
	Notes []NoteWrapper
}

// Piece is the transcription of a whole midi file.
type Piece struct {
	// BPM is the initial tempo, 0 when the file carries none.
	BPM            uint32
	TimeSignatures []TimeSignature
	TicksPerBeat   float64
	Tracks         []Track
}
