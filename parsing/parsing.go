// Package parsing turns a decoded midi file into notated tracks. The
// pipeline runs strictly forward: header read, raw interval
// extraction, grid quantization, duration classification (with
// tied-note decomposition for unclassifiable lengths), then chord and
// optional triplet grouping.
package parsing

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/gb0808/beatblox-midi/duration"
	"github.com/gb0808/beatblox-midi/midi"
	"github.com/gb0808/beatblox-midi/model"
)

// RawNote is one extracted interval: a sounding pitch or, when Value
// is the rest sentinel, a silent gap. Onset and Beats are expressed in
// beats. Intervals are ephemeral; quantization consumes them
// immediately.
type RawNote struct {
	Value    uint8
	Onset    float64
	Beats    float64
	Velocity uint8
}

type quantizedNote struct {
	// slot is the grid line at or below the note's onset. Notes
	// sharing a slot collapse into a chord.
	slot    float64
	onset   float64
	wrapper model.NoteWrapper
}

// ParseFile transcribes the midi file at path with the default
// thirty-second-note precision and no triplet scan.
func ParseFile(path string) (*model.Piece, error) {
	return ParseFileWithPrecision(path, duration.DefaultPrecision, false)
}

// ParseFileWithPrecision transcribes the midi file at path. Notes
// shorter than precision are snapped to one grid cell, which groups
// fast runs into chords; tripletScan additionally searches each beat
// for triplet figures at extra cost.
func ParseFileWithPrecision(path string, precision duration.DurationType, tripletScan bool) (*model.Piece, error) {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSMF(s, precision, tripletScan)
}

// ParseSMF transcribes an already-decoded midi file.
//
// Classification uses the beat type of the first time signature for
// the whole piece; later meter changes are recorded in the result but
// do not re-derive the beat type. Channels are assumed monophonic: a
// note-on while another note is sounding is dropped.
func ParseSMF(s *smf.SMF, precision duration.DurationType, tripletScan bool) (*model.Piece, error) {
	ticksPerBeat, err := TicksPerBeat(s)
	if err != nil {
		return nil, err
	}
	if len(s.Tracks) == 0 {
		return nil, errors.New("midi file has no tracks")
	}

	sigs := TimeSignatures(s.Tracks[0])
	if len(sigs) == 0 {
		return nil, errors.New("midi file has no time signature, cannot classify durations")
	}

	piece := &model.Piece{
		BPM:            BPM(s.Tracks[0]),
		TimeSignatures: sigs,
		TicksPerBeat:   ticksPerBeat,
	}
	beatType := sigs[0].BeatType

	for _, track := range s.Tracks {
		raw := RawNotes(track, ticksPerBeat)
		piece.Tracks = append(piece.Tracks, model.Track{
			Name:  trackName(track),
			Notes: BuildNotes(raw, beatType, precision, tripletScan),
		})
	}
	return piece, nil
}

// TicksPerBeat reads the header timing field. Only metrical timing is
// supported; any other format aborts the parse.
func TicksPerBeat(s *smf.SMF) (float64, error) {
	if mt, ok := s.TimeFormat.(smf.MetricTicks); ok {
		return float64(mt.Ticks4th()), nil
	}
	return 0, fmt.Errorf("timing format %v not supported, only metrical timing", s.TimeFormat)
}

// BPM returns the tempo from the first tempo meta event, truncated to
// a whole number of beats per minute, or 0 when the track carries no
// tempo.
func BPM(track smf.Track) uint32 {
	for _, event := range track {
		var bpm float64
		if event.Message.GetMetaTempo(&bpm) {
			return uint32(bpm)
		}
	}
	return 0
}

// TimeSignatures walks a track's meta events and returns every meter
// change with the cumulative tick at which it occurs.
func TimeSignatures(track smf.Track) []model.TimeSignature {
	var res []model.TimeSignature
	var curTime uint32
	for _, event := range track {
		curTime += event.Delta
		var num, denom uint8
		if event.Message.GetMetaMeter(&num, &denom) {
			res = append(res, model.TimeSignature{
				BeatCount: num,
				// gomidi reports the human denominator;
				// classification wants the midi exponent.
				BeatType:         uint8(bits.TrailingZeros8(denom)),
				TimeOfOccurrence: curTime,
			})
		}
	}
	return res
}

func trackName(track smf.Track) string {
	for _, event := range track {
		var name string
		if event.Message.GetMetaInstrument(&name) {
			return name
		}
	}
	return ""
}

// RawNotes extracts the ordered intervals of a track, in beats. The
// fold keeps one sounding note at a time: a note-on while idle starts
// an interval (emitting a sentinel rest first if a gap precedes it), a
// note-off for that pitch closes it. Note-ons for other pitches while
// a note sounds are dropped by the monophonic model.
func RawNotes(track smf.Track, ticksPerBeat float64) []RawNote {
	var res []RawNote
	var status bool
	var curValue, curVelocity uint8
	var curTime, noteOnTime, noteOffTime uint32

	for _, event := range track {
		curTime += event.Delta
		var channel, key, velocity uint8
		switch {
		case event.Message.GetNoteStart(&channel, &key, &velocity):
			if status {
				continue
			}
			curValue = key
			curVelocity = velocity
			noteOnTime = curTime
			status = true
			if noteOnTime-noteOffTime > 0 {
				res = append(res, RawNote{
					Value: model.RestValue,
					Onset: float64(noteOffTime) / ticksPerBeat,
					Beats: float64(noteOnTime-noteOffTime) / ticksPerBeat,
				})
			}
		case event.Message.GetNoteEnd(&channel, &key):
			if !status || curValue != key {
				continue
			}
			res = append(res, RawNote{
				Value:    curValue,
				Onset:    float64(noteOnTime) / ticksPerBeat,
				Beats:    float64(curTime-noteOnTime) / ticksPerBeat,
				Velocity: curVelocity,
			})
			noteOffTime = curTime
			status = false
		}
	}
	return res
}

// BuildNotes quantizes raw intervals and applies the grouping engine,
// producing the final notation sequence for one track.
func BuildNotes(raw []RawNote, beatType uint8, precision duration.DurationType, tripletScan bool) []model.NoteWrapper {
	if len(raw) == 0 {
		return nil
	}
	precisionBeats := precision.GetBeatCount(beatType)
	quantized := quantizeNotes(raw, beatType, precisionBeats)
	if tripletScan {
		quantized = spliceTriplets(quantized, raw, beatType, precisionBeats)
	}
	return groupNotes(quantized)
}

// quantizeNotes classifies each interval on the precision grid. An
// interval whose length has no notatable name becomes a tied group.
func quantizeNotes(raw []RawNote, beatType uint8, precisionBeats float64) []quantizedNote {
	res := make([]quantizedNote, 0, len(raw))
	for _, note := range raw {
		d := duration.BeatTypeMap(note.Beats, beatType)
		if d.Duration != duration.NaN {
			// clipping to the grid can itself land off the table
			// (a 4.0-beat note on a dotted grid clips to 3.75),
			// so the result is re-checked before wrapping
			d = d.Quantize(beatType, precisionBeats)
		}
		var wrapper model.NoteWrapper
		if d.Duration == duration.NaN {
			wrapper = tiedNote(note, beatType, precisionBeats)
		} else {
			wrapper = model.NewNoteWrapper(note.Value, d, note.Velocity)
		}
		res = append(res, quantizedNote{
			slot:    note.Onset - math.Mod(note.Onset, precisionBeats),
			onset:   note.Onset,
			wrapper: wrapper,
		})
	}
	return res
}

// tiedNote greedily decomposes an unclassifiable length into a
// descending run of notatable lengths. The remainder is clipped to the
// grid first, so every step subtracts a whole multiple of the
// precision cell and the loop always terminates at zero. A
// decomposition into one unit is no tie at all and comes back as the
// bare leaf, like a single-note chord does.
func tiedNote(note RawNote, beatType uint8, precisionBeats float64) model.NoteWrapper {
	remaining := note.Beats - math.Mod(note.Beats, precisionBeats)
	if remaining < precisionBeats {
		remaining = precisionBeats
	}

	var notes []model.NoteWrapper
	for remaining > 0 {
		unit := nestedBeatValue(remaining, precisionBeats)
		if unit == 0 {
			break
		}
		d := duration.BeatTypeMap(unit, beatType)
		notes = append(notes, model.NewNoteWrapper(note.Value, d, note.Velocity))
		remaining -= unit
	}
	if len(notes) == 1 {
		return notes[0]
	}
	return model.TiedNote{Notes: notes}
}

// nestedBeatValue picks the largest notatable length that fits the
// remaining beats and lands on the precision grid.
func nestedBeatValue(beats float64, precisionBeats float64) float64 {
	var res float64
	for _, length := range duration.PossibleNoteLengths {
		if length <= beats && math.Mod(length, precisionBeats) == 0 {
			res = length
		}
	}
	return res
}

// groupNotes collapses consecutive notes sharing a grid slot into
// chords. A slot holding a single note stays a bare leaf.
func groupNotes(quantized []quantizedNote) []model.NoteWrapper {
	var notes []model.NoteWrapper
	var slotNotes []model.NoteWrapper
	var marker float64

	for _, q := range quantized {
		if q.slot != marker && len(slotNotes) > 0 {
			notes = append(notes, collapseSlot(slotNotes))
			slotNotes = nil
		}
		marker = q.slot
		slotNotes = append(slotNotes, q.wrapper)
	}
	if len(slotNotes) > 0 {
		notes = append(notes, collapseSlot(slotNotes))
	}
	return notes
}

func collapseSlot(slotNotes []model.NoteWrapper) model.NoteWrapper {
	if len(slotNotes) == 1 {
		return slotNotes[0]
	}
	return model.Chord{Notes: slotNotes}
}
