package parsing

import (
	"math"
	"sort"

	"github.com/gb0808/beatblox-midi/duration"
	"github.com/gb0808/beatblox-midi/model"
	"github.com/gb0808/beatblox-midi/util"
)

// Triplet detection works on a finer per-beat grid than the precision
// cells: each beat is split into enough subdivision slots to resolve
// both the precision grid and a three-onset figure, and a beat whose
// sounding onsets form three roughly even slots is re-rendered as one
// Triplet node. Children carry the duplet-equivalent duration (triplet
// eighths read as plain eighths), with "triplet" conveyed only by the
// wrapper.

// tripletDivisions computes the subdivision slot count per beat.
func tripletDivisions(precisionBeats float64) int {
	units := int(math.Round(1 / precisionBeats))
	if units < 1 {
		units = 1
	}
	return util.Lcm(3, units)
}

// spliceTriplets replaces every candidate beat's quantized notes with
// a single Triplet node, leaving all other notes untouched. A
// candidate beat's span is excluded from ordinary classification.
func spliceTriplets(quantized []quantizedNote, raw []RawNote, beatType uint8, precisionBeats float64) []quantizedNote {
	divisions := tripletDivisions(precisionBeats)
	candidates := tripletBeats(raw, divisions)
	if len(candidates) == 0 {
		return quantized
	}

	emitted := make(map[int]bool)
	var res []quantizedNote
	for _, q := range quantized {
		beat := int(q.onset)
		if !candidates[beat] {
			res = append(res, q)
			continue
		}
		if emitted[beat] {
			continue
		}
		emitted[beat] = true
		res = append(res, quantizedNote{
			slot:    float64(beat),
			onset:   float64(beat),
			wrapper: tripletNode(raw, beat, beatType),
		})
	}
	return res
}

// tripletBeats finds the beats whose sounding onsets look like a
// triplet: exactly three distinct subdivision slots, cyclic gaps
// within two slots of each other, and a longest gap wide enough to
// span the beat (more than a quarter of the subdivisions).
func tripletBeats(raw []RawNote, divisions int) map[int]bool {
	buckets := make(map[int][]int)
	for _, note := range raw {
		if note.Value == model.RestValue {
			continue
		}
		beat, slot := subdivisionSlot(note.Onset, divisions)
		if !contains(buckets[beat], slot) {
			buckets[beat] = append(buckets[beat], slot)
		}
	}

	res := make(map[int]bool)
	for beat, slots := range buckets {
		if len(slots) != 3 {
			continue
		}
		sort.Ints(slots)
		gaps := [3]int{
			slots[1] - slots[0],
			slots[2] - slots[1],
			divisions - slots[2] + slots[0],
		}
		min, max := gaps[0], gaps[0]
		for _, g := range gaps[1:] {
			if g < min {
				min = g
			}
			if g > max {
				max = g
			}
		}
		if max-min <= 2 && max > divisions/4 {
			res[beat] = true
		}
	}
	return res
}

// subdivisionSlot buckets an onset into its beat and nearest
// subdivision slot, rolling onto the next beat when rounding lands on
// the boundary.
func subdivisionSlot(onset float64, divisions int) (beat int, slot int) {
	beat = int(onset)
	slot = int(math.Round((onset - float64(beat)) * float64(divisions)))
	if slot >= divisions {
		beat++
		slot = 0
	}
	return beat, slot
}

// tripletNode renders one candidate beat: its sounding notes in onset
// order, each relabeled with the next-coarser duplet duration.
func tripletNode(raw []RawNote, beat int, beatType uint8) model.NoteWrapper {
	d := duration.BeatTypeMap(0.5, beatType)
	var notes []model.NoteWrapper
	for _, note := range raw {
		if note.Value == model.RestValue || int(note.Onset) != beat {
			continue
		}
		notes = append(notes, model.Note{Value: note.Value, Duration: d, Velocity: note.Velocity})
	}
	return model.Triplet{Notes: notes}
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
