// Package render pretty prints a transcribed piece. Each composite
// node kind gets its own banner so ties, chords and triplets are easy
// to tell apart in terminal output.
package render

import (
	"fmt"
	"io"

	"github.com/gb0808/beatblox-midi/model"
)

// Piece writes the whole transcription to w.
func Piece(w io.Writer, p *model.Piece) {
	fmt.Fprintf(w, "BPM: %d\n", p.BPM)
	for _, track := range p.Tracks {
		fmt.Fprintf(w, "=============== %s ===============\n", track.Name)
		for _, note := range track.Notes {
			Node(w, note)
		}
	}
}

// Node writes one notation node to w. Recursion depth is bounded by
// the shallow-by-construction nesting of the model.
func Node(w io.Writer, wrapper model.NoteWrapper) {
	switch n := wrapper.(type) {
	case model.Note:
		fmt.Fprintf(w, "Note: %d | Duration: %s | Velocity: %d\n", n.Value, n.Duration, n.Velocity)
	case model.Rest:
		fmt.Fprintf(w, "Rest | Duration: %s\n", n.Duration)
	case model.TiedNote:
		fmt.Fprintln(w, "====Tied Notes====")
		for _, child := range n.Notes {
			Node(w, child)
		}
		fmt.Fprintln(w, "==================")
	case model.Chord:
		fmt.Fprintln(w, "++++++Chord+++++++")
		for _, child := range n.Notes {
			Node(w, child)
		}
		fmt.Fprintln(w, "++++++++++++++++++")
	case model.Triplet:
		fmt.Fprintln(w, "-----Triplet------")
		for _, child := range n.Notes {
			Node(w, child)
		}
		fmt.Fprintln(w, "------------------")
	}
}
