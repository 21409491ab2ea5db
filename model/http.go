package model

// NoteJSON is the wire shape of one notation node. Type is one of
// "note", "rest", "chord", "tied" or "triplet"; leaves fill the value
// fields and composites fill Notes.
type NoteJSON struct {
	Type string `json:"type"`
	// Value and Velocity are never omitted: pitch 0 and velocity 0
	// are legitimate midi values.
	Value    uint8      `json:"value"`
	Velocity uint8      `json:"velocity"`
	Duration string     `json:"duration,omitempty"`
	Notes    []NoteJSON `json:"notes,omitempty"`
}

type TimeSignatureJSON struct {
	BeatCount        uint8  `json:"beat_count"`
	BeatType         uint8  `json:"beat_type"`
	TimeOfOccurrence uint32 `json:"time_of_occurrence"`
}

type TrackJSON struct {
	Name  string     `json:"name"`
	Notes []NoteJSON `json:"notes"`
}

// TranscribeResponse is the body returned by POST /transcribe.
type TranscribeResponse struct {
	BPM            uint32              `json:"bpm"`
	TicksPerBeat   float64             `json:"ticks_per_beat"`
	TimeSignatures []TimeSignatureJSON `json:"time_signatures"`
	Tracks         []TrackJSON         `json:"tracks"`
	Metadata       *MidiMetadata       `json:"metadata,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

// MidiMetadata is the optional per-file metadata joined in from the
// metadata table.
type MidiMetadata struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	Release string `json:"release"`
	Year    uint   `json:"year,omitempty"`
}

// NewNoteJSON converts a notation node to its wire shape.
func NewNoteJSON(w NoteWrapper) NoteJSON {
	switch n := w.(type) {
	case Note:
		return NoteJSON{
			Type:     "note",
			Value:    n.Value,
			Duration: n.Duration.String(),
			Velocity: n.Velocity,
		}
	case Rest:
		return NoteJSON{Type: "rest", Duration: n.Duration.String()}
	case Chord:
		return NoteJSON{Type: "chord", Notes: newNoteJSONs(n.Notes)}
	case TiedNote:
		return NoteJSON{Type: "tied", Notes: newNoteJSONs(n.Notes)}
	case Triplet:
		return NoteJSON{Type: "triplet", Notes: newNoteJSONs(n.Notes)}
	}
	return NoteJSON{Type: "unknown"}
}

func newNoteJSONs(ns []NoteWrapper) []NoteJSON {
	res := make([]NoteJSON, 0, len(ns))
	for _, n := range ns {
		res = append(res, NewNoteJSON(n))
	}
	return res
}

// NewTranscribeResponse flattens a piece into its wire shape.
func NewTranscribeResponse(p *Piece) TranscribeResponse {
	res := TranscribeResponse{
		BPM:          p.BPM,
		TicksPerBeat: p.TicksPerBeat,
	}
	for _, ts := range p.TimeSignatures {
		res.TimeSignatures = append(res.TimeSignatures, TimeSignatureJSON{
			BeatCount:        ts.BeatCount,
			BeatType:         ts.BeatType,
			TimeOfOccurrence: ts.TimeOfOccurrence,
		})
	}
	for _, tr := range p.Tracks {
		res.Tracks = append(res.Tracks, TrackJSON{
			Name:  tr.Name,
			Notes: newNoteJSONs(tr.Notes),
		})
	}
	return res
}
