package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gb0808/beatblox-midi/duration"
	"github.com/gb0808/beatblox-midi/model"
)

func quarter() duration.DurationType {
	return duration.DurationType{Duration: duration.Quarter, Modifier: duration.None}
}

func TestPieceOutput(t *testing.T) {
	piece := &model.Piece{
		BPM:          120,
		TicksPerBeat: 480,
		Tracks: []model.Track{{
			Name: "Piano",
			Notes: []model.NoteWrapper{
				model.Note{Value: 60, Duration: quarter(), Velocity: 90},
				model.Rest{Duration: quarter()},
			},
		}},
	}

	var buf bytes.Buffer
	Piece(&buf, piece)

	out := buf.String()
	assert := assert.New(t)
	assert.Contains(out, "BPM: 120")
	assert.Contains(out, "=============== Piano ===============")
	assert.Contains(out, "Note: 60 | Duration: quarter note | Velocity: 90")
	assert.Contains(out, "Rest | Duration: quarter note")
}

func TestCompositeBanners(t *testing.T) {
	leaf := model.Note{Value: 62, Duration: quarter(), Velocity: 70}

	cases := []struct {
		node   model.NoteWrapper
		banner string
	}{
		{model.TiedNote{Notes: []model.NoteWrapper{leaf, leaf}}, "====Tied Notes===="},
		{model.Chord{Notes: []model.NoteWrapper{leaf, leaf}}, "++++++Chord+++++++"},
		{model.Triplet{Notes: []model.NoteWrapper{leaf, leaf, leaf}}, "-----Triplet------"},
	}
	for _, c := range cases {
		t.Run(c.banner, func(t *testing.T) {
			var buf bytes.Buffer
			Node(&buf, c.node)
			assert.Contains(t, buf.String(), c.banner)
			assert.Contains(t, buf.String(), "Note: 62")
		})
	}
}
