package cmd

import (
	"fmt"
	"math"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver

	"github.com/gb0808/beatblox-midi/duration"
	"github.com/gb0808/beatblox-midi/model"
	"github.com/gb0808/beatblox-midi/parsing"
	"github.com/gb0808/beatblox-midi/render"
)

var (
	liveBPM       float64
	livePort      int
	livePrecision string
	liveTriplets  bool
)

func init() {
	liveCmd.Flags().Float64Var(&liveBPM, "bpm", 120, "tempo used to map played time onto beats")
	liveCmd.Flags().IntVar(&livePort, "port", 0, "midi input port number")
	liveCmd.Flags().StringVar(&livePrecision, "precision", "eighth",
		"finest duration to resolve")
	liveCmd.Flags().BoolVar(&liveTriplets, "triplets", false,
		"scan each beat for triplet figures")
	rootCmd.AddCommand(liveCmd)
}

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Transcribes a midi input port as you play",
	Long:  `Listens on a midi input port and pretty prints the transcription after each pause`,
	RunE: func(cmd *cobra.Command, args []string) error {
		precision, err := duration.ParsePrecision(livePrecision)
		if err != nil {
			return err
		}
		return live(precision)
	},
}

type noteEvent struct {
	ms       int32
	on       bool
	key      uint8
	velocity uint8
}

// liveRawNotes folds recorded events into intervals the same way the
// file extractor does, mapping milliseconds onto beats at the
// configured tempo. Played timing jitters both ways, so onsets and
// lengths are snapped to the nearest grid cell up front.
func liveRawNotes(events []noteEvent, bpm float64, precisionBeats float64) []parsing.RawNote {
	msPerBeat := 60000.0 / bpm
	snap := func(ms int32) float64 {
		beats := float64(ms) / msPerBeat
		return math.Round(beats/precisionBeats) * precisionBeats
	}

	var res []parsing.RawNote
	var status bool
	var curValue, curVelocity uint8
	var noteOnMs, noteOffMs int32

	for _, e := range events {
		if e.on {
			if status {
				continue
			}
			curValue = e.key
			curVelocity = e.velocity
			noteOnMs = e.ms
			status = true
			if gap := snap(noteOnMs) - snap(noteOffMs); gap > 0 {
				res = append(res, parsing.RawNote{
					Value: model.RestValue,
					Onset: snap(noteOffMs),
					Beats: gap,
				})
			}
		} else if status && e.key == curValue {
			beats := snap(e.ms) - snap(noteOnMs)
			if beats <= 0 {
				beats = precisionBeats
			}
			res = append(res, parsing.RawNote{
				Value:    curValue,
				Onset:    snap(noteOnMs),
				Beats:    beats,
				Velocity: curVelocity,
			})
			noteOffMs = e.ms
			status = false
		}
	}
	return res
}

func live(precision duration.DurationType) error {
	defer gomidi.CloseDriver()

	in, err := gomidi.InPort(livePort)
	if err != nil {
		return fmt.Errorf("can't find midi input port %v: %w", livePort, err)
	}

	// 4/4 is assumed for live input: there is no meter meta event to
	// read from a keyboard.
	const beatType = 2
	precisionBeats := precision.GetBeatCount(beatType)

	var mu sync.Mutex
	var events []noteEvent
	deb := debounce.New(750 * time.Millisecond)

	print := func() {
		mu.Lock()
		recorded := make([]noteEvent, len(events))
		copy(recorded, events)
		mu.Unlock()

		raw := liveRawNotes(recorded, liveBPM, precisionBeats)
		notes := parsing.BuildNotes(raw, beatType, precision, liveTriplets)
		fmt.Println("=============== live ===============")
		for _, note := range notes {
			render.Node(os.Stdout, note)
		}
	}

	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		var channel, key, velocity uint8
		switch {
		case msg.GetNoteStart(&channel, &key, &velocity):
			mu.Lock()
			events = append(events, noteEvent{ms: timestampms, on: true, key: key, velocity: velocity})
			mu.Unlock()
			deb(print)
		case msg.GetNoteEnd(&channel, &key):
			mu.Lock()
			events = append(events, noteEvent{ms: timestampms, on: false, key: key})
			mu.Unlock()
			deb(print)
		}
	})
	if err != nil {
		return err
	}
	defer stop()

	fmt.Printf("listening on %v, ctrl-c to quit\n", in)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	<-sig
	return nil
}
