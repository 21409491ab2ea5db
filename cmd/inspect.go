package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gb0808/beatblox-midi/midi"
	"github.com/gb0808/beatblox-midi/parsing"
	"github.com/gb0808/beatblox-midi/util"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file> [max-intervals]",
	Short: "Dumps the raw extracted intervals of a midi file",
	Long:  `Dumps the raw note/rest intervals each track yields before quantization`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxNum := 0
		if len(args) == 2 {
			arg, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			maxNum = arg
		}
		return inspect(args[0], maxNum)
	},
}

func inspect(path string, maxNum int) error {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}
	ticksPerBeat, err := parsing.TicksPerBeat(s)
	if err != nil {
		return err
	}

	for i, track := range s.Tracks {
		raw := parsing.RawNotes(track, ticksPerBeat)
		fmt.Printf("track %v: %v intervals\n", i, len(raw))
		n := len(raw)
		if maxNum > 0 {
			n = util.Min(n, maxNum)
		}
		for _, note := range raw[:n] {
			fmt.Printf("  value: %v onset: %v beats: %v velocity: %v\n",
				note.Value, note.Onset, note.Beats, note.Velocity)
		}
	}
	return nil
}
