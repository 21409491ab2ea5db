package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gb0808/beatblox-midi/duration"
	"github.com/gb0808/beatblox-midi/parsing"
	"github.com/gb0808/beatblox-midi/render"
)

var (
	parsePrecision string
	parseTriplets  bool
)

func init() {
	parseCmd.Flags().StringVar(&parsePrecision, "precision", "thirtysecond",
		"finest duration to resolve, e.g. eighth or dotted-sixteenth")
	parseCmd.Flags().BoolVar(&parseTriplets, "triplets", false,
		"scan each beat for triplet figures (slower)")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Transcribes a midi file and pretty prints it",
	Long:  `Transcribes a midi file and pretty prints it`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		precision, err := duration.ParsePrecision(parsePrecision)
		if err != nil {
			return err
		}
		piece, err := parsing.ParseFileWithPrecision(args[0], precision, parseTriplets)
		if err != nil {
			return err
		}
		render.Piece(os.Stdout, piece)
		return nil
	},
}
