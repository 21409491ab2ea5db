package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "beatblox-midi",
	Short: "Transcribes midi files into notated music",
	Long:  `Transcribes midi files into beat-quantized notation: notes, rests, chords, ties and triplets.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
