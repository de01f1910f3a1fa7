package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"space/internal/bubble"
)

var layoutCmd = &cobra.Command{
	Use:   "layout [label...]",
	Short: "Print a bubble layout for the given labels",
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetFloat64("width")
		height, _ := cmd.Flags().GetFloat64("height")
		screen, _ := cmd.Flags().GetString("screen")
		seed, _ := cmd.Flags().GetInt64("seed")
		reshuffle, _ := cmd.Flags().GetBool("reshuffle")

		var margins bubble.Margins
		switch screen {
		case "tone":
			margins = bubble.ToneMargins
		case "persona":
			margins = bubble.PersonaMargins
		default:
			return fmt.Errorf("unknown screen %q, must be tone or persona", screen)
		}
		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		rng := rand.New(rand.NewSource(seed))
		canvas := bubble.Size{Width: width, Height: height}
		states := bubble.InitializeLayout(args, canvas, margins, rng)
		if reshuffle {
			states = bubble.Reshuffle(states, canvas, margins, rng)
		}

		out := cmd.OutOrStdout()
		for _, s := range states {
			fmt.Fprintf(out, "%-12s x=%7.2f y=%7.2f duration=%.2fs\n", s.Label, s.Position.X, s.Position.Y, s.Duration)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.Flags().Float64("width", 390, "Canvas width")
	layoutCmd.Flags().Float64("height", 500, "Canvas height")
	layoutCmd.Flags().String("screen", "tone", "tone or persona")
	layoutCmd.Flags().Int64("seed", 0, "Random seed, 0 uses the current time")
	layoutCmd.Flags().Bool("reshuffle", false, "Apply one reshuffle after the initial layout")
}
