package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/piece"
)

var piecesCmd = &cobra.Command{
	Use:   "pieces",
	Short: "List every piece with its identifier and edges",
	Args:  cobra.NoArgs,
	RunE:  runPieces,
}

func init() {
	rootCmd.AddCommand(piecesCmd)
}

func runPieces(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-3s %-18s %-14s %-6s %s\n", "ID", "Name", "Kind", "Edges", "Notes")
	for _, t := range piece.All() {
		notes := ""
		switch {
		case t.Unknown():
			notes = "placeholder for " + piece.Resolve(t).String()
		case t.SwitchPosition() > 0:
			notes = fmt.Sprintf("position %d", t.SwitchPosition())
		default:
			if led, ok := t.IsLED(); ok {
				notes = fmt.Sprintf("%s anode %s cathode %s", led.Color, led.Anode, led.Cathode)
			}
		}
		fmt.Fprintf(out, "%-3d %-18s %-14s %-6s %s\n", t, t, t.Kind(), piece.Connects(t, piece.Normal), notes)
	}
	return nil
}
