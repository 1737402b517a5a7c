package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/level"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [number]",
	Short: "List levels or show one",
	Long: `List the levels of the built-in pack (or of --dir), or print one level
in pack format.

Examples:
  circuit levels
  circuit levels 12
  circuit levels --dir ./mypack`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLevels,
}

func init() {
	rootCmd.AddCommand(levelsCmd)
}

func runLevels(cmd *cobra.Command, args []string) error {
	repo, err := loadLevels()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid level number %q", args[0])
		}
		l, err := repo.Lookup(n)
		if err != nil {
			return err
		}
		fmt.Fprint(out, level.Format(l))
		return nil
	}

	list := repo.List()
	fmt.Fprintf(out, "%d level(s)\n", len(list))
	fmt.Fprintf(out, "%-6s %-7s %-7s %s\n", "Level", "Switch", "Pieces", "Goal")
	for _, l := range list {
		sw := "no"
		if l.HasSwitch() {
			sw = "yes"
		}
		fmt.Fprintf(out, "%-6d %-7s %-7d %s\n", l.Number, sw, l.Pieces(), l.Goal.States(firstPosition(l)))
	}
	return nil
}

// firstPosition picks the switch position shown in the listing.
func firstPosition(l *level.Level) int {
	if l.HasSwitch() {
		return 1
	}
	return -1
}
