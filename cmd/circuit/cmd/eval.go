package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/engine"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/goal"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/level"
)

var (
	evalLevel int
	evalHeld  bool
	evalKiCad bool
)

var evalCmd = &cobra.Command{
	Use:   "eval [file]",
	Short: "Evaluate boards and check them against their goals",
	Long: `Evaluate every level in a pack file, or one level of the current pack
with --level. The board of each level is taken as the current state and
its hand as the pieces still to place.

For each level the command prints the short-circuit flag, the lit LEDs,
the packed netlist key, whether the rules are met and the goal result.

Examples:
  circuit eval --level 1
  circuit eval solved.lvl
  circuit eval solved.lvl --nets           # Also print the merged nets
  circuit eval solved.lvl --kicad          # Print nets as a KiCad netlist`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().IntVarP(&evalLevel, "level", "l", 0, "evaluate this level of the current pack")
	evalCmd.Flags().BoolVar(&evalHeld, "held", false, "treat a piece as picked up")
	evalCmd.Flags().BoolVar(&evalKiCad, "kicad", false, "print nets as a KiCad netlist")
}

func runEval(cmd *cobra.Command, args []string) error {
	var levels []*level.Level
	switch {
	case len(args) == 1 && evalLevel != 0:
		return fmt.Errorf("give a file or --level, not both")
	case len(args) == 1:
		var err error
		levels, err = level.LoadFile(args[0])
		if err != nil {
			return err
		}
	case evalLevel != 0:
		repo, err := loadLevels()
		if err != nil {
			return err
		}
		l, err := repo.Lookup(evalLevel)
		if err != nil {
			return err
		}
		levels = []*level.Level{l}
	default:
		return fmt.Errorf("nothing to evaluate: give a file or --level")
	}

	e, err := newEvaluator(cmd)
	if err != nil {
		return err
	}
	if evalKiCad {
		e.Config().ExportNets = true
	}

	out := cmd.OutOrStdout()
	for i, l := range levels {
		if i > 0 {
			fmt.Fprintln(out)
		}
		hand := l.DealtHand()
		st := engine.Status{Held: evalHeld, HandEmpty: hand.Empty()}
		var tr goal.Tracker
		ev := e.Check(l.Board(), st, &l.Goal, &tr)
		if err := printEvaluation(out, l, ev); err != nil {
			return err
		}
	}
	return nil
}

func printEvaluation(out io.Writer, l *level.Level, ev *engine.Evaluation) error {
	fmt.Fprintf(out, "Level %d\n", l.Number)
	fmt.Fprintf(out, "  Short circuit: %t\n", ev.Short)
	fmt.Fprintf(out, "  LEDs:          %s\n", ev.LEDs)
	fmt.Fprintf(out, "  Key:           %s\n", ev.Key)
	if ev.SwitchPosition > 0 {
		fmt.Fprintf(out, "  Switch:        %d\n", ev.SwitchPosition)
	}
	fmt.Fprintf(out, "  Meets rules:   %t\n", ev.MeetsRules)
	if ev.Stats.Changes() > 0 {
		fmt.Fprintf(out, "  Pruned:        %d removed, %d degraded\n", ev.Stats.Removed, ev.Stats.Degenerated)
	}

	if g := ev.Goal; g != nil && l.Goal.Lines() > 0 {
		for i, row := range strings.Split(l.Goal.String(), "\n") {
			mark := "-"
			if g.Met[i] {
				mark = "ok"
			}
			fmt.Fprintf(out, "  Goal:          %-40s %s\n", row, mark)
		}
		fmt.Fprintf(out, "  Complete:      %t\n", g.Complete)
	}

	if ev.Nets != nil {
		if evalKiCad {
			fmt.Fprint(out, ev.Nets.ExportKiCad())
			return nil
		}
		data, err := ev.Nets.ExportJSON()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n", data)
	}
	return nil
}
