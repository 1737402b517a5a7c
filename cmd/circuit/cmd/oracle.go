package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/netlist"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/oracle"
)

var oracleOutput string

var oracleCmd = &cobra.Command{
	Use:   "oracle",
	Short: "Inspect or regenerate the netlist oracle",
}

var oracleGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Expand the seed circuits into a sorted oracle table",
	Long: `Expand every seed circuit into its color permutations and write the
sorted table in the format of the embedded asset.

Examples:
  circuit oracle generate                      # Write to stdout
  circuit oracle generate -o netlists.inc`,
	Args: cobra.NoArgs,
	RunE: runOracleGenerate,
}

var oracleLookupCmd = &cobra.Command{
	Use:   "lookup <key>",
	Short: "Show which LEDs a packed netlist lights",
	Long: `Decode a packed netlist key and look it up in the embedded table.

Examples:
  circuit oracle lookup 0x04080000`,
	Args: cobra.ExactArgs(1),
	RunE: runOracleLookup,
}

func init() {
	rootCmd.AddCommand(oracleCmd)
	oracleCmd.AddCommand(oracleGenerateCmd)
	oracleCmd.AddCommand(oracleLookupCmd)

	oracleGenerateCmd.Flags().StringVarP(&oracleOutput, "output", "o", "", "output file (default stdout)")
}

func runOracleGenerate(cmd *cobra.Command, _ []string) error {
	table := oracle.Generate(oracle.Seeds)
	if oracleOutput == "" {
		return table.Write(cmd.OutOrStdout())
	}

	f, err := os.Create(oracleOutput)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()
	if err := table.Write(f); err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d entries from %d seeds to %s\n", len(table), len(oracle.Seeds), oracleOutput)
	}
	return f.Close()
}

func runOracleLookup(cmd *cobra.Command, args []string) error {
	v, err := strconv.ParseUint(args[0], 0, 32)
	if err != nil {
		return fmt.Errorf("invalid key %q: %w", args[0], err)
	}
	k := netlist.Key(v)
	if k&^netlist.KeyMask != 0 {
		return fmt.Errorf("key %s is wider than 27 bits", k)
	}

	table := oracle.Default()
	m := netlist.Unpack(k)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Key:   %s\n", k)
	fmt.Fprintf(out, "Known: %t\n", table.Contains(k))
	fmt.Fprintf(out, "LEDs:  %s\n", table.Lookup(k))
	fmt.Fprintln(out, "Connections:")
	for _, p := range m.Pairs() {
		fmt.Fprintf(out, "  %s - %s\n", p[0], p[1])
	}
	return nil
}
