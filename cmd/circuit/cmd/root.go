package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/engine"
	"github.com/OpenTraceLab/OpenTraceCircuit/pkg/level"
)

var (
	// Global flags
	verbose  bool
	cfgFile  string
	levelDir string

	conf = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "circuit",
	Short: "Circuit puzzle rule engine",
	Long: `Evaluate boards of the 5x5 circuit puzzle: prune unsupported pieces,
trace power through the wires, look up which LEDs light and check the
result against a level's goal.

Settings are read from circuit.yaml (current directory or
$HOME/.config/circuit), from CIRCUIT_* environment variables and from a
.env file in the current directory.

Examples:
  circuit levels                          # List the built-in levels
  circuit levels 7                        # Show level 7
  circuit eval --level 1                  # Evaluate the initial board of level 1
  circuit eval board.lvl --strategy exhaustive
  circuit oracle lookup 0x01020000        # Which LEDs does this netlist light?
  circuit serve --addr :8080              # Start the HTTP API`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&cfgFile, "config", "", "config file (default circuit.yaml)")
	pf.StringVar(&levelDir, "dir", "", "load levels from this directory instead of the built-in pack")

	pf.String("strategy", engine.StrategySampled, "path tracing strategy (sampled, exhaustive)")
	pf.Int("generations", 0, "decision generations per leg (0 = default)")
	pf.Int("samples", 0, "walks per generation (0 = default)")
	pf.Int("max-hops", 0, "hop limit per walk (0 = derived)")
	pf.Bool("nets", false, "attach merged nets to evaluations")

	for _, name := range []string{"strategy", "generations", "samples", "max-hops", "nets"} {
		if err := conf.BindPFlag(name, pf.Lookup(name)); err != nil {
			panic(err)
		}
	}
	conf.SetDefault("require-empty-hand", true)
	conf.SetDefault("require-no-held-piece", true)
}

func initConfig(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: load .env: %w", err)
	}

	conf.SetEnvPrefix("CIRCUIT")
	conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	conf.AutomaticEnv()

	if cfgFile != "" {
		conf.SetConfigFile(cfgFile)
	} else {
		conf.SetConfigName("circuit")
		conf.SetConfigType("yaml")
		conf.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			conf.AddConfigPath(home + "/.config/circuit")
		}
	}
	if err := conf.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("config: %w", err)
		}
	} else if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "Using config file %s\n", conf.ConfigFileUsed())
	}
	return nil
}

// engineConfig assembles the evaluator settings from flags, environment
// and config file.
func engineConfig() (*engine.Config, error) {
	cfg := &engine.Config{
		Strategy:           conf.GetString("strategy"),
		Generations:        conf.GetInt("generations"),
		Samples:            conf.GetInt("samples"),
		MaxHops:            conf.GetInt("max-hops"),
		RequireEmptyHand:   conf.GetBool("require-empty-hand"),
		RequireNoHeldPiece: conf.GetBool("require-no-held-piece"),
		ExportNets:         conf.GetBool("nets"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command) *log.Logger {
	if !verbose {
		return nil
	}
	return log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
}

func newEvaluator(cmd *cobra.Command) (*engine.Evaluator, error) {
	cfg, err := engineConfig()
	if err != nil {
		return nil, err
	}
	return engine.NewEvaluator(cfg, nil, newLogger(cmd))
}

// loadLevels returns the --dir pack or the built-in one.
func loadLevels() (*level.MemoryRepository, error) {
	if levelDir == "" {
		return level.Default()
	}
	repo := level.NewMemoryRepository()
	if err := repo.LoadDir(levelDir); err != nil {
		return nil, err
	}
	if repo.Len() == 0 {
		return nil, fmt.Errorf("no .lvl files in %s", levelDir)
	}
	return repo, nil
}
