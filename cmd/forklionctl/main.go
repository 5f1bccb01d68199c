package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"forklion/internal/ai"
	"forklion/internal/evo"
	"forklion/internal/storage"
	"forklion/pkg/forklion"
)

var (
	// Global flags
	verbose      bool
	storeKind    string
	dbPath       string
	catalogPath  string
	seed         int64
	mutationRate float64
	inheritBias  float64
	useAI        bool
	geminiModel  string

	// Logger
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "forklionctl",
	Short: "forklionctl - trait evolution engine for the ForkLion digital pet",
	Long: `forklionctl manages ForkLion trait records: genesis of a new lion,
daily evolution cycles, and breeding across forks.

Records are exchanged as JSON files (the repository-committed pet state);
a sqlite-backed store keeps lineage and evolution history when enabled.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db-path", "forklion.db", "sqlite database path")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "trait catalog override (YAML)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	rootCmd.PersistentFlags().Float64Var(&mutationRate, "mutation-rate", evo.DefaultMutationRate, "per-category mutation probability in [0,1]")
	rootCmd.PersistentFlags().Float64Var(&inheritBias, "inherit-bias", evo.DefaultInheritBias, "single-parent inherit probability in [0,1]")
	rootCmd.PersistentFlags().BoolVar(&useAI, "ai", false, "use the Gemini advisor for mutation selection (needs GEMINI_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&geminiModel, "gemini-model", ai.DefaultModel, "Gemini model for the advisor")

	rootCmd.AddCommand(genesisCmd)
	rootCmd.AddCommand(evolveCmd)
	rootCmd.AddCommand(breedCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(lineageCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(catalogCmd)
}

func buildClient(cmd *cobra.Command) (*forklion.Client, *ai.GeminiAdvisor, error) {
	cfg := evo.DefaultConfig()
	cfg.MutationRate = mutationRate
	cfg.InheritBias = inheritBias

	var advisor *ai.GeminiAdvisor
	if useAI {
		key := os.Getenv("GEMINI_API_KEY")
		var err error
		advisor, err = ai.NewGeminiAdvisor(cmd.Context(), key, geminiModel, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("gemini advisor enabled", zap.String("model", geminiModel))
	}

	opts := forklion.Options{
		StoreKind:   storeKind,
		DBPath:      dbPath,
		CatalogPath: catalogPath,
		Evolver:     &cfg,
		Seed:        seed,
	}
	if advisor != nil {
		opts.Advisor = advisor
	}

	client, err := forklion.New(opts)
	if err != nil {
		return nil, nil, err
	}
	if err := client.Init(cmd.Context()); err != nil {
		return nil, nil, err
	}
	return client, advisor, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
