package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/juridex/lexgraph/internal/profile"
)

var version = "0.4.0"

var rootCmd = &cobra.Command{
	Use:   "lexgraph",
	Short: "Hypergraph analysis engine for legal case material",
	Long: `lexgraph builds a hypergraph from case files, propagates node
embeddings through it, and reports communities, link predictions and
node importance.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(version)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("mode", "dev", `mode of the engine, can be "dev" or "prod"`)
	flags.String("data", "", "directory to write reports to, stdout if empty")
	flags.Int("embedding-dim", 64, "input embedding dimension")
	flags.Int("hidden-dim", 32, "hidden layer dimension")
	flags.Int("layers", 2, "number of propagation layers")
	flags.String("agg", "mean", "aggregation strategy: mean, sum, max, attention")
	flags.Int("kmeans-iter", 50, "k-means iteration cap")

	for _, name := range []string{"mode", "data", "embedding-dim", "hidden-dim", "layers", "agg", "kmeans-iter"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("lexgraph")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	viper.SetConfigName("lexgraph")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadProfile assembles the profile from config file, environment and flags,
// in increasing order of precedence.
func loadProfile() (*profile.Profile, error) {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	p := &profile.Profile{}
	p.FromEnv()

	p.Mode = viper.GetString("mode")
	p.Data = viper.GetString("data")
	p.Version = version
	p.EmbeddingDim = viper.GetInt("embedding-dim")
	p.HiddenDim = viper.GetInt("hidden-dim")
	p.NumLayers = viper.GetInt("layers")
	p.MaxKMeansIter = viper.GetInt("kmeans-iter")

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func main() {
	logLevel := slog.LevelInfo
	if os.Getenv("LEXGRAPH_DEBUG") == "true" {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
