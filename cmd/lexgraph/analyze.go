package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/juridex/lexgraph/internal/profile"
	"github.com/juridex/lexgraph/plugin/ai"
	"github.com/juridex/lexgraph/plugin/analysis"
	"github.com/juridex/lexgraph/plugin/hypergnn"
	"github.com/juridex/lexgraph/plugin/hypergraph"
	"github.com/juridex/lexgraph/store"
)

var (
	flagCommunities     int
	flagPredictCutoff   float64
	flagHierarchyLevels int
	flagAnnotate        bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [files...]",
	Short: "Analyze one or more case files",
	Long: `Builds a hypergraph from each case file, runs embedding propagation
and reports communities, link predictions, node importance and overall
structure. Each file produces one JSON report.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVarP(&flagCommunities, "communities", "k", 4, "number of communities to detect")
	analyzeCmd.Flags().Float64Var(&flagPredictCutoff, "predict-cutoff", 0.7, "minimum link-prediction score to report")
	analyzeCmd.Flags().IntVar(&flagHierarchyLevels, "hierarchy-levels", 0, "coarsening levels to build, 0 disables")
	analyzeCmd.Flags().BoolVar(&flagAnnotate, "annotate", false, "annotate the report with an LLM case summary")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	p, err := loadProfile()
	if err != nil {
		return err
	}

	embedder, generator, err := buildAIServices(p)
	if err != nil {
		return err
	}

	snapshots := store.NewMemoryStore()
	reports := make([]*Report, len(args))

	g, ctx := errgroup.WithContext(cmd.Context())
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			report, err := analyzeFile(ctx, path, p, embedder, generator, snapshots)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, report := range reports {
		if err := writeReport(p, report); err != nil {
			return err
		}
	}
	return nil
}

// buildAIServices wires the embedding and generation collaborators. With AI
// disabled the engine falls back to the deterministic local embedder and no
// generator.
func buildAIServices(p *profile.Profile) (ai.EmbeddingService, ai.TextGenerator, error) {
	cfg := ai.NewConfigFromProfile(p)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	if !cfg.Enabled {
		return ai.NewLocalEmbedder(p.EmbeddingDim), nil, nil
	}

	embedder, err := ai.NewEmbeddingService(&cfg.Embedding)
	if err != nil {
		return nil, nil, err
	}
	generator, err := ai.NewTextGenerator(&cfg.Generator)
	if err != nil {
		return nil, nil, err
	}
	return embedder, generator, nil
}

func analyzeFile(ctx context.Context, path string, p *profile.Profile, embedder ai.EmbeddingService, generator ai.TextGenerator, snapshots store.Store) (*Report, error) {
	started := time.Now()

	cf, err := LoadCaseFile(path)
	if err != nil {
		return nil, err
	}
	tg, err := BuildGraph(cf)
	if err != nil {
		return nil, err
	}
	g := tg.Hypergraph

	embeddings, err := seedEmbeddings(ctx, g, p, embedder)
	if err != nil {
		return nil, err
	}

	agg, err := hypergnn.ParseAggregation(viper.GetString("agg"))
	if err != nil {
		return nil, err
	}
	layers := make([]hypergnn.LayerConfig, p.NumLayers)
	for i := range layers {
		layers[i] = hypergnn.LayerConfig{Dim: p.HiddenDim, Agg: agg}
	}
	model, err := hypergnn.NewModel(hypergnn.Config{
		InputDim: p.EmbeddingDim,
		Layers:   layers,
		Seed:     1,
	})
	if err != nil {
		return nil, err
	}
	out, err := model.Forward(g, embeddings)
	if err != nil {
		return nil, err
	}
	g.ApplyEmbeddings(out)

	communities := analysis.DetectCommunities(out, flagCommunities, analysis.CommunityOptions{
		MaxIterations: p.MaxKMeansIter,
		Seed:          1,
	})
	for id, c := range communities {
		if n := g.Node(id); n != nil {
			n.Community = c
		}
	}

	importance := analysis.NodeImportance(g, out, analysis.DefaultImportanceWeights)
	for id, score := range importance {
		if n := g.Node(id); n != nil {
			n.Centrality = score
		}
	}

	predictions, err := predictMissingLinks(g, out, flagPredictCutoff)
	if err != nil {
		return nil, err
	}

	pooled, err := analysis.Pool(out, hypergnn.AggMean, nil)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:          uuid.NewString(),
		File:           filepath.Base(path),
		Title:          cf.Title,
		GeneratedAt:    time.Now().UTC(),
		Version:        p.Version,
		Stats:          g.Statistics(),
		Communities:    communities,
		Importance:     importance,
		Predictions:    predictions,
		GraphEmbedding: pooled,
	}

	if flagHierarchyLevels > 1 {
		hierarchy, err := analysis.BuildHierarchy(g, flagHierarchyLevels, analysis.HierarchyOptions{
			Community:    analysis.CommunityOptions{MaxIterations: p.MaxKMeansIter, Seed: 1},
			EmbeddingDim: p.EmbeddingDim,
		})
		if err != nil {
			return nil, err
		}
		report.Hierarchy = hierarchy.Statistics()
	}

	if len(tg.Events()) > 0 {
		report.Evolution = tg.EvolutionSummary()
	}

	snapshot := store.FromGraph(g, map[string]string{
		"file":  filepath.Base(path),
		"title": cf.Title,
		"run":   report.RunID,
	})
	if err := snapshots.Save(ctx, snapshot); err != nil {
		return nil, err
	}
	report.SnapshotID = snapshot.ID

	if flagAnnotate && generator != nil {
		annotation, err := generator.Generate(ctx, annotationPrompt(report))
		if err != nil {
			// Annotation is garnish; the analysis stands without it.
			slog.Warn("annotation failed", slog.String("file", path), slog.String("error", err.Error()))
		} else {
			report.Annotation = annotation
		}
	}

	slog.Info("analyzed case file",
		slog.String("file", path),
		slog.Int("nodes", report.Stats.NumNodes),
		slog.Int("edges", report.Stats.NumEdges),
		slog.Duration("took", time.Since(started)))
	return report, nil
}

// seedEmbeddings produces the input layer for propagation. With an external
// embedder each node is embedded from its textual attributes; otherwise the
// deterministic hash seeding is used.
func seedEmbeddings(ctx context.Context, g *hypergraph.Hypergraph, p *profile.Profile, embedder ai.EmbeddingService) (map[string][]float64, error) {
	if embedder == nil {
		return hypergnn.InitEmbeddings(g, p.EmbeddingDim), nil
	}

	ids := g.NodeIDs()
	texts := make([]string, len(ids))
	for i, id := range ids {
		texts[i] = nodeSeedText(g.Node(id))
	}
	vectors, err := embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(ids) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d nodes", len(vectors), len(ids))
	}

	embeddings := make(map[string][]float64, len(ids))
	for i, id := range ids {
		embeddings[id] = vectors[i]
	}
	return embeddings, nil
}

func nodeSeedText(n *hypergraph.Node) string {
	parts := []string{string(n.Type), n.ID}
	for _, key := range []string{"name", "content"} {
		if v, ok := n.Attrs[key]; ok {
			if s, ok := v.AsString(); ok {
				parts = append(parts, s)
			}
		}
	}
	return strings.Join(parts, " ")
}

// predictMissingLinks scores every non-adjacent node pair and keeps those
// above the cutoff, strongest first.
func predictMissingLinks(g *hypergraph.Hypergraph, embeddings map[string][]float64, cutoff float64) ([]Prediction, error) {
	ids := g.NodeIDs()
	var predictions []Prediction
	for i, a := range ids {
		neighbors, err := g.Neighbors(a)
		if err != nil {
			return nil, err
		}
		for _, b := range ids[i+1:] {
			if _, adjacent := neighbors[b]; adjacent {
				continue
			}
			score, err := analysis.PredictLink(g, embeddings, a, b, analysis.DefaultWeights)
			if err != nil {
				return nil, err
			}
			if score >= cutoff {
				predictions = append(predictions, Prediction{A: a, B: b, Score: score})
			}
		}
	}
	sort.Slice(predictions, func(i, j int) bool {
		if predictions[i].Score == predictions[j].Score {
			if predictions[i].A == predictions[j].A {
				return predictions[i].B < predictions[j].B
			}
			return predictions[i].A < predictions[j].A
		}
		return predictions[i].Score > predictions[j].Score
	})
	return predictions, nil
}

var writeMu sync.Mutex

// writeReport emits one report as JSON, to the data directory when
// configured and stdout otherwise.
func writeReport(p *profile.Profile, report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	if p.Data == "" {
		writeMu.Lock()
		defer writeMu.Unlock()
		_, err := fmt.Printf("%s\n", data)
		return err
	}

	name := fmt.Sprintf("%s_%s.json", strings.TrimSuffix(report.File, filepath.Ext(report.File)), report.RunID)
	path := filepath.Join(p.Data, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	slog.Info("report written", slog.String("path", path))
	return nil
}
