// Copyright 2026 Civicloom
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/civicloom/corpit/ai"
	"github.com/civicloom/corpit/ai/openai"
	"github.com/civicloom/corpit/annotate"
	"github.com/civicloom/corpit/cache"
	"github.com/civicloom/corpit/config"
	"github.com/civicloom/corpit/pipeline"
	"github.com/civicloom/corpit/sink"
	"github.com/civicloom/corpit/sink/local"
	"github.com/civicloom/corpit/sink/weaviate"
	"github.com/civicloom/corpit/source"
)

func main() {
	app := &cli.App{
		Name:   "corpit",
		Usage:  "Chunk, classify, and load a civic-participation corpus for retrieval",
		Before: setupLogger,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run the full ingestion over the two input tables",
				Action: runCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "case-studies",
						Usage:    "Path to the case-studies CSV",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "references",
						Usage:    "Path to the reference-material CSV",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "config",
						Usage: "YAML configuration file overlaying the defaults",
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Usage: "Directory for service-result caches",
					},
					&cli.BoolFlag{
						Name:  "clear",
						Usage: "Delete both output collections before writing",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Chunk and classify but write nothing remote",
					},
					&cli.BoolFlag{
						Name:  "skip-library",
						Usage: "Write chunks only, skip the case-study library",
					},
					&cli.BoolFlag{
						Name:  "only-library",
						Usage: "Write the case-study library only, skip chunks",
					},
					&cli.StringFlag{
						Name:  "archive",
						Usage: "Also archive the run output to a local database at this path",
					},
					&cli.StringFlag{
						Name:    "openai-api-key",
						Usage:   "API key for the language-model service",
						EnvVars: []string{"OPENAI_API_KEY"},
					},
					&cli.StringFlag{
						Name:  "ai-host",
						Usage: "Override the language-model service base URL",
					},
					&cli.StringFlag{
						Name:  "weaviate-host",
						Usage: "Weaviate host (omit for dry runs)",
					},
					&cli.StringFlag{
						Name:    "weaviate-api-key",
						Usage:   "API key for Weaviate",
						EnvVars: []string{"WEAVIATE_API_KEY"},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runCommand(c *cli.Context) error {
	if c.Bool("skip-library") && c.Bool("only-library") {
		return fmt.Errorf("--skip-library and --only-library are mutually exclusive")
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if dir := c.String("cache-dir"); dir != "" {
		cfg.CacheDir = dir
	}
	if key := c.String("openai-api-key"); key != "" {
		cfg.AI.APIKey = key
	}
	if host := c.String("ai-host"); host != "" {
		cfg.AI.Host = host
	}
	if host := c.String("weaviate-host"); host != "" {
		cfg.Weaviate.Host = host
	}
	if key := c.String("weaviate-api-key"); key != "" {
		cfg.Weaviate.APIKey = key
	}
	if path := c.String("archive"); path != "" {
		cfg.ArchivePath = path
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.CacheDir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	aiConfig := ai.NewConfig(
		ai.WithHost(cfg.AI.Host),
		ai.WithAPIKey(cfg.AI.APIKey),
		ai.WithClassifierModel(cfg.AI.ClassifierModel),
		ai.WithGeneratorModel(cfg.AI.GeneratorModel),
		ai.WithRequestsPerSecond(cfg.AI.RequestsPerSecond),
	)
	provider, err := openai.NewProvider(aiConfig)
	if err != nil {
		return fmt.Errorf("ai provider: %w", err)
	}
	defer provider.Close()

	classifier, err := annotate.NewClassifier(
		cache.NewStore(cfg.LabelCachePath()),
		provider.Classifier(),
		annotate.WithExcerptChars(cfg.AI.ExcerptChars),
	)
	if err != nil {
		return err
	}
	annotator, err := annotate.NewAnnotator(
		cache.NewStore(cfg.MetadataCachePath()),
		provider.MetadataGenerator(),
		annotate.WithMetadataMaxChars(cfg.AI.MetadataMaxChars),
	)
	if err != nil {
		return err
	}

	src := source.NewCSVSource(c.String("case-studies"), c.String("references"))
	p, err := pipeline.NewPipeline(src, classifier, annotator, cfg.PipelineOptions())
	if err != nil {
		return err
	}
	defer p.Release()

	ctx := c.Context
	result, err := p.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println(result.Stats)

	if cfg.ArchivePath != "" {
		if err := archiveResult(ctx, cfg.ArchivePath, result); err != nil {
			return err
		}
	}

	if c.Bool("dry-run") {
		slog.Info("dry run, skipping remote write",
			"chunks", len(result.Chunks), "case_studies", len(result.CaseStudies))
		return nil
	}

	return deliver(ctx, &cfg, aiConfig, result,
		c.Bool("clear"), c.Bool("skip-library"), c.Bool("only-library"))
}

// deliver writes the run output to the vector index.
func deliver(ctx context.Context, cfg *config.Config, aiConfig *ai.Config, result *pipeline.Result, clear, skipLibrary, onlyLibrary bool) error {
	embedder, err := openai.NewEmbedder(aiConfig, cfg.Weaviate.EmbeddingModel)
	if err != nil {
		return fmt.Errorf("embedder: %w", err)
	}

	writer, err := weaviate.NewWriter(weaviate.Config{
		Scheme:            cfg.Weaviate.Scheme,
		Host:              cfg.Weaviate.Host,
		APIKey:            cfg.Weaviate.APIKey,
		ChunkCollection:   cfg.Weaviate.ChunkCollection,
		LibraryCollection: cfg.Weaviate.LibraryCollection,
		ChunkBatchSize:    cfg.Weaviate.ChunkBatchSize,
		LibraryBatchSize:  cfg.Weaviate.LibraryBatchSize,
	}, embedder)
	if err != nil {
		return err
	}
	defer writer.Close()

	if clear {
		if err := writer.Clear(ctx); err != nil {
			return err
		}
	}

	if !onlyLibrary {
		if err := writer.WriteChunks(ctx, result.Chunks); err != nil {
			return err
		}
		slog.Info("chunks written", "count", len(result.Chunks))
	}
	if !skipLibrary {
		if err := writer.WriteCaseStudies(ctx, result.CaseStudies); err != nil {
			return err
		}
		slog.Info("case-study library written", "count", len(result.CaseStudies))
	}
	return nil
}

// archiveResult stores the run output in a local badger archive.
func archiveResult(ctx context.Context, path string, result *pipeline.Result) error {
	store, err := local.Open(path, false)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer store.Close()

	var w sink.Writer = store
	if err := w.WriteChunks(ctx, result.Chunks); err != nil {
		return fmt.Errorf("archive chunks: %w", err)
	}
	if err := w.WriteCaseStudies(ctx, result.CaseStudies); err != nil {
		return fmt.Errorf("archive case studies: %w", err)
	}
	slog.Info("run archived", "path", path,
		"chunks", len(result.Chunks), "case_studies", len(result.CaseStudies))
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
