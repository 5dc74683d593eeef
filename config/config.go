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

// Package config holds the full ingestion configuration: chunking bounds,
// service settings, cache locations, and output collections. Defaults
// match production; a YAML file overlays them.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/civicloom/corpit/chunk"
	"github.com/civicloom/corpit/pipeline"
)

// Chunking controls the document splitters.
type Chunking struct {
	// SectionHeadings is the heading vocabulary recognized in case-study
	// bodies. Matched verbatim, in body order.
	SectionHeadings []string `yaml:"section_headings"`

	SectionMaxChars  int `yaml:"section_max_chars"`
	MarkdownMaxChars int `yaml:"markdown_max_chars"`
	WindowSize       int `yaml:"window_size"`
	WindowOverlap    int `yaml:"window_overlap"`

	MinCaseStudyChars int `yaml:"min_case_study_chars"`
	MinReferenceChars int `yaml:"min_reference_chars"`
}

// AI controls the external language-model services.
type AI struct {
	Host              string  `yaml:"host"`
	APIKey            string  `yaml:"api_key"`
	ClassifierModel   string  `yaml:"classifier_model"`
	GeneratorModel    string  `yaml:"generator_model"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	ExcerptChars     int `yaml:"excerpt_chars"`
	MetadataMaxChars int `yaml:"metadata_max_chars"`
	Workers          int `yaml:"workers"`
}

// Weaviate controls the vector-index sink.
type Weaviate struct {
	Scheme string `yaml:"scheme"`
	Host   string `yaml:"host"`
	APIKey string `yaml:"api_key"`

	ChunkCollection   string `yaml:"chunk_collection"`
	LibraryCollection string `yaml:"library_collection"`
	ChunkBatchSize    int    `yaml:"chunk_batch_size"`
	LibraryBatchSize  int    `yaml:"library_batch_size"`

	EmbeddingModel string `yaml:"embedding_model"`
}

// Config is the complete ingestion configuration.
type Config struct {
	Chunking Chunking `yaml:"chunking"`
	AI       AI       `yaml:"ai"`
	Weaviate Weaviate `yaml:"weaviate"`

	// CacheDir holds the service-result caches (content_types.json and
	// metadata.json).
	CacheDir string `yaml:"cache_dir"`

	// ArchivePath, when set, is the local badger run archive.
	ArchivePath string `yaml:"archive_path"`
}

// Default returns the production configuration.
func Default() Config {
	return Config{
		Chunking: Chunking{
			SectionHeadings:   pipeline.DefaultSectionHeadings(),
			SectionMaxChars:   chunk.DefaultSectionMaxChars,
			MarkdownMaxChars:  chunk.DefaultMarkdownMaxChars,
			WindowSize:        chunk.DefaultWindowSize,
			WindowOverlap:     chunk.DefaultWindowOverlap,
			MinCaseStudyChars: pipeline.DefaultMinCaseStudyChars,
			MinReferenceChars: pipeline.DefaultMinReferenceChars,
		},
		AI: AI{
			Host:             "https://api.openai.com/v1",
			ClassifierModel:  "gpt-4.1-mini",
			GeneratorModel:   "gpt-4.1-mini",
			ExcerptChars:     1500,
			MetadataMaxChars: 12000,
			Workers:          pipeline.DefaultWorkers,
		},
		Weaviate: Weaviate{
			Scheme:            "https",
			ChunkCollection:   "CoachingTool",
			LibraryCollection: "CaseStudyLibrary",
			ChunkBatchSize:    100,
			LibraryBatchSize:  50,
			EmbeddingModel:    "text-embedding-3-small",
		},
		CacheDir: ".corpit-cache",
	}
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks bounds that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if len(c.Chunking.SectionHeadings) == 0 {
		return fmt.Errorf("config: section_headings must not be empty")
	}
	if c.Chunking.WindowSize <= 0 {
		return fmt.Errorf("config: window_size must be positive")
	}
	if c.Chunking.WindowOverlap < 0 || c.Chunking.WindowOverlap >= c.Chunking.WindowSize {
		return fmt.Errorf("config: window_overlap must be in [0, window_size)")
	}
	if c.Chunking.SectionMaxChars <= 0 || c.Chunking.MarkdownMaxChars <= 0 {
		return fmt.Errorf("config: section bounds must be positive")
	}
	if c.AI.Workers <= 0 {
		return fmt.Errorf("config: workers must be positive")
	}
	if c.AI.RequestsPerSecond < 0 {
		return fmt.Errorf("config: requests_per_second cannot be negative")
	}
	if c.CacheDir == "" {
		return fmt.Errorf("config: cache_dir must not be empty")
	}
	return nil
}

// PipelineOptions maps the configuration onto the pipeline's bounds.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		SectionHeadings:   c.Chunking.SectionHeadings,
		SectionMaxChars:   c.Chunking.SectionMaxChars,
		MarkdownMaxChars:  c.Chunking.MarkdownMaxChars,
		WindowSize:        c.Chunking.WindowSize,
		WindowOverlap:     c.Chunking.WindowOverlap,
		MinCaseStudyChars: c.Chunking.MinCaseStudyChars,
		MinReferenceChars: c.Chunking.MinReferenceChars,
		Workers:           c.AI.Workers,
	}
}

// LabelCachePath is the content-type cache file location.
func (c *Config) LabelCachePath() string {
	return filepath.Join(c.CacheDir, "content_types.json")
}

// MetadataCachePath is the metadata cache file location.
func (c *Config) MetadataCachePath() string {
	return filepath.Join(c.CacheDir, "metadata.json")
}
