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

package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/civicloom/corpit/ai"
	"github.com/civicloom/corpit/annotate"
	"github.com/civicloom/corpit/chunk"
	"github.com/civicloom/corpit/core"
	"github.com/civicloom/corpit/source"
)

// caseStudySourceLabel is the fixed provenance label for the structured
// case-study table.
const caseStudySourceLabel = "Participedia Case Studies"

// Minimum body lengths below which a row is skipped entirely.
const (
	DefaultMinCaseStudyChars = 100
	DefaultMinReferenceChars = 50
)

// ContentClassifier resolves a content-type label for a document. It never
// fails; the rule fallback is the floor.
type ContentClassifier interface {
	Classify(ctx context.Context, docID, sourceLabel, name, body string) string
	Flush() error
}

// MetadataAnnotator produces validated case-study metadata. It never
// fails; the degraded record is the floor.
type MetadataAnnotator interface {
	Annotate(ctx context.Context, docID, title, fullText string) core.Metadata
	Flush() error
}

// Options holds the chunking bounds and phase thresholds.
type Options struct {
	SectionHeadings  []string
	SectionMaxChars  int
	MarkdownMaxChars int
	WindowSize       int
	WindowOverlap    int

	MinCaseStudyChars int
	MinReferenceChars int

	Workers int
}

// DefaultOptions returns the production bounds.
func DefaultOptions() Options {
	return Options{
		SectionHeadings:   DefaultSectionHeadings(),
		SectionMaxChars:   chunk.DefaultSectionMaxChars,
		MarkdownMaxChars:  chunk.DefaultMarkdownMaxChars,
		WindowSize:        chunk.DefaultWindowSize,
		WindowOverlap:     chunk.DefaultWindowOverlap,
		MinCaseStudyChars: DefaultMinCaseStudyChars,
		MinReferenceChars: DefaultMinReferenceChars,
		Workers:           DefaultWorkers,
	}
}

// DefaultSectionHeadings is the heading vocabulary recognized in
// case-study bodies. The titles are matched verbatim, in body order.
func DefaultSectionHeadings() []string {
	return []string{
		"Problems and Purpose",
		"Background History and Context",
		"Organizing, Supporting, and Funding Entities",
		"Participant Recruitment and Selection",
		"Methods and Tools Used",
		"What Went On: Process, Interaction, and Participation",
		"Influence, Outcomes, and Effects",
		"Analysis and Lessons Learned",
	}
}

// Result is everything one pipeline run produced, before any sink write.
type Result struct {
	Chunks      []core.Chunk
	CaseStudies []core.CaseStudyRecord
	Stats       Stats
}

// Pipeline turns the two input tables into retrieval chunks and annotated
// case-study records. Runs are idempotent: document IDs are deterministic
// and every service result is cached, so re-running over unchanged input
// issues no service calls and produces identical output.
type Pipeline struct {
	src        source.RowSource
	classifier ContentClassifier
	annotator  MetadataAnnotator
	runner     *Runner
	opts       Options
	logger     *slog.Logger
}

// NewPipeline creates a pipeline. The caller keeps ownership of the
// source; the pipeline owns its worker pool and releases it on Release.
func NewPipeline(src source.RowSource, classifier ContentClassifier, annotator MetadataAnnotator, opts Options) (*Pipeline, error) {
	if src == nil {
		return nil, ErrSourceRequired
	}
	if classifier == nil {
		return nil, ErrClassifierRequired
	}
	if annotator == nil {
		return nil, ErrAnnotatorRequired
	}
	if len(opts.SectionHeadings) == 0 {
		opts.SectionHeadings = DefaultSectionHeadings()
	}
	if opts.SectionMaxChars <= 0 {
		opts.SectionMaxChars = chunk.DefaultSectionMaxChars
	}
	if opts.MarkdownMaxChars <= 0 {
		opts.MarkdownMaxChars = chunk.DefaultMarkdownMaxChars
	}
	if opts.WindowSize <= 0 {
		opts.WindowSize = chunk.DefaultWindowSize
	}
	if opts.WindowOverlap <= 0 {
		opts.WindowOverlap = chunk.DefaultWindowOverlap
	}
	if opts.MinCaseStudyChars <= 0 {
		opts.MinCaseStudyChars = DefaultMinCaseStudyChars
	}
	if opts.MinReferenceChars <= 0 {
		opts.MinReferenceChars = DefaultMinReferenceChars
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}

	runner, err := NewRunner(opts.Workers)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		src:        src,
		classifier: classifier,
		annotator:  annotator,
		runner:     runner,
		opts:       opts,
		logger:     slog.Default().With("component", "pipeline"),
	}, nil
}

// Release releases the worker pool. The pipeline must not be used after.
func (p *Pipeline) Release() {
	p.runner.Release()
}

// libraryCandidate is a document headed for the case-study library,
// collected during chunking and annotated in the final phase.
type libraryCandidate struct {
	docID       string
	title       string
	sourceLabel string
	sourceURL   string
	docDate     string
	fullContent string
}

// Run executes the full ingestion: case studies, then reference material,
// then metadata annotation for everything labeled a case study.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	candidates, err := p.runCaseStudies(ctx, result)
	if err != nil {
		return nil, err
	}

	refCandidates, err := p.runReferences(ctx, result)
	if err != nil {
		return nil, err
	}
	candidates = append(candidates, refCandidates...)

	if err := p.annotateCandidates(ctx, candidates, result); err != nil {
		return nil, err
	}

	result.Stats = ComputeStats(result.Chunks)
	p.logger.Info("pipeline complete",
		"chunks", len(result.Chunks),
		"case_studies", len(result.CaseStudies))
	return result, nil
}

// runCaseStudies chunks the structured case-study table by heading
// vocabulary and collects every usable document as a library candidate.
func (p *Pipeline) runCaseStudies(ctx context.Context, result *Result) ([]libraryCandidate, error) {
	rows, err := p.src.CaseStudyRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load case studies: %w", err)
	}
	p.logger.Info("chunking case studies", "rows", len(rows))

	var candidates []libraryCandidate
	for _, row := range rows {
		body := chunk.Normalize(row.Get(source.ColBody))
		if len(body) < p.opts.MinCaseStudyChars {
			continue
		}

		name := row.Get(source.ColName)
		url := row.Get(source.ColLink)
		date := truncateDate(row.Get(source.ColDate))
		docID := core.DocumentID(core.CaseStudyKey(name, url))

		sections := chunk.CaseStudyChunks(body, p.opts.SectionHeadings, p.opts.SectionMaxChars)
		for i, s := range sections {
			result.Chunks = append(result.Chunks, core.Chunk{
				Content:     s.Text,
				DocumentID:  docID,
				DocName:     name,
				SourceLabel: caseStudySourceLabel,
				SourceURL:   url,
				DocType:     "participedia_case",
				ContentType: ai.ContentTypeCaseStudy,
				SectionName: s.Name,
				ChunkIndex:  i,
				TotalChunks: len(sections),
				DocDate:     date,
			})
		}

		if len(sections) > 0 {
			candidates = append(candidates, libraryCandidate{
				docID:       docID,
				title:       name,
				sourceLabel: caseStudySourceLabel,
				sourceURL:   url,
				docDate:     date,
				fullContent: body,
			})
		}
	}

	p.logger.Info("case studies chunked",
		"chunks", len(result.Chunks), "candidates", len(candidates))
	return candidates, nil
}

// refDoc is one usable reference row, resolved up front so classification
// can run concurrently before chunking.
type refDoc struct {
	docID   string
	name    string
	source  string
	url     string
	content string
}

// runReferences classifies and chunks the mixed reference table. Reference
// documents the classifier labels case studies become library candidates
// alongside the structured ones.
func (p *Pipeline) runReferences(ctx context.Context, result *Result) ([]libraryCandidate, error) {
	rows, err := p.src.ReferenceRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("load references: %w", err)
	}

	var docs []refDoc
	for _, row := range rows {
		content := chunk.Normalize(row.Get(source.ColContent))
		if len(content) < p.opts.MinReferenceChars {
			continue
		}
		name := row.Get(source.ColName)
		src := row.Get(source.ColSource)
		url := row.Get(source.ColLink)
		docs = append(docs, refDoc{
			docID:   core.DocumentID(core.ReferenceKey(src, name, url)),
			name:    name,
			source:  src,
			url:     url,
			content: content,
		})
	}
	p.logger.Info("classifying references", "docs", len(docs), "workers", p.opts.Workers)

	labels, labelOK := RunIndexed(p.runner, len(docs), func(i int) (string, error) {
		d := docs[i]
		return p.classifier.Classify(ctx, d.docID, d.source, d.name, d.content), nil
	})
	if err := p.classifier.Flush(); err != nil {
		p.logger.Warn("label cache flush failed", "err", err)
	}

	var candidates []libraryCandidate
	before := len(result.Chunks)
	for i, d := range docs {
		contentType := labels[i]
		if !labelOK[i] {
			// The classification task itself died; resolve the label the
			// same way a failed service call would.
			contentType = annotate.FallbackContentType(d.source, d.name)
		}
		docType := annotate.DocType(d.source)

		sections := chunk.MarkdownChunks(d.content, p.opts.MarkdownMaxChars)
		if sections == nil {
			windows := chunk.SlidingWindow(d.content, p.opts.WindowSize, p.opts.WindowOverlap)
			sections = make([]chunk.Section, len(windows))
			for j, w := range windows {
				sections[j] = chunk.Section{
					Name: fmt.Sprintf("chunk_%d_of_%d", j+1, len(windows)),
					Text: w,
				}
			}
		}
		for j, s := range sections {
			result.Chunks = append(result.Chunks, core.Chunk{
				Content:     s.Text,
				DocumentID:  d.docID,
				DocName:     d.name,
				SourceLabel: d.source,
				SourceURL:   d.url,
				DocType:     docType,
				ContentType: contentType,
				SectionName: s.Name,
				ChunkIndex:  j,
				TotalChunks: len(sections),
				DocDate:     "",
			})
		}

		if contentType == ai.ContentTypeCaseStudy && len(sections) > 0 {
			candidates = append(candidates, libraryCandidate{
				docID:       d.docID,
				title:       d.name,
				sourceLabel: d.source,
				sourceURL:   d.url,
				docDate:     "",
				fullContent: d.content,
			})
		}
	}

	p.logger.Info("references chunked",
		"chunks", len(result.Chunks)-before, "candidates", len(candidates))
	return candidates, nil
}

// annotateCandidates generates metadata for every library candidate and
// assembles the records in candidate order.
func (p *Pipeline) annotateCandidates(ctx context.Context, candidates []libraryCandidate, result *Result) error {
	if len(candidates) == 0 {
		return nil
	}
	p.logger.Info("annotating case studies", "docs", len(candidates), "workers", p.opts.Workers)

	metas, ok := RunIndexed(p.runner, len(candidates), func(i int) (core.Metadata, error) {
		c := candidates[i]
		return p.annotator.Annotate(ctx, c.docID, c.title, c.fullContent), nil
	})
	if err := p.annotator.Flush(); err != nil {
		p.logger.Warn("metadata cache flush failed", "err", err)
	}

	records := make([]core.CaseStudyRecord, 0, len(candidates))
	for i, c := range candidates {
		if !ok[i] {
			// A dead annotation task has no metadata, not even the degraded
			// record; the library omits the document rather than carrying
			// an off-schema entry.
			p.logger.Warn("annotation task failed, omitting record", "doc", c.title)
			continue
		}
		records = append(records, core.CaseStudyRecord{
			DocumentID:  c.docID,
			Title:       c.title,
			SourceLabel: c.sourceLabel,
			SourceURL:   c.sourceURL,
			DocDate:     c.docDate,
			FullContent: c.fullContent,
			Metadata:    metas[i],
		})
	}
	result.CaseStudies = records
	return nil
}

// truncateDate trims a timestamp to its ISO date prefix. Absent dates stay
// empty.
func truncateDate(raw string) string {
	if len(raw) > 10 {
		return raw[:10]
	}
	return raw
}
