package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicloom/corpit/ai"
	"github.com/civicloom/corpit/ai/mock"
	"github.com/civicloom/corpit/annotate"
	"github.com/civicloom/corpit/cache"
	"github.com/civicloom/corpit/source"
)

type fakeSource struct {
	cases []source.Row
	refs  []source.Row
}

func (f *fakeSource) CaseStudyRows(ctx context.Context) ([]source.Row, error) {
	return f.cases, nil
}

func (f *fakeSource) ReferenceRows(ctx context.Context) ([]source.Row, error) {
	return f.refs, nil
}

type testEnv struct {
	pipeline   *Pipeline
	classifier *mock.Classifier
	generator  *mock.Generator
	cacheDir   string
}

func newTestEnv(t *testing.T, src source.RowSource) *testEnv {
	env := &testEnv{
		classifier: mock.NewClassifier(),
		generator:  mock.NewGenerator(),
		cacheDir:   t.TempDir(),
	}
	newTestPipeline(t, env, src)
	return env
}

// newTestPipeline builds a pipeline over env's mocks with fresh cache
// stores on the same files, simulating a process restart between runs.
func newTestPipeline(t *testing.T, env *testEnv, src source.RowSource) {
	t.Helper()
	labelStore := cache.NewStore(filepath.Join(env.cacheDir, "content_types.json"))
	metaStore := cache.NewStore(filepath.Join(env.cacheDir, "metadata.json"))

	cls, err := annotate.NewClassifier(labelStore, env.classifier)
	require.NoError(t, err)
	ann, err := annotate.NewAnnotator(metaStore, env.generator)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Workers = 2
	p, err := NewPipeline(src, cls, ann, opts)
	require.NoError(t, err)
	t.Cleanup(p.Release)
	env.pipeline = p
}

func caseBody() string {
	return "An opening paragraph describing the participatory process in enough detail to pass the length filter.\n" +
		"Problems and Purpose\n" +
		strings.Repeat("The problem this process set out to address was low trust in municipal budgeting. ", 3) +
		"Analysis and Lessons Learned\n" +
		strings.Repeat("Participants reported greater confidence in the final allocation decisions. ", 3)
}

func TestNewPipeline_RequiresDependencies(t *testing.T) {
	env := newTestEnv(t, &fakeSource{})

	labelStore := cache.NewStore(filepath.Join(t.TempDir(), "c.json"))
	metaStore := cache.NewStore(filepath.Join(t.TempDir(), "m.json"))
	cls, err := annotate.NewClassifier(labelStore, env.classifier)
	require.NoError(t, err)
	ann, err := annotate.NewAnnotator(metaStore, env.generator)
	require.NoError(t, err)

	_, err = NewPipeline(nil, cls, ann, DefaultOptions())
	assert.ErrorIs(t, err, ErrSourceRequired)

	_, err = NewPipeline(&fakeSource{}, nil, ann, DefaultOptions())
	assert.ErrorIs(t, err, ErrClassifierRequired)

	_, err = NewPipeline(&fakeSource{}, cls, nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrAnnotatorRequired)
}

func TestRun_CaseStudyChunking(t *testing.T) {
	src := &fakeSource{
		cases: []source.Row{{
			"Name": "Participatory Budgeting Pilot",
			"Link": "https://example.org/pb",
			"Date": "2021-05-10T00:00:00Z",
			"Body": caseBody(),
		}},
	}
	env := newTestEnv(t, src)

	result, err := env.pipeline.Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, result.Chunks)

	sectionNames := make(map[string]bool)
	for i, c := range result.Chunks {
		assert.Equal(t, "participedia_case", c.DocType)
		assert.Equal(t, "case_study", c.ContentType)
		assert.Equal(t, "Participatory Budgeting Pilot", c.DocName)
		assert.Equal(t, "2021-05-10", c.DocDate, "date truncated to ISO prefix")
		assert.Equal(t, i, c.ChunkIndex)
		assert.Equal(t, len(result.Chunks), c.TotalChunks)
		assert.GreaterOrEqual(t, len(c.Content), 50)
		sectionNames[c.SectionName] = true
	}
	assert.True(t, sectionNames["Introduction"])
	assert.True(t, sectionNames["Problems and Purpose"])
	assert.True(t, sectionNames["Analysis and Lessons Learned"])

	// Structured case studies always reach the library.
	require.Len(t, result.CaseStudies, 1)
	record := result.CaseStudies[0]
	assert.Equal(t, result.Chunks[0].DocumentID, record.DocumentID)
	assert.Equal(t, "Participatory Budgeting Pilot", record.Title)
	assert.NotEmpty(t, record.Summary)
}

func TestRun_ShortCaseStudySkipped(t *testing.T) {
	src := &fakeSource{
		cases: []source.Row{{"Name": "Stub", "Body": "too short"}},
	}
	env := newTestEnv(t, src)

	result, err := env.pipeline.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Chunks)
	assert.Empty(t, result.CaseStudies)
	assert.Zero(t, env.generator.CallCount())
}

func TestRun_ReferenceMarkdownChunking(t *testing.T) {
	content := "# Overview\n" +
		strings.Repeat("This guide explains how to convene a citizens assembly from scratch. ", 2) +
		"\n# Practical Steps\n" +
		strings.Repeat("Recruit a representative sample of residents by civic lottery. ", 2)
	src := &fakeSource{
		refs: []source.Row{{
			"Name":    "Assembly Guide",
			"Source":  "GovLab Collection",
			"Link":    "https://example.org/guide",
			"Content": content,
		}},
	}
	env := newTestEnv(t, src)
	env.classifier.ClassifyFunc = func(ctx context.Context, req ai.ClassifyRequest) (string, error) {
		return "guide", nil
	}

	result, err := env.pipeline.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Chunks, 2)

	assert.Equal(t, "Overview", result.Chunks[0].SectionName)
	assert.Equal(t, "Practical Steps", result.Chunks[1].SectionName)
	assert.Equal(t, "govlab_resource", result.Chunks[0].DocType)
	assert.Equal(t, "guide", result.Chunks[0].ContentType)
	assert.Equal(t, "", result.Chunks[0].DocDate)
	assert.Empty(t, result.CaseStudies)
}

func TestRun_ReferenceSlidingWindowFallback(t *testing.T) {
	// No markdown headings: falls back to fixed windows with positional
	// section names.
	content := strings.Repeat("Plain prose about deliberative civic processes with no structure at all. ", 40)
	src := &fakeSource{
		refs: []source.Row{{
			"Name":    "Plain Essay",
			"Source":  "Misc",
			"Link":    "https://example.org/essay",
			"Content": content,
		}},
	}
	env := newTestEnv(t, src)
	env.classifier.ClassifyFunc = func(ctx context.Context, req ai.ClassifyRequest) (string, error) {
		return "other", nil
	}

	result, err := env.pipeline.Run(context.Background())
	require.NoError(t, err)
	require.Greater(t, len(result.Chunks), 1)

	total := len(result.Chunks)
	for i, c := range result.Chunks {
		assert.Equal(t, fmt.Sprintf("chunk_%d_of_%d", i+1, total), c.SectionName)
		assert.Equal(t, "external_resource", c.DocType)
		assert.Equal(t, i, c.ChunkIndex)
		assert.Equal(t, total, c.TotalChunks)
	}
}

func TestRun_ReferenceLabeledCaseStudyJoinsLibrary(t *testing.T) {
	content := strings.Repeat("A detailed account of a deliberative mini-public held in a mid-sized city. ", 5)
	src := &fakeSource{
		refs: []source.Row{{
			"Name":    "Mini-public Account",
			"Source":  "Archive",
			"Link":    "https://example.org/mp",
			"Content": content,
		}},
	}
	env := newTestEnv(t, src)
	env.classifier.ClassifyFunc = func(ctx context.Context, req ai.ClassifyRequest) (string, error) {
		return "case_study", nil
	}

	result, err := env.pipeline.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.CaseStudies, 1)

	record := result.CaseStudies[0]
	assert.Equal(t, "Mini-public Account", record.Title)
	assert.Equal(t, "Archive", record.SourceLabel)
	assert.Equal(t, "", record.DocDate, "reference rows carry no date")
	assert.Equal(t, strings.TrimSpace(content), record.FullContent)
	assert.Equal(t, 1, env.generator.CallCount())
}

func TestRun_SecondRunIssuesNoServiceCalls(t *testing.T) {
	src := &fakeSource{
		cases: []source.Row{{
			"Name": "Pilot",
			"Link": "https://example.org/pb",
			"Body": caseBody(),
		}},
		refs: []source.Row{{
			"Name":    "Essay",
			"Source":  "Misc",
			"Link":    "https://example.org/e",
			"Content": strings.Repeat("Long enough reference content for the pipeline to keep. ", 3),
		}},
	}
	env := newTestEnv(t, src)

	first, err := env.pipeline.Run(context.Background())
	require.NoError(t, err)
	classifyCalls := env.classifier.CallCount()
	generateCalls := env.generator.CallCount()
	require.Equal(t, 1, classifyCalls)
	require.Equal(t, 1, generateCalls)

	// Fresh pipeline over the same cache dir, as after a restart.
	newTestPipeline(t, env, src)
	second, err := env.pipeline.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, classifyCalls, env.classifier.CallCount(), "labels served from cache")
	assert.Equal(t, generateCalls, env.generator.CallCount(), "metadata served from cache")
	assert.Equal(t, first.Chunks, second.Chunks)
	assert.Equal(t, first.CaseStudies, second.CaseStudies)
}

func TestRun_DeadAnnotationTaskOmitsRecord(t *testing.T) {
	src := &fakeSource{
		cases: []source.Row{
			{
				"Name": "Pilot",
				"Link": "https://example.org/pilot",
				"Body": caseBody(),
			},
			{
				"Name": "Assembly",
				"Link": "https://example.org/assembly",
				"Body": caseBody(),
			},
		},
	}
	env := newTestEnv(t, src)
	env.generator.GenerateFunc = func(ctx context.Context, title, text string) (*ai.GeneratedMetadata, error) {
		if title == "Pilot" {
			panic("generator crashed")
		}
		return &ai.GeneratedMetadata{Summary: "s", Scale: "small"}, nil
	}

	result, err := env.pipeline.Run(context.Background())
	require.NoError(t, err)

	// The dead slot is omitted, not carried with zero-value metadata.
	require.Len(t, result.CaseStudies, 1)
	assert.Equal(t, "Assembly", result.CaseStudies[0].Title)
	for _, r := range result.CaseStudies {
		assert.True(t, r.Scale.Valid(), "record %q carries invalid scale %q", r.Title, r.Scale)
	}
	// Chunks are unaffected; both documents were still split.
	assert.NotEmpty(t, result.Chunks)
}

func TestRun_DeadClassificationTaskFallsBackToRules(t *testing.T) {
	src := &fakeSource{
		refs: []source.Row{{
			"Name":    "Annual Item",
			"Source":  "GovLab Collection",
			"Link":    "https://example.org/item",
			"Content": strings.Repeat("Reference material long enough to survive the row filter. ", 3),
		}},
	}
	env := newTestEnv(t, src)
	env.classifier.ClassifyFunc = func(ctx context.Context, req ai.ClassifyRequest) (string, error) {
		panic("classifier crashed")
	}

	result, err := env.pipeline.Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, result.Chunks)

	// An unset label slot resolves through the keyword rules, never the
	// empty string.
	for _, c := range result.Chunks {
		assert.Equal(t, "report", c.ContentType)
	}
}

func TestRun_StatsComputed(t *testing.T) {
	src := &fakeSource{
		cases: []source.Row{{
			"Name": "Pilot",
			"Link": "https://example.org/pb",
			"Body": caseBody(),
		}},
	}
	env := newTestEnv(t, src)

	result, err := env.pipeline.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, len(result.Chunks), result.Stats.Total)
	assert.Equal(t, len(result.Chunks), result.Stats.DocTypes["participedia_case"])
	assert.Equal(t, len(result.Chunks), result.Stats.ContentTypes["case_study"])
	assert.LessOrEqual(t, result.Stats.MinLen, result.Stats.MedianLen)
	assert.LessOrEqual(t, result.Stats.MedianLen, result.Stats.MaxLen)
	assert.Contains(t, result.Stats.String(), "participedia_case")
}

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(nil)
	assert.Zero(t, s.Total)
	assert.Empty(t, s.DocTypes)
	assert.NotPanics(t, func() { _ = s.String() })
}
