package report

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assessment-report-engine/internal/domain"
	"github.com/assessment-report-engine/internal/generators"
	"github.com/assessment-report-engine/internal/metrics"
	"github.com/assessment-report-engine/internal/templates"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func newTestEngine(t *testing.T, collab Collaborators) *Engine {
	t.Helper()
	engine, err := NewEngine(testLogger(), domain.ReportConfig{Workers: 3}, collab)
	require.NoError(t, err)
	return engine
}

func sampleRecord() *domain.AssessmentRecord {
	return &domain.AssessmentRecord{
		ID:             "assessment-1",
		AssessmentDate: "2024-03-01",
		Demographics: &domain.Demographics{
			FirstName:   "Jane",
			LastName:    "Doe",
			DateOfBirth: "1980-06-15",
		},
		Symptoms: &domain.Symptoms{
			Physical: []domain.Symptom{{Location: "Neck", Severity: "Moderate", Frequency: domain.FrequencyOften}},
		},
		ADL: &domain.ADL{
			Domestic: []domain.ADLActivity{{Key: "meal_prep", Name: "Meal Preparation", Independence: domain.MinimalAssistance, Notes: "nearly got a burn"}},
		},
		Care: &domain.Care{
			Tasks: []domain.CareTask{{
				Category: domain.CategoryPersonalCare, Task: "Bathing",
				Frequency: 2, Duration: 30, Period: domain.PeriodDaily, Level: domain.CareLevel1,
			}},
		},
	}
}

// stubGenerator is a custom section used to exercise failure handling
type stubGenerator struct {
	key     domain.SectionKey
	order   int
	content string
	err     error
	panics  bool
}

func (s stubGenerator) Key() domain.SectionKey { return s.key }
func (s stubGenerator) Title() string          { return strings.ReplaceAll(string(s.key), "_", " ") }
func (s stubGenerator) Order() int             { return s.order }

func (s stubGenerator) Generate(_ context.Context, _ *domain.AssessmentRecord) (domain.ReportSection, error) {
	if s.panics {
		panic("boom")
	}
	if s.err != nil {
		return domain.ReportSection{}, s.err
	}
	return domain.ReportSection{Key: s.key, Title: s.Title(), Order: s.order, Content: s.content}, nil
}

type enhancerFunc func(ctx context.Context, section, raw string, opts domain.EnhanceOptions) (string, error)

func (f enhancerFunc) Enhance(ctx context.Context, section, raw string, opts domain.EnhanceOptions) (string, error) {
	return f(ctx, section, raw, opts)
}

func TestAssemble_PartialFailure(t *testing.T) {
	sections := []domain.ReportSection{
		{Key: "third", Order: 3, Content: "THIRD\nthird content"},
		{Key: "first", Order: 1, Content: "FIRST\nfirst content"},
	}
	failures := []domain.SectionFailure{{Key: "second", Title: "Second", Order: 2, Reason: "boom"}}

	out, err := Assemble(domain.FormatPlain, sections, failures)
	require.NoError(t, err)

	first := strings.Index(out, "first content")
	marker := strings.Index(out, "SECOND\n[Section could not be generated]")
	third := strings.Index(out, "third content")
	require.NotEqual(t, -1, first)
	require.NotEqual(t, -1, marker)
	require.NotEqual(t, -1, third)
	assert.True(t, first < marker && marker < third, "sections must appear in declared order")
	assert.Equal(t, 2, strings.Count(out, strings.Repeat("-", 60)))
}

func TestAssemble_DuplicateOrder(t *testing.T) {
	sections := []domain.ReportSection{
		{Key: "a", Order: 1, Content: "A"},
		{Key: "b", Order: 1, Content: "B"},
	}
	_, err := Assemble(domain.FormatPlain, sections, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicateOrder)
}

func TestAssemble_Separators(t *testing.T) {
	sections := []domain.ReportSection{
		{Key: "a", Order: 1, Content: "A"},
		{Key: "b", Order: 2, Content: "B"},
	}

	md, err := Assemble(domain.FormatMarkdown, sections, nil)
	require.NoError(t, err)
	assert.Equal(t, "A\n\n---\n\nB", md)

	html, err := Assemble(domain.FormatHTML, sections, nil)
	require.NoError(t, err)
	assert.Equal(t, "A\n<hr/>\nB", html)
}

func TestEngine_Generate(t *testing.T) {
	engine := newTestEngine(t, Collaborators{})

	report, err := engine.Generate(context.Background(), sampleRecord(), domain.ReportOptions{})
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "assessment-1", report.AssessmentID)
	assert.Equal(t, domain.DetailStandard, report.DetailLevel)
	assert.Equal(t, domain.FormatPlain, report.Format)
	assert.True(t, report.Validation.Valid)
	assert.Empty(t, report.Failures)
	require.Len(t, report.Sections, 8)

	for i := 1; i < len(report.Sections); i++ {
		assert.Less(t, report.Sections[i-1].Order, report.Sections[i].Order)
	}
	assert.Equal(t, domain.SectionDemographics, report.Sections[0].Key)
	assert.Equal(t, domain.SectionAttendantCare, report.Sections[7].Key)

	assert.Contains(t, report.Content, "Name: Jane Doe")
	assert.Contains(t, report.Content, "$453.52")
	assert.Contains(t, report.Content, "Risk of burns")
	assert.NotContains(t, report.Content, "{{")
	assert.True(t, strings.Index(report.Content, "DEMOGRAPHICS") < strings.Index(report.Content, "ATTENDANT CARE"))
}

func TestEngine_Appendix(t *testing.T) {
	engine := newTestEngine(t, Collaborators{})

	report, err := engine.Generate(context.Background(), sampleRecord(), domain.ReportOptions{IncludeAppendices: true})
	require.NoError(t, err)

	require.Len(t, report.Sections, 9)
	last := report.Sections[len(report.Sections)-1]
	assert.Equal(t, domain.SectionAppendix, last.Key)
	assert.Contains(t, report.Content, "APPENDIX: REFERENCE TABLES")
	assert.Contains(t, report.Content, "$14.90")
}

func TestEngine_RefusesInvalidAssessment(t *testing.T) {
	engine := newTestEngine(t, Collaborators{})
	record := sampleRecord()
	record.Symptoms.Physical[0].Severity = "Extreme"

	_, err := engine.Generate(context.Background(), record, domain.ReportOptions{})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	report, err := engine.Generate(context.Background(), record, domain.ReportOptions{AcknowledgeInvalid: true})
	require.NoError(t, err)
	assert.False(t, report.Validation.Valid)
	assert.NotEmpty(t, report.Validation.Reasons)
}

func TestEngine_NilRecord(t *testing.T) {
	engine := newTestEngine(t, Collaborators{})
	_, err := engine.Generate(context.Background(), nil, domain.ReportOptions{AcknowledgeInvalid: true})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestEngine_InvalidOptions(t *testing.T) {
	engine := newTestEngine(t, Collaborators{})

	_, err := engine.Generate(context.Background(), sampleRecord(), domain.ReportOptions{DetailLevel: "verbose"})
	assert.Error(t, err)

	_, err = engine.Generate(context.Background(), sampleRecord(), domain.ReportOptions{Format: "pdf"})
	assert.Error(t, err)
}

func TestEngine_PartialFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	engine := newTestEngine(t, Collaborators{Metrics: m})
	engine.RegisterSection("failing", func(generators.Dependencies) generators.Generator {
		return stubGenerator{key: "failing", order: 50, err: errors.New("source unavailable")}
	})
	engine.RegisterSection("panicking", func(generators.Dependencies) generators.Generator {
		return stubGenerator{key: "panicking", order: 60, panics: true}
	})
	engine.RegisterSection("extra", func(generators.Dependencies) generators.Generator {
		return stubGenerator{key: "extra", order: 70, content: "EXTRA\nextra content"}
	})

	report, err := engine.Generate(context.Background(), sampleRecord(), domain.ReportOptions{
		CustomSections: []string{"failing", "panicking", "extra", "unknown"},
	})
	require.NoError(t, err)

	require.Len(t, report.Failures, 2)
	assert.Len(t, report.Sections, 9)
	assert.Contains(t, report.Content, "FAILING\n[Section could not be generated]")
	assert.Contains(t, report.Content, "PANICKING\n[Section could not be generated]")
	assert.Contains(t, report.Content, "extra content")
	assert.True(t, strings.Index(report.Content, "FAILING") < strings.Index(report.Content, "extra content"))

	for _, f := range report.Failures {
		if f.Key == "panicking" {
			assert.Contains(t, f.Reason, "panicked")
		}
	}
}

func TestEngine_CustomSectionOrderConflictSkipped(t *testing.T) {
	engine := newTestEngine(t, Collaborators{})
	engine.RegisterSection("clash", func(generators.Dependencies) generators.Generator {
		return stubGenerator{key: "clash", order: generators.OrderSymptoms, content: "CLASH"}
	})

	report, err := engine.Generate(context.Background(), sampleRecord(), domain.ReportOptions{CustomSections: []string{"clash"}})
	require.NoError(t, err)
	assert.Len(t, report.Sections, 8)
	assert.NotContains(t, report.Content, "CLASH")
}

func TestEngine_EnhancementFallback(t *testing.T) {
	plain := newTestEngine(t, Collaborators{})
	raw, err := plain.Generate(context.Background(), sampleRecord(), domain.ReportOptions{})
	require.NoError(t, err)

	failing := newTestEngine(t, Collaborators{
		Enhancer: enhancerFunc(func(context.Context, string, string, domain.EnhanceOptions) (string, error) {
			return "", errors.New("service rejected request")
		}),
	})
	report, err := failing.Generate(context.Background(), sampleRecord(), domain.ReportOptions{Enhance: true})
	require.NoError(t, err)

	require.Len(t, report.Sections, len(raw.Sections))
	for i := range report.Sections {
		assert.Equal(t, raw.Sections[i].Content, report.Sections[i].Content)
		assert.False(t, report.Sections[i].Enhanced)
	}
	assert.Equal(t, raw.Content, report.Content)
}

func TestEngine_EnhancementTimeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	engine := newTestEngine(t, Collaborators{
		EnhanceTimeout: 20 * time.Millisecond,
		Enhancer: enhancerFunc(func(context.Context, string, string, domain.EnhanceOptions) (string, error) {
			<-block
			return "too late", nil
		}),
	})

	report, err := engine.Generate(context.Background(), sampleRecord(), domain.ReportOptions{Enhance: true})
	require.NoError(t, err)
	assert.NotContains(t, report.Content, "too late")
	for _, s := range report.Sections {
		assert.False(t, s.Enhanced)
	}
}

func TestEngine_EnhancementApplied(t *testing.T) {
	var calls int32
	engine := newTestEngine(t, Collaborators{
		Enhancer: enhancerFunc(func(_ context.Context, section, raw string, opts domain.EnhanceOptions) (string, error) {
			atomic.AddInt32(&calls, 1)
			assert.Equal(t, domain.DetailDetailed, opts.DetailLevel)
			return raw + "\nReviewed.", nil
		}),
	})

	report, err := engine.Generate(context.Background(), sampleRecord(), domain.ReportOptions{
		DetailLevel: domain.DetailDetailed,
		Enhance:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(len(report.Sections)), atomic.LoadInt32(&calls))
	for _, s := range report.Sections {
		assert.True(t, s.Enhanced)
		assert.True(t, strings.HasSuffix(s.Content, "Reviewed."))
	}
}

func TestEngine_CustomTemplateOverride(t *testing.T) {
	engine := newTestEngine(t, Collaborators{})
	engine.RegisterTemplate(templates.Template{
		Key:      domain.SectionSymptoms,
		Brief:    "SYMPTOM OVERVIEW\n{{symptoms}}",
		Standard: "SYMPTOM OVERVIEW\n{{symptoms}}",
		Detailed: "SYMPTOM OVERVIEW\n{{symptoms}}",
	})

	report, err := engine.Generate(context.Background(), sampleRecord(), domain.ReportOptions{Format: domain.FormatMarkdown})
	require.NoError(t, err)
	assert.Contains(t, report.Content, "# SYMPTOM OVERVIEW")
}

func TestEngine_CareCostsAndValidate(t *testing.T) {
	engine := newTestEngine(t, Collaborators{})

	summary := engine.CareCosts(sampleRecord().Care.Tasks)
	assert.InDelta(t, 453.52, summary.TotalMonthly, 0.01)

	assert.True(t, engine.Validate(sampleRecord()).Valid)
}

func TestNewEngine_RejectsBadConfig(t *testing.T) {
	_, err := NewEngine(testLogger(), domain.ReportConfig{DetailLevel: "huge"}, Collaborators{})
	assert.Error(t, err)

	_, err = NewEngine(testLogger(), domain.ReportConfig{RateTable: "future"}, Collaborators{})
	assert.Error(t, err)
}

func TestEngine_MergeOptions(t *testing.T) {
	engine, err := NewEngine(testLogger(), domain.ReportConfig{
		DetailLevel:       "detailed",
		Format:            "html",
		IncludeAppendices: true,
		CustomSections:    []string{"extra"},
	}, Collaborators{})
	require.NoError(t, err)

	merged := engine.MergeOptions(domain.ReportOptions{Format: domain.FormatPlain, Enhance: true})
	assert.Equal(t, domain.DetailDetailed, merged.DetailLevel)
	assert.Equal(t, domain.FormatPlain, merged.Format)
	assert.True(t, merged.IncludeAppendices)
	assert.True(t, merged.Enhance)
	assert.Equal(t, []string{"extra"}, merged.CustomSections)
}
