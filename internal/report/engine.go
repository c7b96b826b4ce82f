package report

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/assessment-report-engine/internal/domain"
	"github.com/assessment-report-engine/internal/formatting"
	"github.com/assessment-report-engine/internal/generators"
	"github.com/assessment-report-engine/internal/metrics"
	"github.com/assessment-report-engine/internal/reference"
	"github.com/assessment-report-engine/internal/service"
	"github.com/assessment-report-engine/internal/templates"
)

const (
	// DefaultEnhanceTimeout bounds a single call to the text enhancer
	DefaultEnhanceTimeout = 15 * time.Second
	// DefaultWorkers is the number of sections generated concurrently
	DefaultWorkers = 4
)

// GeneratorFactory builds a custom section generator for one report
type GeneratorFactory func(deps generators.Dependencies) generators.Generator

// Collaborators are the optional components injected into the engine. Any may be nil.
type Collaborators struct {
	Cache          domain.Cache
	Enhancer       domain.TextEnhancer
	Metrics        *metrics.Metrics
	Changes        generators.ChangeDetector
	EnhanceTimeout time.Duration
}

// Engine generates reports from assessment records
type Engine struct {
	logger    *logrus.Logger
	config    domain.ReportConfig
	level     domain.DetailLevel
	format    domain.OutputFormat
	validator *service.Validator
	risk      *service.RiskMatcher
	care      *service.CareCalculator
	units     *formatting.Units
	templates *templates.Manager
	collab    Collaborators

	mu     sync.RWMutex
	custom map[string]GeneratorFactory
}

// NewEngine creates a report engine from configuration
func NewEngine(logger *logrus.Logger, config domain.ReportConfig, collab Collaborators) (*Engine, error) {
	level, err := domain.ParseDetailLevel(config.DetailLevel)
	if err != nil {
		return nil, err
	}
	format, err := domain.ParseOutputFormat(config.Format)
	if err != nil {
		return nil, err
	}

	rates, err := reference.RatesByName(config.RateTable)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate table: %w", err)
	}
	if config.Workers <= 0 {
		config.Workers = DefaultWorkers
	}
	if collab.EnhanceTimeout <= 0 {
		collab.EnhanceTimeout = DefaultEnhanceTimeout
	}
	if collab.Changes == nil {
		collab.Changes = generators.NoChanges
	}

	return &Engine{
		logger:    logger,
		config:    config,
		level:     level,
		format:    format,
		validator: service.NewValidator(logger),
		risk:      service.NewRiskMatcher(logger),
		care:      service.NewCareCalculatorWithRates(logger, rates),
		units:     formatting.NewUnits(config.CurrencyLocale),
		templates: templates.NewManager(logger, level, format, collab.Cache),
		collab:    collab,
		custom:    make(map[string]GeneratorFactory),
	}, nil
}

// RegisterSection makes a custom section available by name to ReportOptions.CustomSections
func (e *Engine) RegisterSection(name string, factory GeneratorFactory) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.custom[name] = factory
}

// RegisterTemplate adds or replaces a section template
func (e *Engine) RegisterTemplate(t templates.Template) {
	e.templates.Register(t)
}

// DefaultOptions returns the configured report options
func (e *Engine) DefaultOptions() domain.ReportOptions {
	return domain.ReportOptions{
		DetailLevel:       e.level,
		Format:            e.format,
		IncludeAppendices: e.config.IncludeAppendices,
		CustomSections:    e.config.CustomSections,
	}
}

// MergeOptions overlays caller options on the configured defaults. Empty fields
// keep the default; appendices are included if either side asks for them.
func (e *Engine) MergeOptions(req domain.ReportOptions) domain.ReportOptions {
	defaults := e.DefaultOptions()
	merged := req
	if merged.DetailLevel == "" {
		merged.DetailLevel = defaults.DetailLevel
	}
	if merged.Format == "" {
		merged.Format = defaults.Format
	}
	if merged.CustomSections == nil {
		merged.CustomSections = defaults.CustomSections
	}
	merged.IncludeAppendices = req.IncludeAppendices || defaults.IncludeAppendices
	return merged
}

// Validate checks every enum-bearing field of the record
func (e *Engine) Validate(record *domain.AssessmentRecord) domain.ValidationResult {
	return e.validator.Validate(record)
}

// CareCosts derives the hours and monthly cost summary for a set of care tasks
func (e *Engine) CareCosts(tasks []domain.CareTask) domain.CareCostSummary {
	return e.care.Summarize(tasks)
}

// Generate produces a report. Invalid records are refused with an error wrapping
// domain.ErrValidationFailed unless opts.AcknowledgeInvalid is set. A failing
// generator never aborts the report; it is recorded in Report.Failures.
func (e *Engine) Generate(ctx context.Context, record *domain.AssessmentRecord, opts domain.ReportOptions) (*domain.Report, error) {
	start := time.Now()
	if record == nil {
		return nil, fmt.Errorf("%w: assessment record is required", domain.ErrValidationFailed)
	}

	if opts.DetailLevel == "" {
		opts.DetailLevel = e.level
	}
	if opts.Format == "" {
		opts.Format = e.format
	}
	level, err := domain.ParseDetailLevel(string(opts.DetailLevel))
	if err != nil {
		return nil, err
	}
	format, err := domain.ParseOutputFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}

	validation := e.validator.Validate(record)
	if !validation.Valid {
		if !opts.AcknowledgeInvalid {
			e.logger.WithField("reasons", validation.Reasons).Warn("Refusing to generate report for invalid assessment")
			return nil, validation.Err()
		}
		e.logger.WithField("reasons", validation.Reasons).Warn("Generating report for acknowledged invalid assessment")
	}

	deps := generators.Dependencies{
		Logger:    e.logger,
		Templates: e.templates.WithOptions(level, format),
		Risk:      e.risk,
		Care:      e.care,
		Units:     e.units,
		Changes:   e.collab.Changes,
	}
	gens := e.generatorsFor(deps, opts)

	sections, failures := e.run(ctx, gens, record, level, format, opts.Enhance)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("report generation canceled: %w", err)
	}

	content, err := Assemble(format, sections, failures)
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		ID:           uuid.New().String(),
		AssessmentID: record.ID,
		GeneratedAt:  time.Now().UTC(),
		DetailLevel:  level,
		Format:       format,
		Sections:     SortSections(sections),
		Failures:     failures,
		Validation:   validation,
		Content:      content,
	}

	elapsed := time.Since(start)
	e.collab.Metrics.ReportGenerated(string(level), string(format), len(failures) > 0, elapsed)
	e.logger.WithFields(logrus.Fields{
		"report_id":     report.ID,
		"assessment_id": report.AssessmentID,
		"sections":      len(sections),
		"failures":      len(failures),
		"detail_level":  level,
		"format":        format,
		"duration_ms":   elapsed.Milliseconds(),
	}).Info("Report generated")

	return report, nil
}

// generatorsFor builds the registry for one report and returns it in order
func (e *Engine) generatorsFor(deps generators.Dependencies, opts domain.ReportOptions) []generators.Generator {
	registry := generators.NewRegistry()
	for _, g := range generators.Core(deps) {
		if err := registry.Register(g); err != nil {
			e.logger.WithError(err).Error("Failed to register core section")
		}
	}
	if opts.IncludeAppendices {
		if err := registry.Register(generators.NewAppendixGenerator(deps)); err != nil {
			e.logger.WithError(err).Warn("Failed to register appendix")
		}
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, name := range opts.CustomSections {
		factory, ok := e.custom[name]
		if !ok {
			e.logger.WithField("section", name).Warn("Unknown custom section skipped")
			continue
		}
		if err := registry.Register(factory(deps)); err != nil {
			e.logger.WithError(err).WithField("section", name).Warn("Custom section skipped")
		}
	}

	return registry.Generators()
}

type outcome struct {
	section domain.ReportSection
	failure *domain.SectionFailure
}

// run dispatches every generator concurrently and waits for all of them to settle
func (e *Engine) run(ctx context.Context, gens []generators.Generator, record *domain.AssessmentRecord, level domain.DetailLevel, format domain.OutputFormat, enhance bool) ([]domain.ReportSection, []domain.SectionFailure) {
	results := make([]outcome, len(gens))

	var g errgroup.Group
	g.SetLimit(e.config.Workers)
	for i, gen := range gens {
		i, gen := i, gen
		g.Go(func() error {
			results[i] = e.runOne(ctx, gen, record, level, format, enhance)
			return nil
		})
	}
	_ = g.Wait()

	sections := make([]domain.ReportSection, 0, len(gens))
	var failures []domain.SectionFailure
	for _, r := range results {
		if r.failure != nil {
			failures = append(failures, *r.failure)
			continue
		}
		sections = append(sections, r.section)
	}
	return sections, failures
}

func (e *Engine) runOne(ctx context.Context, gen generators.Generator, record *domain.AssessmentRecord, level domain.DetailLevel, format domain.OutputFormat, enhance bool) outcome {
	section, err := safeGenerate(ctx, gen, record)
	if err != nil {
		e.logger.WithError(err).WithField("section", gen.Key()).Warn("Section generation failed")
		e.collab.Metrics.SectionFailed(string(gen.Key()))
		return outcome{failure: &domain.SectionFailure{
			Key:    gen.Key(),
			Title:  gen.Title(),
			Order:  gen.Order(),
			Reason: err.Error(),
		}}
	}

	if enhance && e.collab.Enhancer != nil && section.Content != "" {
		section = e.enhance(ctx, section, level, format)
	}

	e.collab.Metrics.SectionGenerated(string(gen.Key()), string(level))
	return outcome{section: section}
}

// safeGenerate converts a generator panic into an error
func safeGenerate(ctx context.Context, gen generators.Generator, record *domain.AssessmentRecord) (section domain.ReportSection, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("section %s panicked: %v", gen.Key(), r)
		}
	}()
	return gen.Generate(ctx, record)
}

type enhanceResult struct {
	text string
	err  error
}

// enhance post-processes a section and keeps the raw content on any failure or timeout
func (e *Engine) enhance(ctx context.Context, section domain.ReportSection, level domain.DetailLevel, format domain.OutputFormat) domain.ReportSection {
	callCtx, cancel := context.WithTimeout(ctx, e.collab.EnhanceTimeout)
	defer cancel()

	done := make(chan enhanceResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- enhanceResult{err: fmt.Errorf("enhancer panicked: %v", r)}
			}
		}()
		text, err := e.collab.Enhancer.Enhance(callCtx, string(section.Key), section.Content, domain.EnhanceOptions{
			DetailLevel: level,
			Format:      format,
		})
		done <- enhanceResult{text: text, err: err}
	}()

	var res enhanceResult
	select {
	case res = <-done:
	case <-callCtx.Done():
		res.err = callCtx.Err()
	}

	if res.err == nil && res.text == "" {
		res.err = errors.New("enhancer returned empty content")
	}
	if res.err != nil {
		e.logger.WithError(res.err).WithField("section", section.Key).Warn("Enhancement failed, using raw content")
		e.collab.Metrics.EnhancementFallback(string(section.Key))
		return section
	}

	section.Content = res.text
	section.Enhanced = true
	return section
}
