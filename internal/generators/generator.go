// Package generators turns one domain slice of an assessment into one report section.
package generators

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/assessment-report-engine/internal/domain"
	"github.com/assessment-report-engine/internal/formatting"
	"github.com/assessment-report-engine/internal/service"
	"github.com/assessment-report-engine/internal/templates"
)

// Section orders. Values are unique within a report.
const (
	OrderDemographics   = 1
	OrderMedicalHistory = 2
	OrderSymptoms       = 3
	OrderFunctional     = 4
	OrderTypicalDay     = 5
	OrderEnvironmental  = 6
	OrderADL            = 7
	OrderAttendantCare  = 8
	OrderAppendix       = 100
)

// Generator produces one report section from an assessment
type Generator interface {
	Key() domain.SectionKey
	Title() string
	Order() int
	Generate(ctx context.Context, record *domain.AssessmentRecord) (domain.ReportSection, error)
}

// ChangeDetector lists significant changes between the pre-accident and current routines
type ChangeDetector func(pre, current *domain.DailyRoutine) []string

// NoChanges is the default ChangeDetector and always returns an empty list
func NoChanges(_, _ *domain.DailyRoutine) []string {
	return nil
}

// Dependencies are the collaborators shared by the generators of one report
type Dependencies struct {
	Logger    *logrus.Logger
	Templates *templates.Manager
	Risk      *service.RiskMatcher
	Care      *service.CareCalculator
	Units     *formatting.Units
	Changes   ChangeDetector
}

func (d Dependencies) level() domain.DetailLevel {
	return d.Templates.Level()
}

// base carries the identity shared by every generator
type base struct {
	key   domain.SectionKey
	title string
	order int
	typ   domain.SectionType
	deps  Dependencies
}

func (b base) Key() domain.SectionKey { return b.key }
func (b base) Title() string          { return b.title }
func (b base) Order() int             { return b.order }

// render fills the section template and wraps it as a ReportSection
func (b base) render(ctx context.Context, data map[string]interface{}) (domain.ReportSection, error) {
	if err := ctx.Err(); err != nil {
		return domain.ReportSection{}, fmt.Errorf("generate %s: %w", b.key, err)
	}
	content := b.deps.Templates.FormatSection(ctx, b.key, data)
	return domain.ReportSection{
		Key:     b.key,
		Title:   b.title,
		Type:    b.typ,
		Order:   b.order,
		Content: content,
	}, nil
}

// blank returns data with every named placeholder set to an empty fragment
func blank(keys ...string) map[string]interface{} {
	data := make(map[string]interface{}, len(keys))
	for _, k := range keys {
		data[k] = ""
	}
	return data
}

// Registry is the lookup table of generators for one report
type Registry struct {
	mu     sync.RWMutex
	byKey  map[domain.SectionKey]Generator
	orders map[int]domain.SectionKey
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byKey:  make(map[domain.SectionKey]Generator),
		orders: make(map[int]domain.SectionKey),
	}
}

// Register adds a generator. Keys and orders must be unique.
func (r *Registry) Register(g Generator) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byKey[g.Key()]; exists {
		return fmt.Errorf("section %q already registered", g.Key())
	}
	if other, exists := r.orders[g.Order()]; exists {
		return fmt.Errorf("%w: %d used by %q and %q", domain.ErrDuplicateOrder, g.Order(), other, g.Key())
	}
	r.byKey[g.Key()] = g
	r.orders[g.Order()] = g.Key()
	return nil
}

// Get returns the generator for a key
func (r *Registry) Get(key domain.SectionKey) (Generator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSection, key)
	}
	return g, nil
}

// Generators returns all registered generators sorted by order
func (r *Registry) Generators() []Generator {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]Generator, 0, len(r.byKey))
	for _, g := range r.byKey {
		list = append(list, g)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Order() < list[j].Order() })
	return list
}

// Len returns the number of registered generators
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byKey)
}

// Core returns the eight domain generators in report order
func Core(deps Dependencies) []Generator {
	if deps.Changes == nil {
		deps.Changes = NoChanges
	}
	return []Generator{
		NewDemographicsGenerator(deps),
		NewMedicalHistoryGenerator(deps),
		NewSymptomsGenerator(deps),
		NewFunctionalGenerator(deps),
		NewTypicalDayGenerator(deps),
		NewEnvironmentalGenerator(deps),
		NewADLGenerator(deps),
		NewAttendantCareGenerator(deps),
	}
}
