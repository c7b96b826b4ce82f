package generators

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/assessment-report-engine/internal/domain"
	"github.com/assessment-report-engine/internal/formatting"
)

// AttendantCareGenerator renders care needs per category and the monthly cost summary
type AttendantCareGenerator struct {
	base
	formatting.Base
	care formatting.CareHelper
	cost formatting.CostSummaryHelper
}

// NewAttendantCareGenerator creates the attendant care generator
func NewAttendantCareGenerator(deps Dependencies) *AttendantCareGenerator {
	units := deps.Units
	if units == nil {
		units = formatting.NewUnits(formatting.DefaultLocale)
	}
	return &AttendantCareGenerator{
		base: base{key: domain.SectionAttendantCare, title: "Attendant Care Needs", order: OrderAttendantCare, typ: domain.SectionModerateNarrative, deps: deps},
		care: formatting.NewCareHelper(units),
		cost: formatting.NewCostSummaryHelper(units),
	}
}

// Generate implements Generator
func (g *AttendantCareGenerator) Generate(ctx context.Context, record *domain.AssessmentRecord) (domain.ReportSection, error) {
	c := record.Care
	if c == nil || g.deps.Care == nil {
		return g.render(ctx, blank("provider", "categories", "cost_summary", "notes"))
	}

	level := g.deps.level()
	byCategory := make(map[domain.CareCategory][]domain.CareTask, len(domain.CareCategories))
	for _, task := range c.Tasks {
		if !task.Category.IsValid() {
			g.deps.Logger.WithFields(logrus.Fields{
				"task":     task.Task,
				"category": task.Category,
			}).Warn("Care task has unknown category, left out of category narrative")
			continue
		}
		byCategory[task.Category] = append(byCategory[task.Category], task)
	}

	fragments := make([]string, 0, len(domain.CareCategories))
	for _, category := range domain.CareCategories {
		fragments = append(fragments, formatting.Format[formatting.CareCategoryData](g.care, level, formatting.CareCategoryData{
			Category: category,
			Tasks:    byCategory[category],
		}))
	}

	var costs string
	if len(c.Tasks) > 0 {
		costs = formatting.Format[domain.CareCostSummary](g.cost, level, g.deps.Care.Summarize(c.Tasks))
	}

	return g.render(ctx, map[string]interface{}{
		"provider":     g.FormatField("Current Provider", c.CurrentProvider),
		"categories":   g.Paragraphs(fragments...),
		"cost_summary": costs,
		"notes":        g.FormatParagraph(c.Notes),
	})
}
