package generators

import (
	"context"
	"strings"

	"github.com/assessment-report-engine/internal/domain"
	"github.com/assessment-report-engine/internal/formatting"
)

// TypicalDayGenerator compares the pre-accident and current daily routines
type TypicalDayGenerator struct {
	base
	formatting.Base
	helper formatting.RoutineHelper
}

// NewTypicalDayGenerator creates the typical day generator
func NewTypicalDayGenerator(deps Dependencies) *TypicalDayGenerator {
	if deps.Changes == nil {
		deps.Changes = NoChanges
	}
	return &TypicalDayGenerator{
		base: base{key: domain.SectionTypicalDay, title: "Typical Day", order: OrderTypicalDay, typ: domain.SectionFullNarrative, deps: deps},
	}
}

// Generate implements Generator
func (g *TypicalDayGenerator) Generate(ctx context.Context, record *domain.AssessmentRecord) (domain.ReportSection, error) {
	td := record.TypicalDay
	if td == nil {
		return g.render(ctx, blank("pre_accident", "current", "comparison"))
	}

	level := g.deps.level()
	return g.render(ctx, map[string]interface{}{
		"pre_accident": g.Block("Pre-Accident Routine", formatting.Format[*domain.DailyRoutine](g.helper, level, td.PreAccident)),
		"current":      g.Block("Current Routine", formatting.Format[*domain.DailyRoutine](g.helper, level, td.Current)),
		"comparison":   g.Block("Comparison", g.comparison(td)),
	})
}

// comparison presents both timeframes in brief form with the detected change list
func (g *TypicalDayGenerator) comparison(td *domain.TypicalDay) string {
	if td.PreAccident == nil || td.Current == nil {
		return ""
	}
	flatten := func(s string) string { return strings.ReplaceAll(s, "\n", " ") }
	changes := g.deps.Changes(td.PreAccident, td.Current)
	return g.Lines(
		g.FormatField("Before the accident", flatten(g.helper.FormatBrief(td.PreAccident))),
		g.FormatField("Currently", flatten(g.helper.FormatBrief(td.Current))),
		g.Block("Significant Changes", g.FormatList(changes)),
	)
}
