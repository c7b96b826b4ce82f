package generators

import (
	"context"
	"fmt"

	"github.com/assessment-report-engine/internal/domain"
	"github.com/assessment-report-engine/internal/formatting"
	"github.com/assessment-report-engine/internal/reference"
)

// AppendixGenerator lists the reference tables used in the report
type AppendixGenerator struct {
	base
	units *formatting.Units
}

// NewAppendixGenerator creates the appendix generator
func NewAppendixGenerator(deps Dependencies) *AppendixGenerator {
	units := deps.Units
	if units == nil {
		units = formatting.NewUnits(formatting.DefaultLocale)
	}
	return &AppendixGenerator{
		base:  base{key: domain.SectionAppendix, title: "Appendix: Reference Tables", order: OrderAppendix, typ: domain.SectionStructured, deps: deps},
		units: units,
	}
}

// Generate implements Generator
func (g *AppendixGenerator) Generate(ctx context.Context, _ *domain.AssessmentRecord) (domain.ReportSection, error) {
	bands := make([]string, 0, 3)
	for _, b := range reference.BergBands() {
		bands = append(bands, fmt.Sprintf("%d-%d: %s (%s)", b.Min, b.Max, b.FallRisk, b.Ambulation))
	}

	tableName := ""
	if g.deps.Care != nil {
		tableName = g.deps.Care.RateTable()
	}
	table, err := reference.RatesByName(tableName)
	if err != nil {
		return domain.ReportSection{}, fmt.Errorf("appendix rate table: %w", err)
	}
	rates := make([]string, 0, len(domain.CareLevels))
	for _, level := range domain.CareLevels {
		rates = append(rates, fmt.Sprintf("%s: %s/hour", level.Label(), g.units.FormatCurrency(table.Rate(level))))
	}

	return g.render(ctx, map[string]interface{}{
		"berg_bands": bands,
		"care_rates": rates,
	})
}
