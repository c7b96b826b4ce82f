package generators

import (
	"context"

	"github.com/assessment-report-engine/internal/domain"
	"github.com/assessment-report-engine/internal/formatting"
)

// SymptomsGenerator renders the symptom inventory
type SymptomsGenerator struct {
	base
	helper formatting.SymptomsHelper
}

// NewSymptomsGenerator creates the symptoms generator
func NewSymptomsGenerator(deps Dependencies) *SymptomsGenerator {
	return &SymptomsGenerator{
		base: base{key: domain.SectionSymptoms, title: "Symptoms", order: OrderSymptoms, typ: domain.SectionMixed, deps: deps},
	}
}

// Generate implements Generator
func (g *SymptomsGenerator) Generate(ctx context.Context, record *domain.AssessmentRecord) (domain.ReportSection, error) {
	return g.render(ctx, map[string]interface{}{
		"symptoms": formatting.Format[*domain.Symptoms](g.helper, g.deps.level(), record.Symptoms),
	})
}

// EnvironmentalGenerator renders the home environment findings
type EnvironmentalGenerator struct {
	base
	helper formatting.EnvironmentalHelper
}

// NewEnvironmentalGenerator creates the environmental generator
func NewEnvironmentalGenerator(deps Dependencies) *EnvironmentalGenerator {
	return &EnvironmentalGenerator{
		base: base{key: domain.SectionEnvironmental, title: "Environmental Assessment", order: OrderEnvironmental, typ: domain.SectionMixed, deps: deps},
	}
}

// Generate implements Generator
func (g *EnvironmentalGenerator) Generate(ctx context.Context, record *domain.AssessmentRecord) (domain.ReportSection, error) {
	return g.render(ctx, map[string]interface{}{
		"environment": formatting.Format[*domain.Environmental](g.helper, g.deps.level(), record.Environmental),
	})
}
