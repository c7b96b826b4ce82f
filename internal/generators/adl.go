package generators

import (
	"context"
	"strings"

	"github.com/assessment-report-engine/internal/domain"
	"github.com/assessment-report-engine/internal/formatting"
)

// ADLGenerator renders activities of daily living and the safety risks found in them
type ADLGenerator struct {
	base
	helper formatting.ADLHelper
	safety formatting.SafetyHelper
}

// NewADLGenerator creates the ADL generator
func NewADLGenerator(deps Dependencies) *ADLGenerator {
	return &ADLGenerator{
		base: base{key: domain.SectionADL, title: "Activities of Daily Living", order: OrderADL, typ: domain.SectionMixed, deps: deps},
	}
}

// Generate implements Generator
func (g *ADLGenerator) Generate(ctx context.Context, record *domain.AssessmentRecord) (domain.ReportSection, error) {
	level := g.deps.level()
	findings := g.Risks(record.ADL)

	return g.render(ctx, map[string]interface{}{
		"activities": formatting.Format[*domain.ADL](g.helper, level, record.ADL),
		"safety":     formatting.Format[[]domain.RiskFinding](g.safety, level, findings),
	})
}

// Risks runs the risk matcher over every activity and keeps the non-nil findings
func (g *ADLGenerator) Risks(adl *domain.ADL) []domain.RiskFinding {
	if g.deps.Risk == nil {
		return nil
	}
	var findings []domain.RiskFinding
	for _, group := range adl.Groups() {
		for _, activity := range group.Activities {
			key := activity.Key
			if key == "" {
				key = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(activity.Name)), " ", "_")
			}
			if f := g.deps.Risk.IdentifyRisk(key, activity.Notes, activity.Independence); f != nil {
				findings = append(findings, *f)
			}
		}
	}
	return findings
}
