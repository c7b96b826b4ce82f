package generators

import (
	"context"
	"math"
	"strings"

	"github.com/assessment-report-engine/internal/domain"
	"github.com/assessment-report-engine/internal/formatting"
	"github.com/assessment-report-engine/internal/reference"
)

// ROM classification thresholds
const (
	RestrictionRatio = 0.70
	AsymmetryRatio   = 0.20
	PainfulThreshold = 3.0
)

var (
	upperExtremity = []string{"shoulder", "elbow", "wrist"}
	lowerExtremity = []string{"hip", "knee", "ankle"}
)

// Functional impact statements
const (
	UpperExtremityImpact = "Upper extremity limitations affect reaching, lifting, carrying and fine motor tasks such as dressing and meal preparation"
	LowerExtremityImpact = "Lower extremity limitations affect walking, stair climbing, transfers and prolonged standing"
	PainImpact           = "Pain limits function during movement and sustained activity"
)

// FunctionalGenerator classifies range of motion and renders functional testing results
type FunctionalGenerator struct {
	base
	helper formatting.FunctionalHelper
}

// NewFunctionalGenerator creates the functional assessment generator
func NewFunctionalGenerator(deps Dependencies) *FunctionalGenerator {
	return &FunctionalGenerator{
		base: base{key: domain.SectionFunctional, title: "Functional Assessment", order: OrderFunctional, typ: domain.SectionMixed, deps: deps},
	}
}

// Generate implements Generator
func (g *FunctionalGenerator) Generate(ctx context.Context, record *domain.AssessmentRecord) (domain.ReportSection, error) {
	fa := record.FunctionalAssessment
	if fa == nil {
		return g.render(ctx, blank("findings"))
	}

	findings := make([]formatting.ROMFinding, 0, len(fa.RangeOfMotion))
	for _, m := range fa.RangeOfMotion {
		findings = append(findings, ClassifyROM(m))
	}

	return g.render(ctx, map[string]interface{}{
		"findings": formatting.Format[formatting.FunctionalFindings](g.helper, g.deps.level(), formatting.FunctionalFindings{
			ROM:          findings,
			Impacts:      FunctionalImpacts(findings),
			Berg:         fa.BergBalance,
			Tolerances:   fa.Tolerances,
			Observations: fa.Observations,
		}),
	})
}

// ClassifyROM flags a measurement as restricted (active range below 70% of normal on
// either side), asymmetric (sides differ by more than 20% of their average) and painful
// (pain above 3 on either side). Normal comes from the reference table when not supplied.
func ClassifyROM(m domain.ROMMeasurement) formatting.ROMFinding {
	f := formatting.ROMFinding{
		Joint:     m.Joint,
		Movement:  m.Movement,
		Left:      m.Active.Left,
		Right:     m.Active.Right,
		Passive:   m.Passive,
		PainScale: m.PainScale,
		Notes:     m.Notes,
	}

	if m.Active.Normal != nil {
		f.Normal, f.HasNormal = *m.Active.Normal, true
	} else {
		f.Normal, f.HasNormal = reference.NormalROM(m.Joint, m.Movement)
	}

	if f.HasNormal && f.Normal > 0 {
		threshold := f.Normal * RestrictionRatio
		f.Restricted = f.Left < threshold || f.Right < threshold
	}

	avg := (f.Left + f.Right) / 2
	if avg > 0 && math.Abs(f.Left-f.Right) > AsymmetryRatio*avg {
		f.Asymmetric = true
		if f.Left > f.Right {
			f.DominantSide, f.AffectedSide = "left", "right"
		} else {
			f.DominantSide, f.AffectedSide = "right", "left"
		}
	}

	if m.PainScale != nil {
		f.Painful = m.PainScale.Left > PainfulThreshold || m.PainScale.Right > PainfulThreshold
	}

	return f
}

// FunctionalImpacts derives the impact bullets from classified findings
func FunctionalImpacts(findings []formatting.ROMFinding) []string {
	var upper, lower, pain bool
	for _, f := range findings {
		limited := f.Restricted || f.Asymmetric
		joint := strings.ToLower(f.Joint)
		if limited && containsAny(joint, upperExtremity) {
			upper = true
		}
		if limited && containsAny(joint, lowerExtremity) {
			lower = true
		}
		if f.Painful {
			pain = true
		}
	}

	var impacts []string
	if upper {
		impacts = append(impacts, UpperExtremityImpact)
	}
	if lower {
		impacts = append(impacts, LowerExtremityImpact)
	}
	if pain {
		impacts = append(impacts, PainImpact)
	}
	return impacts
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
