package generators

import (
	"context"
	"strings"

	"github.com/assessment-report-engine/internal/domain"
	"github.com/assessment-report-engine/internal/formatting"
)

// MedicalHistoryGenerator renders the injury, pre-existing conditions and treatment history
type MedicalHistoryGenerator struct {
	base
	formatting.Base
}

// NewMedicalHistoryGenerator creates the medical history generator
func NewMedicalHistoryGenerator(deps Dependencies) *MedicalHistoryGenerator {
	return &MedicalHistoryGenerator{
		base: base{key: domain.SectionMedicalHistory, title: "Medical History", order: OrderMedicalHistory, typ: domain.SectionNarrative, deps: deps},
	}
}

// Generate implements Generator
func (g *MedicalHistoryGenerator) Generate(ctx context.Context, record *domain.AssessmentRecord) (domain.ReportSection, error) {
	h := record.MedicalHistory
	if h == nil {
		return g.render(ctx, blank("injury", "conditions", "surgeries", "medications", "allergies", "treatments", "notes"))
	}

	conditions := make([]string, 0, len(h.PreExistingConditions))
	for _, c := range h.PreExistingConditions {
		conditions = append(conditions, withDetails(c.Name, c.Diagnosed, c.Status, c.Notes))
	}
	surgeries := make([]string, 0, len(h.Surgeries))
	for _, s := range h.Surgeries {
		surgeries = append(surgeries, withDetails(s.Procedure, s.Date, s.Notes))
	}
	medications := make([]string, 0, len(h.Medications))
	for _, m := range h.Medications {
		line := strings.TrimSpace(strings.Join([]string{m.Name, m.Dosage, m.Frequency}, " "))
		if m.Purpose != "" {
			line += " (" + m.Purpose + ")"
		}
		medications = append(medications, line)
	}
	treatments := make([]string, 0, len(h.Treatments))
	for _, t := range h.Treatments {
		treatments = append(treatments, withDetails(t.Type, t.Provider, t.Frequency, t.Notes))
	}

	return g.render(ctx, map[string]interface{}{
		"injury":      g.injury(h.Injury),
		"conditions":  g.Block("Pre-existing Conditions", g.FormatList(conditions)),
		"surgeries":   g.Block("Surgeries", g.FormatList(surgeries)),
		"medications": g.Block("Medications", g.FormatList(medications)),
		"allergies":   g.Block("Allergies", g.FormatList(h.Allergies)),
		"treatments":  g.Block("Treatments", g.FormatList(treatments)),
		"notes":       g.FormatParagraph(h.Notes),
	})
}

func (g *MedicalHistoryGenerator) injury(i *domain.Injury) string {
	if i == nil {
		return ""
	}
	body := g.Lines(
		g.FormatField("Date of Injury", i.Date),
		g.FormatField("Mechanism", i.Mechanism),
	)
	if g.deps.level() != domain.DetailBrief {
		body = g.Lines(body,
			g.FormatParagraph(formatting.Sentence(i.Description)),
			g.FormatField("Immediate Care", i.ImmediateCare),
		)
	}
	return g.Block("Injury", body)
}

// withDetails renders "head (a, b, c)" skipping empty details
func withDetails(head string, details ...string) string {
	kept := make([]string, 0, len(details))
	for _, d := range details {
		if strings.TrimSpace(d) != "" {
			kept = append(kept, d)
		}
	}
	if len(kept) == 0 {
		return head
	}
	return head + " (" + strings.Join(kept, ", ") + ")"
}
