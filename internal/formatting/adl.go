package formatting

import (
	"strings"

	"github.com/assessment-report-engine/internal/domain"
)

// ADLHelper renders activities of daily living grouped by domain
type ADLHelper struct {
	Base
}

// FormatBrief lists each activity with its independence level
func (h ADLHelper) FormatBrief(adl *domain.ADL) string {
	return h.render(adl, func(a domain.ADLActivity) string { return h.headline(a) })
}

// FormatStandard adds the assessor notes
func (h ADLHelper) FormatStandard(adl *domain.ADL) string {
	body := h.render(adl, func(a domain.ADLActivity) string {
		return strings.TrimSpace(h.headline(a) + ". " + Sentence(a.Notes))
	})
	return h.Paragraphs(body, h.notes(adl))
}

// FormatDetailed adds the equipment in use
func (h ADLHelper) FormatDetailed(adl *domain.ADL) string {
	body := h.render(adl, func(a domain.ADLActivity) string {
		line := strings.TrimSpace(h.headline(a) + ". " + Sentence(a.Notes))
		if len(a.Equipment) > 0 {
			line += " Equipment: " + strings.Join(a.Equipment, ", ") + "."
		}
		return line
	})
	return h.Paragraphs(body, h.notes(adl))
}

func (h ADLHelper) render(adl *domain.ADL, line func(domain.ADLActivity) string) string {
	var blocks []string
	for _, group := range adl.Groups() {
		items := make([]string, 0, len(group.Activities))
		for _, activity := range group.Activities {
			items = append(items, line(activity))
		}
		blocks = append(blocks, h.Block(group.Title, h.FormatList(items)))
	}
	return h.Paragraphs(blocks...)
}

func (h ADLHelper) headline(a domain.ADLActivity) string {
	name := a.Name
	if name == "" {
		name = TitleCase(a.Key)
	}
	if a.Independence == "" {
		return name
	}
	return name + ": " + TitleCase(string(a.Independence))
}

func (h ADLHelper) notes(adl *domain.ADL) string {
	if adl == nil {
		return ""
	}
	return h.FormatParagraph(adl.GeneralNotes)
}

// SafetyHelper renders identified risks as a "Safety Considerations" list
type SafetyHelper struct {
	Base
}

// FormatBrief lists the risks only
func (h SafetyHelper) FormatBrief(findings []domain.RiskFinding) string {
	items := make([]string, 0, len(findings))
	for _, f := range findings {
		items = append(items, TitleCase(f.Activity)+": "+f.Risk)
	}
	return h.Block("Safety Considerations", h.FormatList(items))
}

// FormatStandard pairs each risk with its mitigation
func (h SafetyHelper) FormatStandard(findings []domain.RiskFinding) string {
	items := make([]string, 0, len(findings))
	for _, f := range findings {
		items = append(items, TitleCase(f.Activity)+": "+Sentence(f.Risk)+" Recommendation: "+Sentence(f.Mitigation))
	}
	return h.Block("Safety Considerations", h.FormatList(items))
}

// FormatDetailed adds a closing summary of the activities at risk
func (h SafetyHelper) FormatDetailed(findings []domain.RiskFinding) string {
	list := h.FormatStandard(findings)
	if list == "" {
		return ""
	}
	activities := make([]string, 0, len(findings))
	for _, f := range findings {
		activities = append(activities, strings.ToLower(TitleCase(f.Activity)))
	}
	return h.Paragraphs(list, Sentence("Safety risks were identified for "+JoinWords(activities)))
}
