package formatting

import (
	"fmt"
	"strings"

	"github.com/assessment-report-engine/internal/domain"
)

// SymptomGroup is one titled list of symptoms
type SymptomGroup struct {
	Title    string
	Symptoms []domain.Symptom
}

// SymptomsHelper renders the symptom inventory
type SymptomsHelper struct {
	Base
}

// Groups returns the non-empty symptom groups in report order
func (SymptomsHelper) Groups(s *domain.Symptoms) []SymptomGroup {
	if s == nil {
		return nil
	}
	all := []SymptomGroup{
		{Title: "Physical Symptoms", Symptoms: s.Physical},
		{Title: "Cognitive Symptoms", Symptoms: s.Cognitive},
		{Title: "Emotional Symptoms", Symptoms: s.Emotional},
	}
	groups := make([]SymptomGroup, 0, len(all))
	for _, g := range all {
		if len(g.Symptoms) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}

// FormatBrief lists each symptom with its severity
func (h SymptomsHelper) FormatBrief(s *domain.Symptoms) string {
	var blocks []string
	for _, g := range h.Groups(s) {
		items := make([]string, 0, len(g.Symptoms))
		for _, sym := range g.Symptoms {
			items = append(items, h.headline(sym))
		}
		blocks = append(blocks, h.Block(g.Title, h.FormatList(items)))
	}
	return h.Paragraphs(blocks...)
}

// FormatStandard adds frequency and aggravating/relieving factors
func (h SymptomsHelper) FormatStandard(s *domain.Symptoms) string {
	var blocks []string
	for _, g := range h.Groups(s) {
		items := make([]string, 0, len(g.Symptoms))
		for _, sym := range g.Symptoms {
			items = append(items, h.describe(sym, false))
		}
		blocks = append(blocks, h.Block(g.Title, h.FormatList(items)))
	}
	if s != nil {
		blocks = append(blocks, h.FormatParagraph(s.GeneralNotes))
	}
	return h.Paragraphs(blocks...)
}

// FormatDetailed adds functional impact, management and a pattern analysis
func (h SymptomsHelper) FormatDetailed(s *domain.Symptoms) string {
	var blocks []string
	for _, g := range h.Groups(s) {
		items := make([]string, 0, len(g.Symptoms))
		for _, sym := range g.Symptoms {
			items = append(items, h.describe(sym, true))
		}
		blocks = append(blocks, h.Block(g.Title, h.FormatList(items)))
	}
	if s != nil {
		blocks = append(blocks, h.FormatParagraph(s.GeneralNotes))
	}
	blocks = append(blocks, h.Block("Symptom Pattern", h.pattern(s)))
	return h.Paragraphs(blocks...)
}

func (h SymptomsHelper) headline(sym domain.Symptom) string {
	if sym.Severity == "" {
		return sym.DisplayName()
	}
	return fmt.Sprintf("%s (%s)", sym.DisplayName(), sym.Severity.Label())
}

func (h SymptomsHelper) describe(sym domain.Symptom, detailed bool) string {
	parts := []string{h.headline(sym)}
	if sym.Frequency != "" {
		parts[0] += ", " + strings.ToLower(string(sym.Frequency))
	}
	if sym.Aggravating != "" {
		parts = append(parts, "Aggravated by "+sym.Aggravating+".")
	}
	if sym.Relieving != "" {
		parts = append(parts, "Relieved by "+sym.Relieving+".")
	}
	if detailed {
		if sym.Impact != "" {
			parts = append(parts, "Impact: "+Sentence(sym.Impact))
		}
		if sym.Management != "" {
			parts = append(parts, "Management: "+Sentence(sym.Management))
		}
	}
	return strings.Join(parts, " ")
}

// pattern summarizes high-severity and constant symptoms across all groups
func (h SymptomsHelper) pattern(s *domain.Symptoms) string {
	var total int
	var high, constant []string
	for _, g := range h.Groups(s) {
		for _, sym := range g.Symptoms {
			total++
			if sym.Severity.IsHigh() {
				high = append(high, sym.DisplayName())
			}
			if sym.Frequency == domain.FrequencyConstantly || sym.Frequency == domain.FrequencyMostOfTime {
				constant = append(constant, sym.DisplayName())
			}
		}
	}
	if total == 0 {
		return ""
	}

	lines := []string{fmt.Sprintf("%d symptom(s) reported.", total)}
	if len(high) > 0 {
		lines = append(lines, fmt.Sprintf("Rated severe: %s.", JoinWords(high)))
	}
	if len(constant) > 0 {
		lines = append(lines, fmt.Sprintf("Present most of the time or constantly: %s.", JoinWords(constant)))
	}
	return strings.Join(lines, " ")
}
