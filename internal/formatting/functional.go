package formatting

import (
	"fmt"
	"strings"

	"github.com/assessment-report-engine/internal/domain"
	"github.com/assessment-report-engine/internal/reference"
)

// ROMFinding is one classified range-of-motion measurement
type ROMFinding struct {
	Joint      string
	Movement   string
	Left       float64
	Right      float64
	Normal     float64
	HasNormal  bool
	Restricted bool
	Asymmetric bool
	Painful    bool
	// DominantSide is the side with the larger range when asymmetric, AffectedSide the smaller
	DominantSide string
	AffectedSide string
	Passive      *domain.SidePair
	PainScale    *domain.SidePair
	Notes        string
}

// Label returns e.g. "Shoulder flexion"
func (f ROMFinding) Label() string {
	return strings.TrimSpace(TitleCase(f.Joint) + " " + strings.ToLower(strings.ReplaceAll(f.Movement, "_", " ")))
}

// Abnormal reports any classification flag
func (f ROMFinding) Abnormal() bool {
	return f.Restricted || f.Asymmetric || f.Painful
}

// FunctionalFindings is the classified functional assessment handed to the helper
type FunctionalFindings struct {
	ROM          []ROMFinding
	Impacts      []string
	Berg         *domain.BergBalanceAssessment
	Tolerances   *domain.Tolerances
	Observations string
}

// FunctionalHelper renders range of motion, balance and tolerances
type FunctionalHelper struct {
	Base
}

// FormatBrief lists abnormal findings and the Berg band
func (h FunctionalHelper) FormatBrief(f FunctionalFindings) string {
	var items []string
	for _, rom := range f.ROM {
		if rom.Abnormal() {
			items = append(items, fmt.Sprintf("%s: %s", rom.Label(), strings.Join(h.flags(rom), ", ")))
		}
	}
	return h.Paragraphs(
		h.Block("Range of Motion", h.FormatList(items)),
		h.bergLine(f.Berg, false),
	)
}

// FormatStandard lists every measurement, the functional impacts, Berg and tolerances
func (h FunctionalHelper) FormatStandard(f FunctionalFindings) string {
	items := make([]string, 0, len(f.ROM))
	for _, rom := range f.ROM {
		items = append(items, h.measurement(rom, false))
	}
	return h.Paragraphs(
		h.Block("Range of Motion", h.FormatList(items)),
		h.Block("Functional Impact", h.FormatList(f.Impacts)),
		h.bergLine(f.Berg, false),
		h.Block("Tolerances", h.tolerances(f.Tolerances)),
	)
}

// FormatDetailed adds passive range, pain ratings, Berg items and observations
func (h FunctionalHelper) FormatDetailed(f FunctionalFindings) string {
	items := make([]string, 0, len(f.ROM))
	for _, rom := range f.ROM {
		items = append(items, h.measurement(rom, true))
	}
	var bergItems string
	if f.Berg != nil {
		lines := make([]string, 0, len(f.Berg.Items))
		for _, item := range f.Berg.Items {
			line := fmt.Sprintf("%s: %d/%d", item.Name, item.Score, reference.BergMaxItemScore)
			if item.Notes != "" {
				line += " (" + item.Notes + ")"
			}
			lines = append(lines, line)
		}
		bergItems = h.FormatList(lines)
	}
	var bergNotes string
	if f.Berg != nil {
		bergNotes = h.FormatParagraph(f.Berg.GeneralNotes)
	}
	return h.Paragraphs(
		h.Block("Range of Motion", h.FormatList(items)),
		h.Block("Functional Impact", h.FormatList(f.Impacts)),
		h.bergLine(f.Berg, true),
		bergItems,
		bergNotes,
		h.Block("Tolerances", h.tolerances(f.Tolerances)),
		h.Block("Observations", h.FormatParagraph(f.Observations)),
	)
}

func (h FunctionalHelper) flags(rom ROMFinding) []string {
	var flags []string
	if rom.Restricted {
		flags = append(flags, "restricted")
	}
	if rom.Asymmetric {
		flags = append(flags, fmt.Sprintf("asymmetric, %s side reduced", rom.AffectedSide))
	}
	if rom.Painful {
		flags = append(flags, "painful")
	}
	return flags
}

func (h FunctionalHelper) measurement(rom ROMFinding, detailed bool) string {
	line := fmt.Sprintf("%s: left %s, right %s", rom.Label(), FormatDegrees(rom.Left), FormatDegrees(rom.Right))
	if rom.HasNormal {
		line += fmt.Sprintf(" (normal %s)", FormatDegrees(rom.Normal))
	}
	if flags := h.flags(rom); len(flags) > 0 {
		line += " - " + strings.Join(flags, ", ")
	}
	if !detailed {
		return line
	}
	if rom.Passive != nil {
		line += fmt.Sprintf(". Passive left %s, right %s", FormatDegrees(rom.Passive.Left), FormatDegrees(rom.Passive.Right))
	}
	if rom.PainScale != nil {
		line += fmt.Sprintf(". Pain left %g/10, right %g/10", rom.PainScale.Left, rom.PainScale.Right)
	}
	if rom.Notes != "" {
		line += ". " + Sentence(rom.Notes)
	}
	return line
}

func (h FunctionalHelper) bergLine(berg *domain.BergBalanceAssessment, detailed bool) string {
	if berg == nil {
		return ""
	}
	interp, ok := reference.InterpretBerg(berg.TotalScore)
	if !ok {
		return h.FormatField("Berg Balance Scale", fmt.Sprintf("%d/%d", berg.TotalScore, reference.BergMaxScore))
	}
	value := fmt.Sprintf("%d/%d - %s", berg.TotalScore, reference.BergMaxScore, interp.FallRisk)
	if detailed {
		value += fmt.Sprintf(" (%s). A change of %d points is required to be clinically meaningful.",
			strings.ToLower(interp.Ambulation), interp.MinimalDetectableChange)
	} else {
		value += fmt.Sprintf(" (%s)", strings.ToLower(interp.Ambulation))
	}
	return h.FormatField("Berg Balance Scale", value)
}

func (h FunctionalHelper) tolerances(t *domain.Tolerances) string {
	if t == nil {
		return ""
	}
	minutes := func(m int) string {
		if m <= 0 {
			return ""
		}
		return fmt.Sprintf("%d minutes", m)
	}
	return h.Lines(
		h.FormatField("Sitting", minutes(t.SittingMinutes)),
		h.FormatField("Standing", minutes(t.StandingMinutes)),
		h.FormatField("Walking", minutes(t.WalkingMinutes)),
		h.FormatParagraph(t.Notes),
	)
}
