package templates

import (
	"strings"

	"github.com/assessment-report-engine/internal/domain"
)

// BulletList renders a []string value as "- " lines
func BulletList(value interface{}) string {
	items, ok := value.([]string)
	if !ok {
		return Stringify(value)
	}
	return Stringify(items)
}

// HouseholdList renders household members as "- Relationship: Name (notes)" lines
func HouseholdList(value interface{}) string {
	members, ok := value.([]domain.HouseholdMember)
	if !ok {
		return Stringify(value)
	}
	lines := make([]string, 0, len(members))
	for _, m := range members {
		line := "- " + m.Relationship
		if m.Name != "" {
			line += ": " + m.Name
		}
		if m.Notes != "" {
			line += " (" + m.Notes + ")"
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return ""
	}
	return "Household Members:\n" + strings.Join(lines, "\n")
}

// DefaultTemplates returns the built-in template for every section key
func DefaultTemplates() []Template {
	return []Template{
		{
			Key:      domain.SectionDemographics,
			Brief:    "DEMOGRAPHICS\n{{identity}}",
			Standard: "DEMOGRAPHICS\n{{identity}}\n{{contact}}\n\n{{family}}",
			Detailed: "DEMOGRAPHICS\n{{identity}}\n{{contact}}\n{{emergency_contact}}\n\n{{family}}\n\n{{household}}",
			Formatters: map[string]FieldFormatter{
				"household": HouseholdList,
			},
		},
		{
			Key:      domain.SectionMedicalHistory,
			Brief:    "MEDICAL HISTORY\n{{injury}}\n\n{{conditions}}",
			Standard: "MEDICAL HISTORY\n{{injury}}\n\n{{conditions}}\n\n{{medications}}\n\n{{treatments}}",
			Detailed: "MEDICAL HISTORY\n{{injury}}\n\n{{conditions}}\n\n{{surgeries}}\n\n{{medications}}\n\n{{allergies}}\n\n{{treatments}}\n\n{{notes}}",
		},
		{
			Key:      domain.SectionSymptoms,
			Brief:    "SYMPTOMS\n{{symptoms}}",
			Standard: "SYMPTOMS\n{{symptoms}}",
			Detailed: "SYMPTOMS\n{{symptoms}}",
		},
		{
			Key:      domain.SectionFunctional,
			Brief:    "FUNCTIONAL ASSESSMENT\n{{findings}}",
			Standard: "FUNCTIONAL ASSESSMENT\n{{findings}}",
			Detailed: "FUNCTIONAL ASSESSMENT\n{{findings}}",
		},
		{
			Key:      domain.SectionTypicalDay,
			Brief:    "TYPICAL DAY\n{{current}}",
			Standard: "TYPICAL DAY\n{{pre_accident}}\n\n{{current}}",
			Detailed: "TYPICAL DAY\n{{pre_accident}}\n\n{{current}}\n\n{{comparison}}",
		},
		{
			Key:      domain.SectionEnvironmental,
			Brief:    "ENVIRONMENTAL ASSESSMENT\n{{environment}}",
			Standard: "ENVIRONMENTAL ASSESSMENT\n{{environment}}",
			Detailed: "ENVIRONMENTAL ASSESSMENT\n{{environment}}",
		},
		{
			Key:      domain.SectionADL,
			Brief:    "ACTIVITIES OF DAILY LIVING\n{{activities}}\n\n{{safety}}",
			Standard: "ACTIVITIES OF DAILY LIVING\n{{activities}}\n\n{{safety}}",
			Detailed: "ACTIVITIES OF DAILY LIVING\n{{activities}}\n\n{{safety}}",
		},
		{
			Key:      domain.SectionAttendantCare,
			Brief:    "ATTENDANT CARE NEEDS\n{{categories}}\n\n{{cost_summary}}",
			Standard: "ATTENDANT CARE NEEDS\n{{provider}}\n\n{{categories}}\n\n{{cost_summary}}",
			Detailed: "ATTENDANT CARE NEEDS\n{{provider}}\n\n{{categories}}\n\n{{cost_summary}}\n\n{{notes}}",
		},
		{
			Key:      domain.SectionAppendix,
			Brief:    "APPENDIX: REFERENCE TABLES\nBerg Balance Interpretation:\n{{berg_bands}}\n\nAttendant Care Hourly Rates:\n{{care_rates}}",
			Standard: "APPENDIX: REFERENCE TABLES\nBerg Balance Interpretation:\n{{berg_bands}}\n\nAttendant Care Hourly Rates:\n{{care_rates}}",
			Detailed: "APPENDIX: REFERENCE TABLES\nBerg Balance Interpretation:\n{{berg_bands}}\n\nAttendant Care Hourly Rates:\n{{care_rates}}",
			Formatters: map[string]FieldFormatter{
				"berg_bands": BulletList,
				"care_rates": BulletList,
			},
		},
	}
}
