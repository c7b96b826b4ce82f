package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DetailLevel controls which template variant and formatting branch runs
type DetailLevel string

const (
	DetailBrief    DetailLevel = "brief"
	DetailStandard DetailLevel = "standard"
	DetailDetailed DetailLevel = "detailed"
)

// IsValid reports whether the detail level is one of the three supported values
func (d DetailLevel) IsValid() bool {
	switch d {
	case DetailBrief, DetailStandard, DetailDetailed:
		return true
	}
	return false
}

// ParseDetailLevel parses a detail level, defaulting empty input to standard
func ParseDetailLevel(s string) (DetailLevel, error) {
	if strings.TrimSpace(s) == "" {
		return DetailStandard, nil
	}
	level := DetailLevel(strings.ToLower(strings.TrimSpace(s)))
	if !level.IsValid() {
		return "", fmt.Errorf("invalid detail level %q: must be brief, standard or detailed", s)
	}
	return level, nil
}

// OutputFormat selects the serialization applied by the template manager
type OutputFormat string

const (
	FormatPlain    OutputFormat = "plain"
	FormatMarkdown OutputFormat = "markdown"
	FormatHTML     OutputFormat = "html"
)

// IsValid reports whether the output format is supported
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatPlain, FormatMarkdown, FormatHTML:
		return true
	}
	return false
}

// ParseOutputFormat parses an output format. "markup" is accepted as an alias for html.
func ParseOutputFormat(s string) (OutputFormat, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "":
		return FormatPlain, nil
	case "markup":
		return FormatHTML, nil
	}
	format := OutputFormat(v)
	if !format.IsValid() {
		return "", fmt.Errorf("invalid output format %q: must be plain, markdown or html", s)
	}
	return format, nil
}

// SeverityLevel is the named severity scale used by symptom inventories
type SeverityLevel string

const (
	SeverityNone       SeverityLevel = "None"
	SeverityMild       SeverityLevel = "Mild"
	SeverityModerate   SeverityLevel = "Moderate"
	SeveritySevere     SeverityLevel = "Severe"
	SeverityVerySevere SeverityLevel = "Very Severe"
)

var severityLevels = []SeverityLevel{SeverityNone, SeverityMild, SeverityModerate, SeveritySevere, SeverityVerySevere}

// Severity holds either a named severity level or a numeric 0-10 rating.
// JSON input may be a string ("Moderate", "7") or a number (7).
type Severity string

// UnmarshalJSON accepts both string and numeric severities
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = Severity(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("severity must be a string or number: %w", err)
	}
	*s = Severity(n.String())
	return nil
}

// Numeric returns the rating when the severity was given as a whole number.
// Integral decimals such as "7.0" count; fractional ratings such as "6.5" do not.
func (s Severity) Numeric() (int, bool) {
	v := strings.TrimSpace(string(s))
	if n, err := strconv.Atoi(v); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// IsValid reports whether the severity is a named level or an integer in 0..10.
// An empty severity is treated as absent.
func (s Severity) IsValid() bool {
	if s == "" {
		return true
	}
	if n, ok := s.Numeric(); ok {
		return n >= 0 && n <= 10
	}
	for _, level := range severityLevels {
		if SeverityLevel(s) == level {
			return true
		}
	}
	return false
}

// IsHigh reports severe or very severe symptoms, or numeric ratings of 7 and above
func (s Severity) IsHigh() bool {
	if n, ok := s.Numeric(); ok {
		return n >= 7
	}
	return SeverityLevel(s) == SeveritySevere || SeverityLevel(s) == SeverityVerySevere
}

// Label renders the severity for narrative text
func (s Severity) Label() string {
	if n, ok := s.Numeric(); ok {
		return fmt.Sprintf("%d/10", n)
	}
	return string(s)
}

// Frequency describes how often a symptom occurs
type Frequency string

const (
	FrequencyRarely     Frequency = "Rarely"
	FrequencySometimes  Frequency = "Sometimes"
	FrequencyOften      Frequency = "Often"
	FrequencyMostOfTime Frequency = "Most of the time"
	FrequencyConstantly Frequency = "Constantly"
)

// IsValid reports whether the frequency is in the closed set; empty means absent
func (f Frequency) IsValid() bool {
	switch f {
	case "", FrequencyRarely, FrequencySometimes, FrequencyOften, FrequencyMostOfTime, FrequencyConstantly:
		return true
	}
	return false
}

// IndependenceLevel describes the assistance required for an activity
type IndependenceLevel string

const (
	Independent          IndependenceLevel = "independent"
	ModifiedIndependent  IndependenceLevel = "modified_independent"
	Supervision          IndependenceLevel = "supervision"
	MinimalAssistance    IndependenceLevel = "minimal_assistance"
	ModerateAssistance   IndependenceLevel = "moderate_assistance"
	MaximalAssistance    IndependenceLevel = "maximal_assistance"
	TotalAssistance      IndependenceLevel = "total_assistance"
	IndependenceNotKnown IndependenceLevel = "not_applicable"
)

// IsValid reports whether the independence level is in the closed set; empty means absent
func (l IndependenceLevel) IsValid() bool {
	switch l {
	case "", Independent, ModifiedIndependent, Supervision, MinimalAssistance,
		ModerateAssistance, MaximalAssistance, TotalAssistance, IndependenceNotKnown:
		return true
	}
	return false
}

// RequiresHeavyAssistance is true for maximal and total assistance
func (l IndependenceLevel) RequiresHeavyAssistance() bool {
	return l == MaximalAssistance || l == TotalAssistance
}

// CarePeriod is the period over which a care task frequency is counted
type CarePeriod string

const (
	PeriodDaily  CarePeriod = "daily"
	PeriodWeekly CarePeriod = "weekly"
)

// IsValid reports whether the period is daily or weekly
func (p CarePeriod) IsValid() bool {
	return p == PeriodDaily || p == PeriodWeekly
}

// CareLevel is one of the three attendant-care tiers
type CareLevel string

const (
	CareLevel1 CareLevel = "level1"
	CareLevel2 CareLevel = "level2"
	CareLevel3 CareLevel = "level3"
)

// CareLevels lists the attendant-care tiers in ascending order
var CareLevels = []CareLevel{CareLevel1, CareLevel2, CareLevel3}

// IsValid reports whether the level is one of the three tiers
func (l CareLevel) IsValid() bool {
	switch l {
	case CareLevel1, CareLevel2, CareLevel3:
		return true
	}
	return false
}

// Label returns the display name of the tier
func (l CareLevel) Label() string {
	switch l {
	case CareLevel1:
		return "Level 1 - Routine Personal Care"
	case CareLevel2:
		return "Level 2 - Basic Supervisory Care"
	case CareLevel3:
		return "Level 3 - Complex Health/Care and Hygiene"
	}
	return string(l)
}

// CareCategory groups care tasks into report fragments
type CareCategory string

const (
	CategoryPersonalCare   CareCategory = "personal_care"
	CategoryHousekeeping   CareCategory = "housekeeping"
	CategoryMealPrep       CareCategory = "meal_preparation"
	CategoryTransportation CareCategory = "transportation"
)

// CareCategories lists the categories in report order
var CareCategories = []CareCategory{CategoryPersonalCare, CategoryHousekeeping, CategoryMealPrep, CategoryTransportation}

// IsValid reports whether the category is in the closed set
func (c CareCategory) IsValid() bool {
	for _, category := range CareCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Label returns the display name of the category
func (c CareCategory) Label() string {
	switch c {
	case CategoryPersonalCare:
		return "Personal Care"
	case CategoryHousekeeping:
		return "Housekeeping"
	case CategoryMealPrep:
		return "Meal Preparation"
	case CategoryTransportation:
		return "Transportation"
	}
	return string(c)
}

// SectionType describes how a section's content is shaped
type SectionType string

const (
	SectionStructured        SectionType = "STRUCTURED"
	SectionNarrative         SectionType = "NARRATIVE"
	SectionMixed             SectionType = "MIXED"
	SectionModerateNarrative SectionType = "MODERATE_NARRATIVE"
	SectionFullNarrative     SectionType = "FULL_NARRATIVE"
)

// SectionKey identifies a section generator and its templates
type SectionKey string

const (
	SectionDemographics   SectionKey = "demographics"
	SectionMedicalHistory SectionKey = "medical_history"
	SectionSymptoms       SectionKey = "symptoms"
	SectionFunctional     SectionKey = "functional_assessment"
	SectionTypicalDay     SectionKey = "typical_day"
	SectionEnvironmental  SectionKey = "environmental"
	SectionADL            SectionKey = "adl"
	SectionAttendantCare  SectionKey = "attendant_care"
	SectionAppendix       SectionKey = "appendix"
)
