package domain

import "time"

// ReportSection is the value produced by one section generator invocation
type ReportSection struct {
	Key      SectionKey  `json:"key"`
	Title    string      `json:"title"`
	Type     SectionType `json:"type"`
	Order    int         `json:"order"`
	Content  string      `json:"content"`
	Enhanced bool        `json:"enhanced,omitempty"`
}

// SectionFailure records a generator that did not produce a section
type SectionFailure struct {
	Key    SectionKey `json:"key"`
	Title  string     `json:"title"`
	Order  int        `json:"order"`
	Reason string     `json:"reason"`
}

// ReportOptions are the caller-selected generation options
type ReportOptions struct {
	DetailLevel        DetailLevel  `json:"detail_level,omitempty"`
	Format             OutputFormat `json:"format,omitempty"`
	IncludeAppendices  bool         `json:"include_appendices,omitempty"`
	CustomSections     []string     `json:"custom_sections,omitempty"`
	Enhance            bool         `json:"enhance,omitempty"`
	AcknowledgeInvalid bool         `json:"acknowledge_invalid,omitempty"`
}

// Report is the assembled output of one generation call
type Report struct {
	ID           string           `json:"id"`
	AssessmentID string           `json:"assessment_id,omitempty"`
	GeneratedAt  time.Time        `json:"generated_at"`
	DetailLevel  DetailLevel      `json:"detail_level"`
	Format       OutputFormat     `json:"format"`
	Sections     []ReportSection  `json:"sections"`
	Failures     []SectionFailure `json:"failures,omitempty"`
	Validation   ValidationResult `json:"validation"`
	Content      string           `json:"content"`
}

// RiskFinding is a safety risk identified for an activity
type RiskFinding struct {
	Activity   string `json:"activity"`
	Risk       string `json:"risk"`
	Mitigation string `json:"mitigation"`
}

// CareLevelSummary is the derived hours and cost for one care level
type CareLevelSummary struct {
	Level         CareLevel `json:"level"`
	HoursPerDay   float64   `json:"hours_per_day"`
	HoursPerMonth float64   `json:"hours_per_month"`
	MonthlyRate   float64   `json:"monthly_rate"`
	MonthlyTotal  float64   `json:"monthly_total"`
}

// CareCostSummary is derived from care tasks, never authored directly
type CareCostSummary struct {
	RateTable         string                         `json:"rate_table"`
	Levels            map[CareLevel]CareLevelSummary `json:"levels"`
	TotalHoursPerDay  float64                        `json:"total_hours_per_day"`
	TotalMonthlyHours float64                        `json:"total_monthly_hours"`
	TotalMonthly      float64                        `json:"total_monthly"`
}
