package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/assessment-report-engine/internal/domain"
	"github.com/assessment-report-engine/internal/reference"
)

// Validator checks that every enum-bearing field of an assessment takes a value
// from its closed set. It never coerces values.
type Validator struct {
	logger *logrus.Logger
}

// NewValidator creates a new assessment validator
func NewValidator(logger *logrus.Logger) *Validator {
	return &Validator{logger: logger}
}

// Validate returns a boolean-plus-reasons result for the record
func (v *Validator) Validate(record *domain.AssessmentRecord) domain.ValidationResult {
	result := domain.NewValidationResult()
	if record == nil {
		result.Add("assessment", "assessment record is required", nil)
		return result
	}

	v.validateSymptoms(record.Symptoms, &result)
	v.validateFunctional(record.FunctionalAssessment, &result)
	v.validateADL(record.ADL, &result)
	v.validateCare(record.Care, &result)

	if !result.Valid {
		v.logger.WithFields(logrus.Fields{
			"assessment_id": record.ID,
			"errors":        len(result.Errors),
		}).Info("Assessment failed validation")
	}

	return result
}

func (v *Validator) validateSymptoms(symptoms *domain.Symptoms, result *domain.ValidationResult) {
	if symptoms == nil {
		return
	}
	groups := []struct {
		name  string
		items []domain.Symptom
	}{
		{"physical", symptoms.Physical},
		{"cognitive", symptoms.Cognitive},
		{"emotional", symptoms.Emotional},
	}
	for _, group := range groups {
		for i, s := range group.items {
			field := fmt.Sprintf("symptoms.%s[%d]", group.name, i)
			if !s.Severity.IsValid() {
				result.Add(field+".severity", "severity must be None, Mild, Moderate, Severe, Very Severe or 0-10", string(s.Severity))
			}
			if !s.Frequency.IsValid() {
				result.Add(field+".frequency", "frequency must be Rarely, Sometimes, Often, Most of the time or Constantly", string(s.Frequency))
			}
		}
	}
}

func (v *Validator) validateFunctional(fa *domain.FunctionalAssessment, result *domain.ValidationResult) {
	if fa == nil {
		return
	}
	for i, m := range fa.RangeOfMotion {
		field := fmt.Sprintf("functional_assessment.range_of_motion[%d]", i)
		if m.Active.Left < 0 || m.Active.Right < 0 {
			result.Add(field+".active", "active range must not be negative", m.Active)
		}
		if m.PainScale != nil {
			if outOfRange(m.PainScale.Left, 0, 10) || outOfRange(m.PainScale.Right, 0, 10) {
				result.Add(field+".pain_scale", "pain scale must be between 0 and 10", *m.PainScale)
			}
		}
	}

	berg := fa.BergBalance
	if berg == nil {
		return
	}
	if len(berg.Items) > len(reference.BergItems) {
		result.Add("functional_assessment.berg_balance.items",
			fmt.Sprintf("at most %d items are allowed", len(reference.BergItems)), len(berg.Items))
	}
	for i, item := range berg.Items {
		if item.Score < 0 || item.Score > reference.BergMaxItemScore {
			result.Add(fmt.Sprintf("functional_assessment.berg_balance.items[%d].score", i),
				fmt.Sprintf("item score must be between 0 and %d", reference.BergMaxItemScore), item.Score)
		}
	}
	if berg.TotalScore < 0 || berg.TotalScore > reference.BergMaxScore {
		result.Add("functional_assessment.berg_balance.total_score",
			fmt.Sprintf("total score must be between 0 and %d", reference.BergMaxScore), berg.TotalScore)
	}
}

func (v *Validator) validateADL(adl *domain.ADL, result *domain.ValidationResult) {
	if adl == nil {
		return
	}
	for _, group := range adl.Groups() {
		for i, activity := range group.Activities {
			if !activity.Independence.IsValid() {
				result.Add(fmt.Sprintf("adl.%s[%d].independence", group.Title, i),
					"unknown independence level", string(activity.Independence))
			}
		}
	}
}

func (v *Validator) validateCare(care *domain.Care, result *domain.ValidationResult) {
	if care == nil {
		return
	}
	for i, task := range care.Tasks {
		field := fmt.Sprintf("care.tasks[%d]", i)
		if !task.Category.IsValid() {
			result.Add(field+".category", "unknown care category", string(task.Category))
		}
		if !task.Period.IsValid() {
			result.Add(field+".period", "period must be daily or weekly", string(task.Period))
		}
		if !task.Level.IsValid() {
			result.Add(field+".level_of_care", "level of care must be level1, level2 or level3", string(task.Level))
		}
		if task.Frequency < 0 {
			result.Add(field+".frequency", "frequency must not be negative", task.Frequency)
		}
		if task.Duration < 0 {
			result.Add(field+".duration", "duration must not be negative", task.Duration)
		}
	}
}

func outOfRange(v, lo, hi float64) bool {
	return v < lo || v > hi
}
