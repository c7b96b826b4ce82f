package service

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assessment-report-engine/internal/domain"
	"github.com/assessment-report-engine/internal/reference"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

func TestRiskMatcher_IdentifyRisk(t *testing.T) {
	matcher := NewRiskMatcher(testLogger())

	tests := []struct {
		name         string
		activity     string
		notes        string
		independence domain.IndependenceLevel
		wantRisk     string
		wantNil      bool
	}{
		{
			name:         "first match wins over generic fallback",
			activity:     "meal_prep",
			notes:        "Client reports a burn last week while making tea, also some other filler",
			independence: domain.TotalAssistance,
			wantRisk:     "Risk of burns when using the stove or handling hot items",
		},
		{
			name:         "earlier rule wins when several match",
			activity:     "meal_prep",
			notes:        "Cut finger with a knife next to the hot stove",
			independence: domain.Independent,
			wantRisk:     "Risk of burns when using the stove or handling hot items",
		},
		{
			name:         "case insensitive trigger",
			activity:     "Bathing",
			notes:        "Nearly SLIPPED getting out",
			independence: domain.Supervision,
			wantRisk:     "Risk of falls on wet bathroom surfaces",
		},
		{
			name:         "generic fallback for total assistance",
			activity:     "dressing",
			notes:        "requires help",
			independence: domain.TotalAssistance,
			wantRisk:     "High risk of injury when attempting this activity without assistance",
		},
		{
			name:         "generic fallback for unknown activity",
			activity:     "gardening",
			notes:        "",
			independence: domain.MaximalAssistance,
			wantRisk:     "High risk of injury when attempting this activity without assistance",
		},
		{
			name:         "no risk identified",
			activity:     "meal_prep",
			notes:        "Prepares simple meals",
			independence: domain.ModerateAssistance,
			wantNil:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finding := matcher.IdentifyRisk(tt.activity, tt.notes, tt.independence)
			if tt.wantNil {
				assert.Nil(t, finding)
				return
			}
			require.NotNil(t, finding)
			assert.Equal(t, tt.activity, finding.Activity)
			assert.Equal(t, tt.wantRisk, finding.Risk)
			assert.NotEmpty(t, finding.Mitigation)
		})
	}
}

func TestRiskMatcher_Deterministic(t *testing.T) {
	matcher := NewRiskMatcher(testLogger())
	first := matcher.IdentifyRisk("stairs", "unsteady, uses the handrail", domain.Supervision)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, matcher.IdentifyRisk("stairs", "unsteady, uses the handrail", domain.Supervision))
	}
}

func TestRiskMatcher_CustomRules(t *testing.T) {
	rules := map[string][]RiskRule{
		"gardening": {{Triggers: []string{"kneel"}, Risk: "Knee strain", Mitigation: "Use raised beds"}},
	}
	matcher := NewRiskMatcherWithRules(testLogger(), rules)

	finding := matcher.IdentifyRisk("gardening", "Cannot kneel", domain.Independent)
	require.NotNil(t, finding)
	assert.Equal(t, "Knee strain", finding.Risk)
	assert.Nil(t, matcher.IdentifyRisk("meal_prep", "burn", domain.Independent))
}

func TestCareCalculator_CalculateCareHours(t *testing.T) {
	calc := NewCareCalculator(testLogger())

	levels := calc.CalculateCareHours([]domain.CareTask{
		{Category: domain.CategoryPersonalCare, Task: "Grooming", Frequency: 2, Duration: 30, Period: domain.PeriodDaily, Level: domain.CareLevel1},
	})

	l1 := levels[domain.CareLevel1]
	assert.InDelta(t, 1.0, l1.HoursPerDay, 1e-9)
	assert.InDelta(t, 30.4375, l1.HoursPerMonth, 1e-9)
	assert.InDelta(t, 453.52, l1.MonthlyTotal, 0.005)
	assert.Equal(t, 14.90, l1.MonthlyRate)

	require.Len(t, levels, 3)
	assert.Zero(t, levels[domain.CareLevel2].HoursPerDay)
	assert.Equal(t, 14.00, levels[domain.CareLevel2].MonthlyRate)
	assert.Zero(t, levels[domain.CareLevel3].MonthlyTotal)
}

func TestCareCalculator_WeeklyTasks(t *testing.T) {
	calc := NewCareCalculator(testLogger())

	levels := calc.CalculateCareHours([]domain.CareTask{
		{Task: "Laundry", Frequency: 2, Duration: 105, Period: domain.PeriodWeekly, Level: domain.CareLevel2},
		{Task: "Supervision", Frequency: 1, Duration: 60, Period: domain.PeriodDaily, Level: domain.CareLevel2},
		{Task: "Bad period", Frequency: 1, Duration: 60, Period: "monthly", Level: domain.CareLevel2},
		{Task: "Bad level", Frequency: 1, Duration: 60, Period: domain.PeriodDaily, Level: "level9"},
	})

	// 210 minutes a week is half an hour a day
	assert.InDelta(t, 1.5, levels[domain.CareLevel2].HoursPerDay, 1e-9)
	assert.InDelta(t, 1.5*AverageDaysPerMonth*14.00, levels[domain.CareLevel2].MonthlyTotal, 1e-9)
}

func TestCareCalculator_HistoricalRates(t *testing.T) {
	calc := NewCareCalculatorWithRates(testLogger(), reference.HistoricalRates())
	assert.Equal(t, "historical", calc.RateTable())

	summary := calc.Summarize([]domain.CareTask{
		{Task: "Bathing", Frequency: 1, Duration: 60, Period: domain.PeriodDaily, Level: domain.CareLevel1},
		{Task: "Wound care", Frequency: 1, Duration: 60, Period: domain.PeriodDaily, Level: domain.CareLevel3},
	})

	assert.Equal(t, "historical", summary.RateTable)
	assert.InDelta(t, 2.0, summary.TotalHoursPerDay, 1e-9)
	assert.InDelta(t, 2*AverageDaysPerMonth, summary.TotalMonthlyHours, 1e-9)
	assert.InDelta(t, AverageDaysPerMonth*(11.23+15.00), summary.TotalMonthly, 1e-9)
}

func TestValidator_Validate(t *testing.T) {
	validator := NewValidator(testLogger())

	t.Run("nil record", func(t *testing.T) {
		result := validator.Validate(nil)
		assert.False(t, result.Valid)
	})

	t.Run("empty record is valid", func(t *testing.T) {
		result := validator.Validate(&domain.AssessmentRecord{})
		assert.True(t, result.Valid)
		assert.NoError(t, result.Err())
	})

	t.Run("valid record", func(t *testing.T) {
		result := validator.Validate(validRecord())
		assert.True(t, result.Valid, result.Reasons)
	})

	t.Run("invalid enums are reported, not coerced", func(t *testing.T) {
		record := validRecord()
		record.Symptoms.Physical[0].Severity = "Extreme"
		record.Symptoms.Cognitive[0].Frequency = "Daily"
		record.ADL.SelfCare[0].Independence = "some_help"
		record.Care.Tasks[0].Period = "monthly"
		record.Care.Tasks[0].Level = "level4"
		record.FunctionalAssessment.BergBalance.Items[0].Score = 5
		record.FunctionalAssessment.BergBalance.TotalScore = 60

		result := validator.Validate(record)
		assert.False(t, result.Valid)
		assert.Len(t, result.Errors, 7)
		assert.Equal(t, domain.Severity("Extreme"), record.Symptoms.Physical[0].Severity)

		err := result.Err()
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrValidationFailed))
		assert.Contains(t, err.Error(), "symptoms.physical[0].severity")
	})

	t.Run("pain scale out of range", func(t *testing.T) {
		record := validRecord()
		record.FunctionalAssessment.RangeOfMotion[0].PainScale = &domain.SidePair{Left: 11, Right: 2}
		result := validator.Validate(record)
		assert.False(t, result.Valid)
	})
}

func validRecord() *domain.AssessmentRecord {
	return &domain.AssessmentRecord{
		ID: "a-1",
		Symptoms: &domain.Symptoms{
			Physical:  []domain.Symptom{{Location: "Neck", Severity: "Moderate", Frequency: domain.FrequencyOften}},
			Cognitive: []domain.Symptom{{Name: "Memory", Severity: "6", Frequency: domain.FrequencySometimes}},
		},
		FunctionalAssessment: &domain.FunctionalAssessment{
			RangeOfMotion: []domain.ROMMeasurement{
				{Joint: "shoulder", Movement: "flexion", Active: domain.ActiveROM{Left: 170, Right: 150}},
			},
			BergBalance: &domain.BergBalanceAssessment{
				Items:      []domain.BergBalanceItem{{Name: "Sitting to standing", Score: 4}},
				TotalScore: 48,
			},
		},
		ADL: &domain.ADL{
			SelfCare: []domain.ADLActivity{{Key: "bathing", Independence: domain.Supervision}},
		},
		Care: &domain.Care{
			Tasks: []domain.CareTask{
				{Category: domain.CategoryPersonalCare, Task: "Bathing", Frequency: 1, Duration: 45, Period: domain.PeriodDaily, Level: domain.CareLevel1},
			},
		},
	}
}
