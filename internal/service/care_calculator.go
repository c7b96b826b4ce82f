package service

import (
	"github.com/sirupsen/logrus"

	"github.com/assessment-report-engine/internal/domain"
	"github.com/assessment-report-engine/internal/reference"
)

// AverageDaysPerMonth is 365.25 / 12
const AverageDaysPerMonth = 30.4375

// CareCalculator converts itemized care tasks into per-level hours and monthly costs.
// Each calculator is bound to exactly one rate table.
type CareCalculator struct {
	logger *logrus.Logger
	rates  reference.RateTable
}

// NewCareCalculator creates a calculator on the current rate table
func NewCareCalculator(logger *logrus.Logger) *CareCalculator {
	return NewCareCalculatorWithRates(logger, reference.CurrentRates())
}

// NewCareCalculatorWithRates creates a calculator on the given rate table
func NewCareCalculatorWithRates(logger *logrus.Logger, rates reference.RateTable) *CareCalculator {
	return &CareCalculator{
		logger: logger,
		rates:  rates,
	}
}

// RateTable returns the name of the rate table in use
func (c *CareCalculator) RateTable() string {
	return c.rates.Name
}

// CalculateCareHours folds the tasks into per-level hours and totals
func (c *CareCalculator) CalculateCareHours(tasks []domain.CareTask) map[domain.CareLevel]domain.CareLevelSummary {
	levels := make(map[domain.CareLevel]domain.CareLevelSummary, len(domain.CareLevels))
	for _, level := range domain.CareLevels {
		levels[level] = domain.CareLevelSummary{
			Level:       level,
			MonthlyRate: c.rates.Rate(level),
		}
	}

	for _, task := range tasks {
		summary, ok := levels[task.Level]
		if !ok {
			c.logger.WithFields(logrus.Fields{
				"task":  task.Task,
				"level": task.Level,
			}).Warn("Skipping care task with unknown level of care")
			continue
		}

		minutes := float64(task.Frequency * task.Duration)
		switch task.Period {
		case domain.PeriodDaily:
			summary.HoursPerDay += minutes / 60
		case domain.PeriodWeekly:
			summary.HoursPerDay += (minutes / 7) / 60
		default:
			c.logger.WithFields(logrus.Fields{
				"task":   task.Task,
				"period": task.Period,
			}).Warn("Skipping care task with unknown period")
			continue
		}
		levels[task.Level] = summary
	}

	for level, summary := range levels {
		summary.HoursPerMonth = summary.HoursPerDay * AverageDaysPerMonth
		summary.MonthlyTotal = summary.HoursPerMonth * summary.MonthlyRate
		levels[level] = summary
	}

	return levels
}

// Summarize calculates per-level figures and the overall totals
func (c *CareCalculator) Summarize(tasks []domain.CareTask) domain.CareCostSummary {
	levels := c.CalculateCareHours(tasks)

	summary := domain.CareCostSummary{
		RateTable: c.rates.Name,
		Levels:    levels,
	}
	for _, level := range domain.CareLevels {
		l := levels[level]
		summary.TotalHoursPerDay += l.HoursPerDay
		summary.TotalMonthlyHours += l.HoursPerMonth
		summary.TotalMonthly += l.MonthlyTotal
	}

	c.logger.WithFields(logrus.Fields{
		"tasks":         len(tasks),
		"rate_table":    c.rates.Name,
		"monthly_total": summary.TotalMonthly,
	}).Debug("Calculated attendant care costs")

	return summary
}
