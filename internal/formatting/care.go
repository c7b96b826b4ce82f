package formatting

import (
	"fmt"

	"github.com/assessment-report-engine/internal/domain"
)

// CareCategoryData is the set of tasks falling in one care category
type CareCategoryData struct {
	Category domain.CareCategory
	Tasks    []domain.CareTask
}

// DailyMinutes returns the average minutes per day across the category's tasks
func (d CareCategoryData) DailyMinutes() float64 {
	var total float64
	for _, t := range d.Tasks {
		minutes := float64(t.Frequency * t.Duration)
		if t.Period == domain.PeriodWeekly {
			minutes /= 7
		}
		total += minutes
	}
	return total
}

// CareHelper renders one care category in the moderate-narrative form
type CareHelper struct {
	Base
	Units *Units
}

// NewCareHelper creates a care helper bound to the currency/number formatter
func NewCareHelper(units *Units) CareHelper {
	return CareHelper{Units: units}
}

// FormatBrief renders a one-line total for the category
func (h CareHelper) FormatBrief(d CareCategoryData) string {
	if len(d.Tasks) == 0 {
		return ""
	}
	return h.FormatField(d.Category.Label(),
		fmt.Sprintf("%d task(s), %s per day", len(d.Tasks), h.Units.FormatHours(d.DailyMinutes()/60)))
}

// FormatStandard adds one line per task
func (h CareHelper) FormatStandard(d CareCategoryData) string {
	if len(d.Tasks) == 0 {
		return ""
	}
	items := make([]string, 0, len(d.Tasks))
	for _, t := range d.Tasks {
		items = append(items, h.task(t))
	}
	return h.Block(d.Category.Label(), h.Lines(
		fmt.Sprintf("Assistance is required with %d task(s) averaging %s per day.",
			len(d.Tasks), h.Units.FormatHours(d.DailyMinutes()/60)),
		h.FormatList(items),
	))
}

// FormatDetailed adds the level of care for each task
func (h CareHelper) FormatDetailed(d CareCategoryData) string {
	if len(d.Tasks) == 0 {
		return ""
	}
	items := make([]string, 0, len(d.Tasks))
	for _, t := range d.Tasks {
		items = append(items, h.task(t)+" ["+t.Level.Label()+"]")
	}
	return h.Block(d.Category.Label(), h.Lines(
		fmt.Sprintf("Assistance is required with %d task(s) averaging %s per day (%s per week).",
			len(d.Tasks), h.Units.FormatHours(d.DailyMinutes()/60), h.Units.FormatHours(d.DailyMinutes()*7/60)),
		h.FormatList(items),
	))
}

func (h CareHelper) task(t domain.CareTask) string {
	return fmt.Sprintf("%s: %d x %s %s", t.Task, t.Frequency, h.Units.FormatMinutes(t.Duration), t.Period)
}

// CostSummaryHelper renders the per-level hours and monthly cost totals
type CostSummaryHelper struct {
	Base
	Units *Units
}

// NewCostSummaryHelper creates a cost summary helper bound to the currency/number formatter
func NewCostSummaryHelper(units *Units) CostSummaryHelper {
	return CostSummaryHelper{Units: units}
}

// FormatBrief renders the monthly total only
func (h CostSummaryHelper) FormatBrief(s domain.CareCostSummary) string {
	return h.Block("Cost Summary", h.FormatField("Total Monthly Cost", h.Units.FormatCurrency(s.TotalMonthly)))
}

// FormatStandard renders the monthly cost per level and the total
func (h CostSummaryHelper) FormatStandard(s domain.CareCostSummary) string {
	var items []string
	for _, level := range domain.CareLevels {
		l := s.Levels[level]
		if l.HoursPerDay == 0 {
			continue
		}
		items = append(items, fmt.Sprintf("%s: %s per month", level.Label(), h.Units.FormatCurrency(l.MonthlyTotal)))
	}
	return h.Block("Cost Summary", h.Lines(
		h.FormatList(items),
		h.FormatField("Total Monthly Cost", h.Units.FormatCurrency(s.TotalMonthly)),
	))
}

// FormatDetailed renders hours, rates and cost per level
func (h CostSummaryHelper) FormatDetailed(s domain.CareCostSummary) string {
	var items []string
	for _, level := range domain.CareLevels {
		l := s.Levels[level]
		if l.HoursPerDay == 0 {
			continue
		}
		items = append(items, fmt.Sprintf("%s: %s per day, %s per month at %s/hour = %s",
			level.Label(),
			h.Units.FormatHours(l.HoursPerDay),
			h.Units.FormatHours(l.HoursPerMonth),
			h.Units.FormatCurrency(l.MonthlyRate),
			h.Units.FormatCurrency(l.MonthlyTotal)))
	}
	return h.Block("Cost Summary", h.Lines(
		h.FormatList(items),
		h.FormatField("Total Hours Per Month", h.Units.FormatHours(s.TotalMonthlyHours)),
		h.FormatField("Total Monthly Cost", h.Units.FormatCurrency(s.TotalMonthly)),
		h.FormatField("Rate Table", s.RateTable),
	))
}
