package formatting

import (
	"fmt"
	"strings"

	"github.com/assessment-report-engine/internal/domain"
)

// RoutineHelper renders one daily routine as a narrative
type RoutineHelper struct {
	Base
}

type period struct {
	name       string
	activities *domain.PeriodActivities
}

func periods(r *domain.DailyRoutine) []period {
	return []period{
		{"morning", r.Morning},
		{"afternoon", r.Afternoon},
		{"evening", r.Evening},
		{"night", r.Night},
	}
}

// FormatBrief renders sleep times and a one-line activity summary
func (h RoutineHelper) FormatBrief(r *domain.DailyRoutine) string {
	if r == nil {
		return ""
	}
	var activities []string
	for _, p := range periods(r) {
		if p.activities != nil {
			activities = append(activities, p.activities.Activities...)
		}
	}
	var summary string
	if len(activities) > 0 {
		summary = "Activities include " + JoinWords(lowerAll(activities)) + "."
	}
	return h.Lines(h.sleep(r.Sleep, false), summary)
}

// FormatStandard renders a sentence per period of the day
func (h RoutineHelper) FormatStandard(r *domain.DailyRoutine) string {
	if r == nil {
		return ""
	}
	return h.Paragraphs(h.sleep(r.Sleep, false), h.periodNarrative(r, false), h.weekly(r.WeeklyPattern, false))
}

// FormatDetailed adds sleep quality, naps, period notes and recurring weekly activities
func (h RoutineHelper) FormatDetailed(r *domain.DailyRoutine) string {
	if r == nil {
		return ""
	}
	return h.Paragraphs(h.sleep(r.Sleep, true), h.periodNarrative(r, true), h.weekly(r.WeeklyPattern, true))
}

func (h RoutineHelper) sleep(s *domain.SleepSchedule, detailed bool) string {
	if s == nil {
		return ""
	}
	var parts []string
	switch {
	case s.WakeTime != "" && s.BedTime != "":
		parts = append(parts, fmt.Sprintf("Wakes at %s and goes to bed at %s.", s.WakeTime, s.BedTime))
	case s.WakeTime != "":
		parts = append(parts, fmt.Sprintf("Wakes at %s.", s.WakeTime))
	case s.BedTime != "":
		parts = append(parts, fmt.Sprintf("Goes to bed at %s.", s.BedTime))
	}
	if detailed {
		if s.Quality != "" {
			parts = append(parts, fmt.Sprintf("Sleep quality is described as %s.", strings.ToLower(s.Quality)))
		}
		if s.Naps != "" {
			parts = append(parts, "Naps: "+Sentence(s.Naps))
		}
		if s.Notes != "" {
			parts = append(parts, Sentence(s.Notes))
		}
	}
	return strings.Join(parts, " ")
}

func (h RoutineHelper) periodNarrative(r *domain.DailyRoutine, detailed bool) string {
	var sentences []string
	for _, p := range periods(r) {
		if p.activities == nil {
			continue
		}
		if len(p.activities.Activities) > 0 {
			sentences = append(sentences, fmt.Sprintf("In the %s: %s.", p.name, JoinWords(lowerAll(p.activities.Activities))))
		}
		if detailed && p.activities.Notes != "" {
			sentences = append(sentences, Sentence(p.activities.Notes))
		}
	}
	return strings.Join(sentences, " ")
}

func (h RoutineHelper) weekly(w *domain.WeeklyPattern, detailed bool) string {
	if w == nil {
		return ""
	}
	var parts []string
	if w.Weekdays != "" {
		parts = append(parts, "Weekdays: "+Sentence(w.Weekdays))
	}
	if w.Weekends != "" {
		parts = append(parts, "Weekends: "+Sentence(w.Weekends))
	}
	if detailed {
		if len(w.Recurring) > 0 {
			parts = append(parts, fmt.Sprintf("Recurring activities: %s.", JoinWords(lowerAll(w.Recurring))))
		}
		if w.Notes != "" {
			parts = append(parts, Sentence(w.Notes))
		}
	}
	return strings.Join(parts, " ")
}

func lowerAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, lowerFirst(item))
		}
	}
	return out
}
