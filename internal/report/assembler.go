// Package report runs the section generators for an assessment and assembles their output.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/assessment-report-engine/internal/domain"
	"github.com/assessment-report-engine/internal/templates"
)

type part struct {
	order   int
	key     domain.SectionKey
	content string
}

// Assemble sorts sections by order and joins them with the format's separator.
// Each failure is rendered as an explicit marker at its declared order.
// Orders must be unique across sections and failures.
func Assemble(format domain.OutputFormat, sections []domain.ReportSection, failures []domain.SectionFailure) (string, error) {
	parts := make([]part, 0, len(sections)+len(failures))
	seen := make(map[int]domain.SectionKey, cap(parts))

	add := func(p part) error {
		if other, dup := seen[p.order]; dup {
			return fmt.Errorf("%w: %d used by %q and %q", domain.ErrDuplicateOrder, p.order, other, p.key)
		}
		seen[p.order] = p.key
		parts = append(parts, p)
		return nil
	}

	for _, s := range sections {
		if err := add(part{order: s.Order, key: s.Key, content: s.Content}); err != nil {
			return "", err
		}
	}
	for _, f := range failures {
		if err := add(part{order: f.Order, key: f.Key, content: templates.FailureMarker(format, f.Title)}); err != nil {
			return "", err
		}
	}

	sort.Slice(parts, func(i, j int) bool { return parts[i].order < parts[j].order })

	contents := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p.content) == "" {
			continue
		}
		contents = append(contents, p.content)
	}
	return strings.Join(contents, templates.Separator(format)), nil
}

// SortSections returns a copy of sections ordered by their order field
func SortSections(sections []domain.ReportSection) []domain.ReportSection {
	sorted := make([]domain.ReportSection, len(sections))
	copy(sorted, sections)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	return sorted
}
