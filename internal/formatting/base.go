// Package formatting provides verbosity-aware text builders shared by the section generators.
package formatting

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/assessment-report-engine/internal/domain"
)

// Helper renders one kind of data at the three detail levels
type Helper[T any] interface {
	FormatBrief(data T) string
	FormatStandard(data T) string
	FormatDetailed(data T) string
}

// Format dispatches to the helper branch selected by the detail level.
// Unknown levels render as standard.
func Format[T any](h Helper[T], level domain.DetailLevel, data T) string {
	switch level {
	case domain.DetailBrief:
		return h.FormatBrief(data)
	case domain.DetailDetailed:
		return h.FormatDetailed(data)
	default:
		return h.FormatStandard(data)
	}
}

// Base provides the text primitives the domain helpers compose
type Base struct{}

// FormatHeader renders a section-level header line
func (Base) FormatHeader(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}

// FormatSubheader renders a "Label:" line
func (Base) FormatSubheader(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}
	return label + ":"
}

// FormatField renders "Label: value", or nothing when the value is absent
func (Base) FormatField(label, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return label + ": " + value
}

// FormatList renders one "- item" line per non-empty item
func (Base) FormatList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		lines = append(lines, "- "+item)
	}
	return strings.Join(lines, "\n")
}

// FormatParagraph passes text through, trimmed
func (Base) FormatParagraph(text string) string {
	return strings.TrimSpace(text)
}

// Lines joins the non-empty parts with single newlines
func (Base) Lines(parts ...string) string {
	return joinNonEmpty(parts, "\n")
}

// Paragraphs joins the non-empty parts with blank lines
func (Base) Paragraphs(parts ...string) string {
	return joinNonEmpty(parts, "\n\n")
}

// Block renders a subheader followed by its body, or nothing when the body is empty
func (b Base) Block(label, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return b.FormatSubheader(label) + "\n" + body
}

func joinNonEmpty(parts []string, sep string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// TitleCase turns "minimal_assistance" into "Minimal Assistance"
func TitleCase(s string) string {
	tokens := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == ' ' })
	for i, token := range tokens {
		tokens[i] = upperFirst(strings.ToLower(token))
	}
	return strings.Join(tokens, " ")
}

func upperFirst(s string) string { return mapFirst(s, unicode.ToUpper) }

func lowerFirst(s string) string { return mapFirst(s, unicode.ToLower) }

func mapFirst(s string, fn func(rune) rune) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(fn(r)) + s[size:]
}

// Sentence capitalizes the first letter and ensures a trailing full stop
func Sentence(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = upperFirst(s)
	if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "!") && !strings.HasSuffix(s, "?") {
		s += "."
	}
	return s
}

// JoinWords joins items as "a, b and c"
func JoinWords(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
}
