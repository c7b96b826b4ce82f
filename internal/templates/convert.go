package templates

import (
	"html"
	"regexp"
	"strings"

	"github.com/assessment-report-engine/internal/domain"
)

var (
	headerLine    = regexp.MustCompile(`^[A-Z0-9][A-Z0-9 &/(),:'-]*[A-Z)]$`)
	subheaderLine = regexp.MustCompile(`^([A-Z][^:]*):$`)
)

func isHeader(line string) bool {
	return headerLine.MatchString(line) && strings.ContainsAny(line, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
}

func subheader(line string) (string, bool) {
	m := subheaderLine.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Convert serializes filled template text into the output format
func Convert(format domain.OutputFormat, text string) string {
	switch format {
	case domain.FormatMarkdown:
		return toMarkdown(text)
	case domain.FormatHTML:
		return toHTML(text)
	default:
		return text
	}
}

func toMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isHeader(trimmed) {
			lines[i] = "# " + trimmed
			continue
		}
		if label, ok := subheader(trimmed); ok {
			lines[i] = "## " + label
		}
	}
	return strings.Join(lines, "\n")
}

func toHTML(text string) string {
	var out []string
	inList := false
	closeList := func() {
		if inList {
			out = append(out, "</ul>")
			inList = false
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			closeList()
			out = append(out, "<br/>")
		case strings.HasPrefix(trimmed, "- "):
			if !inList {
				out = append(out, "<ul>")
				inList = true
			}
			out = append(out, "<li>"+html.EscapeString(strings.TrimPrefix(trimmed, "- "))+"</li>")
		case isHeader(trimmed):
			closeList()
			out = append(out, "<h1>"+html.EscapeString(trimmed)+"</h1>")
		default:
			closeList()
			if label, ok := subheader(trimmed); ok {
				out = append(out, "<h2>"+html.EscapeString(label)+"</h2>")
			} else {
				out = append(out, "<p>"+html.EscapeString(trimmed)+"</p>")
			}
		}
	}
	closeList()
	return strings.Join(out, "\n")
}

// Separator returns the visible marker placed between sections
func Separator(format domain.OutputFormat) string {
	switch format {
	case domain.FormatMarkdown:
		return "\n\n---\n\n"
	case domain.FormatHTML:
		return "\n<hr/>\n"
	default:
		return "\n\n" + strings.Repeat("-", 60) + "\n\n"
	}
}

// FailureMarker renders the placeholder for a section that could not be generated
func FailureMarker(format domain.OutputFormat, title string) string {
	return Convert(format, strings.ToUpper(title)+"\n[Section could not be generated]")
}
