// Package templates holds the per-section, per-verbosity report templates and the
// plain/markdown/html output converters.
package templates

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/assessment-report-engine/internal/domain"
)

// FieldFormatter renders one placeholder value
type FieldFormatter func(value interface{}) string

// Template holds the three verbosity variants of one section
type Template struct {
	Key        domain.SectionKey
	Brief      string
	Standard   string
	Detailed   string
	Formatters map[string]FieldFormatter
}

// Variant returns the template string for a detail level
func (t Template) Variant(level domain.DetailLevel) string {
	switch level {
	case domain.DetailBrief:
		return t.Brief
	case domain.DetailDetailed:
		return t.Detailed
	default:
		return t.Standard
	}
}

var (
	placeholderPattern = regexp.MustCompile(`\{\{\s*[A-Za-z0-9_.]+\s*\}\}`)
	extraBlankLines    = regexp.MustCompile(`\n{3,}`)
)

type registry struct {
	mu        sync.RWMutex
	templates map[domain.SectionKey]Template
}

// Manager fills section templates for one detail level and output format.
// Managers created with WithOptions share templates and cache.
type Manager struct {
	logger *logrus.Logger
	reg    *registry
	cache  domain.Cache
	level  domain.DetailLevel
	format domain.OutputFormat
}

// NewManager creates a manager loaded with the default section templates.
// cache may be nil.
func NewManager(logger *logrus.Logger, level domain.DetailLevel, format domain.OutputFormat, cache domain.Cache) *Manager {
	m := &Manager{
		logger: logger,
		reg:    &registry{templates: make(map[domain.SectionKey]Template)},
		cache:  cache,
		level:  level,
		format: format,
	}
	for _, t := range DefaultTemplates() {
		m.Register(t)
	}
	return m
}

// WithOptions returns a manager sharing templates and cache with a different level and format
func (m *Manager) WithOptions(level domain.DetailLevel, format domain.OutputFormat) *Manager {
	return &Manager{
		logger: m.logger,
		reg:    m.reg,
		cache:  m.cache,
		level:  level,
		format: format,
	}
}

// Level returns the configured detail level
func (m *Manager) Level() domain.DetailLevel { return m.level }

// Format returns the configured output format
func (m *Manager) Format() domain.OutputFormat { return m.format }

// Register adds or replaces the template for a section key
func (m *Manager) Register(t Template) {
	m.reg.mu.Lock()
	defer m.reg.mu.Unlock()
	m.reg.templates[t.Key] = t
}

// Has reports whether a template is registered for the key
func (m *Manager) Has(key domain.SectionKey) bool {
	m.reg.mu.RLock()
	defer m.reg.mu.RUnlock()
	_, ok := m.reg.templates[key]
	return ok
}

func (m *Manager) lookup(key domain.SectionKey) (Template, bool) {
	m.reg.mu.RLock()
	defer m.reg.mu.RUnlock()
	t, ok := m.reg.templates[key]
	return t, ok
}

// FormatSection fills the template for key with data and converts the result to the
// configured output format. An unknown key yields an empty string.
func (m *Manager) FormatSection(ctx context.Context, key domain.SectionKey, data map[string]interface{}) string {
	t, ok := m.lookup(key)
	if !ok {
		m.logger.WithField("section", key).Warn("No template registered for section")
		return ""
	}

	cacheKey := ""
	if m.cache != nil {
		cacheKey = m.cacheKey(key, t.Variant(m.level), data)
		if cached, hit := m.cache.Get(ctx, cacheKey); hit {
			m.logger.WithField("section", key).Debug("Template render cache hit")
			return cached
		}
	}

	filled := m.Fill(key, t.Variant(m.level), data, t.Formatters)
	out := Convert(m.format, filled)

	if m.cache != nil {
		m.cache.Set(ctx, cacheKey, out)
	}
	return out
}

// Fill replaces every {{name}} with its formatted value in a single pass over the
// template, so substituted values are never scanned for placeholders. Placeholders
// left without data are removed and logged.
func (m *Manager) Fill(key domain.SectionKey, template string, data map[string]interface{}, formatters map[string]FieldFormatter) string {
	var missing []string
	result := placeholderPattern.ReplaceAllStringFunc(template, func(token string) string {
		name := strings.TrimSpace(token[2 : len(token)-2])
		value, ok := data[name]
		if !ok {
			missing = append(missing, token)
			return ""
		}
		if f, ok := formatters[name]; ok {
			return f(value)
		}
		return Stringify(value)
	})

	if len(missing) > 0 {
		m.logger.WithFields(logrus.Fields{
			"section":      key,
			"placeholders": missing,
		}).Warn("Template placeholders left unfilled")
	}

	return tidy(result)
}

func (m *Manager) cacheKey(key domain.SectionKey, variant string, data map[string]interface{}) string {
	payload, err := json.Marshal(data)
	if err != nil {
		payload = []byte(fmt.Sprintf("%v", data))
	}
	h := sha256.New()
	fmt.Fprintf(h, "%s::%s::%s::%s::", key, m.level, m.format, variant)
	h.Write(payload)
	hash := h.Sum(nil)
	return "render:" + hex.EncodeToString(hash)
}

// Stringify renders a placeholder value without a field formatter
func Stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		lines := make([]string, 0, len(v))
		for _, item := range v {
			if strings.TrimSpace(item) != "" {
				lines = append(lines, "- "+item)
			}
		}
		return strings.Join(lines, "\n")
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// tidy trims trailing spaces on each line and collapses runs of blank lines
func tidy(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	s = strings.Join(lines, "\n")
	s = extraBlankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
