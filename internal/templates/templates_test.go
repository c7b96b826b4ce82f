package templates

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assessment-report-engine/internal/domain"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

type mapCache struct {
	mu   sync.Mutex
	data map[string]string
	hits int
}

func newMapCache() *mapCache { return &mapCache{data: make(map[string]string)} }

func (c *mapCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if ok {
		c.hits++
	}
	return v, ok
}

func (c *mapCache) Set(_ context.Context, key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

func TestManager_FormatSection(t *testing.T) {
	ctx := context.Background()
	m := NewManager(testLogger(), domain.DetailDetailed, domain.FormatPlain, nil)

	data := map[string]interface{}{
		"identity":          "Name: Jane Doe",
		"contact":           "Phone: 555-0100",
		"emergency_contact": "",
		"family":            "Marital Status: Married",
		"household":         []domain.HouseholdMember{{Relationship: "Spouse", Name: "John"}},
	}

	out := m.FormatSection(ctx, domain.SectionDemographics, data)
	assert.NotContains(t, out, "{{")
	assert.Equal(t, "DEMOGRAPHICS\nName: Jane Doe\nPhone: 555-0100\n\nMarital Status: Married\n\nHousehold Members:\n- Spouse: John", out)
}

func TestManager_OptionalKeyWithoutPlaceholder(t *testing.T) {
	m := NewManager(testLogger(), domain.DetailBrief, domain.FormatPlain, nil)

	// "household" has no placeholder in the brief variant
	out := m.FormatSection(context.Background(), domain.SectionDemographics, map[string]interface{}{
		"identity":  "Name: Jane Doe",
		"household": []domain.HouseholdMember{{Relationship: "Spouse"}},
	})
	assert.Equal(t, "DEMOGRAPHICS\nName: Jane Doe", out)
}

func TestManager_LeftoverPlaceholdersStripped(t *testing.T) {
	m := NewManager(testLogger(), domain.DetailStandard, domain.FormatPlain, nil)
	out := m.FormatSection(context.Background(), domain.SectionTypicalDay, map[string]interface{}{
		"current": "Current Routine:\nWakes at 7:00.",
	})
	assert.NotContains(t, out, "{{")
	assert.Equal(t, "TYPICAL DAY\n\nCurrent Routine:\nWakes at 7:00.", out)
}

func TestManager_GlobalReplacement(t *testing.T) {
	m := NewManager(testLogger(), domain.DetailStandard, domain.FormatPlain, nil)
	m.Register(Template{Key: "custom", Standard: "{{x}} and {{x}}"})

	out := m.FormatSection(context.Background(), "custom", map[string]interface{}{"x": 7})
	assert.Equal(t, "7 and 7", out)
}

func TestManager_FillDoesNotExpandSubstitutedText(t *testing.T) {
	m := NewManager(testLogger(), domain.DetailStandard, domain.FormatPlain, nil)
	data := map[string]interface{}{
		"a": "client typed {{b}} literally",
		"b": "SECRET",
	}

	for i := 0; i < 50; i++ {
		out := m.Fill("custom", "A={{a}}\nB={{b}}", data, nil)
		require.Equal(t, "A=client typed {{b}} literally\nB=SECRET", out)
	}
}

func TestManager_FillAppliesFormattersAndTrimsTokens(t *testing.T) {
	m := NewManager(testLogger(), domain.DetailStandard, domain.FormatPlain, nil)
	formatters := map[string]FieldFormatter{
		"tasks": func(v interface{}) string { return strings.ToUpper(Stringify(v)) },
	}

	out := m.Fill("custom", "{{ tasks }} / {{missing}} / {{n}}", map[string]interface{}{
		"tasks": "bathing",
		"n":     3,
	}, formatters)
	assert.Equal(t, "BATHING /  / 3", out)
}

func TestManager_RenderCacheTracksTemplateText(t *testing.T) {
	ctx := context.Background()
	cache := newMapCache()
	m := NewManager(testLogger(), domain.DetailStandard, domain.FormatPlain, cache)
	data := map[string]interface{}{"x": "value"}

	m.Register(Template{Key: "custom", Standard: "first {{x}}"})
	assert.Equal(t, "first value", m.FormatSection(ctx, "custom", data))

	m.Register(Template{Key: "custom", Standard: "second {{x}}"})
	assert.Equal(t, "second value", m.FormatSection(ctx, "custom", data))
	assert.Equal(t, 0, cache.hits)
}

func TestManager_UnknownKey(t *testing.T) {
	m := NewManager(testLogger(), domain.DetailStandard, domain.FormatPlain, nil)
	assert.Equal(t, "", m.FormatSection(context.Background(), "nope", nil))
	assert.False(t, m.Has("nope"))
	assert.True(t, m.Has(domain.SectionADL))
}

func TestManager_RenderCache(t *testing.T) {
	cache := newMapCache()
	m := NewManager(testLogger(), domain.DetailStandard, domain.FormatMarkdown, cache)
	data := map[string]interface{}{"symptoms": "Physical Symptoms:\n- Neck (Severe)"}

	first := m.FormatSection(context.Background(), domain.SectionSymptoms, data)
	second := m.FormatSection(context.Background(), domain.SectionSymptoms, data)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.hits)

	// A different format must not share the cached entry
	plain := m.WithOptions(domain.DetailStandard, domain.FormatPlain)
	assert.Equal(t, "SYMPTOMS\nPhysical Symptoms:\n- Neck (Severe)", plain.FormatSection(context.Background(), domain.SectionSymptoms, data))
	assert.Equal(t, 1, cache.hits)
}

func TestConvert(t *testing.T) {
	text := "ACTIVITIES OF DAILY LIVING\nSelf-Care:\n- Bathing: Supervision\n- Dressing: Independent\n\nNotes & <remarks>"

	assert.Equal(t, text, Convert(domain.FormatPlain, text))

	md := Convert(domain.FormatMarkdown, text)
	assert.Equal(t, "# ACTIVITIES OF DAILY LIVING\n## Self-Care\n- Bathing: Supervision\n- Dressing: Independent\n\nNotes & <remarks>", md)

	htmlOut := Convert(domain.FormatHTML, text)
	assert.Equal(t, strings.Join([]string{
		"<h1>ACTIVITIES OF DAILY LIVING</h1>",
		"<h2>Self-Care</h2>",
		"<ul>",
		"<li>Bathing: Supervision</li>",
		"<li>Dressing: Independent</li>",
		"</ul>",
		"<br/>",
		"<p>Notes &amp; &lt;remarks&gt;</p>",
	}, "\n"), htmlOut)
}

func TestFailureMarkerAndSeparator(t *testing.T) {
	assert.Equal(t, "SYMPTOMS\n[Section could not be generated]", FailureMarker(domain.FormatPlain, "Symptoms"))
	assert.Equal(t, "# SYMPTOMS\n[Section could not be generated]", FailureMarker(domain.FormatMarkdown, "Symptoms"))
	assert.Contains(t, Separator(domain.FormatMarkdown), "---")
	assert.Contains(t, Separator(domain.FormatHTML), "<hr/>")
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "- a\n- b", Stringify([]string{"a", "", "b"}))
	assert.Equal(t, "3", Stringify(3))
	require.Equal(t, "", HouseholdList([]domain.HouseholdMember{}))
}
