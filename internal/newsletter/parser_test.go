package newsletter

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func loadFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("testdata/arissnews.txt")
	require.NoError(t, err)
	return string(data)
}

func TestSplitSections(t *testing.T) {
	text := "header\n=====\nfirst block\n\n   \n===\n  \n\t\n" + strings.Repeat("=", 70) + "\nsecond\r\n=\n"

	sections := SplitSections(text)

	require.Len(t, sections, 3)
	assert.Equal(t, "header", sections[0])
	assert.Contains(t, sections[1], "first block")
	assert.Contains(t, sections[2], "second")
}

func TestSplitSections_KeepsLinesWithOtherCharacters(t *testing.T) {
	sections := SplitSections("a\n=== not a delimiter ===\nb")
	require.Len(t, sections, 1)
}

func TestParser_Parse_Fixture(t *testing.T) {
	p := NewParser(nil, zap.NewNop())

	contacts, report := p.Parse(loadFixture(t))

	assert.Equal(t, 5, report.Blocks)
	assert.Equal(t, 3, report.Contacts)
	assert.Equal(t, 2, report.Skipped, "header and the block without a school")
	assert.Equal(t, 1, report.DateFailures)
	require.Len(t, contacts, 3)

	// 1. Direct contact with every field
	albi := contacts[0]
	assert.Equal(t, "Collège Jean Moulin", albi.School)
	assert.Equal(t, "Albi, France", albi.Location)
	assert.Equal(t, "direct", albi.ContactType)
	assert.Equal(t, "F4KLM", albi.Callsign)
	assert.Equal(t, "145.800 MHz", albi.Frequency)
	assert.Equal(t, "Thomas Pesquet", albi.Astronaut)
	assert.Equal(t, "KG5FYJ", albi.AstronautCallsign)
	assert.Equal(t, "F6ISS.", albi.Mentor)
	assert.Equal(t, "https://example.org/live/albi", albi.Livestream)
	assert.Equal(t, "45 deg", albi.Elevation)
	require.NotNil(t, albi.ScheduledAt)
	assert.Equal(t, time.Date(2024, 3, 25, 18, 30, 0, 0, time.UTC), *albi.ScheduledAt)
	assert.Equal(t, []string{
		"1. What is it like in space?",
		"2. How do you sleep?",
		"3. What do you eat on the ISS?",
	}, albi.Questions)

	// 2. Telebridge contact, indented question kept, trailing prose ignored
	lisbon := contacts[1]
	assert.Equal(t, "Escola Básica", lisbon.School)
	assert.Equal(t, "Lisbon, Portugal", lisbon.Location)
	assert.Equal(t, "telebridge", lisbon.ContactType)
	assert.Equal(t, "IK1SLD", lisbon.Callsign)
	assert.Empty(t, lisbon.Livestream)
	assert.Equal(t, []string{
		"1. How long does it take to get to the ISS?",
		"2. Can you see the Great Wall from space?",
	}, lisbon.Questions)

	// 3. Unparseable date keeps the other fields
	lyon := contacts[2]
	assert.Equal(t, "Lycée Sans Date", lyon.School)
	assert.Nil(t, lyon.ScheduledAt)
	assert.False(t, lyon.Eligible())
	assert.Equal(t, "Sunita", lyon.Astronaut)
	assert.Empty(t, lyon.AstronautCallsign)
	assert.Empty(t, lyon.Questions)
}

func TestParser_ParseBlock_ThreePartSchoolLine(t *testing.T) {
	p := NewParser(nil, zap.NewNop())

	c, ok := p.ParseBlock("Springfield Elementary, Springfield USA, direct via W1AW")

	require.True(t, ok)
	assert.Equal(t, "Springfield Elementary", c.School)
	assert.Equal(t, "Springfield USA", c.Location)
	assert.Equal(t, "direct", c.ContactType)
	assert.Equal(t, "W1AW", c.Callsign)
}

func TestParser_ParseBlock_NoSchool(t *testing.T) {
	p := NewParser(nil, zap.NewNop())

	_, ok := p.ParseBlock("The downlink frequency will be 145.800 MHz\nContact is go for: 25 March 2024 18:30 UTC")
	assert.False(t, ok)

	contacts, report := p.Parse("The downlink frequency will be 145.800 MHz")
	assert.Empty(t, contacts)
	assert.Equal(t, 1, report.Skipped)
}

func TestParser_ParseBlock_ScheduleAndElevation(t *testing.T) {
	p := NewParser(nil, zap.NewNop())

	c, ok := p.ParseBlock("School, Town, direct via K1ABC\nContact is go for: 25 March 2024 18:30 UTC, max elevation 45 degrees")

	require.True(t, ok)
	require.NotNil(t, c.ScheduledAt)
	assert.Equal(t, time.Date(2024, 3, 25, 18, 30, 0, 0, time.UTC), *c.ScheduledAt)
	assert.Equal(t, "max elevation 45 degrees", c.Elevation)
}

func TestParser_ParseBlock_Questions(t *testing.T) {
	p := NewParser(nil, zap.NewNop())

	block := strings.Join([]string{
		"School, Town, direct via K1ABC",
		"1. Not a question yet",
		"Proposed questions",
		"1. What is it like in space?",
		"",
		"Some remark",
		"2. How do you sleep?",
	}, "\n")

	c, ok := p.ParseBlock(block)

	require.True(t, ok)
	assert.Equal(t, []string{"1. What is it like in space?", "2. How do you sleep?"}, c.Questions)
}

func TestParser_ParseBlock_TolerantFields(t *testing.T) {
	p := NewParser(nil, zap.NewNop())

	block := strings.Join([]string{
		"Lonely School direct via",
		"Frequency: unknown",
		"The scheduled crewmember is",
		"Watch for the Livestream at",
	}, "\n")

	c, ok := p.ParseBlock(block)

	require.True(t, ok)
	assert.Equal(t, "Lonely School direct via", c.School)
	assert.Empty(t, c.Location)
	assert.Empty(t, c.Callsign)
	assert.Empty(t, c.Frequency)
	assert.Empty(t, c.Astronaut)
	assert.Empty(t, c.Livestream)
	assert.Nil(t, c.ScheduledAt)
}

type stubDates struct{ calls []string }

func (s *stubDates) Parse(text string) (time.Time, error) {
	s.calls = append(s.calls, text)
	return time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

func TestParser_UsesInjectedDateParser(t *testing.T) {
	dates := &stubDates{}
	p := NewParser(dates, zap.NewNop())

	c, ok := p.ParseBlock("S, L, direct via X\nContact is go for: whenever UTC")

	require.True(t, ok)
	assert.Equal(t, []string{" whenever "}, dates.calls)
	assert.Equal(t, 2030, c.ScheduledAt.Year())
}
