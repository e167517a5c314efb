package newsletter

import (
	"regexp"
	"strings"

	"ariss-articles/internal/model"
)

// rule extracts one kind of field. For each line the first rule whose match
// returns true is applied, the remaining rules are skipped.
type rule struct {
	name    string
	match   func(line string) bool
	extract func(s *scan, c *model.Contact, line string)
}

const goForMarker = "Contact is go for:"

var (
	wordBe = regexp.MustCompile(`\bbe\b`)
	wordIs = regexp.MustCompile(`\bis\b`)
	wordAt = regexp.MustCompile(`\bat\b`)
)

var rules = []rule{
	{
		name: "school",
		match: func(line string) bool {
			l := strings.ToLower(line)
			return strings.Contains(l, "direct via") || strings.Contains(l, "telebridge via")
		},
		extract: extractSchool,
	},
	{
		name:    "frequency",
		match:   containsFold("frequency"),
		extract: func(_ *scan, c *model.Contact, line string) { setAfter(&c.Frequency, line, wordBe) },
	},
	{
		name:    "crew",
		match:   containsFold("scheduled crewmember is"),
		extract: extractCrew,
	},
	{
		name:    "schedule",
		match:   func(line string) bool { return strings.Contains(line, goForMarker) },
		extract: extractSchedule,
	},
	{
		name:    "livestream",
		match:   func(line string) bool { return strings.Contains(line, "Watch for the Livestream at") },
		extract: func(_ *scan, c *model.Contact, line string) { setAfter(&c.Livestream, line, wordAt) },
	},
	{
		name:    "mentor",
		match:   func(line string) bool { return strings.Contains(line, "The ARISS mentor is") },
		extract: func(_ *scan, c *model.Contact, line string) { setAfter(&c.Mentor, line, wordIs) },
	},
}

func containsFold(sub string) func(string) bool {
	return func(line string) bool {
		return strings.Contains(strings.ToLower(line), sub)
	}
}

// afterWord returns the trimmed text following the first whole-word match.
func afterWord(line string, word *regexp.Regexp) (string, bool) {
	loc := word.FindStringIndex(line)
	if loc == nil {
		return "", false
	}
	return strings.TrimSpace(line[loc[1]:]), true
}

// setAfter leaves dst untouched when the word is missing.
func setAfter(dst *string, line string, word *regexp.Regexp) {
	if v, ok := afterWord(line, word); ok {
		*dst = v
	}
}

// extractSchool reads "School, Location, direct via CALLSIGN". The last
// segment, not always the third, carries "type via callsign": lines with more
// than three segments keep every middle one as the location, so
// "Albi, France" stays whole and the callsign is still found.
func extractSchool(_ *scan, c *model.Contact, line string) {
	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	c.School = parts[0]
	switch {
	case len(parts) == 2:
		c.Location = parts[1]
		return
	case len(parts) < 2:
		return
	}

	last := len(parts) - 1
	c.Location = strings.Join(parts[1:last], ", ")

	typ, callsign, found := strings.Cut(parts[last], " via ")
	c.ContactType = strings.TrimSpace(typ)
	if found {
		c.Callsign = strings.TrimSpace(callsign)
	}
}

// extractCrew reads "The scheduled crewmember is Name Surname CALLSIGN".
func extractCrew(_ *scan, c *model.Contact, line string) {
	info, ok := afterWord(line, wordIs)
	if !ok || info == "" {
		return
	}

	tokens := strings.Fields(info)
	if len(tokens) == 1 {
		c.Astronaut = tokens[0]
		c.AstronautCallsign = ""
		return
	}
	c.Astronaut = strings.Join(tokens[:len(tokens)-1], " ")
	c.AstronautCallsign = tokens[len(tokens)-1]
}

// extractSchedule reads "Contact is go for: <date> UTC <elevation>".
func extractSchedule(s *scan, c *model.Contact, line string) {
	_, rest, _ := strings.Cut(line, goForMarker)
	dateText, tail, _ := strings.Cut(rest, "UTC")

	if elevation := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(tail), ",;:-")); elevation != "" {
		c.Elevation = elevation
	}

	at, err := s.dates.Parse(dateText)
	if err != nil {
		s.dateFailure(c, dateText, err)
		return
	}
	c.ScheduledAt = &at
}

var questionLine = regexp.MustCompile(`^\d+\.`)

// extractQuestions collects the numbered lines following the
// "Proposed questions" heading up to the end of the block.
func extractQuestions(lines []string) []string {
	questions := []string{}
	started := false
	for _, line := range lines {
		if strings.Contains(line, "Proposed questions") {
			started = true
			continue
		}
		if !started {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "===") {
			continue
		}
		if questionLine.MatchString(trimmed) {
			questions = append(questions, trimmed)
		}
	}
	return questions
}
