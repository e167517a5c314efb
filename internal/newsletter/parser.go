// Package newsletter turns the ARISS newsletter text into Contact records.
package newsletter

import (
	"time"

	"ariss-articles/internal/datetext"
	"ariss-articles/internal/model"

	"go.uber.org/zap"
)

// DateParser is the date-text parser used for "Contact is go for:" lines.
type DateParser interface {
	Parse(text string) (time.Time, error)
}

// Report summarizes one Parse call.
type Report struct {
	Blocks       int `json:"blocks"`
	Contacts     int `json:"contacts"`
	Skipped      int `json:"skipped"`
	DateFailures int `json:"date_failures"`
}

// Parser holds no per-call state and may be shared.
type Parser struct {
	dates  DateParser
	logger *zap.Logger
}

// scan is the state of one block being parsed.
type scan struct {
	*Parser
	dateFailures int
}

// NewParser creates a parser. A nil dates parser uses datetext with its
// default locales.
func NewParser(dates DateParser, logger *zap.Logger) *Parser {
	if dates == nil {
		dates = datetext.NewParser()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{dates: dates, logger: logger}
}

// Parse splits the newsletter and parses every block. Blocks without a
// school are dropped.
func (p *Parser) Parse(text string) ([]model.Contact, Report) {
	var (
		contacts []model.Contact
		report   Report
	)

	for _, block := range SplitSections(text) {
		report.Blocks++
		c, ok, failures := p.parseBlock(block)
		report.DateFailures += failures
		if !ok {
			report.Skipped++
			continue
		}
		contacts = append(contacts, c)
	}

	report.Contacts = len(contacts)
	return contacts, report
}

// ParseBlock extracts a Contact from one block. It reports false when the
// block never names a school.
func (p *Parser) ParseBlock(block string) (model.Contact, bool) {
	c, ok, _ := p.parseBlock(block)
	return c, ok
}

func (p *Parser) parseBlock(block string) (model.Contact, bool, int) {
	var c model.Contact
	s := &scan{Parser: p}
	lines := blockLines(block)

	for _, line := range lines {
		for _, r := range rules {
			if r.match(line) {
				r.extract(s, &c, line)
				break
			}
		}
	}
	c.Questions = extractQuestions(lines)

	return c, c.School != "", s.dateFailures
}

func (s *scan) dateFailure(c *model.Contact, text string, err error) {
	s.dateFailures++
	s.logger.Warn("Error parsing date",
		zap.String("school", c.School),
		zap.String("text", text),
		zap.Error(err))
}
