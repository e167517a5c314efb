// Package pipeline wires the newsletter parser and the article renderer
// into one pass over a newsletter text.
package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"ariss-articles/internal/model"
	"ariss-articles/internal/newsletter"
	"ariss-articles/internal/render"

	"go.uber.org/zap"
)

var ErrInvalidDateFilter = errors.New("le format de date doit être JJ/MM/AAAA (exemple: 25/03/2024)")

// Day is a calendar date used to select contacts.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDay reads a JJ/MM/AAAA date.
func ParseDay(value string) (Day, error) {
	t, err := time.Parse("2/1/2006", strings.TrimSpace(value))
	if err != nil {
		return Day{}, fmt.Errorf("%w: %q", ErrInvalidDateFilter, value)
	}
	return Day{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// Matches reports whether t falls on d, using the UTC calendar.
func (d Day) Matches(t time.Time) bool {
	y, m, dd := t.UTC().Date()
	return y == d.Year && m == d.Month && dd == d.Day
}

func (d Day) String() string {
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// Result is the outcome of one Generate call.
type Result struct {
	Contacts []model.Contact
	Articles []model.Article
	Report   newsletter.Report
}

// Count is the number of rendered articles.
func (r Result) Count() int {
	return len(r.Articles)
}

type Generator struct {
	parser   *newsletter.Parser
	renderer *render.Renderer
	logger   *zap.Logger
}

func NewGenerator(parser *newsletter.Parser, renderer *render.Renderer, logger *zap.Logger) *Generator {
	return &Generator{
		parser:   parser,
		renderer: renderer,
		logger:   logger,
	}
}

// Generate parses text and renders every eligible contact. A nil filter
// keeps all dates.
func (g *Generator) Generate(text string, filter *Day) Result {
	contacts, report := g.parser.Parse(text)

	var selected []model.Contact
	for _, c := range contacts {
		if !c.Eligible() {
			continue
		}
		if filter != nil && !filter.Matches(*c.ScheduledAt) {
			continue
		}
		selected = append(selected, c)
	}

	result := Result{
		Contacts: selected,
		Articles: g.renderer.RenderAll(selected),
		Report:   report,
	}

	g.logger.Debug("Newsletter processed",
		zap.Int("blocks", report.Blocks),
		zap.Int("contacts", report.Contacts),
		zap.Int("date_failures", report.DateFailures),
		zap.Int("articles", result.Count()))

	return result
}
