// Package datetext parses the human written schedule dates found in the
// newsletter ("25 March 2024 18:30", "Tue 2024-03-26 15:58:10", ...).
package datetext

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/goodsign/monday"
)

var ErrUnparseable = errors.New("unparseable date text")

// DefaultLocales are tried in order when no locale list is configured.
var DefaultLocales = []monday.Locale{monday.LocaleEnUS, monday.LocaleFrFR}

// layouts are matched after commas have been dropped and whitespace collapsed.
var layouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"Mon 2006-01-02 15:04:05",
	"Mon 2006-01-02 15:04",
	"Monday 2006-01-02 15:04:05",
	"Monday 2006-01-02 15:04",
	"2 January 2006 15:04:05",
	"2 January 2006 15:04",
	"2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04",
	"Monday 2 January 2006 15:04:05",
	"Monday 2 January 2006 15:04",
	"Mon 2 Jan 2006 15:04:05",
	"Mon 2 Jan 2006 15:04",
	"January 2 2006 15:04:05",
	"January 2 2006 15:04",
	"Monday January 2 2006 15:04",
	"Jan 2 2006 15:04",
}

// Parser turns date text into a UTC instant. The text is read as UTC wall
// clock time; no zone conversion happens.
type Parser struct {
	locales []monday.Locale
}

// NewParser accepts month and weekday names of the given locales. An empty
// list falls back to DefaultLocales.
func NewParser(locales ...monday.Locale) *Parser {
	if len(locales) == 0 {
		locales = DefaultLocales
	}
	return &Parser{locales: locales}
}

// ParseLocales maps locale codes such as "fr_FR" to monday locales.
func ParseLocales(codes []string) ([]monday.Locale, error) {
	supported := make(map[monday.Locale]bool)
	for _, l := range monday.ListLocales() {
		supported[l] = true
	}

	var out []monday.Locale
	for _, code := range codes {
		l := monday.Locale(strings.TrimSpace(code))
		if !supported[l] {
			return nil, fmt.Errorf("unsupported locale %q", code)
		}
		out = append(out, l)
	}
	return out, nil
}

// Locales returns the accepted locales in the order they are tried.
func (p *Parser) Locales() []monday.Locale {
	return p.locales
}

// Parse reads text as a calendar date and time of day in UTC.
func (p *Parser) Parse(text string) (time.Time, error) {
	value := normalize(text)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrUnparseable)
	}

	for _, locale := range p.locales {
		for _, layout := range layouts {
			if t, err := parseIn(layout, value, locale); err == nil {
				return asUTC(t), nil
			}
		}
	}

	// Last resort for English free-form text the layouts do not cover.
	// Day-first numeric dates are retried when the month would be out of range.
	if p.accepts(monday.LocaleEnUS) && datedClock(value) {
		if t, err := dateparse.ParseIn(value, time.UTC, dateparse.RetryAmbiguousDateWithSwap(true)); err == nil {
			return asUTC(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseable, text)
}

func (p *Parser) accepts(locale monday.Locale) bool {
	for _, l := range p.locales {
		if l == locale {
			return true
		}
	}
	return false
}

func parseIn(layout, value string, locale monday.Locale) (time.Time, error) {
	if locale == monday.LocaleEnUS || locale == monday.LocaleEnGB {
		return time.ParseInLocation(layout, value, time.UTC)
	}
	return monday.ParseInLocation(layout, value, time.UTC, locale)
}

// asUTC keeps the wall clock and attaches UTC.
func asUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

var (
	clockPart = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)
	datePart  = regexp.MustCompile(`\d{1,4}[/.-]\d{1,2}|[A-Za-z]{3,}`)
)

// datedClock reports whether value carries both a time of day and a month,
// which rules out bare years and unix timestamps.
func datedClock(value string) bool {
	loc := clockPart.FindStringIndex(value)
	if loc == nil {
		return false
	}
	return datePart.MatchString(value[:loc[0]] + " " + value[loc[1]:])
}

func normalize(text string) string {
	text = strings.ReplaceAll(text, ",", " ")
	return strings.Join(strings.Fields(text), " ")
}
