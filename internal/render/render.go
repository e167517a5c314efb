// Package render turns parsed contacts into French blog articles.
package render

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"ariss-articles/internal/model"

	"github.com/goodsign/monday"
)

const (
	DefaultZone   = "Europe/Paris"
	DefaultLocale = monday.LocaleFrFR
)

// Renderer formats articles for one zone/locale pair.
type Renderer struct {
	zone   *time.Location
	locale monday.Locale
}

// NewRenderer builds a renderer for the given IANA zone name and locale.
func NewRenderer(zoneName string, locale monday.Locale) (*Renderer, error) {
	zone, err := time.LoadLocation(zoneName)
	if err != nil {
		return nil, fmt.Errorf("loading zone %q: %w", zoneName, err)
	}
	return &Renderer{zone: zone, locale: locale}, nil
}

// NewDefaultRenderer renders in Paris time with French names.
func NewDefaultRenderer() *Renderer {
	r, err := NewRenderer(DefaultZone, DefaultLocale)
	if err != nil {
		panic(err)
	}
	return r
}

// Zone returns the display zone.
func (r *Renderer) Zone() *time.Location {
	return r.zone
}

// Render builds the article for c. c must be eligible.
func (r *Renderer) Render(c model.Contact) model.Article {
	utc := c.ScheduledAt.UTC()
	local := utc.In(r.zone)

	title := fmt.Sprintf("Contact radioamateur du %s – %s", local.Format("02/01/2006"), c.Callsign)
	return model.NewArticle(title, r.content(c, utc, local), c.Callsign, utc)
}

// RenderAll renders the eligible contacts, in order.
func (r *Renderer) RenderAll(contacts []model.Contact) []model.Article {
	var articles []model.Article
	for _, c := range contacts {
		if !c.Eligible() {
			continue
		}
		articles = append(articles, r.Render(c))
	}
	return articles
}

// LongDate formats t as "lundi 25 mars 2024" in the renderer's locale.
func (r *Renderer) LongDate(t time.Time) string {
	return strings.ToLower(monday.Format(t.In(r.zone), "Monday 02 January 2006", r.locale))
}

func (r *Renderer) content(c model.Contact, utc, local time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Un contact radioamateur est prévu le %s vers %s UTC (%s heure de Paris).\n\n",
		r.LongDate(utc), utc.Format("15:04"), local.Format("15:04"))
	fmt.Fprintf(&b, "Il aura lieu entre l'astronaute %s (%s) et %s en %s.\n\n",
		c.Astronaut, c.AstronautCallsign, c.School, c.Location)
	fmt.Fprintf(&b, "Le contact sera sur %s (+/-3 KHz de doppler) en FM étroite. Il sera %s par la station %s et donc audible depuis la France.\n",
		c.Frequency, c.ContactType, c.Callsign)

	if c.Livestream != "" {
		fmt.Fprintf(&b, "\nUn livestream sera disponible sur : %s\n", c.Livestream)
	}

	b.WriteString("\n<!-- more -->\n\nQuestions prévues :\n\n")
	for _, q := range c.Questions {
		b.WriteString(q)
		b.WriteString("\n")
	}

	b.WriteString("\nL'équipe ARISS se tient à votre disposition pour tout support relatif à l'écoute de ce contact.\n\n73 et bonne écoute")
	return b.String()
}
