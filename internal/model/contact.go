package model

import "time"

// Contact is one scheduled school contact as announced by a newsletter block.
type Contact struct {
	School            string     `json:"school"`
	Location          string     `json:"location,omitempty"`
	Callsign          string     `json:"callsign"`
	Frequency         string     `json:"frequency,omitempty"`
	Astronaut         string     `json:"astronaut,omitempty"`
	AstronautCallsign string     `json:"astronaut_callsign,omitempty"`
	ScheduledAt       *time.Time `json:"scheduled_at,omitempty"`
	Elevation         string     `json:"elevation,omitempty"`
	ContactType       string     `json:"contact_type,omitempty"`
	Mentor            string     `json:"mentor,omitempty"`
	Livestream        string     `json:"livestream,omitempty"`
	Questions         []string   `json:"questions"`
}

// Eligible reports whether an article can be rendered for the contact.
func (c Contact) Eligible() bool {
	return c.School != "" && c.ScheduledAt != nil
}
