package console

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"ariss-articles/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintArticles(t *testing.T) {
	var buf bytes.Buffer
	PrintArticles(&buf, []model.Article{{
		Title:    "Contact radioamateur du 26/03/2024 – W1AW",
		Content:  "Corps",
		Category: model.CategoryARISS,
		Status:   model.StatusDraft,
	}})

	want := "\n" + strings.Repeat("=", 80) + "\n\n" +
		"Title: Contact radioamateur du 26/03/2024 – W1AW\n" +
		"Category: Contact ARISS\n" +
		"Status: draft\n\n" +
		"Content:\n" +
		"Corps\n"
	assert.Equal(t, want, buf.String())
}

func TestPrintSummary(t *testing.T) {
	cases := []struct {
		name  string
		count int
		date  string
		want  []string
	}{
		{"total", 3, "", []string{"Nombre total de contacts traités : 3"}},
		{"filtered", 1, "25/03/2024", []string{"Nombre de contacts traités pour le 25/03/2024 : 1"}},
		{"none", 0, "", []string{"Nombre total de contacts traités : 0", "Aucun contact trouvé dans le fichier"}},
		{"none on date", 0, "01/01/2030", []string{
			"Nombre de contacts traités pour le 01/01/2030 : 0",
			"Aucun contact trouvé pour la date du 01/01/2030",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			PrintSummary(&buf, tc.count, tc.date)

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			require.GreaterOrEqual(t, len(lines), 1)
			assert.Equal(t, strings.Repeat("=", 80), lines[0])
			assert.Equal(t, tc.want, lines[2:])
		})
	}
}

func TestPrintTable(t *testing.T) {
	at := time.Date(2024, 3, 25, 18, 30, 0, 0, time.UTC)
	var buf bytes.Buffer
	PrintTable(&buf, []model.Contact{
		{School: "École Jules Verne", Callsign: "F4KLM", Astronaut: "Thomas Pesquet", ScheduledAt: &at},
		{School: "No Date School", Callsign: "K1ABC"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "DATE (UTC)"))
	assert.Equal(t, "25/03/2024 18:30  F4KLM     Thomas Pesquet  École Jules Verne", lines[1])
}
