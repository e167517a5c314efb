// Package console prints generated articles and contact tables for the terminal.
package console

import (
	"fmt"
	"io"
	"strings"

	"ariss-articles/internal/model"

	"github.com/mattn/go-runewidth"
)

var separator = strings.Repeat("=", 80)

// PrintArticles writes each article in the publishing layout, one separator
// before each of them.
func PrintArticles(w io.Writer, articles []model.Article) {
	for _, a := range articles {
		fmt.Fprintf(w, "\n%s\n\n", separator)
		fmt.Fprintf(w, "Title: %s\n", a.Title)
		fmt.Fprintf(w, "Category: %s\n", a.Category)
		fmt.Fprintf(w, "Status: %s\n\n", a.Status)
		fmt.Fprintln(w, "Content:")
		fmt.Fprintln(w, a.Content)
	}
}

// PrintSummary writes the closing separator and the contact count. date is
// the filter as the user typed it, empty when no filter was given.
func PrintSummary(w io.Writer, count int, date string) {
	fmt.Fprintf(w, "\n%s\n\n", separator)
	if date != "" {
		fmt.Fprintf(w, "Nombre de contacts traités pour le %s : %d\n", date, count)
	} else {
		fmt.Fprintf(w, "Nombre total de contacts traités : %d\n", count)
	}

	if count > 0 {
		return
	}
	if date != "" {
		fmt.Fprintf(w, "Aucun contact trouvé pour la date du %s\n", date)
	} else {
		fmt.Fprintln(w, "Aucun contact trouvé dans le fichier")
	}
}

var tableHeader = []string{"DATE (UTC)", "CALLSIGN", "ASTRONAUT", "SCHOOL"}

// PrintTable writes one aligned row per eligible contact.
func PrintTable(w io.Writer, contacts []model.Contact) {
	rows := [][]string{tableHeader}
	for _, c := range contacts {
		if !c.Eligible() {
			continue
		}
		rows = append(rows, []string{
			c.ScheduledAt.UTC().Format("02/01/2006 15:04"),
			c.Callsign,
			c.Astronaut,
			c.School,
		})
	}

	widths := make([]int, len(tableHeader))
	for _, row := range rows {
		for i, cell := range row {
			if n := runewidth.StringWidth(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i == len(row)-1 {
				cells[i] = cell
				continue
			}
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
		fmt.Fprintln(w, strings.Join(cells, "  "))
	}
}
