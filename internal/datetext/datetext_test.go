package datetext

import (
	"testing"
	"time"

	"github.com/goodsign/monday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse_EnglishForms(t *testing.T) {
	p := NewParser()

	cases := map[string]time.Time{
		"25 March 2024 18:30":         time.Date(2024, 3, 25, 18, 30, 0, 0, time.UTC),
		"Tue 2024-03-26 15:58:10":     time.Date(2024, 3, 26, 15, 58, 10, 0, time.UTC),
		"2024-03-26 15:58":            time.Date(2024, 3, 26, 15, 58, 0, 0, time.UTC),
		"Monday, 25 March 2024 18:30": time.Date(2024, 3, 25, 18, 30, 0, 0, time.UTC),
		"March 25, 2024 18:30":        time.Date(2024, 3, 25, 18, 30, 0, 0, time.UTC),
		"  25   Mar 2024   09:05 ":    time.Date(2024, 3, 25, 9, 5, 0, 0, time.UTC),
	}

	for text, want := range cases {
		t.Run(text, func(t *testing.T) {
			got, err := p.Parse(text)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParser_Parse_French(t *testing.T) {
	p := NewParser(monday.LocaleFrFR)

	got, err := p.Parse("25 mars 2024 18:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 25, 18, 30, 0, 0, time.UTC), got)
}

func TestParser_Parse_Failure(t *testing.T) {
	p := NewParser()

	_, err := p.Parse("sometime soon")
	assert.ErrorIs(t, err, ErrUnparseable)

	_, err = p.Parse("   ")
	assert.ErrorIs(t, err, ErrUnparseable)
}

func TestParser_Parse_DayFirstNumeric(t *testing.T) {
	p := NewParser()

	got, err := p.Parse("25/03/2024 18:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 25, 18, 30, 0, 0, time.UTC), got)
}

func TestParser_Parse_RejectsBareNumbers(t *testing.T) {
	p := NewParser()

	for _, text := range []string{"2024", "1711391400", "18:30"} {
		t.Run(text, func(t *testing.T) {
			_, err := p.Parse(text)
			assert.ErrorIs(t, err, ErrUnparseable)
		})
	}
}

func TestParseLocales(t *testing.T) {
	locales, err := ParseLocales([]string{"en_US", "fr_FR"})
	require.NoError(t, err)
	assert.Equal(t, []monday.Locale{monday.LocaleEnUS, monday.LocaleFrFR}, locales)

	_, err = ParseLocales([]string{"xx_YY"})
	assert.Error(t, err)
}
