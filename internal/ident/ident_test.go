package ident

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDerive_ValidName_ReturnsDateAndSlug(t *testing.T) {
	date, slug, err := Derive("01-02-2024-details")
	require.NoError(t, err)
	require.Equal(t, "details", slug)
	require.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), date)
	require.Equal(t, "01/02/2024", FormatDate(date))
}

func TestDerive_TrimsSurroundingWhitespace(t *testing.T) {
	_, slug, err := Derive("15-06-2023-  spaced out ")
	require.NoError(t, err)
	require.Equal(t, "spaced out", slug)
}

func TestDerive_DateRoundTrips(t *testing.T) {
	names := []string{"31-12-1999-a", "29-02-2024-leap", "01-01-2000-x"}
	for _, name := range names {
		date, _, err := Derive(name)
		require.NoError(t, err, name)

		again, err := time.Parse(DateLayout, date.Format(DateLayout))
		require.NoError(t, err)
		require.True(t, again.Equal(date), name)
	}
}

func TestDerive_ShortNameKeepsWholeNameAsSlug(t *testing.T) {
	_, slug, err := Derive("01-01-2024-")
	require.NoError(t, err)
	require.Equal(t, "01-01-2024-", slug)
}

func TestDerive_InvalidDate_ReturnsDateFormatError(t *testing.T) {
	for _, name := range []string{"intro", "2024-01-01-intro", "32-01-2024-x", "aa-bb-cccc-dd"} {
		_, _, err := Derive(name)
		require.Error(t, err, name)
		require.True(t, errors.Is(err, ErrInvalidDateFormat), name)

		var dfe *DateFormatError
		require.True(t, errors.As(err, &dfe))
		require.Equal(t, name, dfe.Name)
		require.Contains(t, err.Error(), name)
	}
}

func TestSlugFromPath(t *testing.T) {
	cases := map[string]string{
		"content/01-01-2024-intro":                    "intro",
		"content/01-01-2024-intro/01-02-2024-details/": "details",
		"content":                                     "content",
		"a/b":                                         "b",
		"01-01-2024-x":                                "x",
	}
	for in, want := range cases {
		require.Equal(t, want, SlugFromPath(in), in)
	}
}

func TestSlugFromPath_AgreesWithDerive(t *testing.T) {
	for _, name := range []string{"01-01-2024-", "01-01-2024-a", "01-01-2024-details"} {
		_, slug, err := Derive(name)
		require.NoError(t, err)
		require.Equal(t, slug, SlugFromPath("content/"+name), name)
	}
}
