// Package ident derives publication dates and slugs from content folder names.
package ident

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DateLayout is the day-month-year prefix every content folder starts with.
	DateLayout = "02-01-2006"
	// DisplayLayout is how dates are shown on rendered pages.
	DisplayLayout = "02/01/2006"

	datePrefixLen = 10
	slugOffset    = 11
)

// ErrInvalidDateFormat is matched by every DateFormatError.
var ErrInvalidDateFormat = errors.New("invalid date format")

// DateFormatError reports a folder whose name does not start with a DD-MM-YYYY date.
type DateFormatError struct {
	Name string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("%q must be renamed to start with a date (DD-MM-YYYY-)", e.Name)
}

func (e *DateFormatError) Is(target error) bool { return target == ErrInvalidDateFormat }

// Derive splits a folder name like "01-02-2024-my-article" into its publication
// date and slug.
func Derive(name string) (time.Time, string, error) {
	runes := []rune(name)
	if len(runes) < datePrefixLen {
		return time.Time{}, "", &DateFormatError{Name: name}
	}
	date, err := time.Parse(DateLayout, string(runes[:datePrefixLen]))
	if err != nil {
		return time.Time{}, "", &DateFormatError{Name: name}
	}

	slug := name
	if len(runes) > slugOffset {
		slug = string(runes[slugOffset:])
	}
	return date, strings.TrimSpace(slug), nil
}

// SlugFromPath derives a slug from any filesystem path without validating the
// date prefix. It cuts the same prefix Derive does, so a content folder and its
// path always agree on the slug.
func SlugFromPath(path string) string {
	runes := []rune(filepath.Base(filepath.Clean(path)))
	if len(runes) > slugOffset {
		runes = runes[slugOffset:]
	}
	return strings.TrimSpace(string(runes))
}

// FormatDate renders t in DisplayLayout.
func FormatDate(t time.Time) string {
	return t.Format(DisplayLayout)
}
