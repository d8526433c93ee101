package timeutil

import (
	"fmt"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"
)

var locationCache sync.Map

// Timezone names used by the agency.
const (
	UTC         = "UTC"
	BuenosAires = "America/Argentina/Buenos_Aires"
)

// Upstream and document layouts.
const (
	DateLayout         = "2006-01-02"
	UpstreamLayout     = "2006-01-02T15:04:05"
	DocumentDateLayout = "02/01/2006"
	documentHourLayout = "15.04"
)

// GetLocation returns a timezone location, caching lookups by name.
func GetLocation(name string) (*time.Location, error) {
	if loc, ok := locationCache.Load(name); ok {
		return loc.(*time.Location), nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	locationCache.Store(name, loc)
	return loc, nil
}

// InTimezone converts t to the named timezone. On an unknown zone t is
// returned unchanged together with the error.
func InTimezone(t time.Time, timezone string) (time.Time, error) {
	loc, err := GetLocation(timezone)
	if err != nil {
		return t, err
	}
	return t.In(loc), nil
}

// ParseUpstream parses an upstream timestamp: RFC3339, or a local wall time
// without offset. Empty or unparseable values yield the zero time and false.
func ParseUpstream(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	if t, err := time.Parse(UpstreamLayout, value); err == nil {
		return t, true
	}
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// FormatUpstreamDate renders a YYYY-MM-DD date as the midnight wall time the
// GDS expects ("2026-03-28T00:00:00").
func FormatUpstreamDate(date string) string {
	if date == "" {
		return ""
	}
	return date + "T00:00:00"
}

var spanishMonths = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"}

// FormatFlightDate renders the day and Spanish month abbreviation, e.g. "28/mar".
func FormatFlightDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d/%s", t.Day(), spanishMonths[t.Month()-1])
}

// FormatFlightHour renders the wall clock time as "22.40".
func FormatFlightHour(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(documentHourLayout)
}

// FormatDocumentDate renders the issue date printed on documents, "19/10/2026",
// as seen from the agency's office.
func FormatDocumentDate(t time.Time) string {
	local, _ := InTimezone(t, BuenosAires)
	return local.Format(DocumentDateLayout)
}
