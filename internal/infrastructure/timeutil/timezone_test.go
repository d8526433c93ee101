package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLocation(t *testing.T) {
	loc, err := GetLocation(BuenosAires)
	require.NoError(t, err)
	assert.Equal(t, BuenosAires, loc.String())

	again, err := GetLocation(BuenosAires)
	require.NoError(t, err)
	assert.Same(t, loc, again)

	_, err = GetLocation("Mars/Olympus_Mons")
	assert.Error(t, err)
}

func TestInTimezone(t *testing.T) {
	utc := time.Date(2026, 3, 29, 1, 40, 0, 0, time.UTC)

	local, err := InTimezone(utc, BuenosAires)
	require.NoError(t, err)
	assert.Equal(t, 22, local.Hour())
	assert.True(t, local.Equal(utc))

	same, err := InTimezone(utc, "Nowhere/City")
	assert.Error(t, err)
	assert.Equal(t, utc, same)
}

func TestParseUpstream(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		wantOK bool
		want   time.Time
	}{
		{name: "wall time without offset", value: "2026-03-28T22:40:00", wantOK: true, want: time.Date(2026, 3, 28, 22, 40, 0, 0, time.UTC)},
		{name: "rfc3339", value: "2026-03-28T22:40:00Z", wantOK: true, want: time.Date(2026, 3, 28, 22, 40, 0, 0, time.UTC)},
		{name: "date only", value: "2026-03-28", wantOK: true, want: time.Date(2026, 3, 28, 0, 0, 0, 0, time.UTC)},
		{name: "empty", value: "  ", wantOK: false},
		{name: "garbage", value: "tomorrow", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseUpstream(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %v", got)
			} else {
				assert.True(t, got.IsZero())
			}
		})
	}
}

func TestParseUpstream_KeepsWallClockOfOffsetTimes(t *testing.T) {
	got, ok := ParseUpstream("2026-03-28T22:40:00-03:00")
	require.True(t, ok)
	assert.Equal(t, "22.40", FormatFlightHour(got))
}

func TestDocumentFormats(t *testing.T) {
	ts := time.Date(2026, 3, 8, 7, 5, 0, 0, time.UTC)

	assert.Equal(t, "08/mar", FormatFlightDate(ts))
	assert.Equal(t, "07.05", FormatFlightHour(ts))
	assert.Equal(t, "08/03/2026", FormatDocumentDate(ts))
	assert.Equal(t, "07/03/2026", FormatDocumentDate(time.Date(2026, 3, 8, 1, 30, 0, 0, time.UTC)))
	assert.Equal(t, "31/dic", FormatFlightDate(time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "01/ene", FormatFlightDate(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)))

	assert.Empty(t, FormatFlightDate(time.Time{}))
	assert.Empty(t, FormatFlightHour(time.Time{}))
}

func TestFormatUpstreamDate(t *testing.T) {
	assert.Equal(t, "2026-03-28T00:00:00", FormatUpstreamDate("2026-03-28"))
	assert.Empty(t, FormatUpstreamDate(""))
}
