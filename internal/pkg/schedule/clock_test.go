package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    int
		wantErr bool
	}{
		{name: "midnight", in: "00:00", want: 0},
		{name: "single digit hour", in: "9:05", want: 545},
		{name: "padded", in: "09:30", want: 570},
		{name: "end of day", in: "23:59", want: 1439},
		{name: "surrounding spaces", in: " 10:00 ", want: 600},
		{name: "hour out of range", in: "24:00", wantErr: true},
		{name: "minute out of range", in: "10:60", wantErr: true},
		{name: "missing colon", in: "1000", wantErr: true},
		{name: "letters", in: "ab:cd", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				assert.False(t, ValidClock(tt.in))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOverlaps_HalfOpen(t *testing.T) {
	tests := []struct {
		name       string
		a1, a2     string
		b1, b2     string
		wantResult bool
	}{
		{name: "touching boundary", a1: "09:00", a2: "10:00", b1: "10:00", b2: "11:00", wantResult: false},
		{name: "partial overlap", a1: "09:00", a2: "10:00", b1: "09:30", b2: "10:30", wantResult: true},
		{name: "contained", a1: "08:00", a2: "12:00", b1: "09:00", b2: "10:00", wantResult: true},
		{name: "disjoint", a1: "08:00", a2: "09:00", b1: "13:00", b2: "14:00", wantResult: false},
		{name: "identical", a1: "09:00", a2: "10:00", b1: "09:00", b2: "10:00", wantResult: true},
		{name: "malformed never overlaps", a1: "9am", a2: "10:00", b1: "09:00", b2: "10:00", wantResult: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantResult, Overlaps(tt.a1, tt.a2, tt.b1, tt.b2))
			assert.Equal(t, tt.wantResult, Overlaps(tt.b1, tt.b2, tt.a1, tt.a2), "overlap must be symmetric")
		})
	}
}

func TestInterval_OverlapsIsSymmetric(t *testing.T) {
	// every quarter hour pair across a working day
	var intervals []Interval
	for s := 8 * 60; s < 12*60; s += 15 {
		for e := s + 15; e <= 12*60; e += 45 {
			intervals = append(intervals, Interval{Start: s, End: e})
		}
	}
	for _, a := range intervals {
		for _, b := range intervals {
			assert.Equal(t, a.Overlaps(b), b.Overlaps(a), "a=%v b=%v", a, b)
			assert.Equal(t, a.Touches(b), b.Touches(a), "a=%v b=%v", a, b)
		}
	}
}
