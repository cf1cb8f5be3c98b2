package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		valid bool
	}{
		{name: "czech format", input: "129,90 Kč", want: "129.9", valid: true},
		{name: "dot decimal", input: "24.50", want: "24.5", valid: true},
		{name: "integer", input: "15 Kč", want: "15", valid: true},
		{name: "empty", input: "", valid: false},
		{name: "non numeric", input: "zdarma", valid: false},
		{name: "two separators", input: "1.299,90", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePrice(tt.input)
			require.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.Equal(t, tt.want, got.Decimal.String())
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{input: "2026-01-20", want: date(2026, 1, 20), ok: true},
		{input: "20.01.2026", want: date(2026, 1, 20), ok: true},
		{input: "2.1.2026", want: date(2026, 1, 2), ok: true},
		{input: "2026/01/20", want: date(2026, 1, 20), ok: true},
		{input: "2026-01-20T10:30:00+01:00", want: date(2026, 1, 20), ok: true},
		{input: "2026-01-20T10:30:00.123456Z", want: date(2026, 1, 20), ok: true},
		{input: "2026-01-20T10:30:00", want: date(2026, 1, 20), ok: true},
		{input: "", ok: false},
		{input: "tomorrow", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseValidity(t *testing.T) {
	today := date(2026, 1, 18)

	tests := []struct {
		name      string
		input     string
		wantFrom  time.Time
		wantUntil time.Time
	}{
		{
			name:      "range",
			input:     "od 20.1. do 26.1.",
			wantFrom:  date(2026, 1, 20),
			wantUntil: date(2026, 1, 26),
		},
		{
			name:      "until only",
			input:     "platí do 26.1.",
			wantFrom:  today,
			wantUntil: date(2026, 1, 26),
		},
		{
			name:      "year rollover",
			input:     "28.12. - 3.1.",
			wantFrom:  date(2026, 12, 28),
			wantUntil: date(2027, 1, 3),
		},
		{
			name:      "explicit years are kept",
			input:     "28.12.2025 - 3.1.2026",
			wantFrom:  date(2025, 12, 28),
			wantUntil: date(2026, 1, 3),
		},
		{
			name:      "no dates",
			input:     "jen tento týden",
			wantFrom:  today,
			wantUntil: date(2026, 1, 25),
		},
		{
			name:      "empty",
			input:     "",
			wantFrom:  today,
			wantUntil: date(2026, 1, 25),
		},
		{
			name:      "impossible date",
			input:     "od 30.2. do 5.3.",
			wantFrom:  today,
			wantUntil: date(2026, 1, 25),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, until := ParseValidity(tt.input, today)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantUntil, until)
		})
	}
}
