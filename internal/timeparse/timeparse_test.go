package timeparse

import (
	"testing"
	"time"
)

var ref = time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2024, 5, 15, hour, minute, 0, 0, time.UTC)
}

func TestExtractTimeRange(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantStart time.Time
		wantEnd   time.Time
		wantOK    bool
	}{
		{
			name: "full range with both meridiems",
			text: "meeting from 2pm to 3pm",
			wantStart: at(14, 0), wantEnd: at(15, 0), wantOK: true,
		},
		{
			name: "trailing meridiem covers both sides",
			text: "meeting from 2 to 3pm",
			wantStart: at(14, 0), wantEnd: at(15, 0), wantOK: true,
		},
		{
			name: "leading meridiem covers both sides",
			text: "standup 9am to 10",
			wantStart: at(9, 0), wantEnd: at(10, 0), wantOK: true,
		},
		{
			name: "dash separator with minutes",
			text: "review 10:15 - 11:45",
			wantStart: at(10, 15), wantEnd: at(11, 45), wantOK: true,
		},
		{
			name: "24-hour times without meridiem",
			text: "deep work 14:00 to 16:30",
			wantStart: at(14, 0), wantEnd: at(16, 30), wantOK: true,
		},
		{
			name: "noon and midnight",
			text: "from 12pm to 12am",
			wantStart: at(12, 0), wantEnd: at(0, 0), wantOK: true,
		},
		{
			name:   "no range present",
			text:   "write the quarterly report",
			wantOK: false,
		},
		{
			name:   "single time is not a range",
			text:   "call at 3pm",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractTimeRange(tt.text, ref)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if !got.Start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", got.Start, tt.wantStart)
			}
			if !got.End.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", got.End, tt.wantEnd)
			}
		})
	}
}

func TestParseNaturalLanguageTime(t *testing.T) {
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		text   string
		want   time.Time
		wantOK bool
	}{
		{"bare meridiem hour", "call at 3pm", time.Date(2024, 6, 1, 15, 0, 0, 0, time.UTC), true},
		{"minutes and meridiem", "lunch at 12:30pm", time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC), true},
		{"24-hour clock", "gym at 18:15", time.Date(2024, 6, 1, 18, 15, 0, 0, time.UTC), true},
		{"midnight as 12am", "12am sharp", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), true},
		{"no time present", "just a title", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNaturalLanguageTime(tt.text, base)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateTimeBlockTimestamps(t *testing.T) {
	now := ref

	tests := []struct {
		name      string
		startRaw  string
		endRaw    string
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:     "valid interval passes through",
			startRaw: "2024-05-15T13:00:00", endRaw: "2024-05-15T14:30:00",
			wantStart: at(13, 0), wantEnd: at(14, 30),
		},
		{
			name:     "empty start defaults to now",
			startRaw: "", endRaw: "2024-05-15T11:30:00",
			wantStart: now, wantEnd: at(11, 30),
		},
		{
			name:     "empty end defaults to start plus an hour",
			startRaw: "2024-05-15T13:00:00", endRaw: "",
			wantStart: at(13, 0), wantEnd: at(14, 0),
		},
		{
			name:     "inverted interval is forced forward",
			startRaw: "2024-05-15T15:00:00", endRaw: "2024-05-15T09:00:00",
			wantStart: at(15, 0), wantEnd: at(16, 0),
		},
		{
			name:     "equal endpoints are forced forward",
			startRaw: "2024-05-15T15:00:00", endRaw: "2024-05-15T15:00:00",
			wantStart: at(15, 0), wantEnd: at(16, 0),
		},
		{
			name:     "placeholder text treated as absent",
			startRaw: "YYYY-MM-DDT09:00:00", endRaw: "YYYY-MM-DDTHH:MM:00",
			wantStart: now, wantEnd: now.Add(time.Hour),
		},
		{
			name:     "garbage treated as absent",
			startRaw: "whenever", endRaw: "later",
			wantStart: now, wantEnd: now.Add(time.Hour),
		},
		{
			name:     "space-separated layout accepted",
			startRaw: "2024-05-15 08:00", endRaw: "2024-05-15 09:15",
			wantStart: at(8, 0), wantEnd: at(9, 15),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ValidateTimeBlockTimestamps(tt.startRaw, tt.endRaw, now)
			if !start.Equal(tt.wantStart) {
				t.Errorf("start = %v, want %v", start, tt.wantStart)
			}
			if !end.Equal(tt.wantEnd) {
				t.Errorf("end = %v, want %v", end, tt.wantEnd)
			}
			if !end.After(start) {
				t.Errorf("interval must always be valid: start=%v end=%v", start, end)
			}
		})
	}
}
