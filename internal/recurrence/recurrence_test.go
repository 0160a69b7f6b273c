package recurrence

import (
	"testing"
	"time"

	"github.com/focusflowhq/focusflow/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func TestShouldGenerateToday(t *testing.T) {
	tests := []struct {
		name string
		rule models.RecurringTask
		day  time.Time
		want bool
	}{
		{
			name: "never generated inside window",
			rule: models.RecurringTask{StartDate: "2024-05-01"},
			day:  date(2024, 5, 15),
			want: true,
		},
		{
			name: "before start date",
			rule: models.RecurringTask{StartDate: "2024-06-01"},
			day:  date(2024, 5, 15),
			want: false,
		},
		{
			name: "after end date",
			rule: models.RecurringTask{StartDate: "2024-01-01", EndDate: strPtr("2024-05-01")},
			day:  date(2024, 5, 15),
			want: false,
		},
		{
			name: "on end date still generates",
			rule: models.RecurringTask{StartDate: "2024-01-01", EndDate: strPtr("2024-05-15")},
			day:  date(2024, 5, 15),
			want: true,
		},
		{
			name: "already generated today",
			rule: models.RecurringTask{StartDate: "2024-01-01", LastGeneratedDate: strPtr("2024-05-15")},
			day:  date(2024, 5, 15),
			want: false,
		},
		{
			name: "generated yesterday",
			rule: models.RecurringTask{StartDate: "2024-01-01", LastGeneratedDate: strPtr("2024-05-14")},
			day:  date(2024, 5, 15),
			want: true,
		},
		{
			name: "missed several days catches up",
			rule: models.RecurringTask{StartDate: "2024-01-01", LastGeneratedDate: strPtr("2024-05-01")},
			day:  date(2024, 5, 15),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldGenerateToday(tt.rule, tt.day); got != tt.want {
				t.Errorf("ShouldGenerateToday() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetNextOccurrenceDaily(t *testing.T) {
	next := GetNextOccurrence(date(2024, 3, 10), models.FrequencyDaily, models.RecurrencePattern{Interval: 1})
	if want := date(2024, 3, 11); !next.Equal(want) {
		t.Errorf("daily: got %v, want %v", next, want)
	}

	// The interval is informational; generation dedup is per calendar day.
	next = GetNextOccurrence(date(2024, 3, 10), models.FrequencyDaily, models.RecurrencePattern{Interval: 3})
	if want := date(2024, 3, 11); !next.Equal(want) {
		t.Errorf("daily interval 3: got %v, want %v", next, want)
	}
}

func TestGetNextOccurrenceWeekly(t *testing.T) {
	tests := []struct {
		name string
		last time.Time
		days []int
		want time.Time
	}{
		{
			name: "next weekday in same week",
			last: date(2024, 1, 1), // Monday
			days: []int{1, 3},      // Mon, Wed
			want: date(2024, 1, 3), // Wednesday
		},
		{
			name: "wraps to next week, earliest ordinal",
			last: date(2024, 1, 3), // Wednesday
			days: []int{1, 3},      // Mon, Wed
			want: date(2024, 1, 8), // next Monday, not the same Wednesday
		},
		{
			name: "single weekday always wraps a full week",
			last: date(2024, 1, 5),  // Friday
			days: []int{5},          // Fri
			want: date(2024, 1, 12), // next Friday
		},
		{
			name: "sunday ordinal zero wraps",
			last: date(2024, 1, 7), // Sunday
			days: []int{0},
			want: date(2024, 1, 14),
		},
		{
			name: "unsorted input picks earliest qualifying day",
			last: date(2024, 1, 2), // Tuesday
			days: []int{6, 4},      // Thu, Sat out of order
			want: date(2024, 1, 4), // Thursday
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetNextOccurrence(tt.last, models.FrequencyWeekly,
				models.RecurrencePattern{Interval: 1, Days: tt.days})
			if !got.Equal(tt.want) {
				t.Errorf("weekly: got %v (%s), want %v (%s)",
					got, got.Weekday(), tt.want, tt.want.Weekday())
			}
		})
	}
}

func TestGetNextOccurrenceMonthly(t *testing.T) {
	tests := []struct {
		name       string
		last       time.Time
		dayOfMonth string
		want       time.Time
	}{
		{
			name:       "day 31 clamps to leap february",
			last:       date(2024, 1, 31),
			dayOfMonth: "31",
			want:       date(2024, 2, 29),
		},
		{
			name:       "day 31 clamps to non-leap february",
			last:       date(2025, 1, 31),
			dayOfMonth: "31",
			want:       date(2025, 2, 28),
		},
		{
			name:       "plain mid-month day",
			last:       date(2024, 5, 15),
			dayOfMonth: "15",
			want:       date(2024, 6, 15),
		},
		{
			name:       "last_day of leap february",
			last:       date(2024, 1, 10),
			dayOfMonth: "last_day",
			want:       date(2024, 2, 29),
		},
		{
			name:       "last_day of a 30-day month",
			last:       date(2024, 3, 31),
			dayOfMonth: "last_day",
			want:       date(2024, 4, 30),
		},
		{
			name:       "december wraps to january",
			last:       date(2024, 12, 20),
			dayOfMonth: "20",
			want:       date(2025, 1, 20),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetNextOccurrence(tt.last, models.FrequencyMonthly,
				models.RecurrencePattern{Interval: 1, DayOfMonth: tt.dayOfMonth})
			if !got.Equal(tt.want) {
				t.Errorf("monthly: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetNextOccurrenceNormalizesTimeOfDay(t *testing.T) {
	last := time.Date(2024, 5, 15, 14, 45, 30, 0, time.UTC)
	got := GetNextOccurrence(last, models.FrequencyDaily, models.RecurrencePattern{Interval: 1})
	if want := date(2024, 5, 16); !got.Equal(want) {
		t.Errorf("expected midnight normalization, got %v", got)
	}
}
