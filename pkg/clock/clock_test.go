package clock

import (
	"testing"
	"time"
)

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

func business(at time.Time) *Business {
	return NewBusiness(fixedClock{t: at}, 8)
}

func TestAdjustTransactionTimeEarlyMorning(t *testing.T) {
	b := NewBusiness(SystemClock{}, 8)
	in := time.Date(2025, 3, 14, 2, 45, 10, 0, b.Location())

	got := b.AdjustTransactionTime(in)
	want := time.Date(2025, 3, 14, 7, 0, 0, 0, b.Location())
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestAdjustTransactionTimeEvening(t *testing.T) {
	b := NewBusiness(SystemClock{}, 8)

	for _, hour := range []int{17, 19, 23} {
		in := time.Date(2025, 3, 14, hour, 30, 0, 0, b.Location())
		got := b.AdjustTransactionTime(in)
		want := time.Date(2025, 3, 14, 17, 0, 0, 0, b.Location())
		if !got.Equal(want) {
			t.Fatalf("hour %d: expected %v, got %v", hour, want, got)
		}
	}
}

func TestAdjustTransactionTimeTradingHoursUnchanged(t *testing.T) {
	b := NewBusiness(SystemClock{}, 8)

	for _, hour := range []int{7, 11, 16} {
		in := time.Date(2025, 3, 14, hour, 12, 33, 0, b.Location())
		if got := b.AdjustTransactionTime(in); !got.Equal(in) {
			t.Fatalf("hour %d: expected unchanged %v, got %v", hour, in, got)
		}
	}
}

func TestAdjustTransactionTimeConvertsZone(t *testing.T) {
	b := NewBusiness(SystemClock{}, 8)

	// 22:00 UTC is 06:00 the next day in UTC+8, so it clamps to 07:00.
	in := time.Date(2025, 3, 14, 22, 0, 0, 0, time.UTC)
	got := b.AdjustTransactionTime(in)
	want := time.Date(2025, 3, 15, 7, 0, 0, 0, b.Location())
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDayBounds(t *testing.T) {
	at := time.Date(2025, 3, 14, 13, 22, 0, 0, time.UTC)
	b := business(at)

	start, end := b.DayBounds(b.Now())
	if start.Hour() != 0 || start.Minute() != 0 {
		t.Fatalf("expected day start at midnight, got %v", start)
	}
	if !end.After(start) || end.Sub(start) >= 24*time.Hour {
		t.Fatalf("expected end within the same day, got %v", end)
	}
	if start.Day() != b.Now().Day() {
		t.Fatalf("expected bounds on the business-zone day")
	}
}
