package interval

import (
	"errors"
	"testing"
	"time"
)

func mustRange(t *testing.T, start, end string) Range {
	t.Helper()
	r, err := NewRange(start, end)
	if err != nil {
		t.Fatalf("new range %s..%s: %v", start, end, err)
	}
	return r
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-01-31")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	want := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("parsed date mismatch: got=%v want=%v", got, want)
	}

	for _, text := range []string{"", "31.01.2024", "2024-1-31", "2024-13-01", "not a date"} {
		if _, err := ParseDate(text); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("expected ErrInvalidDate for %q, got %v", text, err)
		}
	}
}

func TestOverlapsStrict(t *testing.T) {
	jan := mustRange(t, "2024-01-15", "2024-02-15")
	feb := mustRange(t, "2024-02-01", "2024-02-28")
	mar := mustRange(t, "2024-03-01", "2024-03-31")
	full := mustRange(t, "2024-01-01", "2024-02-28")

	if !Overlaps(jan, feb) {
		t.Fatal("expected jan15-feb15 to overlap feb")
	}
	if Overlaps(mar, full) {
		t.Fatal("march must not overlap jan-feb")
	}

	// Touching boundaries do not overlap under half-open semantics.
	touch := mustRange(t, "2024-02-28", "2024-03-15")
	if Overlaps(full, touch) {
		t.Fatal("ranges touching at a boundary must not overlap")
	}
}

func TestOverlapsSymmetricAndReflexive(t *testing.T) {
	a := mustRange(t, "2024-01-01", "2024-01-31")
	b := mustRange(t, "2024-01-20", "2024-02-20")

	if Overlaps(a, b) != Overlaps(b, a) {
		t.Fatal("overlap must be symmetric")
	}
	if !Overlaps(a, a) {
		t.Fatal("a non-degenerate range must overlap itself")
	}
}

func TestOverlapsInclusive(t *testing.T) {
	window := mustRange(t, "2024-01-01", "2024-01-31")
	touching := mustRange(t, "2024-01-31", "2024-02-29")
	before := mustRange(t, "2023-11-01", "2023-12-31")

	if !OverlapsInclusive(window, touching) {
		t.Fatal("inclusive overlap must count boundary contact")
	}
	if OverlapsInclusive(window, before) {
		t.Fatal("disjoint ranges must not intersect")
	}
}

func TestDayBoundaries(t *testing.T) {
	at := time.Date(2024, time.March, 5, 13, 45, 12, 0, time.UTC)
	if got := DayStart(at); got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
		t.Fatalf("day start not at midnight: %v", got)
	}
	if got := DayEnd(at); got.Hour() != 23 || got.Minute() != 59 || got.Second() != 59 {
		t.Fatalf("day end not at 23:59:59: %v", got)
	}
}
