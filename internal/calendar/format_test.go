package calendar

import (
	"testing"
	"time"
)

func TestParseDate_KnownLayouts(t *testing.T) {
	cases := map[string]time.Time{
		"2026-10-24T08:00:00.000Z":  time.Date(2026, 10, 24, 8, 0, 0, 0, time.UTC),
		"2026-10-24T08:00:00+02:00": time.Date(2026, 10, 24, 6, 0, 0, 0, time.UTC),
		"2026-10-24":                time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC),
		"24/10/2026":                time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, ok := ParseDate(in)
		if !ok {
			t.Fatalf("ParseDate(%q) failed", in)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseDate(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseDate_Malformed(t *testing.T) {
	for _, in := range []string{"", "   ", "Invalid Date", "2026-13-45"} {
		if got, ok := ParseDate(in); ok || !got.IsZero() {
			t.Fatalf("ParseDate(%q) = %v, %v; want zero, false", in, got, ok)
		}
	}
}

func TestParseClock(t *testing.T) {
	if m, ok := ParseClock("09:30"); !ok || m != 570 {
		t.Fatalf("ParseClock(09:30) = %d, %v", m, ok)
	}
	if _, ok := ParseClock("25:00"); ok {
		t.Fatalf("25:00 must be rejected")
	}
}

func TestFormatEventSchedule(t *testing.T) {
	date := time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 25, 0, 0, 0, 0, time.UTC)

	if got := FormatEventSchedule(date, nil, "14:00", "18:00"); got != "Samedi 24.10.2026, 14:00–18:00" {
		t.Fatalf("unexpected %q", got)
	}
	if got := FormatEventSchedule(date, &end, "09:00", ""); got != "Samedi 24.10.2026 → Dimanche 25.10.2026, 09:00" {
		t.Fatalf("unexpected %q", got)
	}
	if got := FormatEventSchedule(date, &date, "", ""); got != "Samedi 24.10.2026" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestFormatEventSchedule_ZeroDateSentinel(t *testing.T) {
	if got := FormatEventSchedule(time.Time{}, nil, "10:00", "12:00"); got != DateNotSet {
		t.Fatalf("expected sentinel, got %q", got)
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	p := Paginate(items, 2, 2)
	if len(p.Items) != 2 || p.Items[0] != 3 || !p.HasNext || !p.HasPrev || p.Total != 5 {
		t.Fatalf("unexpected page %+v", p)
	}

	last := Paginate(items, 3, 2)
	if len(last.Items) != 1 || last.HasNext {
		t.Fatalf("unexpected last page %+v", last)
	}

	beyond := Paginate(items, 10, 2)
	if len(beyond.Items) != 0 {
		t.Fatalf("expected empty page, got %+v", beyond)
	}

	if d := Paginate(items, 0, 0); d.Page != 1 || d.PageSize != DefaultPageSize {
		t.Fatalf("defaults not applied: %+v", d)
	}
}

func TestOffset(t *testing.T) {
	limit, offset := Offset(3, 10)
	if limit != 10 || offset != 20 {
		t.Fatalf("Offset(3,10) = %d,%d", limit, offset)
	}
	limit, offset = Offset(-1, 0)
	if limit != DefaultPageSize || offset != 0 {
		t.Fatalf("Offset defaults = %d,%d", limit, offset)
	}
}

func TestParseDay_ZoneAware(t *testing.T) {
	newYork := time.FixedZone("EST", -5*3600)
	paris := time.FixedZone("CET", 3600)

	// Полночь по Парижу, сериализованная браузером в UTC.
	got, ok := ParseDay("2026-10-23T23:00:00.000Z", paris)
	if !ok || !got.Equal(time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("ParseDay = %v, %v", got, ok)
	}

	// Дата без пояса не сдвигается ни в каком поясе.
	got, ok = ParseDay("2026-10-24", newYork)
	if !ok || !got.Equal(time.Date(2026, 10, 24, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("ParseDay = %v, %v", got, ok)
	}

	if _, ok := ParseDay("not a date", paris); ok {
		t.Fatalf("malformed day must fail")
	}
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2026, 10, 24, 10, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	if got := FormatTimestamp(&ts); got != "2026-10-24T08:00:00.000Z" {
		t.Fatalf("FormatTimestamp = %q", got)
	}
	if FormatTimestamp(nil) != "" {
		t.Fatalf("nil timestamp must format as empty")
	}
	if FormatISODay(time.Time{}) != "" || FormatISODay(ts) != "2026-10-24" {
		t.Fatalf("unexpected FormatISODay")
	}
}
