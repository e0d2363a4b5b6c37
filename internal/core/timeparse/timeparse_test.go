package timeparse

import "testing"

func TestNormalizeClockStrings(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"09:00", "09:00", true},
		{"9:00", "09:00", true},
		{"0:05", "00:05", true},
		{"23:59", "23:59", true},
		{" 18:30 ", "18:30", true},
		{"24:00", "", false},
		{"12:60", "", false},
		{"-1:00", "", false},
		{"9", "", false},
		{"9:0", "", false},
		{"abc", "", false},
		{"", "", false},
	}

	for _, c := range cases {
		got, ok := Normalize(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("Normalize(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestNormalizeISODatetime(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2025-04-15T09:30:00Z", "09:30"},
		{"2025-04-15T09:30:00+02:00", "09:30"},
		{"2025-04-15T18:05:12", "18:05"},
		{"2025-04-15T07:45", "07:45"},
	}

	for _, c := range cases {
		got, ok := Normalize(c.in)
		if !ok || got != c.want {
			t.Fatalf("Normalize(%q) = (%q, %v), want (%q, true)", c.in, got, ok, c.want)
		}
	}
}

func TestNormalizeEmbeddedShiftObject(t *testing.T) {
	got, ok := Normalize(`{"startTime":"9:15","endTime":"18:00"}`)
	if !ok || got != "09:15" {
		t.Fatalf("expected first matching key to win, got (%q, %v)", got, ok)
	}

	// startTime absent: fall through to the next key in order
	got, ok = Normalize(`{"lunchEndTime":"2025-04-15T14:00:00Z"}`)
	if !ok || got != "14:00" {
		t.Fatalf("expected lunchEndTime recovery, got (%q, %v)", got, ok)
	}

	if _, ok := Normalize(`{"note":"no times here"}`); ok {
		t.Fatalf("expected object without shift keys to be unknown")
	}
	if _, ok := Normalize(`{not json`); ok {
		t.Fatalf("expected malformed object to be unknown")
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"9:00", "09:00", "23:59", "0:01", "2025-04-15T09:30:00Z"}
	for _, in := range inputs {
		once, ok := Normalize(in)
		if !ok {
			t.Fatalf("Normalize(%q) unexpectedly unknown", in)
		}
		twice, ok := Normalize(once)
		if !ok || twice != once {
			t.Fatalf("Normalize not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"00:00", 0, true},
		{"9:30", 570, true},
		{"23:59", 1439, true},
		{"garbage", 0, false},
	}

	for _, c := range cases {
		got, ok := Minutes(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("Minutes(%q) = (%d, %v), want (%d, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}
