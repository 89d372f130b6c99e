package watchface

import (
	"regexp"
	"strconv"
	"testing"
	"time"
)

func TestFormatTime(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	for h := 0; h < 24; h++ {
		now := day.Add(time.Duration(h)*time.Hour + 7*time.Minute)
		for _, is24h := range []bool{true, false} {
			s := FormatTime(now, is24h)
			if len(s) != 5 || s[2] != ':' || s[3:] != "07" {
				t.Fatalf("FormatTime(%v, %v) = %q", now, is24h, s)
			}
			hh, err := strconv.Atoi(s[:2])
			if err != nil {
				t.Fatalf("FormatTime(%v, %v) = %q: %v", now, is24h, s, err)
			}
			lo, hi := 0, 23
			if !is24h {
				lo, hi = 1, 12
			}
			if hh < lo || hh > hi {
				t.Errorf("FormatTime(%v, %v) hour %d outside [%d, %d]", now, is24h, hh, lo, hi)
			}
		}
	}
	now := time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC)
	if got, want := FormatTime(now, true), "14:07"; got != want {
		t.Errorf("24h = %q, want %q", got, want)
	}
	if got, want := FormatTime(now, false), "02:07"; got != want {
		t.Errorf("12h = %q, want %q", got, want)
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC), "03-05-24"},
		{time.Date(1999, 12, 31, 23, 59, 0, 0, time.UTC), "12-31-99"},
		{time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), "01-01-30"},
	}
	for _, test := range tests {
		if got := FormatDate(test.t); got != test.want {
			t.Errorf("FormatDate(%v) = %q, want %q", test.t, got, test.want)
		}
	}
}

func TestFormatSteps(t *testing.T) {
	pattern := regexp.MustCompile(`^Steps: [0-9]+\nAvg: [0-9]+$`)
	tests := []struct {
		today, avg int
		want       string
	}{
		{1532, 980, "Steps: 1532\nAvg: 980"},
		{0, 0, "Steps: 0\nAvg: 0"},
		{-3, 12, "Steps: 0\nAvg: 12"},
		{70000, 1 << 40, "Steps: 65535\nAvg: 65535"},
	}
	for _, test := range tests {
		got := FormatSteps(test.today, test.avg)
		if got != test.want {
			t.Errorf("FormatSteps(%d, %d) = %q, want %q", test.today, test.avg, got, test.want)
		}
		if !pattern.MatchString(got) {
			t.Errorf("FormatSteps(%d, %d) = %q has the wrong shape", test.today, test.avg, got)
		}
		if len(got) > 29 {
			t.Errorf("FormatSteps(%d, %d) is %d bytes", test.today, test.avg, len(got))
		}
	}
}
