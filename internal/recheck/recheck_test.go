package recheck

import (
	"testing"
	"time"
)

func TestParseVariants(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		raw      string
		kind     Kind
		source   string
		duration time.Duration
	}{
		{name: "default", raw: Default, kind: KindInterval, source: "duration", duration: time.Hour},
		{name: "cron", raw: "0 * * * *", kind: KindCron, source: "cron"},
		{name: "descriptor", raw: "@every 30m", kind: KindCron, source: "cron"},
		{name: "prefixed cron", raw: "cron:0 9 * * *", kind: KindCron, source: "cron"},
		{name: "prefixed interval", raw: "interval:45m", kind: KindInterval, source: "duration", duration: 45 * time.Minute},
		{name: "every prefix", raw: "every:00:30", kind: KindInterval, source: "hhmm", duration: 30 * time.Minute},
		{name: "hhmm", raw: "01:30", kind: KindInterval, source: "hhmm", duration: 90 * time.Minute},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.raw, err)
			}
			if got.Kind != tt.kind {
				t.Fatalf("Kind = %v, want %v", got.Kind, tt.kind)
			}
			if got.Source != tt.source {
				t.Fatalf("Source = %s, want %s", got.Source, tt.source)
			}
			if tt.kind == KindInterval && got.Every != tt.duration {
				t.Fatalf("Every = %v, want %v", got.Every, tt.duration)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"", "not-a-schedule", "0s", "-5m", "01:75", "cron:", "cron:* * *", "@fortnightly"} {
		if _, err := Parse(raw); err == nil {
			t.Fatalf("Parse(%q): expected error", raw)
		}
	}
}

func TestNextAndWait(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 1, 5, 10, 20, 0, 0, time.Local)

	hourly := MustParse("0 * * * *")
	if got := hourly.Next(now); !got.Equal(time.Date(2024, 1, 5, 11, 0, 0, 0, time.Local)) {
		t.Fatalf("cron Next = %v", got)
	}
	if got := hourly.Wait(now); got != 40*time.Minute {
		t.Fatalf("cron Wait = %v", got)
	}

	every := MustParse("2h")
	if got := every.Wait(now); got != 2*time.Hour {
		t.Fatalf("interval Wait = %v", got)
	}
	if every.String() != "2h0m0s" || hourly.String() != "0 * * * *" {
		t.Fatalf("String() = %q / %q", every.String(), hourly.String())
	}
}
