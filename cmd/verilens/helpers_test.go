package main

import (
	"testing"
	"time"

	"verilens/internal/config"
)

func floatPtr(v float64) *float64 { return &v }

func TestFormatScore(t *testing.T) {
	if got := formatScore(nil); got != "-" {
		t.Errorf("formatScore(nil) = %q", got)
	}
	if got := formatScore(floatPtr(0.978)); got != "0.9780" {
		t.Errorf("formatScore = %q", got)
	}
	if got := formatScore(floatPtr(0)); got != "0.0000" {
		t.Errorf("formatScore = %q", got)
	}
}

func TestPollingFlagsResolve(t *testing.T) {
	cfg := config.Default()

	t.Run("wait off yields nil", func(t *testing.T) {
		flags := pollingFlags{attempts: 10, intervalMS: 100}
		if got := flags.resolve(&cfg); got != nil {
			t.Fatalf("resolve = %+v, want nil", got)
		}
	})

	t.Run("config defaults apply", func(t *testing.T) {
		flags := pollingFlags{wait: true}
		got := flags.resolve(&cfg)
		if got == nil {
			t.Fatal("resolve = nil")
		}
		if got.MaxAttempts != cfg.Polling.MaxAttempts {
			t.Errorf("MaxAttempts = %d", got.MaxAttempts)
		}
		if got.PollingInterval != cfg.PollingInterval() {
			t.Errorf("PollingInterval = %v", got.PollingInterval)
		}
	})

	t.Run("flags override config", func(t *testing.T) {
		flags := pollingFlags{wait: true, attempts: 99, intervalMS: 250}
		got := flags.resolve(&cfg)
		if got.MaxAttempts != 99 {
			t.Errorf("MaxAttempts = %d", got.MaxAttempts)
		}
		if got.PollingInterval != 250*time.Millisecond {
			t.Errorf("PollingInterval = %v", got.PollingInterval)
		}
	})
}

func TestYesNo(t *testing.T) {
	if yesNo(true) != "yes" || yesNo(false) != "no" {
		t.Fatal("yesNo mapping wrong")
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable(
		[]string{"A", "B"},
		[][]string{{"only-a"}},
		[]columnAlignment{alignLeft, alignRight},
	)
	if out == "" {
		t.Fatal("renderTable returned nothing")
	}
}
