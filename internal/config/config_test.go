package config

import (
	"testing"
	"time"
)

func TestLoad_ReminderDefaults(t *testing.T) {
	t.Setenv("ENABLE_REMINDERS", "")
	t.Setenv("REMIND_OFFSETS", "")
	cfg := Load()
	if cfg.Reminders.Enabled {
		t.Error("reminders enabled without ENABLE_REMINDERS=1")
	}
	want := []time.Duration{24 * time.Hour, 2 * time.Hour}
	if len(cfg.Reminders.Offsets) != 2 || cfg.Reminders.Offsets[0] != want[0] || cfg.Reminders.Offsets[1] != want[1] {
		t.Errorf("default offsets = %v, want %v", cfg.Reminders.Offsets, want)
	}
}

func TestLoad_ReminderOffsetsParsed(t *testing.T) {
	t.Setenv("ENABLE_REMINDERS", "1")
	t.Setenv("REMIND_OFFSETS", "48h, 30m, banana, -1h")
	cfg := Load()
	if !cfg.Reminders.Enabled {
		t.Error("ENABLE_REMINDERS=1 not honored")
	}
	got := cfg.Reminders.Offsets
	if len(got) != 2 || got[0] != 48*time.Hour || got[1] != 30*time.Minute {
		t.Errorf("offsets = %v, want [48h 30m]", got)
	}

	// All-junk input falls back to the defaults rather than an empty list.
	t.Setenv("REMIND_OFFSETS", "banana")
	cfg = Load()
	if len(cfg.Reminders.Offsets) != 2 || cfg.Reminders.Offsets[0] != 24*time.Hour {
		t.Errorf("all-junk fallback = %v", cfg.Reminders.Offsets)
	}
}

func TestLoad_SimulatorKnobs(t *testing.T) {
	t.Setenv("VERIFY_DOCUMENT_PASS_RATE", "0.5")
	t.Setenv("PAYMENT_SUCCESS_RATE", "1.5") // out of range, must fall back
	t.Setenv("REGISTRATION_FEE", "750")
	cfg := Load()
	if cfg.Verify.DocumentPassRate != 0.5 {
		t.Errorf("pass rate = %v, want 0.5", cfg.Verify.DocumentPassRate)
	}
	if cfg.Payment.SuccessRate != 1.0 {
		t.Errorf("out-of-range success rate not defaulted: %v", cfg.Payment.SuccessRate)
	}
	if cfg.Payment.Fee.String() != "750" {
		t.Errorf("fee = %s, want 750", cfg.Payment.Fee)
	}
}
