package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSettingsDefaultsWhenFileMissing(t *testing.T) {
	s := NewSettings(filepath.Join(t.TempDir(), "config.json"))

	if got := s.Get(SettingDefaultSport, ""); got != "WBB" {
		t.Fatalf("expected default sport, got %q", got)
	}
	if got := s.GetInt(SettingUpdateInterval, 0); got != 60 {
		t.Fatalf("expected default interval, got %d", got)
	}
	if got := s.GetInt(SettingDefaultDivision, 0); got != 1 {
		t.Fatalf("expected default division, got %d", got)
	}
}

func TestSettingsSetPersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	s := NewSettings(path)
	if err := s.Set(SettingUpdateInterval, 120); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Set(SettingDefaultSport, "MBB"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded := NewSettings(path)
	if got := reloaded.GetInt(SettingUpdateInterval, 0); got != 120 {
		t.Fatalf("expected persisted interval, got %d", got)
	}
	if got := reloaded.Get(SettingDefaultSport, ""); got != "MBB" {
		t.Fatalf("expected persisted sport, got %q", got)
	}
}

func TestSettingsCorruptFileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewSettings(path)
	if got := s.Get(SettingDefaultSport, ""); got != "WBB" {
		t.Fatalf("expected defaults after corrupt load, got %q", got)
	}
}

func TestSettingsGetFallbacks(t *testing.T) {
	s := NewSettings(filepath.Join(t.TempDir(), "config.json"))

	if got := s.Get("unknown_key", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
	if got := s.GetInt("unknown_key", 7); got != 7 {
		t.Fatalf("expected fallback, got %d", got)
	}

	// Numeric values read back as strings and vice versa.
	if got := s.Get(SettingUpdateInterval, ""); got != "60" {
		t.Fatalf("expected numeric-as-string, got %q", got)
	}
	if err := s.Set("stringy_number", "42"); err != nil {
		t.Fatal(err)
	}
	if got := s.GetInt("stringy_number", 0); got != 42 {
		t.Fatalf("expected string-as-int, got %d", got)
	}
}
