package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
)

// Settings keys understood by the service. The store itself is a flat
// key-value map; callers interpret the values.
const (
	SettingLastSaveDirectory = "last_save_directory"
	SettingUpdateInterval    = "update_interval"
	SettingDefaultSport      = "default_sport"
	SettingDefaultDivision   = "default_division"
	SettingDefaultSeasonYear = "default_season_year"
)

// Settings is a flat key-value store persisted as a JSON file. Reads fall
// back to defaults when the file is missing or unreadable; every Set rewrites
// the file.
type Settings struct {
	mu     sync.Mutex
	path   string
	values map[string]any
}

// NewSettings loads the settings file at path, falling back to defaults on
// any load failure.
func NewSettings(path string) *Settings {
	s := &Settings{
		path:   path,
		values: defaultSettings(),
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var loaded map[string]any
	if err := json.Unmarshal(data, &loaded); err != nil {
		return s
	}
	for key, value := range loaded {
		s.values[key] = value
	}
	return s
}

func defaultSettings() map[string]any {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return map[string]any{
		SettingLastSaveDirectory: home,
		SettingUpdateInterval:    60,
		SettingDefaultSport:      "WBB",
		SettingDefaultDivision:   1,
		SettingDefaultSeasonYear: 2025,
	}
}

// Get returns the value for key as a string, or def when absent.
func (s *Settings) Get(key, def string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	if !ok {
		return def
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return def
	}
}

// GetInt returns the value for key as an int, or def when absent or not
// numeric.
func (s *Settings) GetInt(key string, def int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	if !ok {
		return def
	}
	switch v := value.(type) {
	case int:
		return v
	case float64:
		return int(v)
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return def
		}
		return parsed
	default:
		return def
	}
}

// Set stores the value for key and persists the whole store.
func (s *Settings) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.save()
}

// Keys returns the stored keys (order unspecified).
func (s *Settings) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	return keys
}

func (s *Settings) save() error {
	data, err := json.MarshalIndent(s.values, "", "    ")
	if err != nil {
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("settings: write %s: %w", s.path, err)
	}
	return nil
}
