package config

// Config holds runtime configuration for the server.
type Config struct {
	Port            string
	RefreshInterval Duration
	Provider        string
	AdminToken      string
	SettingsFile    string
	Ncaa            NcaaConfig
	Export          ExportConfig
	Metrics         MetricsConfig
}

// NcaaConfig controls how we talk to the NCAA scoreboard API.
type NcaaConfig struct {
	BaseURL        string
	CacheResponses bool
}

// ExportConfig controls where XML export documents are written.
type ExportConfig struct {
	Directory  string
	MaxHistory int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Port:            envOrDefault(envPort, defaultPort),
		RefreshInterval: durationEnvOrDefault(envRefreshEvery, defaultRefreshInterval),
		Provider:        envOrDefault(envProvider, defaultProvider),
		AdminToken:      envOrDefault(envAdminToken, ""),
		SettingsFile:    envOrDefault(envSettingsFile, defaultSettingsFile),
		Ncaa: NcaaConfig{
			BaseURL:        envOrDefault(envNcaaBaseURL, ""),
			CacheResponses: boolEnvOrDefault(envNcaaCache, true),
		},
		Export: ExportConfig{
			Directory:  envOrDefault(envExportDir, defaultExportDir),
			MaxHistory: intEnvOrDefault(envExportHistory, defaultExportHistory),
		},
		Metrics: loadMetrics(),
	}
}
