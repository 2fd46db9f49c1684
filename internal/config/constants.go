package config

import "time"

const (
	envPort          = "PORT"
	envRefreshEvery  = "REFRESH_INTERVAL"
	envProvider      = "PROVIDER"
	envMetricsPort   = "METRICS_PORT"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken    = "ADMIN_TOKEN"
	envNcaaBaseURL   = "NCAA_BASE_URL"
	envNcaaCache     = "NCAA_CACHE_ENABLED"
	envSettingsFile  = "SETTINGS_FILE"
	envExportDir     = "EXPORT_DIR"
	envExportHistory = "EXPORT_HISTORY"

	defaultPort = "4000"
	// Default refresh cadence; the settings file can override it per session.
	defaultRefreshInterval = 60 * Duration(time.Second)
	defaultProvider        = "ncaa"
	defaultMetricsPort     = "9090"
	defaultSettingsFile    = "config.json"
	defaultExportDir       = "data/exports"
	defaultExportHistory   = 50
)

// MinRefreshInterval is the smallest auto-refresh cadence the service
// accepts, enforced wherever a cycle is started.
const MinRefreshInterval = 5 * time.Second
