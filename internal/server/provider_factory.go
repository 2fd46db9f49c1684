package server

import (
	"log/slog"
	"strings"

	"ncaa-contests-service/internal/config"
	"ncaa-contests-service/internal/metrics"
	"ncaa-contests-service/internal/providers"
	"ncaa-contests-service/internal/providers/fixture"
	"ncaa-contests-service/internal/providers/ncaa"
)

// providerFactory assembles the provider with the safe-fetch wrapper applied.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.ContestProvider {
	base := selectProvider(cfg, f.logger)
	return providers.NewSafeProvider(base, normalizeProviderName(cfg.Provider, base), f.logger, f.metrics)
}

func selectProvider(cfg config.Config, logger *slog.Logger) providers.ContestProvider {
	switch cfg.Provider {
	case "fixture":
		return fixture.New()
	case "ncaa", "":
		return ncaa.NewClient(ncaa.Config{
			BaseURL:        cfg.Ncaa.BaseURL,
			CacheResponses: cfg.Ncaa.CacheResponses,
		}, logger)
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}

// normalizeProviderName keeps provider naming consistent in metrics and logs.
func normalizeProviderName(raw string, provider providers.ContestProvider) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		return "ncaa"
	}
	return "provider"
}
