package providers

import "errors"

// ErrProviderUnavailable indicates a provider was not configured or wired.
var ErrProviderUnavailable = errors.New("provider unavailable")
