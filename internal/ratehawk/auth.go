package ratehawk

import (
	"encoding/base64"

	"utrippin_backend/platform/apperr"
	"utrippin_backend/platform/config"
)

// Credentials holds the provider key pair. Immutable once resolved; safe for
// concurrent reuse.
type Credentials struct {
	KeyID  string
	APIKey string
}

// ResolveCredentials reads the provider key pair from configuration.
// Both values must be present; no provider call proceeds without them.
func ResolveCredentials(cfg config.ProviderConfig) (Credentials, error) {
	keyID := cfg.GetProviderKeyID()
	apiKey := cfg.GetProviderAPIKey()

	if keyID == "" || apiKey == "" {
		return Credentials{}, apperr.Config("provider credentials are not configured")
	}

	return Credentials{KeyID: keyID, APIKey: apiKey}, nil
}

// AuthorizationHeader encodes the credentials as a Basic auth header value.
func (c Credentials) AuthorizationHeader() string {
	encoded := base64.StdEncoding.EncodeToString([]byte(c.KeyID + ":" + c.APIKey))
	return "Basic " + encoded
}
