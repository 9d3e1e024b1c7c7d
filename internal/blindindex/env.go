package blindindex

import (
	"encoding/base64"
	"os"
	"strings"

	apperrors "github.com/tehnczon/projectecho/internal/errors"
)

// Environment variables for blind-index key provisioning. Secrets are
// supplied at process start and never compiled into source.
const (
	// EnvKeys holds the key chain as comma-separated "id:base64secret" entries.
	EnvKeys = "BLIND_INDEX_KEYS"
	// EnvActiveKeyID names the key version used to index new records.
	EnvActiveKeyID = "ACTIVE_BLIND_INDEX_KEY_ID"
)

// Key-chain loading errors.
var (
	ErrKeysNotSet        = apperrors.New("BLIND_INDEX_KEYS is not set")
	ErrActiveKeyIDNotSet = apperrors.New("ACTIVE_BLIND_INDEX_KEY_ID is not set")
	ErrInvalidKeysFormat = apperrors.New("invalid BLIND_INDEX_KEYS format, expected id:base64secret[,id:base64secret...]")
)

// LoadGeneratorFromEnv builds a Generator from environment variables.
//
// Format example:
//
//	BLIND_INDEX_KEYS="v1:c2VjcmV0LW9uZQ==,v2:c2VjcmV0LXR3bw=="
//	ACTIVE_BLIND_INDEX_KEY_ID="v2"
func LoadGeneratorFromEnv() (*Generator, error) {
	raw := os.Getenv(EnvKeys)
	if raw == "" {
		return nil, ErrKeysNotSet
	}

	activeID := os.Getenv(EnvActiveKeyID)
	if activeID == "" {
		return nil, ErrActiveKeyIDNotSet
	}

	secrets := make(map[string][]byte)
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		id, encoded, ok := strings.Cut(entry, ":")
		if !ok || id == "" || encoded == "" {
			return nil, ErrInvalidKeysFormat
		}

		secret, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, apperrors.Wrap(ErrInvalidKeysFormat, "key "+id+" is not valid base64")
		}

		secrets[id] = secret
	}

	if len(secrets) == 0 {
		return nil, ErrInvalidKeysFormat
	}

	return NewGenerator(activeID, secrets)
}
