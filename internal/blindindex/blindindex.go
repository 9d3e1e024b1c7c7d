// Package blindindex derives deterministic lookup tokens for encrypted
// identifiers.
//
// A token is a keyed HMAC-SHA256 digest over the normalized plaintext, so the
// same value always produces the same token under a fixed secret and equality
// lookups work without decryption. The secret is never derivable from the
// token. Keys are versioned: new tokens are computed under the active key,
// while lookups can try every configured version so existing records remain
// reachable during rotation.
package blindindex

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"sort"
	"strings"

	"golang.org/x/crypto/hkdf"

	apperrors "github.com/tehnczon/projectecho/internal/errors"
)

// TokenLength is the length of a blind-index token in hex characters.
const TokenLength = 64

// hmacKeySize is the size of the derived HMAC key in bytes.
const hmacKeySize = 32

// Generator computes blind-index tokens under a versioned key chain.
type Generator struct {
	activeID string
	keys     map[string][]byte
}

// NewGenerator creates a Generator from raw secrets keyed by version ID.
// Each secret is stretched with HKDF-SHA256 into a uniform 32-byte HMAC key,
// bound to its version ID, so configured secrets may be of any length.
func NewGenerator(activeID string, secrets map[string][]byte) (*Generator, error) {
	if len(secrets) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "no blind index keys configured")
	}
	if _, ok := secrets[activeID]; !ok {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "active blind index key not in key set")
	}

	keys := make(map[string][]byte, len(secrets))
	for id, secret := range secrets {
		if len(secret) == 0 {
			return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "blind index key secret is empty")
		}
		key, err := deriveKey(secret, id)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to derive blind index key")
		}
		keys[id] = key
	}

	return &Generator{activeID: activeID, keys: keys}, nil
}

// ActiveKeyID returns the version ID used to index new records.
func (g *Generator) ActiveKeyID() string {
	return g.activeID
}

// Index computes the token for plaintext under the active key.
// Fails with ErrInvalidInput if the normalized plaintext is empty.
func (g *Generator) Index(plaintext string) (string, error) {
	normalized := Normalize(plaintext)
	if normalized == "" {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "plaintext is empty")
	}
	return g.token(g.keys[g.activeID], normalized), nil
}

// Candidates computes the token under every configured key version, active
// key first, so callers can look up records written before a rotation.
func (g *Generator) Candidates(plaintext string) ([]string, error) {
	normalized := Normalize(plaintext)
	if normalized == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "plaintext is empty")
	}

	ids := make([]string, 0, len(g.keys))
	for id := range g.keys {
		if id != g.activeID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	ids = append([]string{g.activeID}, ids...)

	tokens := make([]string, 0, len(ids))
	for _, id := range ids {
		tokens = append(tokens, g.token(g.keys[id], normalized))
	}
	return tokens, nil
}

// token computes the keyed digest of an already-normalized value.
func (g *Generator) token(key []byte, normalized string) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(normalized))
	return hex.EncodeToString(mac.Sum(nil))
}

// Normalize fixes the case and whitespace policy before hashing so that
// equivalent values collide reliably. Skipping this step would silently break
// equality lookup, not crash.
func Normalize(plaintext string) string {
	return strings.ToLower(strings.TrimSpace(plaintext))
}

// deriveKey stretches a configured secret into a 32-byte HMAC key bound to
// the key version ID.
func deriveKey(secret []byte, keyID string) ([]byte, error) {
	reader := hkdf.New(sha256.New, secret, nil, []byte("blind-index:"+keyID))
	key := make([]byte, hmacKeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, err
	}
	return key, nil
}
