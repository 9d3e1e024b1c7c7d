// Package kms provides the gateway to the external key management service.
//
// Personal identifiers are envelope-encrypted through a gocloud.dev/secrets
// keeper: the provider holds the master key and the gateway never sees key
// material. Provider failures are mapped onto the application error taxonomy
// so callers can distinguish retryable outages from rejected input.
package kms

import (
	"context"
	"time"

	"gocloud.dev/gcerrors"
	"gocloud.dev/secrets"

	apperrors "github.com/tehnczon/projectecho/internal/errors"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// Gateway encrypts and decrypts single identifier-class fields through the
// configured key service. Implementations must not persist or log plaintext.
type Gateway interface {
	// Encrypt returns an opaque ciphertext safe to persist. Fails with
	// ErrEncryptionRejected for empty or oversized input, ErrKeyNotFound if
	// the configured key does not resolve, and ErrKeyServiceUnavailable when
	// the provider cannot be reached within the configured timeout.
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)

	// Decrypt reverses Encrypt. Same error taxonomy.
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)

	// Close releases the underlying keeper.
	Close() error
}

// Config holds gateway configuration.
type Config struct {
	// KeyURI identifies the key resource, e.g.
	// "gcpkms://projects/p/locations/l/keyRings/r/cryptoKeys/k" or
	// "base64key://..." for local development.
	KeyURI string
	// Timeout bounds every remote call.
	Timeout time.Duration
	// MaxPlaintextSize rejects values too large for an identifier field.
	MaxPlaintextSize int
}

// keeperGateway implements Gateway using gocloud.dev/secrets.
type keeperGateway struct {
	keeper  *secrets.Keeper
	timeout time.Duration
	maxSize int
}

// Open opens the keeper for the configured key URI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func Open(ctx context.Context, cfg Config) (Gateway, error) {
	if cfg.KeyURI == "" {
		return nil, apperrors.Wrap(apperrors.ErrKeyNotFound, "key URI is not configured")
	}

	keeper, err := secrets.OpenKeeper(ctx, cfg.KeyURI)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrKeyServiceUnavailable, "failed to open keeper")
	}

	return &keeperGateway{
		keeper:  keeper,
		timeout: cfg.Timeout,
		maxSize: cfg.MaxPlaintextSize,
	}, nil
}

// Encrypt envelope-encrypts a single field value through the key service.
func (g *keeperGateway) Encrypt(ctx context.Context, plaintext []byte) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrEncryptionRejected, "plaintext is empty")
	}
	if g.maxSize > 0 && len(plaintext) > g.maxSize {
		return nil, apperrors.Wrap(apperrors.ErrEncryptionRejected, "plaintext exceeds maximum size")
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	ciphertext, err := g.keeper.Encrypt(ctx, plaintext)
	if err != nil {
		return nil, classify(err, "encrypt")
	}

	return ciphertext, nil
}

// Decrypt reverses Encrypt through the key service.
func (g *keeperGateway) Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrEncryptionRejected, "ciphertext is empty")
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	plaintext, err := g.keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, classify(err, "decrypt")
	}

	return plaintext, nil
}

// Close releases the underlying keeper.
func (g *keeperGateway) Close() error {
	return g.keeper.Close()
}

func (g *keeperGateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, g.timeout)
}

// classify maps provider errors onto the application taxonomy. The original
// error text stays inside the wrapped message for logs; callers match on the
// sentinel only.
func classify(err error, operation string) error {
	if apperrors.Is(err, context.DeadlineExceeded) || apperrors.Is(err, context.Canceled) {
		return apperrors.Wrap(apperrors.ErrKeyServiceUnavailable, operation+" timed out")
	}

	switch gcerrors.Code(err) {
	case gcerrors.NotFound:
		return apperrors.Wrap(apperrors.ErrKeyNotFound, operation+" failed")
	case gcerrors.InvalidArgument:
		return apperrors.Wrap(apperrors.ErrEncryptionRejected, operation+" rejected by key service")
	case gcerrors.DeadlineExceeded, gcerrors.Canceled, gcerrors.ResourceExhausted:
		return apperrors.Wrap(apperrors.ErrKeyServiceUnavailable, operation+" timed out")
	default:
		return apperrors.Wrap(apperrors.ErrKeyServiceUnavailable, operation+" failed")
	}
}
