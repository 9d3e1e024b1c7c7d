// Package domain contains the encrypted identity model.
//
// A phone number only ever exists in two derived forms at rest: the KMS
// ciphertext and the keyed blind index token. The plaintext itself is
// never stored, logged or returned except through an explicit Reveal.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/tehnczon/projectecho/internal/errors"
)

// EncryptedIdentity is a stored contact record.
type EncryptedIdentity struct {
	ID         uuid.UUID
	Ciphertext []byte
	BlindIndex string
	KeyID      string
	CreatedAt  time.Time
}

// ErrIdentityNotFound indicates no identity matched the lookup.
var ErrIdentityNotFound = fmt.Errorf("identity %w", apperrors.ErrNotFound)

// ErrMissingPhoneNumber indicates a submission without a phone number.
var ErrMissingPhoneNumber = fmt.Errorf("phone number %w", apperrors.ErrMissingField)
