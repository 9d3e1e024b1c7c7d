// Package usecase implements the encrypted identity business logic.
package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tehnczon/projectecho/internal/blindindex"
	apperrors "github.com/tehnczon/projectecho/internal/errors"
	"github.com/tehnczon/projectecho/internal/identity/domain"
	"github.com/tehnczon/projectecho/internal/kms"
)

// UseCase defines the interface for identity operations
type UseCase interface {
	Submit(ctx context.Context, phoneNumber string) (*domain.EncryptedIdentity, error)
	FindByPhone(ctx context.Context, phoneNumber string) ([]*domain.EncryptedIdentity, error)
	Reveal(ctx context.Context, id uuid.UUID) (string, error)
}

// IdentityRepository defines encrypted identity repository operations
type IdentityRepository interface {
	Create(ctx context.Context, identity *domain.EncryptedIdentity) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.EncryptedIdentity, error)
	GetByBlindIndex(ctx context.Context, tokens []string) ([]*domain.EncryptedIdentity, error)
}

// IdentityUseCase handles the phone number protection pipeline.
//
// Submit derives both protected forms before touching storage, then writes
// them with a single insert. There is no state to roll back when encryption
// or indexing fails, and a storage failure leaves nothing behind: the
// pipeline never produces a partial identity. The plaintext is confined to
// the stack and is not logged.
type IdentityUseCase struct {
	identityRepo IdentityRepository
	gateway      kms.Gateway
	indexer      *blindindex.Generator
	logger       *slog.Logger
}

// NewIdentityUseCase creates a new IdentityUseCase
func NewIdentityUseCase(
	identityRepo IdentityRepository,
	gateway kms.Gateway,
	indexer *blindindex.Generator,
	logger *slog.Logger,
) *IdentityUseCase {
	return &IdentityUseCase{
		identityRepo: identityRepo,
		gateway:      gateway,
		indexer:      indexer,
		logger:       logger,
	}
}

// Submit encrypts and indexes a phone number, then stores the result.
func (uc *IdentityUseCase) Submit(ctx context.Context, phoneNumber string) (*domain.EncryptedIdentity, error) {
	if strings.TrimSpace(phoneNumber) == "" {
		return nil, domain.ErrMissingPhoneNumber
	}

	ciphertext, err := uc.gateway.Encrypt(ctx, []byte(phoneNumber))
	if err != nil {
		return nil, err
	}

	token, err := uc.indexer.Index(phoneNumber)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to index phone number")
	}

	identity := &domain.EncryptedIdentity{
		ID:         uuid.Must(uuid.NewV7()),
		Ciphertext: ciphertext,
		BlindIndex: token,
		KeyID:      uc.indexer.ActiveKeyID(),
		CreatedAt:  time.Now().UTC(),
	}

	if err := uc.identityRepo.Create(ctx, identity); err != nil {
		return nil, apperrors.Wrap(err, "failed to store encrypted identity")
	}

	uc.logger.Info("identity stored",
		slog.String("identity_id", identity.ID.String()),
		slog.String("key_id", identity.KeyID),
	)

	return identity, nil
}

// FindByPhone looks up stored identities for a phone number through the
// blind index, covering every configured key version.
func (uc *IdentityUseCase) FindByPhone(ctx context.Context, phoneNumber string) ([]*domain.EncryptedIdentity, error) {
	if strings.TrimSpace(phoneNumber) == "" {
		return nil, domain.ErrMissingPhoneNumber
	}

	tokens, err := uc.indexer.Candidates(phoneNumber)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to derive lookup tokens")
	}

	identities, err := uc.identityRepo.GetByBlindIndex(ctx, tokens)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to look up identities")
	}

	return identities, nil
}

// Reveal decrypts a stored identity back to the phone number. Reserved for
// operator tooling; no HTTP route exposes it.
func (uc *IdentityUseCase) Reveal(ctx context.Context, id uuid.UUID) (string, error) {
	identity, err := uc.identityRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	plaintext, err := uc.gateway.Decrypt(ctx, identity.Ciphertext)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}
