// Package repository provides data persistence implementations for encrypted
// identities.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/tehnczon/projectecho/internal/database"
	"github.com/tehnczon/projectecho/internal/identity/domain"
)

// PostgreSQLIdentityRepository handles encrypted identity persistence for PostgreSQL
type PostgreSQLIdentityRepository struct {
	db *sql.DB
}

// NewPostgreSQLIdentityRepository creates a new PostgreSQLIdentityRepository
func NewPostgreSQLIdentityRepository(db *sql.DB) *PostgreSQLIdentityRepository {
	return &PostgreSQLIdentityRepository{
		db: db,
	}
}

// Create inserts a new encrypted identity in a single statement.
func (r *PostgreSQLIdentityRepository) Create(ctx context.Context, identity *domain.EncryptedIdentity) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO encrypted_identities (id, ciphertext, blind_index, key_id, created_at)
			  VALUES ($1, $2, $3, $4, NOW())`

	_, err := querier.ExecContext(ctx, query, identity.ID, identity.Ciphertext,
		identity.BlindIndex, identity.KeyID)

	return err
}

// GetByID retrieves an encrypted identity by ID.
func (r *PostgreSQLIdentityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.EncryptedIdentity, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, ciphertext, blind_index, key_id, created_at
			  FROM encrypted_identities
			  WHERE id = $1`

	var identity domain.EncryptedIdentity
	err := querier.QueryRowContext(ctx, query, id).Scan(&identity.ID, &identity.Ciphertext,
		&identity.BlindIndex, &identity.KeyID, &identity.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrIdentityNotFound
	}
	if err != nil {
		return nil, err
	}

	return &identity, nil
}

// GetByBlindIndex retrieves identities matching any of the candidate tokens.
// Callers pass one token per blind index key version so lookups keep working
// across key rotation.
func (r *PostgreSQLIdentityRepository) GetByBlindIndex(
	ctx context.Context,
	tokens []string,
) ([]*domain.EncryptedIdentity, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, ciphertext, blind_index, key_id, created_at
			  FROM encrypted_identities
			  WHERE blind_index = ANY($1)
			  ORDER BY created_at ASC`

	rows, err := querier.QueryContext(ctx, query, pq.Array(tokens))
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var identities []*domain.EncryptedIdentity
	for rows.Next() {
		var identity domain.EncryptedIdentity

		err := rows.Scan(&identity.ID, &identity.Ciphertext, &identity.BlindIndex,
			&identity.KeyID, &identity.CreatedAt)
		if err != nil {
			return nil, err
		}

		identities = append(identities, &identity)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return identities, nil
}
