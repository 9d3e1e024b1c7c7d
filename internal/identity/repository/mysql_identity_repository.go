package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/tehnczon/projectecho/internal/database"
	"github.com/tehnczon/projectecho/internal/identity/domain"
)

// MySQLIdentityRepository handles encrypted identity persistence for MySQL
type MySQLIdentityRepository struct {
	db *sql.DB
}

// NewMySQLIdentityRepository creates a new MySQLIdentityRepository
func NewMySQLIdentityRepository(db *sql.DB) *MySQLIdentityRepository {
	return &MySQLIdentityRepository{
		db: db,
	}
}

// Create inserts a new encrypted identity in a single statement.
func (r *MySQLIdentityRepository) Create(ctx context.Context, identity *domain.EncryptedIdentity) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := identity.ID.MarshalBinary()
	if err != nil {
		return err
	}

	query := `INSERT INTO encrypted_identities (id, ciphertext, blind_index, key_id, created_at)
			  VALUES (?, ?, ?, ?, NOW())`

	_, err = querier.ExecContext(ctx, query, idBytes, identity.Ciphertext,
		identity.BlindIndex, identity.KeyID)

	return err
}

// GetByID retrieves an encrypted identity by ID.
func (r *MySQLIdentityRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.EncryptedIdentity, error) {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, err
	}

	query := `SELECT id, ciphertext, blind_index, key_id, created_at
			  FROM encrypted_identities
			  WHERE id = ?`

	var idValue []byte
	var identity domain.EncryptedIdentity
	err = querier.QueryRowContext(ctx, query, idBytes).Scan(&idValue, &identity.Ciphertext,
		&identity.BlindIndex, &identity.KeyID, &identity.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrIdentityNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := identity.ID.UnmarshalBinary(idValue); err != nil {
		return nil, err
	}

	return &identity, nil
}

// GetByBlindIndex retrieves identities matching any of the candidate tokens.
// Callers pass one token per blind index key version so lookups keep working
// across key rotation.
func (r *MySQLIdentityRepository) GetByBlindIndex(
	ctx context.Context,
	tokens []string,
) ([]*domain.EncryptedIdentity, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	querier := database.GetTx(ctx, r.db)

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(tokens)), ",")
	query := `SELECT id, ciphertext, blind_index, key_id, created_at
			  FROM encrypted_identities
			  WHERE blind_index IN (` + placeholders + `)
			  ORDER BY created_at ASC`

	args := make([]interface{}, len(tokens))
	for i, token := range tokens {
		args[i] = token
	}

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var identities []*domain.EncryptedIdentity
	for rows.Next() {
		var idValue []byte
		var identity domain.EncryptedIdentity

		err := rows.Scan(&idValue, &identity.Ciphertext, &identity.BlindIndex,
			&identity.KeyID, &identity.CreatedAt)
		if err != nil {
			return nil, err
		}

		if err := identity.ID.UnmarshalBinary(idValue); err != nil {
			return nil, err
		}

		identities = append(identities, &identity)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return identities, nil
}
