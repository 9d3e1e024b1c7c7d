// Package repository provides data persistence implementations for survey records.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/tehnczon/projectecho/internal/database"
	apperrors "github.com/tehnczon/projectecho/internal/errors"
	"github.com/tehnczon/projectecho/internal/survey/domain"
)

// PostgreSQLSurveyRepository handles raw survey record persistence for PostgreSQL
type PostgreSQLSurveyRepository struct {
	db *sql.DB
}

// NewPostgreSQLSurveyRepository creates a new PostgreSQLSurveyRepository
func NewPostgreSQLSurveyRepository(db *sql.DB) *PostgreSQLSurveyRepository {
	return &PostgreSQLSurveyRepository{
		db: db,
	}
}

// Create inserts a new raw survey record. Records are append-only; there is
// no update path.
func (r *PostgreSQLSurveyRepository) Create(ctx context.Context, record *domain.RawSurveyRecord) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO survey_records (
				id, gender_identity, city, civil_status, education_level, age_range, barangay,
				diagnosed_sti, has_hepatitis, has_tuberculosis, has_multiple_partner_risk,
				is_ofw, is_pregnant, is_studying, living_with_partner, mother_had_hiv, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW())`

	_, err := querier.ExecContext(ctx, query,
		record.ID,
		record.GenderIdentity, record.City, record.CivilStatus,
		record.EducationLevel, record.AgeRange, record.Barangay,
		record.DiagnosedSTI, record.HasHepatitis, record.HasTuberculosis,
		record.HasMultiplePartnerRisk, record.IsOFW, record.IsPregnant,
		record.IsStudying, record.LivingWithPartner, record.MotherHadHIV,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create survey record")
	}
	return nil
}

// GetByID retrieves a raw survey record by ID
func (r *PostgreSQLSurveyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RawSurveyRecord, error) {
	var record domain.RawSurveyRecord
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, gender_identity, city, civil_status, education_level, age_range, barangay,
				diagnosed_sti, has_hepatitis, has_tuberculosis, has_multiple_partner_risk,
				is_ofw, is_pregnant, is_studying, living_with_partner, mother_had_hiv, created_at
			  FROM survey_records WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.GenderIdentity, &record.City, &record.CivilStatus,
		&record.EducationLevel, &record.AgeRange, &record.Barangay,
		&record.DiagnosedSTI, &record.HasHepatitis, &record.HasTuberculosis,
		&record.HasMultiplePartnerRisk, &record.IsOFW, &record.IsPregnant,
		&record.IsStudying, &record.LivingWithPartner, &record.MotherHadHIV,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get survey record by id")
	}

	return &record, nil
}
