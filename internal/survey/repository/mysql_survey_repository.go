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

// MySQLSurveyRepository handles raw survey record persistence for MySQL
type MySQLSurveyRepository struct {
	db *sql.DB
}

// NewMySQLSurveyRepository creates a new MySQLSurveyRepository
func NewMySQLSurveyRepository(db *sql.DB) *MySQLSurveyRepository {
	return &MySQLSurveyRepository{
		db: db,
	}
}

// Create inserts a new raw survey record
func (r *MySQLSurveyRepository) Create(ctx context.Context, record *domain.RawSurveyRecord) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO survey_records (
				id, gender_identity, city, civil_status, education_level, age_range, barangay,
				diagnosed_sti, has_hepatitis, has_tuberculosis, has_multiple_partner_risk,
				is_ofw, is_pregnant, is_studying, living_with_partner, mother_had_hiv, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())`

	// Convert UUID to bytes for MySQL BINARY(16)
	idBytes, err := record.ID.MarshalBinary()
	if err != nil {
		return err
	}

	_, err = querier.ExecContext(ctx, query,
		idBytes,
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
func (r *MySQLSurveyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RawSurveyRecord, error) {
	var record domain.RawSurveyRecord
	var idBytes []byte
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, gender_identity, city, civil_status, education_level, age_range, barangay,
				diagnosed_sti, has_hepatitis, has_tuberculosis, has_multiple_partner_risk,
				is_ofw, is_pregnant, is_studying, living_with_partner, mother_had_hiv, created_at
			  FROM survey_records WHERE id = ?`

	queryID, err := id.MarshalBinary()
	if err != nil {
		return nil, err
	}

	err = querier.QueryRowContext(ctx, query, queryID).Scan(
		&idBytes,
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

	if err := record.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, err
	}

	return &record, nil
}
