package domain

import (
	"fmt"

	apperrors "github.com/tehnczon/projectecho/internal/errors"
)

// ErrRecordNotFound indicates the survey record does not exist.
var ErrRecordNotFound = fmt.Errorf("survey record %w", apperrors.ErrNotFound)
