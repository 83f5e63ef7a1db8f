package company

import (
	"errors"
	"net/http"
	"strings"

	companyerrors "github.com/AlexKolonitsky/mifort-timesheet/internal/company/errors"
	"github.com/AlexKolonitsky/mifort-timesheet/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// mapRepositoryError classifies store failures: not found, connection
// failure, or plain write/read failure. The original cause stays wrapped.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return companyerrors.ErrCompanyNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "08") {
		// Class 08: connection exceptions.
		return apperror.Wrap(err,
			apperror.CodeServiceUnavailable,
			"Database is unreachable",
			http.StatusServiceUnavailable,
		)
	}

	return apperror.Wrap(err,
		apperror.CodePersistenceError,
		"Company could not be persisted",
		http.StatusInternalServerError,
	)
}
