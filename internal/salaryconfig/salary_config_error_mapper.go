package salaryconfig

import (
	"errors"
	"strings"

	salaryconfigerrors "fleetops/internal/salaryconfig/errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "idx_company_vehicle" {
			return salaryconfigerrors.ErrConfigAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "idx_company_vehicle") {
		return salaryconfigerrors.ErrConfigAlreadyExists
	}

	return err
}
