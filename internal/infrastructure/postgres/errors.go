package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/restaurant-analytics/internal/domain"
)

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// writeError traduce un error de escritura: clave única repetida -> domain.ErrDuplicate
// con el detalle dado; cualquier otro se envuelve con la operación.
func writeError(err error, op, duplicate string) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		if duplicate == "" {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, duplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}
