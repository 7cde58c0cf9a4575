package pgerrors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PgError - renders the server error with the detail and the SQLSTATE code.
type PgError struct {
	Err *pgconn.PgError
}

// Wrap - wraps the server error, any other error is returned as is.
func Wrap(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &PgError{Err: pgErr}
	}
	return err
}

func (e *PgError) Error() string {
	if e.Err.Detail == "" {
		return fmt.Sprintf("%s (code %s)", e.Err.Message, e.Err.Code)
	}
	return fmt.Sprintf("%s %s (code %s)", e.Err.Message, e.Err.Detail, e.Err.Code)
}

func (e *PgError) Unwrap() error {
	return e.Err
}
