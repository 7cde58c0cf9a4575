package pgerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		pgErr := &pgconn.PgError{Message: "permission denied for schema shop", Code: "42501"}
		err := Wrap(fmt.Errorf("query columns: %w", pgErr))

		assert.Equal(t, "permission denied for schema shop (code 42501)", err.Error())
		var target *pgconn.PgError
		assert.True(t, errors.As(err, &target))
	})

	t.Run("with detail", func(t *testing.T) {
		err := Wrap(&pgconn.PgError{Message: "relation is locked", Detail: "by pid 42", Code: "55P03"})
		assert.Equal(t, "relation is locked by pid 42 (code 55P03)", err.Error())
	})

	t.Run("other error", func(t *testing.T) {
		orig := errors.New("connection refused")
		assert.Same(t, orig, Wrap(orig))
	})
}
