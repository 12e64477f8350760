package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/novasalud/clinic-api/internal/domain"
)

func TestMapError_CodigosDePostgres(t *testing.T) {
	cases := []struct {
		code string
		want error
	}{
		{"23505", domain.ErrConflict},
		{"23503", domain.ErrReferentialIntegrity},
		{"23514", domain.ErrValidation},
		{"40P01", domain.ErrConflict},
		{"40001", domain.ErrConflict},
		{"53300", domain.ErrInfrastructure},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			err := mapError("op", fmt.Errorf("wrap: %w", &pgconn.PgError{Code: tc.code}))
			assert.ErrorIs(t, err, tc.want)
			if tc.want != domain.ErrInfrastructure {
				assert.NotContains(t, err.Error(), tc.code, "el código SQL no se expone")
			}
		})
	}
}

func TestMapError_ErrorNoPostgresEsInfraestructura(t *testing.T) {
	cause := errors.New("connection refused")
	err := mapError("begin", cause)

	assert.ErrorIs(t, err, domain.ErrInfrastructure)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, mapError("op", nil))
}

func TestLikePattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, `%ana%`, likePattern("ana"))
	assert.Equal(t, `%50\%\_x%`, likePattern("50%_x"))
}
