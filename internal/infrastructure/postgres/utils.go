package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/novasalud/clinic-api/internal/domain"
)

// Códigos SQLSTATE que se traducen a errores de dominio.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeCheckViolation       = "23514"
	codeNotNullViolation     = "23502"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
)

// mapError traduce un error de PostgreSQL a la taxonomía de dominio. Nada de códigos SQL sale de este paquete.
// op describe la operación ("insert client", ...) y se conserva en el mensaje.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return domain.Infrastructure(op, err)
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	case codeForeignKeyViolation:
		return fmt.Errorf("%s: %w", op, domain.ErrReferentialIntegrity)
	case codeCheckViolation, codeNotNullViolation:
		return fmt.Errorf("%s (%s): %w", op, pgErr.ConstraintName, domain.ErrValidation)
	case codeSerializationFailure, codeDeadlockDetected:
		return fmt.Errorf("%s: operación concurrente, reintente: %w", op, domain.ErrConflict)
	default:
		return domain.Infrastructure(op, err)
	}
}

// likePattern arma un patrón ILIKE escapando los comodines del usuario.
func likePattern(search string) string {
	out := make([]rune, 0, len(search)+2)
	out = append(out, '%')
	for _, r := range search {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(append(out, '%'))
}
