package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/novasalud/clinic-api/internal/domain"
	"github.com/novasalud/clinic-api/internal/domain/entity"
	"github.com/novasalud/clinic-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, username, password_hash, role, created_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un usuario. Nombre de usuario duplicado → ErrConflict.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at`,
		u.Username, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return mapError("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByUsername obtiene un usuario por nombre de usuario.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *UserRepo) getOne(ctx context.Context, sql string, arg any) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, sql, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get user", err)
	}
	return u, nil
}

// Update actualiza usuario y rol; la contraseña solo si PasswordHash no está vacío.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE users
		SET username = $2, role = $3, password_hash = COALESCE(NULLIF($4, ''), password_hash)
		WHERE id = $1`,
		u.ID, u.Username, u.Role, u.PasswordHash)
	if err != nil {
		return mapError("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("usuario", u.ID)
	}
	return nil
}

// UpdatePassword reemplaza el hash de la contraseña.
func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
	if err != nil {
		return mapError("update password", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("usuario", id)
	}
	return nil
}

// Delete elimina un usuario. Con ventas registradas → ErrReferentialIntegrity.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("usuario", id)
	}
	return nil
}

// List lista usuarios buscando por nombre de usuario.
func (r *UserRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.User, int, error) {
	where := ""
	args := []any{}
	if f.Search != "" {
		where = ` WHERE username ILIKE $1`
		args = append(args, likePattern(f.Search))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, mapError("count users", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := `SELECT ` + userColumns + ` FROM users` + where +
		` ORDER BY id LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	list, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll todos los usuarios (vendedores seleccionables).
func (r *UserRepo) ListAll(ctx context.Context) ([]*entity.User, error) {
	return r.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
}

func (r *UserRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError("list users", err)
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, mapError("scan user", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list users", err)
	}
	return out, nil
}
