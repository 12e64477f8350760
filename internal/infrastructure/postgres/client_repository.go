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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository sobre PostgreSQL.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador de clientes. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, name, dni, phone, email, address, registered_at`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	if err := row.Scan(&c.ID, &c.Name, &c.DNI, &c.Phone, &c.Email, &c.Address, &c.RegisteredAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un cliente. DNI duplicado → ErrConflict.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO clients (name, dni, phone, email, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, registered_at`,
		c.Name, c.DNI, c.Phone, c.Email, c.Address,
	).Scan(&c.ID, &c.RegisteredAt)
	if err != nil {
		return mapError("insert client", err)
	}
	return nil
}

// GetByID obtiene un cliente; (nil, nil) si no existe.
func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get client", err)
	}
	return c, nil
}

// Update actualiza los datos del cliente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE clients SET name = $2, dni = $3, phone = $4, email = $5, address = $6
		WHERE id = $1`,
		c.ID, c.Name, c.DNI, c.Phone, c.Email, c.Address)
	if err != nil {
		return mapError("update client", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("cliente", c.ID)
	}
	return nil
}

// Delete elimina un cliente. Con ventas asociadas → ErrReferentialIntegrity.
func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return mapError("delete client", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("cliente", id)
	}
	return nil
}

// List lista clientes (más recientes primero) buscando por nombre o DNI.
func (r *ClientRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Client, int, error) {
	where := ""
	args := []any{}
	if f.Search != "" {
		where = ` WHERE name ILIKE $1 OR dni ILIKE $1`
		args = append(args, likePattern(f.Search))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM clients`+where, args...).Scan(&total); err != nil {
		return nil, 0, mapError("count clients", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := `SELECT ` + clientColumns + ` FROM clients` + where +
		` ORDER BY registered_at DESC, id DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	list, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll todos los clientes ordenados por nombre.
func (r *ClientRepo) ListAll(ctx context.Context) ([]*entity.Client, error) {
	return r.query(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY name`)
}

func (r *ClientRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError("list clients", err)
	}
	defer rows.Close()

	var out []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, mapError("scan client", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list clients", err)
	}
	return out, nil
}
