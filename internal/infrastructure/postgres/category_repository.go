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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría. Nombre duplicado → ErrConflict.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	err := r.q.QueryRow(ctx, `INSERT INTO categories (name) VALUES ($1) RETURNING id`, c.Name).Scan(&c.ID)
	if err != nil {
		return mapError("insert category", err)
	}
	return nil
}

// GetByID obtiene una categoría.
func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx, `SELECT id, name FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get category", err)
	}
	return &c, nil
}

// Delete elimina una categoría.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return mapError("delete category", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("categoría", id)
	}
	return nil
}

// List lista categorías por nombre.
func (r *CategoryRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Category, int, error) {
	where := ""
	args := []any{}
	if f.Search != "" {
		where = ` WHERE name ILIKE $1`
		args = append(args, likePattern(f.Search))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM categories`+where, args...).Scan(&total); err != nil {
		return nil, 0, mapError("count categories", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := `SELECT id, name FROM categories` + where +
		` ORDER BY name LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	list, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll todas las categorías.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]*entity.Category, error) {
	return r.query(ctx, `SELECT id, name FROM categories ORDER BY name`)
}

// CountProducts cuántos productos tienen asignada la categoría.
func (r *CategoryRepo) CountProducts(ctx context.Context, id int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, id).Scan(&n); err != nil {
		return 0, mapError("count category products", err)
	}
	return n, nil
}

func (r *CategoryRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError("list categories", err)
	}
	defer rows.Close()

	var out []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, mapError("scan category", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list categories", err)
	}
	return out, nil
}
