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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productSelect = `
	SELECT p.id, p.name, p.description, p.stock, p.price, p.category_id, COALESCE(c.name, ''), p.created_at
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Stock, &p.Price, &p.CategoryID, &p.CategoryName, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto y asigna ID y fecha de creación.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO products (name, description, stock, price, category_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		product.Name, product.Description, product.Stock, product.Price, product.CategoryID,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		return mapError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get product", err)
	}
	return p, nil
}

// Update actualiza los datos editables, incluido el stock.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE products SET name = $2, description = $3, stock = $4, price = $5, category_id = $6
		WHERE id = $1`,
		product.ID, product.Name, product.Description, product.Stock, product.Price, product.CategoryID)
	if err != nil {
		return mapError("update product", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("producto", product.ID)
	}
	return nil
}

// Delete elimina un producto. Falla con ErrReferentialIntegrity si tiene ventas.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapError("delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("producto", id)
	}
	return nil
}

// List lista productos por nombre, filtrando por nombre o descripción.
func (r *ProductRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Product, int, error) {
	where := ""
	args := []any{}
	if f.Search != "" {
		where = ` WHERE p.name ILIKE $1 OR p.description ILIKE $1`
		args = append(args, likePattern(f.Search))
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products p`+where, args...).Scan(&total); err != nil {
		return nil, 0, mapError("count products", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := productSelect + where + ` ORDER BY p.name, p.id LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	list, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListInStock productos con stock disponible (formulario de ventas).
func (r *ProductRepo) ListInStock(ctx context.Context) ([]*entity.Product, error) {
	return r.query(ctx, productSelect+` WHERE p.stock > 0 ORDER BY p.name`)
}

func (r *ProductRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError("list products", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, mapError("scan product", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list products", err)
	}
	return out, nil
}
