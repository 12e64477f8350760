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

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleSelect = `
	SELECT s.id, s.client_id, s.seller_id, s.date, s.total,
	       COALESCE(c.name, ''), COALESCE(u.username, '')
	FROM sales s
	LEFT JOIN clients c ON c.id = s.client_id
	LEFT JOIN users u ON u.id = s.seller_id`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	if err := row.Scan(&s.ID, &s.ClientID, &s.SellerID, &s.Date, &s.Total, &s.ClientName, &s.SellerName); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta la cabecera y asigna el ID generado.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO sales (client_id, seller_id, date, total) VALUES ($1, $2, $3, $4) RETURNING id`,
		sale.ClientID, sale.SellerID, sale.Date, sale.Total,
	).Scan(&sale.ID)
	if err != nil {
		return mapError("insert sale", err)
	}
	return nil
}

// GetByID obtiene la cabecera con nombres de cliente y vendedor.
func (r *SaleRepo) GetByID(ctx context.Context, id int64) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, saleSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get sale", err)
	}
	return s, nil
}

// GetForUpdate bloquea la cabecera de la venta.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Sale, error) {
	var s entity.Sale
	err := r.q.QueryRow(ctx,
		`SELECT id, client_id, seller_id, date, total FROM sales WHERE id = $1 FOR UPDATE`, id,
	).Scan(&s.ID, &s.ClientID, &s.SellerID, &s.Date, &s.Total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get sale for update", err)
	}
	return &s, nil
}

// UpdateHeader actualiza cliente, vendedor, fecha y total.
func (r *SaleRepo) UpdateHeader(ctx context.Context, sale *entity.Sale) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE sales SET client_id = $2, seller_id = $3, date = $4, total = $5 WHERE id = $1`,
		sale.ID, sale.ClientID, sale.SellerID, sale.Date, sale.Total)
	if err != nil {
		return mapError("update sale", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("venta", sale.ID)
	}
	return nil
}

// Delete borra la cabecera. Los detalles deben borrarse antes.
func (r *SaleRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return false, mapError("delete sale", err)
	}
	return tag.RowsAffected() > 0, nil
}

// List lista ventas, más recientes primero. search filtra por nombre de cliente o fecha (YYYY-MM-DD).
func (r *SaleRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Sale, int, error) {
	where := ""
	args := []any{}
	if f.Search != "" {
		where = ` WHERE c.name ILIKE $1 OR to_char(s.date, 'YYYY-MM-DD') LIKE $1`
		args = append(args, likePattern(f.Search))
	}

	var total int
	countSQL := `SELECT COUNT(*) FROM sales s LEFT JOIN clients c ON c.id = s.client_id` + where
	if err := r.q.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, mapError("count sales", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := saleSelect + where + ` ORDER BY s.date DESC, s.id DESC LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, mapError("list sales", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, 0, mapError("scan sale", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError("list sales", err)
	}
	return list, total, nil
}

// AddDetail inserta una línea y asigna su ID.
func (r *SaleRepo) AddDetail(ctx context.Context, d *entity.SaleDetail) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO sale_details (sale_id, product_id, quantity, unit_price, subtotal)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		d.SaleID, d.ProductID, d.Quantity, d.UnitPrice, d.Subtotal,
	).Scan(&d.ID)
	if err != nil {
		return mapError("insert sale detail", err)
	}
	return nil
}

// ListDetails devuelve las líneas en orden de inserción, con el nombre del producto.
func (r *SaleRepo) ListDetails(ctx context.Context, saleID int64) ([]*entity.SaleDetail, error) {
	rows, err := r.q.Query(ctx, `
		SELECT d.id, d.sale_id, d.product_id, d.quantity, d.unit_price, d.subtotal, COALESCE(p.name, '')
		FROM sale_details d
		LEFT JOIN products p ON p.id = d.product_id
		WHERE d.sale_id = $1
		ORDER BY d.id`, saleID)
	if err != nil {
		return nil, mapError("list sale details", err)
	}
	defer rows.Close()

	var out []*entity.SaleDetail
	for rows.Next() {
		var d entity.SaleDetail
		if err := rows.Scan(&d.ID, &d.SaleID, &d.ProductID, &d.Quantity, &d.UnitPrice, &d.Subtotal, &d.ProductName); err != nil {
			return nil, mapError("scan sale detail", err)
		}
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list sale details", err)
	}
	return out, nil
}

// DeleteDetails borra todas las líneas de la venta.
func (r *SaleRepo) DeleteDetails(ctx context.Context, saleID int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sale_details WHERE sale_id = $1`, saleID); err != nil {
		return mapError("delete sale details", err)
	}
	return nil
}
