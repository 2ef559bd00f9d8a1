package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Kardex-api/internal/domain"
	"github.com/jhoicas/Kardex-api/internal/domain/entity"
	"github.com/jhoicas/Kardex-api/internal/domain/repository"
	"github.com/jhoicas/Kardex-api/pkg/normalize"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, user_id, sku, name, description, category_id, unit_id, min_stock, current_stock, avg_cost, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL
// (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
// Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. El snapshot inicia en cero; search_name
// guarda el nombre plegado para búsqueda insensible a acentos.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, user_id, sku, name, search_name, description, category_id, unit_id, min_stock, current_stock, avg_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.UserID, nullIfEmpty(product.SKU), product.Name, normalize.Fold(product.Name),
		product.Description, nullIfEmpty(product.CategoryID), product.UnitID, product.MinStock,
		product.CurrentStock, product.AvgCost, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto del usuario por ID.
func (r *ProductRepo) GetByID(userID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, userID, id), "get product")
}

// GetByUserAndSKU obtiene un producto por usuario y SKU.
func (r *ProductRepo) GetByUserAndSKU(userID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 AND sku = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, userID, sku), "get product by sku")
}

// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE):
// serializa movimientos concurrentes sobre el mismo producto dentro de la tx.
func (r *ProductRepo) GetForUpdate(userID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 AND id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, userID, id), "get product for update")
}

// Update actualiza un producto. No toca current_stock ni avg_cost: el
// snapshot solo lo escribe UpdateSnapshot desde el motor de inventario.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET sku = $3, name = $4, search_name = $5, description = $6, category_id = $7, unit_id = $8, min_stock = $9, updated_at = $10
		WHERE user_id = $1 AND id = $2`
	cmd, err := r.q.Exec(context.Background(), query,
		product.UserID, product.ID, nullIfEmpty(product.SKU), product.Name, normalize.Fold(product.Name),
		product.Description, nullIfEmpty(product.CategoryID), product.UnitID, product.MinStock, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateSnapshot persiste el snapshot calculado por el motor de ledger.
func (r *ProductRepo) UpdateSnapshot(userID, productID string, stock, avgCost decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET current_stock = $3, avg_cost = $4, updated_at = now() WHERE user_id = $1 AND id = $2`,
		userID, productID, stock, avgCost,
	)
	if err != nil {
		return fmt.Errorf("update product snapshot: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByUser lista productos del usuario con paginación; search (ya plegado
// por el caller) filtra por nombre o SKU.
func (r *ProductRepo) ListByUser(userID, search string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1`
	args := []any{userID}
	pos := 2
	if search != "" {
		query += fmt.Sprintf(" AND (search_name LIKE $%d OR lower(sku) LIKE $%d)", pos, pos)
		args = append(args, "%"+search+"%")
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto del usuario por ID (sus movimientos caen en
// cascada, constraint en DB).
func (r *ProductRepo) Delete(userID, id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	p, err := scanProductRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func scanProductRow(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var sku, categoryID *string
	err := row.Scan(
		&p.ID, &p.UserID, &sku, &p.Name, &p.Description, &categoryID, &p.UnitID,
		&p.MinStock, &p.CurrentStock, &p.AvgCost, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if sku != nil {
		p.SKU = *sku
	}
	if categoryID != nil {
		p.CategoryID = *categoryID
	}
	return &p, nil
}

func scanProduct(rows pgx.Rows) (*entity.Product, error) {
	p, err := scanProductRow(rows)
	if err != nil {
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return p, nil
}

// nullIfEmpty mapea "" a NULL para columnas opcionales con constraint único o FK.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
