package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bizbot/internal/entities"
)

// ProductRepository is the per-business product catalog backing the
// ecommerce handler's search sub-service.
type ProductRepository struct {
	db *pgxpool.Pool
}

func NewProductRepository(db *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = "id, business_id, name, description, price, currency, color, size"

// SearchByColor returns the business's products whose color matches.
func (r *ProductRepository) SearchByColor(ctx context.Context, businessID, color string) ([]entities.Product, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM products
		WHERE business_id = $1 AND color ILIKE $2
		ORDER BY name
	`, productColumns), businessID, color+"%")
	if err != nil {
		return nil, fmt.Errorf("search products by color: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// SearchByKeywords matches any keyword against name and description.
func (r *ProductRepository) SearchByKeywords(ctx context.Context, businessID string, keywords []string) ([]entities.Product, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	conds := make([]string, 0, len(keywords))
	args := []interface{}{businessID}
	for i, kw := range keywords {
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", i+2, i+2))
		args = append(args, "%"+kw+"%")
	}

	query := fmt.Sprintf(`
		SELECT %s FROM products
		WHERE business_id = $1 AND (%s)
		ORDER BY name
	`, productColumns, strings.Join(conds, " OR "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search products by keywords: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// ListByBusiness returns the full catalog of one business (ops API).
func (r *ProductRepository) ListByBusiness(ctx context.Context, businessID string) ([]entities.Product, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM products WHERE business_id = $1 ORDER BY name
	`, productColumns), businessID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]entities.Product, error) {
	var products []entities.Product
	for rows.Next() {
		var p entities.Product
		if err := rows.Scan(&p.ID, &p.BusinessID, &p.Name, &p.Description,
			&p.Price, &p.Currency, &p.Color, &p.Size); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
