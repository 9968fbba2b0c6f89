package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"swipemarket_api/internal/catalog/models"
	"swipemarket_api/pkg/logger"
)

type ProductRepository struct {
	DB  *sql.DB
	log logger.Logger
}

func NewProductRepository(db *sql.DB, log logger.Logger) *ProductRepository {
	return &ProductRepository{DB: db, log: log}
}

const productColumns = `id, title, normalized_title, brand, description, price,
	image_url, image_signature, tags, category, is_used, is_active, created_at, last_synced`

// orderableFields whitelists the fields the feed engine may order by.
// Prices sort NULLS LAST in both directions so unpriced rows never lead.
var orderableFields = map[string]string{
	"created_at":  "created_at",
	"last_synced": "last_synced",
	"price":       "price",
	"id":          "id",
}

// Upsert inserts a product or refreshes it on re-sync: price, tags and
// last_synced move, created_at stays, and the row is reactivated.
func (r *ProductRepository) Upsert(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO catalog.products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			normalized_title = EXCLUDED.normalized_title,
			brand = EXCLUDED.brand,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			image_url = EXCLUDED.image_url,
			image_signature = EXCLUDED.image_signature,
			tags = EXCLUDED.tags,
			category = EXCLUDED.category,
			is_used = EXCLUDED.is_used,
			is_active = TRUE,
			last_synced = EXCLUDED.last_synced`

	_, err := r.DB.ExecContext(ctx, query,
		product.ID, product.Title, product.NormalizedTitle, product.Brand,
		product.Description, product.Price, product.ImageURL, product.ImageSignature,
		pq.Array(product.Tags), product.Category, product.IsUsed, product.IsActive,
		product.CreatedAt, product.LastSynced,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert product %s: %w", product.ID, err)
	}
	return nil
}

// UpsertBatch writes a batch inside one transaction. A failed row fails the
// transaction; per-item validation belongs to normalization, not here.
func (r *ProductRepository) UpsertBatch(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin upsert transaction: %w", err)
	}
	defer tx.Rollback()

	for i := range products {
		p := &products[i]
		_, err := tx.ExecContext(ctx, `
			INSERT INTO catalog.products (`+productColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				normalized_title = EXCLUDED.normalized_title,
				brand = EXCLUDED.brand,
				description = EXCLUDED.description,
				price = EXCLUDED.price,
				image_url = EXCLUDED.image_url,
				image_signature = EXCLUDED.image_signature,
				tags = EXCLUDED.tags,
				category = EXCLUDED.category,
				is_used = EXCLUDED.is_used,
				is_active = TRUE,
				last_synced = EXCLUDED.last_synced`,
			p.ID, p.Title, p.NormalizedTitle, p.Brand, p.Description, p.Price,
			p.ImageURL, p.ImageSignature, pq.Array(p.Tags), p.Category,
			p.IsUsed, p.IsActive, p.CreatedAt, p.LastSynced,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert product %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM catalog.products WHERE id = $1`

	product, err := scanProduct(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// QueryProducts is the catalog query capability consumed by the feed engine:
// equality/range filters on visible products, ordering by a whitelisted
// field, offset+limit pagination.
func (r *ProductRepository) QueryProducts(ctx context.Context, q models.CatalogQuery) ([]models.Product, error) {
	where, args := buildFilters(q.Filters)

	orderCol, ok := orderableFields[q.OrderBy]
	if !ok {
		orderCol = "created_at"
	}
	direction := "ASC"
	if q.Desc {
		direction = "DESC"
	}
	order := fmt.Sprintf("%s %s", orderCol, direction)
	if orderCol == "price" {
		order += " NULLS LAST"
	}
	// id breaks ties so pagination is stable
	if orderCol != "id" {
		order += ", id " + direction
	}

	query := fmt.Sprintf(`SELECT %s FROM catalog.products WHERE %s ORDER BY %s OFFSET $%d LIMIT $%d`,
		productColumns, where, order, len(args)+1, len(args)+2)
	args = append(args, q.Offset, q.Limit)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

func (r *ProductRepository) CountProducts(ctx context.Context, f models.Filters) (int, error) {
	where, args := buildFilters(f)
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM catalog.products WHERE `+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// DeactivateDuplicates sweeps the visibility rule over the whole catalog:
// among active rows sharing (normalized_title, brand) only one representative
// stays visible, preferring a non-null price, then the newest created_at.
func (r *ProductRepository) DeactivateDuplicates(ctx context.Context) (int64, error) {
	query := `
		UPDATE catalog.products SET is_active = FALSE
		WHERE id IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (
					PARTITION BY normalized_title, lower(brand)
					ORDER BY (price IS NOT NULL) DESC, created_at DESC, id
				) AS rn
				FROM catalog.products
				WHERE is_active
			) ranked
			WHERE rn > 1
		)`

	result, err := r.DB.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate duplicates: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		r.log.Log("Deactivated %d duplicate products", affected)
	}
	return affected, nil
}

// Deactivate soft-deletes a product; it becomes invisible to the feed but is
// never physically removed.
func (r *ProductRepository) Deactivate(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE catalog.products SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate product %s: %w", id, err)
	}
	return nil
}

func (r *ProductRepository) Close() error {
	return r.DB.Close()
}

func buildFilters(f models.Filters) (string, []interface{}) {
	clauses := []string{"is_active"}
	var args []interface{}
	next := func() int { return len(args) + 1 }

	if f.Category != "" {
		clauses = append(clauses, fmt.Sprintf("category = $%d", next()))
		args = append(args, f.Category)
	}
	if f.PriceMin != nil {
		clauses = append(clauses, fmt.Sprintf("price >= $%d", next()))
		args = append(args, *f.PriceMin)
	}
	if f.PriceMax != nil {
		clauses = append(clauses, fmt.Sprintf("price <= $%d", next()))
		args = append(args, *f.PriceMax)
	}
	if !f.IncludeUsed {
		clauses = append(clauses, "NOT is_used")
	}
	return strings.Join(clauses, " AND "), args
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.Title, &p.NormalizedTitle, &p.Brand, &p.Description, &p.Price,
		&p.ImageURL, &p.ImageSignature, pq.Array(&p.Tags), &p.Category,
		&p.IsUsed, &p.IsActive, &p.CreatedAt, &p.LastSynced,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
