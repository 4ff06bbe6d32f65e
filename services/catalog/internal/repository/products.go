// Package repository holds the Catalog's sqlx-backed product store and
// its Meilisearch-backed search index, grounded on the teacher's
// raw-SQL-constant repository pattern and third_party/search's client
// wiring.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/zeromicro/go-zero/core/trace"

	"github.com/shopfabric/backend/services/catalog/internal/models"
)

var ErrNotFound = errors.New("repository: not found")

const productCacheTTL = 30 * time.Second

const (
	insertProductQuery = `
		INSERT INTO products (name, description, price_cents, inventory, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, true, now(), now())
		RETURNING id, created_at, updated_at`

	getProductByIDQuery = `SELECT * FROM products WHERE id = $1`
	listProductsQuery   = `SELECT * FROM products WHERE active = true ORDER BY id LIMIT $1 OFFSET $2`
	countProductsQuery  = `SELECT count(*) FROM products WHERE active = true`

	updateProductQuery = `
		UPDATE products SET name = $2, description = $3, price_cents = $4, inventory = $5, updated_at = now()
		WHERE id = $1`

	deactivateProductQuery = `UPDATE products SET active = false, updated_at = now() WHERE id = $1`
)

// ProductRepository persists Product rows. Reads through GetByID are
// cached in Redis (cache-aside, short TTL) since it is the query both
// the public product page and the Orchestrator's per-order
// GetProductInfo/CheckAvailability RPCs hit hardest.
type ProductRepository struct {
	db    *sqlx.DB
	cache *redis.Client
}

// NewProductRepository builds a ProductRepository over db. cache may be
// nil, in which case GetByID always reads through to Postgres.
func NewProductRepository(db *sqlx.DB, cache *redis.Client) *ProductRepository {
	return &ProductRepository{db: db, cache: cache}
}

// Create inserts a new product.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	ctx, span := trace.TracerFromContext(ctx).Start(ctx, "ProductRepository.Create")
	defer span.End()

	return r.db.QueryRowxContext(ctx, insertProductQuery, p.Name, p.Description, p.PriceCents, p.Inventory).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

// GetByID returns the product with the given id, regardless of active
// flag — internal RPC callers need to distinguish "not found" from
// "found but inactive".
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	ctx, span := trace.TracerFromContext(ctx).Start(ctx, "ProductRepository.GetByID")
	defer span.End()

	cacheKey := productCacheKey(id)

	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var p models.Product
			if json.Unmarshal(cached, &p) == nil {
				return &p, nil
			}
		}
	}

	var p models.Product
	if err := r.db.GetContext(ctx, &p, getProductByIDQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if r.cache != nil {
		if encoded, err := json.Marshal(p); err == nil {
			r.cache.Set(ctx, cacheKey, encoded, productCacheTTL)
		}
	}
	return &p, nil
}

// List returns one page (page size 20, per spec.md §4.2) of active
// products.
func (r *ProductRepository) List(ctx context.Context, page int) ([]models.Product, int, error) {
	ctx, span := trace.TracerFromContext(ctx).Start(ctx, "ProductRepository.List")
	defer span.End()

	const pageSize = 20
	if page < 1 {
		page = 1
	}

	var products []models.Product
	if err := r.db.SelectContext(ctx, &products, listProductsQuery, pageSize, (page-1)*pageSize); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countProductsQuery); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Update overwrites a product's editable fields and invalidates its
// cache entry.
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	ctx, span := trace.TracerFromContext(ctx).Start(ctx, "ProductRepository.Update")
	defer span.End()

	if _, err := r.db.ExecContext(ctx, updateProductQuery, p.ID, p.Name, p.Description, p.PriceCents, p.Inventory); err != nil {
		return err
	}
	r.evict(ctx, p.ID)
	return nil
}

// Deactivate soft-deletes a product (admin delete) and invalidates its
// cache entry.
func (r *ProductRepository) Deactivate(ctx context.Context, id int64) error {
	ctx, span := trace.TracerFromContext(ctx).Start(ctx, "ProductRepository.Deactivate")
	defer span.End()

	if _, err := r.db.ExecContext(ctx, deactivateProductQuery, id); err != nil {
		return err
	}
	r.evict(ctx, id)
	return nil
}

func (r *ProductRepository) evict(ctx context.Context, id int64) {
	if r.cache != nil {
		r.cache.Del(ctx, productCacheKey(id))
	}
}

func productCacheKey(id int64) string {
	return "catalog:product:" + strconv.FormatInt(id, 10)
}
