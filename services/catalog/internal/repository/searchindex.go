package repository

import (
	"context"
	"fmt"

	"github.com/meilisearch/meilisearch-go"

	"github.com/shopfabric/backend/pkg/money"
	"github.com/shopfabric/backend/services/catalog/internal/models"
)

// ProductsIndex is the Meilisearch index name products are searchable
// under, one of several index constants the teacher's
// third_party/search/meilisearch.go names for its own domain — reused
// here for the Catalog's own "name/description" search surface
// (spec.md §4.2).
const ProductsIndex = "products"

// searchDocument is the denormalized shape indexed in Meilisearch,
// distinct from the sqlx row: price is rendered as a decimal string so
// it round-trips through JSON the way the HTTP surface expects it.
type searchDocument struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Inventory   int    `json:"inventory"`
}

// SearchIndex wraps a Meilisearch client scoped to the products index.
type SearchIndex struct {
	client meilisearch.ServiceManager
}

// NewSearchIndex builds a SearchIndex over client, creating the products
// index if it does not already exist.
func NewSearchIndex(client meilisearch.ServiceManager) (*SearchIndex, error) {
	if _, err := client.CreateIndex(&meilisearch.IndexConfig{Uid: ProductsIndex, PrimaryKey: "id"}); err != nil {
		// Index-already-exists is not fatal; Meilisearch returns an error
		// on repeat creation, which happens on every non-first boot.
		if _, getErr := client.GetIndex(ProductsIndex); getErr != nil {
			return nil, fmt.Errorf("searchindex: create index: %w", err)
		}
	}
	return &SearchIndex{client: client}, nil
}

// Upsert indexes (or re-indexes) a product for search.
func (s *SearchIndex) Upsert(ctx context.Context, p *models.Product) error {
	doc := searchDocument{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       money.FromCents(p.PriceCents).String(),
		Inventory:   p.Inventory,
	}
	_, err := s.client.Index(ProductsIndex).AddDocuments([]searchDocument{doc}, nil)
	if err != nil {
		return fmt.Errorf("searchindex: upsert product %d: %w", p.ID, err)
	}
	return nil
}

// Remove deletes a product's document from the index.
func (s *SearchIndex) Remove(ctx context.Context, id int64) error {
	_, err := s.client.Index(ProductsIndex).DeleteDocument(fmt.Sprintf("%d", id))
	if err != nil {
		return fmt.Errorf("searchindex: remove product %d: %w", id, err)
	}
	return nil
}

// Search returns up to limit product ids matching query, ranked by
// Meilisearch's relevance scoring.
func (s *SearchIndex) Search(ctx context.Context, query string, limit int) ([]int64, error) {
	res, err := s.client.Index(ProductsIndex).Search(query, &meilisearch.SearchRequest{Limit: int64(limit)})
	if err != nil {
		return nil, fmt.Errorf("searchindex: search %q: %w", query, err)
	}

	ids := make([]int64, 0, len(res.Hits))
	for _, hit := range res.Hits {
		m, ok := hit.(map[string]any)
		if !ok {
			continue
		}
		if idFloat, ok := m["id"].(float64); ok {
			ids = append(ids, int64(idFloat))
		}
	}
	return ids, nil
}
