package svc

import (
	"context"
	"fmt"

	"github.com/shopfabric/backend/pkg/tokenverify"
	"github.com/shopfabric/backend/services/catalog/internal/config"
	"github.com/shopfabric/backend/services/catalog/internal/repository"
	"github.com/shopfabric/backend/third_party/cache"
	"github.com/shopfabric/backend/third_party/database"
	"github.com/shopfabric/backend/third_party/search"
)

// ServiceContext wires the Catalog's dependencies: a Postgres product
// store (with a Redis read-through cache), a Meilisearch search index,
// and a tokenverify.Cache for verifying caller-presented IdP access
// tokens locally.
type ServiceContext struct {
	Config config.Config

	Products *repository.ProductRepository
	Search   *repository.SearchIndex

	Verifier *tokenverify.Cache
}

// NewServiceContext builds a ServiceContext. It acquires an IdP
// verifying key synchronously, per spec.md §4.4, so the service never
// serves traffic without one.
func NewServiceContext(c config.Config) (*ServiceContext, error) {
	db, err := database.Connect(c.Database.DataSource)
	if err != nil {
		return nil, fmt.Errorf("catalog svc: connect postgres: %w", err)
	}

	redisClient, err := cache.Connect(c.RedisAddr)
	if err != nil {
		return nil, fmt.Errorf("catalog svc: connect redis: %w", err)
	}

	meiliClient, err := search.Connect(c.MeiliSearch.Host, c.MeiliSearch.APIKey)
	if err != nil {
		return nil, fmt.Errorf("catalog svc: connect meilisearch: %w", err)
	}
	searchIndex, err := repository.NewSearchIndex(meiliClient)
	if err != nil {
		return nil, fmt.Errorf("catalog svc: search index: %w", err)
	}

	verifier := tokenverify.NewCache(tokenverify.Config{
		KeyFilePath: c.KeyFilePath,
		FallbackURL: c.IdpPublicKeyURL,
	})
	if err := verifier.Acquire(context.Background()); err != nil {
		return nil, fmt.Errorf("catalog svc: acquire verifying key: %w", err)
	}
	go verifier.StartRefreshLoop(context.Background())

	return &ServiceContext{
		Config:   c,
		Products: repository.NewProductRepository(db, redisClient),
		Search:   searchIndex,
		Verifier: verifier,
	}, nil
}
