package svc

import (
	"context"
	"fmt"
	"time"

	"github.com/zeromicro/go-zero/zrpc"

	"github.com/shopfabric/backend/pkg/encryption"
	"github.com/shopfabric/backend/pkg/resilience"
	"github.com/shopfabric/backend/pkg/rpctransport"
	"github.com/shopfabric/backend/pkg/tokenverify"
	"github.com/shopfabric/backend/services/orchestrator/internal/config"
	"github.com/shopfabric/backend/services/orchestrator/internal/repository"
	"github.com/shopfabric/backend/third_party/database"
)

// ServiceContext wires the Orchestrator's dependencies: its own order
// store, resilient RPC clients to the IdP and Catalog (each guarded by
// its own retry policy and circuit breaker, per spec.md §4.5), a
// tokenverify.Cache for verifying caller tokens locally, and the
// field-encryption cipher for the order owner column.
type ServiceContext struct {
	Config config.Config

	Orders *repository.OrderRepository

	IdpClient     *rpctransport.IdpClient
	CatalogClient *rpctransport.CatalogClient

	IdpBreaker     *resilience.Breaker
	CatalogBreaker *resilience.Breaker
	RetryConfig    resilience.RetryConfig
	RPCDeadline    time.Duration

	Verifier *tokenverify.Cache
	Cipher   *encryption.Cipher
}

func NewServiceContext(c config.Config) (*ServiceContext, error) {
	db, err := database.Connect(c.Database.DataSource)
	if err != nil {
		return nil, fmt.Errorf("orchestrator svc: connect postgres: %w", err)
	}

	authInterceptor := zrpc.WithUnaryClientInterceptor(rpctransport.UnaryClientInterceptor(c.InternalRPCSecret))
	idpClient := rpctransport.NewIdpClient(zrpc.MustNewClient(c.IdpRPC, authInterceptor))
	catalogClient := rpctransport.NewCatalogClient(zrpc.MustNewClient(c.CatalogRPC, authInterceptor))

	verifier := tokenverify.NewCache(tokenverify.Config{
		KeyFilePath: c.KeyFilePath,
		FallbackURL: c.IdpPublicKeyURL,
	})
	if err := verifier.Acquire(context.Background()); err != nil {
		return nil, fmt.Errorf("orchestrator svc: acquire verifying key: %w", err)
	}
	go verifier.StartRefreshLoop(context.Background())

	cipher, err := encryption.NewFromBase64(c.FieldEncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("orchestrator svc: field encryption key: %w", err)
	}

	breakerCfg := resilience.BreakerConfig{
		FailureThreshold: c.Resilience.CircuitFailThreshold,
		ResetTimeout:     time.Duration(c.Resilience.CircuitResetSeconds) * time.Second,
	}
	retryCfg := resilience.RetryConfig{
		MaxAttempts: c.Resilience.RetryMaxAttempts,
		BaseDelay:   time.Duration(c.Resilience.RetryBaseSeconds) * time.Second,
		MaxDelay:    time.Duration(c.Resilience.RetryCapSeconds) * time.Second,
	}

	return &ServiceContext{
		Config:         c,
		Orders:         repository.NewOrderRepository(db),
		IdpClient:      idpClient,
		CatalogClient:  catalogClient,
		IdpBreaker:     resilience.NewBreaker("idp-rpc", breakerCfg),
		CatalogBreaker: resilience.NewBreaker("catalog-rpc", breakerCfg),
		RetryConfig:    retryCfg,
		RPCDeadline:    time.Duration(c.Resilience.RPCDeadlineSeconds) * time.Second,
		Verifier:       verifier,
		Cipher:         cipher,
	}, nil
}
