// Package svc wires a request's dependencies together, the way the
// teacher's serviceContext.go packages do for every service: one struct
// built once at startup, handed to every logic constructor, holding the
// process's database handles, RPC clients, and stateless helpers.
package svc

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/shopfabric/backend/pkg/security/refreshstore"
	"github.com/shopfabric/backend/pkg/security/tokens"
	"github.com/shopfabric/backend/services/idp/internal/config"
	"github.com/shopfabric/backend/services/idp/internal/repository"
	"github.com/shopfabric/backend/third_party/cache"
	"github.com/shopfabric/backend/third_party/database"
)

// ServiceContext bundles every dependency the IdP's logic layer needs.
type ServiceContext struct {
	Config config.Config

	Accounts      *repository.AccountRepository
	SecondFactors *repository.SecondFactorRepository
	RecoveryCodes *repository.RecoveryCodeRepository

	Signer       *tokens.Signer
	RefreshStore *refreshstore.Store

	keyPair *tokens.KeyPair
}

// SigningPublicKeyPEM returns the PEM encoding of the currently active
// signing key's public half, plus its key-id, for the public-key HTTP
// endpoint and the internal PublicKey RPC.
func (c *ServiceContext) SigningPublicKeyPEM() ([]byte, string, error) {
	pem, err := tokens.EncodePublicKeyPEM(c.keyPair.PublicKey)
	if err != nil {
		return nil, "", err
	}
	return pem, c.keyPair.KeyID, nil
}

// VerifyLocal validates tokenString against the IdP's own current key
// pair — the IdP never needs pkg/tokenverify's filesystem/HTTP
// acquisition dance since it is the key's own source.
func (c *ServiceContext) VerifyLocal(tokenString string) (*tokens.Claims, error) {
	return tokens.Verify(tokenString, func(kid string) (*rsa.PublicKey, error) {
		if kid != c.keyPair.KeyID {
			return nil, tokens.ErrUnknownKeyID
		}
		return c.keyPair.PublicKey, nil
	})
}

// NewServiceContext opens the database and Redis connections, loads or
// generates the signing key pair, and assembles the ServiceContext.
// Connection setup is shared with Catalog and the Orchestrator via
// third_party/database and third_party/cache; NewServiceContext returns
// the error instead of calling log.Fatal so main retains control of
// startup failure handling.
func NewServiceContext(c config.Config) (*ServiceContext, error) {
	db, err := database.Connect(c.Database.DataSource)
	if err != nil {
		return nil, fmt.Errorf("idp: connect postgres: %w", err)
	}

	redisClient, err := cache.Connect(c.RedisAddr)
	if err != nil {
		return nil, fmt.Errorf("idp: connect redis: %w", err)
	}

	store, err := refreshstore.New(redisClient)
	if err != nil {
		return nil, fmt.Errorf("idp: build refresh store: %w", err)
	}

	kp, err := tokens.LoadOrGenerateKeyPair(c.KeyDir)
	if err != nil {
		return nil, fmt.Errorf("idp: load signing key: %w", err)
	}

	signer := tokens.NewSigner(
		kp,
		time.Duration(c.Tokens.AccessTokenTTLSeconds)*time.Second,
		time.Duration(c.Tokens.RefreshTokenTTLSeconds)*time.Second,
		c.Tokens.Issuer,
	)

	return &ServiceContext{
		Config:        c,
		Accounts:      repository.NewAccountRepository(db),
		SecondFactors: repository.NewSecondFactorRepository(db),
		RecoveryCodes: repository.NewRecoveryCodeRepository(db),
		Signer:        signer,
		RefreshStore:  store,
		keyPair:       kp,
	}, nil
}
