package config

import (
	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/zrpc"
)

// Config is the Catalog's process-wide configuration, embedding both a
// rest.RestConf (public product API) and a zrpc.RpcServerConf (internal
// GetProductInfo/CheckAvailability surface), the same combined-process
// shape as the IdP's config.
type Config struct {
	rest.RestConf
	RpcServerConf zrpc.RpcServerConf

	Database struct {
		DataSource string
	}

	RedisAddr string `json:",default=localhost:6379"`

	// KeyFilePath is the IdP-published public key this service reads at
	// boot to verify caller tokens locally, per spec.md §4.4.
	KeyFilePath string `json:",default=./data/idp-keys/jwt_public.pem"`
	// IdpPublicKeyURL is the HTTP fallback when KeyFilePath is absent.
	IdpPublicKeyURL string `json:",optional"`

	MeiliSearch struct {
		Host   string `json:",default=http://localhost:7700"`
		APIKey string `json:",optional"`
	}

	// InternalRPCSecret is the shared credential every internal RPC call
	// must carry on its metadata, per spec.md §6/§4.5.
	InternalRPCSecret string `json:",env=INTERNAL_RPC_SECRET,optional"`
}
