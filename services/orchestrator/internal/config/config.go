package config

import (
	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/zrpc"
)

// Config is the Order Orchestrator's process-wide configuration: a
// rest.RestConf for its public HTTP surface, and an RpcClientConf for
// each downstream dependency it calls over internal RPC.
type Config struct {
	rest.RestConf

	Database struct {
		DataSource string
	}

	IdpRPC     zrpc.RpcClientConf
	CatalogRPC zrpc.RpcClientConf

	// KeyFilePath/IdpPublicKeyURL mirror the Catalog's token-verification
	// key acquisition, per spec.md §4.4.
	KeyFilePath     string `json:",default=./data/idp-keys/jwt_public.pem"`
	IdpPublicKeyURL string `json:",optional"`

	// FieldEncryptionKey is the base64-encoded 32-byte AES-256 key used
	// to seal the order owner field, per spec.md §4.3/§6.
	FieldEncryptionKey string `json:",env=FIELD_ENCRYPTION_KEY"`

	// InternalRPCSecret is the shared credential attached to every
	// outgoing IdP/Catalog RPC call, per spec.md §6/§4.5.
	InternalRPCSecret string `json:",env=INTERNAL_RPC_SECRET,optional"`

	Resilience struct {
		CircuitFailThreshold int `json:",default=5"`
		CircuitResetSeconds  int `json:",default=30"`
		RetryMaxAttempts     int `json:",default=3"`
		RetryBaseSeconds     int `json:",default=1"`
		RetryCapSeconds      int `json:",default=10"`
		RPCDeadlineSeconds   int `json:",default=5"`
	}
}
