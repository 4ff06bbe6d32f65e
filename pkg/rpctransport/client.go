package rpctransport

import (
	"github.com/zeromicro/go-zero/zrpc"
)

// IdpClient wraps a zrpc.Client to the IdP's internal RPC service, per
// the teacher's authClient.defaultAuth wrapper (a narrow struct around
// zrpc.Client whose methods re-resolve a generated client against
// cli.Conn() on every call, which stays correct across zrpc's
// automatic reconnects and target re-resolution).
type IdpClient struct {
	Cli zrpc.Client
}

// NewIdpClient builds an IdpClient bound to an already-configured
// zrpc.Client (constructed from RpcClientConf via zrpc.MustNewClient
// at service startup).
func NewIdpClient(cli zrpc.Client) *IdpClient {
	return &IdpClient{Cli: cli}
}

// CatalogClient wraps a zrpc.Client to Catalog's internal RPC service.
type CatalogClient struct {
	Cli zrpc.Client
}

// NewCatalogClient builds a CatalogClient bound to an already-configured
// zrpc.Client.
func NewCatalogClient(cli zrpc.Client) *CatalogClient {
	return &CatalogClient{Cli: cli}
}
