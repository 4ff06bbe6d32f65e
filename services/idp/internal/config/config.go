package config

import (
	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/zrpc"
)

// Config is the Identity Provider's process-wide configuration,
// loaded once at startup by conf.MustLoad and passed explicitly into
// every component — no ambient global settings module, per the
// redesign away from the source's module-level singletons.
type Config struct {
	rest.RestConf
	RpcServerConf zrpc.RpcServerConf

	Database struct {
		DataSource string
	}

	RedisAddr string `json:",default=localhost:6379"`

	// KeyDir is where the RSA signing key pair is generated on first
	// boot and reloaded from on subsequent boots.
	KeyDir string `json:",default=./data/keys"`

	Tokens struct {
		AccessTokenTTLSeconds  int64  `json:",default=900"`
		RefreshTokenTTLSeconds int64  `json:",default=86400"`
		Issuer                 string `json:",default=shopfabric-idp"`
	}

	InternalRPCSecret string `json:",env=INTERNAL_RPC_SECRET,optional"`
}
