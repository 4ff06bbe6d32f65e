// Package handler wires HTTP routes to their handlers. No routes.go
// survived retrieval alongside the teacher's scaffolded services (goctl
// generates this file and it is routinely excluded from example
// snapshots the way generated protobuf code is), so this file is
// hand-authored directly against go-zero's rest.Route/AddRoutes
// conventions, the same ones every *Handler function above already
// follows.
package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"github.com/shopfabric/backend/pkg/authctx"
	"github.com/shopfabric/backend/services/idp/internal/svc"
)

// RegisterHandlers mounts every IdP HTTP route on server.
func RegisterHandlers(server *rest.Server, svcCtx *svc.ServiceContext) {
	authed := authctx.Middleware(svcCtx.VerifyLocal)

	server.AddRoutes([]rest.Route{
		{Method: http.MethodPost, Path: "/auth/register", Handler: RegisterHandler(svcCtx)},
		{Method: http.MethodPost, Path: "/auth/token", Handler: ObtainTokenHandler(svcCtx)},
		{Method: http.MethodPost, Path: "/auth/token/verify-2fa", Handler: VerifySecondFactorHandler(svcCtx)},
		{Method: http.MethodPost, Path: "/auth/token/refresh", Handler: RefreshHandler(svcCtx)},
		{Method: http.MethodGet, Path: "/auth/public-key", Handler: PublicKeyHandler(svcCtx)},
	})

	server.AddRoutes([]rest.Route{
		{Method: http.MethodPost, Path: "/auth/2fa/setup", Handler: authed(Setup2FAHandler(svcCtx))},
		{Method: http.MethodPost, Path: "/auth/2fa/setup/verify", Handler: authed(VerifySetup2FAHandler(svcCtx))},
		{Method: http.MethodGet, Path: "/auth/2fa/status", Handler: authed(Status2FAHandler(svcCtx))},
		{Method: http.MethodPost, Path: "/auth/2fa/disable", Handler: authed(Disable2FAHandler(svcCtx))},
		{Method: http.MethodPost, Path: "/auth/2fa/recovery-codes/regenerate", Handler: authed(RegenerateRecoveryCodesHandler(svcCtx))},
		{Method: http.MethodPost, Path: "/auth/2fa/recovery-codes/download", Handler: authed(DownloadRecoveryCodesHandler(svcCtx))},
	})
}
