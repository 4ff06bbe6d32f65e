// Package handler wires HTTP routes to their handlers. Hand-authored
// against go-zero's rest.Route/AddRoutes conventions, the same shape
// used by the IdP's and Catalog's routes.go.
package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"github.com/shopfabric/backend/pkg/authctx"
	"github.com/shopfabric/backend/services/orchestrator/internal/svc"
)

// RegisterHandlers mounts every Orchestrator HTTP route on server. Every
// route requires a valid token; admin-only routes are additionally
// gated inside their logic (IsAdmin is not decidable from the route
// alone, only from the account the token resolves to).
func RegisterHandlers(server *rest.Server, svcCtx *svc.ServiceContext) {
	authed := authctx.Middleware(svcCtx.Verifier.Verify)

	server.AddRoutes([]rest.Route{
		{Method: http.MethodPost, Path: "/orders", Handler: authed(CreateOrderHandler(svcCtx))},
		{Method: http.MethodGet, Path: "/orders", Handler: authed(ListOrdersHandler(svcCtx))},
		{Method: http.MethodGet, Path: "/orders/:id", Handler: authed(GetOrderHandler(svcCtx))},
		{Method: http.MethodGet, Path: "/admin/orders", Handler: authed(ListAllOrdersHandler(svcCtx))},
		{Method: http.MethodPost, Path: "/admin/orders/:id/status", Handler: authed(UpdateOrderStatusHandler(svcCtx))},
	})
}
