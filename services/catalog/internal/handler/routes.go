// Package handler wires HTTP routes to their handlers. Hand-authored
// against go-zero's rest.Route/AddRoutes conventions, the same shape
// used by the IdP's routes.go.
package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"github.com/shopfabric/backend/pkg/authctx"
	"github.com/shopfabric/backend/services/catalog/internal/svc"
)

// RegisterHandlers mounts every Catalog HTTP route on server. Product
// reads are public; writes require a valid token and an admin check
// performed by the logic layer (IsAdmin is not decidable from the
// route alone, only from the account the token resolves to).
func RegisterHandlers(server *rest.Server, svcCtx *svc.ServiceContext) {
	authed := authctx.Middleware(svcCtx.Verifier.Verify)

	server.AddRoutes([]rest.Route{
		{Method: http.MethodGet, Path: "/products", Handler: ListProductsHandler(svcCtx)},
		{Method: http.MethodGet, Path: "/products/search", Handler: SearchProductsHandler(svcCtx)},
		{Method: http.MethodGet, Path: "/products/:id", Handler: GetProductHandler(svcCtx)},
	})

	server.AddRoutes([]rest.Route{
		{Method: http.MethodPost, Path: "/products", Handler: authed(CreateProductHandler(svcCtx))},
		{Method: http.MethodPut, Path: "/products/:id", Handler: authed(UpdateProductHandler(svcCtx))},
		{Method: http.MethodDelete, Path: "/products/:id", Handler: authed(DeleteProductHandler(svcCtx))},
	})
}
