package server

import (
	"context"

	"github.com/shopfabric/backend/pkg/catalogpb"
	"github.com/shopfabric/backend/services/catalog/internal/logic"
	"github.com/shopfabric/backend/services/catalog/internal/svc"
)

// CatalogServer implements catalogpb.CatalogServiceServer, delegating
// each method straight to its logic constructor.
type CatalogServer struct {
	svcCtx *svc.ServiceContext
}

func NewCatalogServer(svcCtx *svc.ServiceContext) *CatalogServer {
	return &CatalogServer{svcCtx: svcCtx}
}

func (s *CatalogServer) GetProductInfo(ctx context.Context, in *catalogpb.GetProductInfoRequest) (*catalogpb.GetProductInfoResponse, error) {
	return logic.NewGetProductInfoLogic(ctx, s.svcCtx).GetProductInfo(in)
}

func (s *CatalogServer) CheckAvailability(ctx context.Context, in *catalogpb.CheckAvailabilityRequest) (*catalogpb.CheckAvailabilityResponse, error) {
	return logic.NewCheckAvailabilityLogic(ctx, s.svcCtx).CheckAvailability(in)
}
