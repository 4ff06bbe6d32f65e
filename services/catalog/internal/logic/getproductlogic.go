package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/services/catalog/internal/repository"
	"github.com/shopfabric/backend/services/catalog/internal/svc"
	"github.com/shopfabric/backend/services/catalog/internal/types"
)

type GetProductLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewGetProductLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetProductLogic {
	return &GetProductLogic{ctx: ctx, svcCtx: svcCtx, Logger: logx.WithContext(ctx)}
}

func (l *GetProductLogic) GetProduct(req *types.GetProductRequest) (*types.GetProductResponse, error) {
	p, err := l.svcCtx.Products.GetByID(l.ctx, req.ID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errorsx.New(errorsx.KindNotFound, "product not found")
		}
		return nil, errorsx.Internal(err)
	}
	if !p.Active {
		return nil, errorsx.New(errorsx.KindNotFound, "product not found")
	}

	return &types.GetProductResponse{Product: toProductView(p)}, nil
}
