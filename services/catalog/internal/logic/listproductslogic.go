package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/services/catalog/internal/svc"
	"github.com/shopfabric/backend/services/catalog/internal/types"
)

type ListProductsLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewListProductsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListProductsLogic {
	return &ListProductsLogic{ctx: ctx, svcCtx: svcCtx, Logger: logx.WithContext(ctx)}
}

func (l *ListProductsLogic) ListProducts(req *types.ListProductsRequest) (*types.ListProductsResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}

	products, total, err := l.svcCtx.Products.List(l.ctx, page)
	if err != nil {
		return nil, err
	}

	views := make([]types.ProductView, 0, len(products))
	for i := range products {
		views = append(views, toProductView(&products[i]))
	}

	return &types.ListProductsResponse{Products: views, Total: total, Page: page}, nil
}
