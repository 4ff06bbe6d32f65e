package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/services/catalog/internal/svc"
	"github.com/shopfabric/backend/services/catalog/internal/types"
)

const defaultSearchLimit = 20

type SearchProductsLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewSearchProductsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SearchProductsLogic {
	return &SearchProductsLogic{ctx: ctx, svcCtx: svcCtx, Logger: logx.WithContext(ctx)}
}

func (l *SearchProductsLogic) SearchProducts(req *types.SearchProductsRequest) (*types.SearchProductsResponse, error) {
	if req.Query == "" {
		return nil, errorsx.New(errorsx.KindInputInvalid, "q is required")
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	ids, err := l.svcCtx.Search.Search(l.ctx, req.Query, limit)
	if err != nil {
		return nil, errorsx.Internal(err)
	}

	views := make([]types.ProductView, 0, len(ids))
	for _, id := range ids {
		p, err := l.svcCtx.Products.GetByID(l.ctx, id)
		if err != nil {
			continue
		}
		if !p.Active {
			continue
		}
		views = append(views, toProductView(p))
	}

	return &types.SearchProductsResponse{Products: views}, nil
}
