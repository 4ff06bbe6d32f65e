package logic

import (
	"context"
	"strconv"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/catalogpb"
	"github.com/shopfabric/backend/pkg/money"
	"github.com/shopfabric/backend/services/catalog/internal/repository"
	"github.com/shopfabric/backend/services/catalog/internal/svc"
)

type GetProductInfoLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewGetProductInfoLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetProductInfoLogic {
	return &GetProductInfoLogic{ctx: ctx, svcCtx: svcCtx, Logger: logx.WithContext(ctx)}
}

// GetProductInfo resolves name/price for each requested id, reporting
// Found=false for ids that don't exist or are inactive, in request
// order, without failing the call for individual misses.
func (l *GetProductInfoLogic) GetProductInfo(req *catalogpb.GetProductInfoRequest) (*catalogpb.GetProductInfoResponse, error) {
	out := make([]catalogpb.ProductInfo, 0, len(req.ProductIDs))

	for _, idStr := range req.ProductIDs {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			out = append(out, catalogpb.ProductInfo{ProductID: idStr, Found: false})
			continue
		}

		p, err := l.svcCtx.Products.GetByID(l.ctx, id)
		if err != nil {
			if err == repository.ErrNotFound {
				out = append(out, catalogpb.ProductInfo{ProductID: idStr, Found: false})
				continue
			}
			return nil, err
		}
		if !p.Active {
			out = append(out, catalogpb.ProductInfo{ProductID: idStr, Found: false})
			continue
		}

		out = append(out, catalogpb.ProductInfo{
			ProductID: idStr,
			Name:      p.Name,
			UnitPrice: money.FromCents(p.PriceCents).String(),
			Found:     true,
		})
	}

	return &catalogpb.GetProductInfoResponse{Products: out}, nil
}
