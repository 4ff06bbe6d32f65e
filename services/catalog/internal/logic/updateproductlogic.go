package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/authctx"
	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/pkg/money"
	"github.com/shopfabric/backend/services/catalog/internal/repository"
	"github.com/shopfabric/backend/services/catalog/internal/svc"
	"github.com/shopfabric/backend/services/catalog/internal/types"
)

type UpdateProductLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewUpdateProductLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UpdateProductLogic {
	return &UpdateProductLogic{ctx: ctx, svcCtx: svcCtx, Logger: logx.WithContext(ctx)}
}

func (l *UpdateProductLogic) UpdateProduct(req *types.UpdateProductRequest) (*types.UpdateProductResponse, error) {
	caller, ok := authctx.FromContext(l.ctx)
	if !ok || !caller.IsAdmin {
		return nil, errorsx.New(errorsx.KindAuthInvalid, "admin privileges required")
	}

	p, err := l.svcCtx.Products.GetByID(l.ctx, req.ID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errorsx.New(errorsx.KindNotFound, "product not found")
		}
		return nil, errorsx.Internal(err)
	}

	price, err := money.Parse(req.Price)
	if err != nil {
		return nil, errorsx.New(errorsx.KindInputInvalid, "price: "+err.Error())
	}
	if req.Inventory < 0 {
		return nil, errorsx.New(errorsx.KindInputInvalid, "inventory must not be negative")
	}

	p.Name = req.Name
	p.Description = req.Description
	p.PriceCents = price.Cents()
	p.Inventory = req.Inventory

	if err := l.svcCtx.Products.Update(l.ctx, p); err != nil {
		return nil, errorsx.Internal(err)
	}

	if err := l.svcCtx.Search.Upsert(l.ctx, p); err != nil {
		l.Logger.Errorf("search index upsert failed for product %d: %v", p.ID, err)
	}

	return &types.UpdateProductResponse{Product: toProductView(p)}, nil
}
