package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/authctx"
	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/pkg/money"
	"github.com/shopfabric/backend/services/catalog/internal/models"
	"github.com/shopfabric/backend/services/catalog/internal/svc"
	"github.com/shopfabric/backend/services/catalog/internal/types"
)

type CreateProductLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewCreateProductLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CreateProductLogic {
	return &CreateProductLogic{ctx: ctx, svcCtx: svcCtx, Logger: logx.WithContext(ctx)}
}

func (l *CreateProductLogic) CreateProduct(req *types.CreateProductRequest) (*types.CreateProductResponse, error) {
	caller, ok := authctx.FromContext(l.ctx)
	if !ok || !caller.IsAdmin {
		return nil, errorsx.New(errorsx.KindAuthInvalid, "admin privileges required")
	}

	if req.Name == "" {
		return nil, errorsx.New(errorsx.KindInputInvalid, "name is required")
	}
	price, err := money.Parse(req.Price)
	if err != nil {
		return nil, errorsx.New(errorsx.KindInputInvalid, "price: "+err.Error())
	}
	if req.Inventory < 0 {
		return nil, errorsx.New(errorsx.KindInputInvalid, "inventory must not be negative")
	}

	p := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  price.Cents(),
		Inventory:   req.Inventory,
		Active:      true,
	}
	if err := l.svcCtx.Products.Create(l.ctx, p); err != nil {
		return nil, errorsx.Internal(err)
	}

	if err := l.svcCtx.Search.Upsert(l.ctx, p); err != nil {
		l.Logger.Errorf("search index upsert failed for product %d: %v", p.ID, err)
	}

	return &types.CreateProductResponse{Product: toProductView(p)}, nil
}
