package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/authctx"
	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/services/catalog/internal/repository"
	"github.com/shopfabric/backend/services/catalog/internal/svc"
	"github.com/shopfabric/backend/services/catalog/internal/types"
)

type DeleteProductLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewDeleteProductLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DeleteProductLogic {
	return &DeleteProductLogic{ctx: ctx, svcCtx: svcCtx, Logger: logx.WithContext(ctx)}
}

func (l *DeleteProductLogic) DeleteProduct(req *types.DeleteProductRequest) error {
	caller, ok := authctx.FromContext(l.ctx)
	if !ok || !caller.IsAdmin {
		return errorsx.New(errorsx.KindAuthInvalid, "admin privileges required")
	}

	if _, err := l.svcCtx.Products.GetByID(l.ctx, req.ID); err != nil {
		if err == repository.ErrNotFound {
			return errorsx.New(errorsx.KindNotFound, "product not found")
		}
		return errorsx.Internal(err)
	}

	if err := l.svcCtx.Products.Deactivate(l.ctx, req.ID); err != nil {
		return errorsx.Internal(err)
	}

	if err := l.svcCtx.Search.Remove(l.ctx, req.ID); err != nil {
		l.Logger.Errorf("search index remove failed for product %d: %v", req.ID, err)
	}

	return nil
}
