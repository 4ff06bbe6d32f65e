package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/authctx"
	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/services/orchestrator/internal/svc"
	"github.com/shopfabric/backend/services/orchestrator/internal/types"
)

type ListAllOrdersLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewListAllOrdersLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListAllOrdersLogic {
	return &ListAllOrdersLogic{ctx: ctx, svcCtx: svcCtx, Logger: logx.WithContext(ctx)}
}

// ListAllOrders is the admin-only view across every owner's orders, per
// spec.md §4.3.
func (l *ListAllOrdersLogic) ListAllOrders(req *types.ListAllOrdersRequest) (*types.ListAllOrdersResponse, error) {
	caller, ok := authctx.FromContext(l.ctx)
	if !ok {
		return nil, errorsx.New(errorsx.KindAuthMissing, "authentication required")
	}
	if !caller.IsAdmin {
		return nil, errorsx.New(errorsx.KindAuthInvalid, "admin privileges required")
	}

	page := req.Page
	if page < 1 {
		page = 1
	}

	orders, total, err := l.svcCtx.Orders.ListAll(l.ctx, page, ordersPageSize)
	if err != nil {
		return nil, errorsx.Internal(err)
	}

	views := make([]types.OrderView, 0, len(orders))
	for i := range orders {
		lines, err := l.svcCtx.Orders.LinesForOrder(l.ctx, orders[i].ID)
		if err != nil {
			return nil, errorsx.Internal(err)
		}
		views = append(views, toOrderViewFromRows(&orders[i], lines))
	}

	return &types.ListAllOrdersResponse{Orders: views, Total: total, Page: page}, nil
}
