package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/authctx"
	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/services/orchestrator/internal/svc"
	"github.com/shopfabric/backend/services/orchestrator/internal/types"
)

const ordersPageSize = 20

type ListOrdersLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewListOrdersLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListOrdersLogic {
	return &ListOrdersLogic{ctx: ctx, svcCtx: svcCtx, Logger: logx.WithContext(ctx)}
}

// ListOrders returns the caller's own orders, paginated, per spec.md
// §4.3. Owner identity is never taken from the request; it is the
// blind index of the caller's token subject.
func (l *ListOrdersLogic) ListOrders(req *types.ListOrdersRequest) (*types.ListOrdersResponse, error) {
	caller, ok := authctx.FromContext(l.ctx)
	if !ok {
		return nil, errorsx.New(errorsx.KindAuthMissing, "authentication required")
	}

	page := req.Page
	if page < 1 {
		page = 1
	}

	ownerIndex := l.svcCtx.Cipher.BlindIndex(caller.AccountID)
	orders, total, err := l.svcCtx.Orders.ListByOwner(l.ctx, ownerIndex, page, ordersPageSize)
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

	return &types.ListOrdersResponse{Orders: views, Total: total, Page: page}, nil
}
