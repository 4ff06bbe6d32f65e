package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/authctx"
	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/services/orchestrator/internal/models"
	"github.com/shopfabric/backend/services/orchestrator/internal/repository"
	"github.com/shopfabric/backend/services/orchestrator/internal/svc"
	"github.com/shopfabric/backend/services/orchestrator/internal/types"
)

type UpdateOrderStatusLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewUpdateOrderStatusLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UpdateOrderStatusLogic {
	return &UpdateOrderStatusLogic{ctx: ctx, svcCtx: svcCtx, Logger: logx.WithContext(ctx)}
}

// UpdateOrderStatus drives the post-creation state machine from
// spec.md §4.3 (admin-only). It never touches inventory: the
// inventory-decrement Open Question is resolved as check-only at order
// creation (see SPEC_FULL.md §4), so confirming an order is a pure
// status transition.
func (l *UpdateOrderStatusLogic) UpdateOrderStatus(req *types.UpdateOrderStatusRequest) (*types.UpdateOrderStatusResponse, error) {
	caller, ok := authctx.FromContext(l.ctx)
	if !ok {
		return nil, errorsx.New(errorsx.KindAuthMissing, "authentication required")
	}
	if !caller.IsAdmin {
		return nil, errorsx.New(errorsx.KindAuthInvalid, "admin privileges required")
	}

	next := models.Status(req.Status)

	order, lines, err := l.svcCtx.Orders.GetByID(l.ctx, req.ID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errorsx.New(errorsx.KindNotFound, "order not found")
		}
		return nil, errorsx.Internal(err)
	}

	if !order.Status.CanTransition(next) {
		return nil, errorsx.New(errorsx.KindConflictState, "status transition not permitted").
			WithDetail("from", string(order.Status)).
			WithDetail("to", req.Status)
	}

	if err := l.svcCtx.Orders.UpdateStatus(l.ctx, order.ID, next); err != nil {
		return nil, errorsx.Internal(err)
	}
	order.Status = next

	return &types.UpdateOrderStatusResponse{Order: toOrderViewFromRows(order, lines)}, nil
}
