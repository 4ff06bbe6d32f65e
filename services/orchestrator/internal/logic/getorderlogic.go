package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/authctx"
	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/services/orchestrator/internal/repository"
	"github.com/shopfabric/backend/services/orchestrator/internal/svc"
	"github.com/shopfabric/backend/services/orchestrator/internal/types"
)

type GetOrderLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewGetOrderLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetOrderLogic {
	return &GetOrderLogic{ctx: ctx, svcCtx: svcCtx, Logger: logx.WithContext(ctx)}
}

// GetOrder returns the order iff its owner equals the caller's account
// id (or the caller is admin), per spec.md §4.3. The owner comparison
// happens only after decrypting the stored ciphertext — the plaintext
// never leaves this component.
func (l *GetOrderLogic) GetOrder(req *types.GetOrderRequest) (*types.GetOrderResponse, error) {
	caller, ok := authctx.FromContext(l.ctx)
	if !ok {
		return nil, errorsx.New(errorsx.KindAuthMissing, "authentication required")
	}

	order, lines, err := l.svcCtx.Orders.GetByID(l.ctx, req.ID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, errorsx.New(errorsx.KindNotFound, "order not found")
		}
		return nil, errorsx.Internal(err)
	}

	if !caller.IsAdmin {
		owner, err := l.svcCtx.Cipher.Open(order.OwnerEncrypted)
		if err != nil {
			return nil, errorsx.Internal(err)
		}
		if owner != caller.AccountID {
			return nil, errorsx.New(errorsx.KindNotFound, "order not found")
		}
	}

	return &types.GetOrderResponse{Order: toOrderViewFromRows(order, lines)}, nil
}
