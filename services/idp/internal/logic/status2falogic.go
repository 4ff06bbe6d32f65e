package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/authctx"
	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/services/idp/internal/repository"
	"github.com/shopfabric/backend/services/idp/internal/svc"
	"github.com/shopfabric/backend/services/idp/internal/types"
)

type Status2FALogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewStatus2FALogic(ctx context.Context, svcCtx *svc.ServiceContext) *Status2FALogic {
	return &Status2FALogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

func (l *Status2FALogic) Status2FA() (*types.Status2FAResponse, error) {
	caller, ok := authctx.FromContext(l.ctx)
	if !ok {
		return nil, errorsx.New(errorsx.KindAuthMissing, "authentication required")
	}
	accountID, err := caller.AccountIDInt64()
	if err != nil {
		return nil, errorsx.New(errorsx.KindAuthInvalid, "invalid token subject")
	}

	sf, err := l.svcCtx.SecondFactors.GetByAccountID(l.ctx, accountID)
	if err == repository.ErrNotFound {
		return &types.Status2FAResponse{Enabled: false}, nil
	} else if err != nil {
		return nil, errorsx.Internal(err)
	}
	return &types.Status2FAResponse{Enabled: sf.Confirmed}, nil
}
