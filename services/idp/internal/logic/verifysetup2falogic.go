package logic

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/authctx"
	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/pkg/security/totp"
	"github.com/shopfabric/backend/services/idp/internal/svc"
	"github.com/shopfabric/backend/services/idp/internal/types"
)

type VerifySetup2FALogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewVerifySetup2FALogic(ctx context.Context, svcCtx *svc.ServiceContext) *VerifySetup2FALogic {
	return &VerifySetup2FALogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

func (l *VerifySetup2FALogic) VerifySetup2FA(req *types.VerifySetup2FARequest) error {
	caller, ok := authctx.FromContext(l.ctx)
	if !ok {
		return errorsx.New(errorsx.KindAuthMissing, "authentication required")
	}
	accountID, err := caller.AccountIDInt64()
	if err != nil {
		return errorsx.New(errorsx.KindAuthInvalid, "invalid token subject")
	}

	sf, err := l.svcCtx.SecondFactors.GetByAccountID(l.ctx, accountID)
	if err != nil {
		return errorsx.New(errorsx.KindConflictState, "no pending second factor setup")
	}

	counter, valid, err := totp.Verify(sf.Secret, req.Code, time.Now())
	if err != nil {
		return errorsx.Internal(err)
	}
	if !valid {
		return errorsx.New(errorsx.KindTwoFactorInvalid, "invalid code")
	}

	if err := l.svcCtx.SecondFactors.Confirm(l.ctx, accountID); err != nil {
		return errorsx.Internal(err)
	}
	if _, err := l.svcCtx.SecondFactors.AdvanceVerifiedCounter(l.ctx, accountID, counter); err != nil {
		return errorsx.Internal(err)
	}
	return nil
}
