package logic

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/authctx"
	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/services/idp/internal/svc"
	"github.com/shopfabric/backend/services/idp/internal/types"
)

type Disable2FALogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewDisable2FALogic(ctx context.Context, svcCtx *svc.ServiceContext) *Disable2FALogic {
	return &Disable2FALogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

func (l *Disable2FALogic) Disable2FA(req *types.Disable2FARequest) error {
	caller, ok := authctx.FromContext(l.ctx)
	if !ok {
		return errorsx.New(errorsx.KindAuthMissing, "authentication required")
	}
	accountID, err := caller.AccountIDInt64()
	if err != nil {
		return errorsx.New(errorsx.KindAuthInvalid, "invalid token subject")
	}

	account, err := l.svcCtx.Accounts.GetByID(l.ctx, accountID)
	if err != nil {
		return errorsx.Internal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return errorsx.New(errorsx.KindAuthInvalid, "incorrect password")
	}

	if err := l.svcCtx.SecondFactors.Delete(l.ctx, accountID); err != nil {
		return errorsx.Internal(err)
	}
	if err := l.svcCtx.RecoveryCodes.ReplaceAll(l.ctx, accountID, nil); err != nil {
		return errorsx.Internal(err)
	}
	return nil
}
