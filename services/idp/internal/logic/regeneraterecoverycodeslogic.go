package logic

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/authctx"
	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/pkg/security/recoverycodes"
	"github.com/shopfabric/backend/services/idp/internal/svc"
	"github.com/shopfabric/backend/services/idp/internal/types"
)

type RegenerateRecoveryCodesLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewRegenerateRecoveryCodesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RegenerateRecoveryCodesLogic {
	return &RegenerateRecoveryCodesLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

func (l *RegenerateRecoveryCodesLogic) RegenerateRecoveryCodes(req *types.RegenerateRecoveryCodesRequest) (*types.RegenerateRecoveryCodesResponse, error) {
	caller, ok := authctx.FromContext(l.ctx)
	if !ok {
		return nil, errorsx.New(errorsx.KindAuthMissing, "authentication required")
	}
	accountID, err := caller.AccountIDInt64()
	if err != nil {
		return nil, errorsx.New(errorsx.KindAuthInvalid, "invalid token subject")
	}

	account, err := l.svcCtx.Accounts.GetByID(l.ctx, accountID)
	if err != nil {
		return nil, errorsx.Internal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errorsx.New(errorsx.KindAuthInvalid, "incorrect password")
	}

	codes, err := recoverycodes.Generate()
	if err != nil {
		return nil, errorsx.Internal(err)
	}
	hashes := make([]string, len(codes))
	for i, code := range codes {
		hash, err := recoverycodes.Hash(code)
		if err != nil {
			return nil, errorsx.Internal(err)
		}
		hashes[i] = hash
	}

	if err := l.svcCtx.RecoveryCodes.ReplaceAll(l.ctx, accountID, hashes); err != nil {
		return nil, errorsx.Internal(err)
	}

	return &types.RegenerateRecoveryCodesResponse{RecoveryCodes: codes}, nil
}
