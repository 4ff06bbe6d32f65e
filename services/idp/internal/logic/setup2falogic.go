package logic

import (
	"context"
	"crypto/rand"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/authctx"
	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/pkg/security/recoverycodes"
	"github.com/shopfabric/backend/pkg/security/totp"
	"github.com/shopfabric/backend/services/idp/internal/models"
	"github.com/shopfabric/backend/services/idp/internal/svc"
	"github.com/shopfabric/backend/services/idp/internal/types"
)

const totpSecretBytes = 20

type Setup2FALogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewSetup2FALogic(ctx context.Context, svcCtx *svc.ServiceContext) *Setup2FALogic {
	return &Setup2FALogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

func (l *Setup2FALogic) Setup2FA() (*types.Setup2FAResponse, error) {
	caller, ok := authctx.FromContext(l.ctx)
	if !ok {
		return nil, errorsx.New(errorsx.KindAuthMissing, "authentication required")
	}
	accountID, err := caller.AccountIDInt64()
	if err != nil {
		return nil, errorsx.New(errorsx.KindAuthInvalid, "invalid token subject")
	}

	secretBytes := make([]byte, totpSecretBytes)
	if _, err := rand.Read(secretBytes); err != nil {
		return nil, errorsx.Internal(err)
	}
	secret := totp.GenerateSecret(secretBytes)

	if err := l.svcCtx.SecondFactors.Upsert(l.ctx, &models.SecondFactor{
		AccountID: accountID,
		Secret:    secret,
	}); err != nil {
		return nil, errorsx.Internal(err)
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

	return &types.Setup2FAResponse{
		Secret:          secret,
		ProvisioningURI: totp.ProvisioningURI(l.svcCtx.Config.Tokens.Issuer, caller.Username, secret),
		RecoveryCodes:   codes,
	}, nil
}
