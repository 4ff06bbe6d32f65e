package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/pkg/security/tokens"
	"github.com/shopfabric/backend/services/idp/internal/svc"
	"github.com/shopfabric/backend/services/idp/internal/types"
)

type PublicKeyLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewPublicKeyLogic(ctx context.Context, svcCtx *svc.ServiceContext) *PublicKeyLogic {
	return &PublicKeyLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

func (l *PublicKeyLogic) PublicKey() (*types.PublicKeyResponse, error) {
	pem, kid, err := l.svcCtx.SigningPublicKeyPEM()
	if err != nil {
		return nil, errorsx.Internal(err)
	}
	return &types.PublicKeyResponse{
		PublicKey: string(pem),
		Algorithm: tokens.Algorithm,
		KeyID:     kid,
	}, nil
}
