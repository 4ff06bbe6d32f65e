package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/idppb"
	"github.com/shopfabric/backend/pkg/security/tokens"
	"github.com/shopfabric/backend/services/idp/internal/svc"
)

// RPCPublicKeyLogic backs the internal PublicKey RPC, the gRPC-transport
// twin of the HTTP public-key endpoint (logic.PublicKeyLogic), for
// dependents that prefer not to poll HTTP.
type RPCPublicKeyLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewRPCPublicKeyLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RPCPublicKeyLogic {
	return &RPCPublicKeyLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

func (l *RPCPublicKeyLogic) PublicKey(_ *idppb.PublicKeyRequest) (*idppb.PublicKeyResponse, error) {
	pem, kid, err := l.svcCtx.SigningPublicKeyPEM()
	if err != nil {
		return nil, err
	}
	return &idppb.PublicKeyResponse{
		KeyID:        kid,
		PublicKeyPEM: string(pem),
		Algorithm:    tokens.Algorithm,
	}, nil
}
