package logic

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/authctx"
	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/services/idp/internal/svc"
	"github.com/shopfabric/backend/services/idp/internal/types"
)

type DownloadRecoveryCodesLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewDownloadRecoveryCodesLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DownloadRecoveryCodesLogic {
	return &DownloadRecoveryCodesLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

func (l *DownloadRecoveryCodesLogic) DownloadRecoveryCodes(req *types.DownloadRecoveryCodesRequest) (*types.DownloadRecoveryCodesResponse, error) {
	if _, ok := authctx.FromContext(l.ctx); !ok {
		return nil, errorsx.New(errorsx.KindAuthMissing, "authentication required")
	}
	if len(req.Codes) == 0 {
		return nil, errorsx.New(errorsx.KindInputInvalid, "no codes supplied")
	}

	artifact := base64.StdEncoding.EncodeToString([]byte(strings.Join(req.Codes, "\n") + "\n"))
	return &types.DownloadRecoveryCodesResponse{Artifact: artifact}, nil
}
