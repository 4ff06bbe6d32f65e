package logic

import (
	"context"
	"strconv"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/pkg/security/tokens"
	"github.com/shopfabric/backend/services/idp/internal/repository"
	"github.com/shopfabric/backend/services/idp/internal/svc"
	"github.com/shopfabric/backend/services/idp/internal/types"
)

type RefreshLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewRefreshLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RefreshLogic {
	return &RefreshLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

func (l *RefreshLogic) Refresh(req *types.RefreshRequest) (*types.RefreshResponse, error) {
	claims, err := l.svcCtx.VerifyLocal(req.RefreshToken)
	if err != nil {
		return nil, errorsx.New(errorsx.KindAuthInvalid, "invalid refresh token")
	}
	if err := tokens.RequireKind(claims, tokens.KindRefresh); err != nil {
		return nil, errorsx.New(errorsx.KindAuthInvalid, "invalid refresh token")
	}

	revoked, err := l.svcCtx.RefreshStore.IsRevoked(l.ctx, req.RefreshToken)
	if err != nil {
		return nil, errorsx.Internal(err)
	}
	if revoked {
		return nil, errorsx.New(errorsx.KindAuthInvalid, "refresh token revoked")
	}

	accountID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, errorsx.New(errorsx.KindAuthInvalid, "invalid refresh token")
	}
	account, err := l.svcCtx.Accounts.GetByID(l.ctx, accountID)
	if err == repository.ErrNotFound {
		return nil, errorsx.New(errorsx.KindAuthInvalid, "invalid refresh token")
	} else if err != nil {
		return nil, errorsx.Internal(err)
	}
	if account.TokenVersion != claims.Version || !account.Active {
		return nil, errorsx.New(errorsx.KindAuthInvalid, "invalid refresh token")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil, errorsx.New(errorsx.KindAuthExpired, "refresh token expired")
	}
	ok, err := l.svcCtx.RefreshStore.ConsumeForRotation(l.ctx, req.RefreshToken, ttl)
	if err != nil {
		return nil, errorsx.Internal(err)
	}
	if !ok {
		return nil, errorsx.New(errorsx.KindAuthInvalid, "refresh token already used")
	}

	subject := claims.Subject
	access, err := l.svcCtx.Signer.IssueAccessToken(subject, account.Username, account.TokenVersion, account.IsAdmin)
	if err != nil {
		return nil, errorsx.Internal(err)
	}
	refresh, err := l.svcCtx.Signer.IssueRefreshToken(subject, account.Username, account.TokenVersion)
	if err != nil {
		return nil, errorsx.Internal(err)
	}

	return &types.RefreshResponse{AccessToken: access.Token, RefreshToken: refresh.Token}, nil
}
