package logic

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/services/idp/internal/repository"
	"github.com/shopfabric/backend/services/idp/internal/svc"
	"github.com/shopfabric/backend/services/idp/internal/types"
)

// issueTokenPair is defined in tokenissue.go, alongside the other
// logic files that need to mint a fresh access/refresh pair.

// decoyHash is compared against on an unknown username so that password
// verification always costs the same bcrypt round trip, per spec.md
// §4.1 ("always performs password verification even on unknown
// usernames to avoid user enumeration via timing").
var decoyHash, _ = bcrypt.GenerateFromPassword([]byte("shopfabric-decoy-password"), bcrypt.DefaultCost)

type ObtainTokenLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewObtainTokenLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ObtainTokenLogic {
	return &ObtainTokenLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

func (l *ObtainTokenLogic) ObtainToken(req *types.ObtainTokenRequest) (*types.ObtainTokenResponse, error) {
	account, err := l.svcCtx.Accounts.GetByUsername(l.ctx, req.Username)
	if err == repository.ErrNotFound {
		_ = bcrypt.CompareHashAndPassword(decoyHash, []byte(req.Password))
		return nil, errorsx.New(errorsx.KindAuthInvalid, "invalid username or password")
	} else if err != nil {
		return nil, errorsx.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errorsx.New(errorsx.KindAuthInvalid, "invalid username or password")
	}
	if !account.Active {
		return nil, errorsx.New(errorsx.KindAuthInvalid, "invalid username or password")
	}

	sf, err := l.svcCtx.SecondFactors.GetByAccountID(l.ctx, account.ID)
	if err != nil && err != repository.ErrNotFound {
		return nil, errorsx.Internal(err)
	}
	if sf != nil && sf.Confirmed {
		return &types.ObtainTokenResponse{RequiresTwoFactor: true, Username: account.Username}, nil
	}

	return issueTokenPair(l.svcCtx, account)
}
