package logic

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/pkg/security/recoverycodes"
	"github.com/shopfabric/backend/pkg/security/totp"
	"github.com/shopfabric/backend/services/idp/internal/models"
	"github.com/shopfabric/backend/services/idp/internal/repository"
	"github.com/shopfabric/backend/services/idp/internal/svc"
	"github.com/shopfabric/backend/services/idp/internal/types"
)

type VerifySecondFactorLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewVerifySecondFactorLogic(ctx context.Context, svcCtx *svc.ServiceContext) *VerifySecondFactorLogic {
	return &VerifySecondFactorLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

func (l *VerifySecondFactorLogic) VerifySecondFactor(req *types.VerifySecondFactorRequest) (*types.VerifySecondFactorResponse, error) {
	account, err := l.svcCtx.Accounts.GetByUsername(l.ctx, req.Username)
	if err == repository.ErrNotFound {
		return nil, errorsx.New(errorsx.KindTwoFactorInvalid, "invalid code")
	} else if err != nil {
		return nil, errorsx.Internal(err)
	}

	sf, err := l.svcCtx.SecondFactors.GetByAccountID(l.ctx, account.ID)
	if err != nil || !sf.Confirmed {
		return nil, errorsx.New(errorsx.KindTwoFactorInvalid, "invalid code")
	}

	if counter, ok, verr := totp.Verify(sf.Secret, req.Code, time.Now()); verr == nil && ok {
		advanced, err := l.svcCtx.SecondFactors.AdvanceVerifiedCounter(l.ctx, account.ID, counter)
		if err != nil {
			return nil, errorsx.Internal(err)
		}
		if !advanced {
			return nil, errorsx.New(errorsx.KindTwoFactorInvalid, "code already used")
		}
		return l.issue(account)
	}

	unused, err := l.svcCtx.RecoveryCodes.ListUnused(l.ctx, account.ID)
	if err != nil {
		return nil, errorsx.Internal(err)
	}
	for _, rc := range unused {
		if recoverycodes.Matches(rc.CodeHash, req.Code) {
			consumed, err := l.svcCtx.RecoveryCodes.MarkUsed(l.ctx, rc.ID)
			if err != nil {
				return nil, errorsx.Internal(err)
			}
			if !consumed {
				return nil, errorsx.New(errorsx.KindTwoFactorInvalid, "code already used")
			}
			return l.issue(account)
		}
	}

	return nil, errorsx.New(errorsx.KindTwoFactorInvalid, "invalid code")
}

func (l *VerifySecondFactorLogic) issue(account *models.Account) (*types.VerifySecondFactorResponse, error) {
	pair, err := issueTokenPair(l.svcCtx, account)
	if err != nil {
		return nil, err
	}
	return &types.VerifySecondFactorResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		Account:      pair.Account,
	}, nil
}
