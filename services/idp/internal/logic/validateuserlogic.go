package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/idppb"
	"github.com/shopfabric/backend/pkg/security/tokens"
	"github.com/shopfabric/backend/services/idp/internal/repository"
	"github.com/shopfabric/backend/services/idp/internal/svc"
)

// ValidateUserLogic backs the internal ValidateUser RPC dependents call
// during order creation (spec.md §4.3 step 3).
type ValidateUserLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewValidateUserLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ValidateUserLogic {
	return &ValidateUserLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

func (l *ValidateUserLogic) ValidateUser(req *idppb.ValidateUserRequest) (*idppb.ValidateUserResponse, error) {
	claims, err := l.svcCtx.VerifyLocal(req.Token)
	if err != nil {
		return &idppb.ValidateUserResponse{Valid: false}, nil
	}
	if err := tokens.RequireKind(claims, tokens.KindAccess); err != nil {
		return &idppb.ValidateUserResponse{Valid: false}, nil
	}

	accountID, err := parseAccountID(claims.Subject)
	if err != nil {
		return &idppb.ValidateUserResponse{Valid: false}, nil
	}

	account, err := l.svcCtx.Accounts.GetByID(l.ctx, accountID)
	if err == repository.ErrNotFound {
		return &idppb.ValidateUserResponse{Valid: false}, nil
	} else if err != nil {
		l.Errorf("validate user: load account: %v", err)
		return nil, err
	}

	if !account.Active || account.TokenVersion != claims.Version {
		return &idppb.ValidateUserResponse{Valid: false}, nil
	}

	return &idppb.ValidateUserResponse{
		Valid:     true,
		AccountID: claims.Subject,
		Username:  account.Username,
		IsAdmin:   account.IsAdmin,
	}, nil
}
