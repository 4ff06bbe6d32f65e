package logic

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/zeromicro/go-zero/core/logx"

	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/services/idp/internal/models"
	"github.com/shopfabric/backend/services/idp/internal/repository"
	"github.com/shopfabric/backend/services/idp/internal/svc"
	"github.com/shopfabric/backend/services/idp/internal/types"
)

const minPasswordLength = 8

type RegisterLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewRegisterLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RegisterLogic {
	return &RegisterLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

func (l *RegisterLogic) Register(req *types.RegisterRequest) (*types.RegisterResponse, error) {
	if req.Username == "" || req.Email == "" {
		return nil, errorsx.New(errorsx.KindInputInvalid, "username and email are required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, errorsx.New(errorsx.KindInputInvalid, "password must be at least 8 characters")
	}

	if _, err := l.svcCtx.Accounts.GetByUsername(l.ctx, req.Username); err == nil {
		return nil, errorsx.New(errorsx.KindConflictState, "username already registered")
	} else if err != repository.ErrNotFound {
		return nil, errorsx.Internal(err)
	}
	if _, err := l.svcCtx.Accounts.GetByEmail(l.ctx, req.Email); err == nil {
		return nil, errorsx.New(errorsx.KindConflictState, "email already registered")
	} else if err != repository.ErrNotFound {
		return nil, errorsx.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errorsx.Internal(err)
	}

	account := &models.Account{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := l.svcCtx.Accounts.Create(l.ctx, account); err != nil {
		l.Errorf("create account: %v", err)
		return nil, errorsx.Internal(err)
	}

	return &types.RegisterResponse{Account: toAccountView(account)}, nil
}

func toAccountView(a *models.Account) types.AccountView {
	return types.AccountView{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
		IsAdmin:  a.IsAdmin,
	}
}
