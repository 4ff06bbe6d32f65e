package logic

import (
	"strconv"

	"github.com/shopfabric/backend/pkg/errorsx"
	"github.com/shopfabric/backend/services/idp/internal/models"
	"github.com/shopfabric/backend/services/idp/internal/svc"
	"github.com/shopfabric/backend/services/idp/internal/types"
)

// parseAccountID parses a token's subject claim back into the numeric
// account id every repository method addresses rows by.
func parseAccountID(subject string) (int64, error) {
	return strconv.ParseInt(subject, 10, 64)
}

// issueTokenPair mints a fresh access/refresh pair for account and
// projects it into the wire response shared by obtain-token and
// verify-second-factor, per spec.md §4.1.
func issueTokenPair(svcCtx *svc.ServiceContext, account *models.Account) (*types.ObtainTokenResponse, error) {
	subject := strconv.FormatInt(account.ID, 10)

	access, err := svcCtx.Signer.IssueAccessToken(subject, account.Username, account.TokenVersion, account.IsAdmin)
	if err != nil {
		return nil, errorsx.Internal(err)
	}
	refresh, err := svcCtx.Signer.IssueRefreshToken(subject, account.Username, account.TokenVersion)
	if err != nil {
		return nil, errorsx.Internal(err)
	}

	return &types.ObtainTokenResponse{
		AccessToken:  access.Token,
		RefreshToken: refresh.Token,
		Account:      toAccountView(account),
	}, nil
}
