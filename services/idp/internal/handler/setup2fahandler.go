package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"github.com/shopfabric/backend/services/idp/internal/logic"
	"github.com/shopfabric/backend/services/idp/internal/svc"
)

func Setup2FAHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := logic.NewSetup2FALogic(r.Context(), svcCtx).Setup2FA()
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
