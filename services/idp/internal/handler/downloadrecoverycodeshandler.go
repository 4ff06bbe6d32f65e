package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"github.com/shopfabric/backend/services/idp/internal/logic"
	"github.com/shopfabric/backend/services/idp/internal/svc"
	"github.com/shopfabric/backend/services/idp/internal/types"
)

func DownloadRecoveryCodesHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.DownloadRecoveryCodesRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		resp, err := logic.NewDownloadRecoveryCodesLogic(r.Context(), svcCtx).DownloadRecoveryCodes(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
