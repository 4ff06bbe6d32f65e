// Package server implements the IdP's internal gRPC-style surface
// (idppb.IdpServiceServer), grounded on the teacher's
// services/microservices/client/rpc/client.go zrpc.MustNewServer
// registration pattern: a thin server struct delegating every method
// straight into the logic package, with no business logic of its own.
package server

import (
	"context"

	"github.com/shopfabric/backend/pkg/idppb"
	"github.com/shopfabric/backend/services/idp/internal/logic"
	"github.com/shopfabric/backend/services/idp/internal/svc"
)

type IdpServer struct {
	svcCtx *svc.ServiceContext
}

func NewIdpServer(svcCtx *svc.ServiceContext) *IdpServer {
	return &IdpServer{svcCtx: svcCtx}
}

func (s *IdpServer) ValidateUser(ctx context.Context, in *idppb.ValidateUserRequest) (*idppb.ValidateUserResponse, error) {
	return logic.NewValidateUserLogic(ctx, s.svcCtx).ValidateUser(in)
}

func (s *IdpServer) PublicKey(ctx context.Context, in *idppb.PublicKeyRequest) (*idppb.PublicKeyResponse, error) {
	return logic.NewRPCPublicKeyLogic(ctx, s.svcCtx).PublicKey(in)
}
