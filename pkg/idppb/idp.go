// Package idppb defines the internal RPC contract the identity
// provider exposes to its dependents (Catalog, Orchestrator), per
// spec.md §6. It is hand-authored in place of protoc-gen-go-grpc
// output — this workspace has no protoc toolchain — but follows the
// exact shape generated code takes: plain message structs, a
// ServiceDesc, and New*Client/Register*Server functions built on
// google.golang.org/grpc, so callers use it exactly as they would a
// generated stub. Wire encoding is the JSON codec registered by
// pkg/rpctransport.
package idppb

import (
	"context"

	"google.golang.org/grpc"

	"github.com/shopfabric/backend/pkg/rpctransport"
)

const serviceName = "idppb.IdpService"

// ValidateUserRequest carries a signed access token for server-side
// confirmation, used by dependents that cannot or choose not to
// verify locally against the cached public key, per spec.md §4.4.
type ValidateUserRequest struct {
	Token string `json:"token"`
}

// ValidateUserResponse reports whether the token was valid and, if so,
// the identity it names.
type ValidateUserResponse struct {
	Valid     bool   `json:"valid"`
	AccountID string `json:"account_id"`
	Username  string `json:"username"`
	IsAdmin   bool   `json:"is_admin"`
}

// PublicKeyRequest is empty; the current signing key is a singleton
// per IdP instance.
type PublicKeyRequest struct{}

// PublicKeyResponse carries the IdP's current RS256 verifying key, per
// spec.md §3/§6.
type PublicKeyResponse struct {
	KeyID        string `json:"key_id"`
	PublicKeyPEM string `json:"public_key_pem"`
	Algorithm    string `json:"algorithm"`
}

// IdpServiceClient is the dependent-facing view of the IdP's internal
// RPC surface.
type IdpServiceClient interface {
	ValidateUser(ctx context.Context, in *ValidateUserRequest, opts ...grpc.CallOption) (*ValidateUserResponse, error)
	PublicKey(ctx context.Context, in *PublicKeyRequest, opts ...grpc.CallOption) (*PublicKeyResponse, error)
}

// IdpServiceServer is implemented by the IdP's RPC server.
type IdpServiceServer interface {
	ValidateUser(ctx context.Context, in *ValidateUserRequest) (*ValidateUserResponse, error)
	PublicKey(ctx context.Context, in *PublicKeyRequest) (*PublicKeyResponse, error)
}

type idpServiceClient struct {
	cc   grpc.ClientConnInterface
	opts []grpc.CallOption
}

// NewIdpServiceClient builds a client bound to cc, defaulting every
// call to the JSON content-subtype.
func NewIdpServiceClient(cc grpc.ClientConnInterface) IdpServiceClient {
	return &idpServiceClient{cc: cc, opts: []grpc.CallOption{grpc.CallContentSubtype(rpctransport.CodecName)}}
}

func (c *idpServiceClient) ValidateUser(ctx context.Context, in *ValidateUserRequest, opts ...grpc.CallOption) (*ValidateUserResponse, error) {
	out := new(ValidateUserResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/ValidateUser", in, out, append(c.opts, opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *idpServiceClient) PublicKey(ctx context.Context, in *PublicKeyRequest, opts ...grpc.CallOption) (*PublicKeyResponse, error) {
	out := new(PublicKeyResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/PublicKey", in, out, append(c.opts, opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func validateUserHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ValidateUserRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IdpServiceServer).ValidateUser(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/ValidateUser"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IdpServiceServer).ValidateUser(ctx, req.(*ValidateUserRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func publicKeyHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PublicKeyRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(IdpServiceServer).PublicKey(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/PublicKey"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(IdpServiceServer).PublicKey(ctx, req.(*PublicKeyRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ServiceDesc is the grpc.ServiceDesc a generated stub would emit.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*IdpServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ValidateUser", Handler: validateUserHandler},
		{MethodName: "PublicKey", Handler: publicKeyHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "idp.proto",
}

// RegisterIdpServiceServer registers srv against s, exactly as
// protoc-gen-go-grpc output would.
func RegisterIdpServiceServer(s grpc.ServiceRegistrar, srv IdpServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
