package rpctransport

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// metadataKey is the call-metadata key carrying the shared internal
// RPC secret, per spec.md §6 ("All RPCs carry an authentication
// credential on call metadata; unauthenticated calls are rejected
// with an unauthenticated status") and §4.5 ("Credentials/metadata...
// are attached by the client").
const metadataKey = "x-internal-rpc-secret"

// UnaryClientInterceptor attaches secret to every outgoing call's
// metadata. Wired into zrpc.MustNewClient via zrpc.WithUnaryClientInterceptor
// on both the Orchestrator's IdP and Catalog clients.
func UnaryClientInterceptor(secret string) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		ctx = metadata.AppendToOutgoingContext(ctx, metadataKey, secret)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

// UnaryServerInterceptor rejects any call whose metadata does not carry
// the shared secret. Wired into the IdP's and Catalog's zrpc.RpcServer
// via AddUnaryInterceptors.
func UnaryServerInterceptor(secret string) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing rpc credentials")
		}
		values := md.Get(metadataKey)
		if len(values) != 1 || values[0] != secret {
			return nil, status.Error(codes.Unauthenticated, "invalid rpc credentials")
		}
		return handler(ctx, req)
	}
}
