// Package catalogpb defines the internal RPC contract Catalog exposes
// to the Order Orchestrator, per spec.md §4.3/§6. Hand-authored in the
// same style as pkg/idppb, for the same no-protoc-toolchain reason.
package catalogpb

import (
	"context"

	"google.golang.org/grpc"

	"github.com/shopfabric/backend/pkg/rpctransport"
)

const serviceName = "catalogpb.CatalogService"

// ProductLine names a product and the quantity an order line
// requests, per spec.md §4.3's order-creation algorithm.
type ProductLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// GetProductInfoRequest asks for current price and name for a batch of
// products in one round trip, one request per distinct product id
// after duplicate-id merging.
type GetProductInfoRequest struct {
	ProductIDs []string `json:"product_ids"`
}

// ProductInfo is a single product's order-relevant snapshot.
type ProductInfo struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Found     bool   `json:"found"`
}

// GetProductInfoResponse returns one ProductInfo per requested id, in
// request order; Found is false for any id that does not exist.
type GetProductInfoResponse struct {
	Products []ProductInfo `json:"products"`
}

// CheckAvailabilityRequest asks Catalog to perform its check-only
// (non-decrementing) stock check for every line in an order, per
// spec.md §4.4's resolved Open Question on inventory concurrency.
type CheckAvailabilityRequest struct {
	Lines []ProductLine `json:"lines"`
}

// LineAvailability reports whether a single line's requested quantity
// is currently in stock.
type LineAvailability struct {
	ProductID string `json:"product_id"`
	Available bool   `json:"available"`
	InStock   int    `json:"in_stock"`
}

// CheckAvailabilityResponse reports per-line availability; AllAvailable
// is true only when every line is available.
type CheckAvailabilityResponse struct {
	Lines        []LineAvailability `json:"lines"`
	AllAvailable bool               `json:"all_available"`
}

// CatalogServiceClient is the Orchestrator-facing view of Catalog's
// internal RPC surface.
type CatalogServiceClient interface {
	GetProductInfo(ctx context.Context, in *GetProductInfoRequest, opts ...grpc.CallOption) (*GetProductInfoResponse, error)
	CheckAvailability(ctx context.Context, in *CheckAvailabilityRequest, opts ...grpc.CallOption) (*CheckAvailabilityResponse, error)
}

// CatalogServiceServer is implemented by Catalog's RPC server.
type CatalogServiceServer interface {
	GetProductInfo(ctx context.Context, in *GetProductInfoRequest) (*GetProductInfoResponse, error)
	CheckAvailability(ctx context.Context, in *CheckAvailabilityRequest) (*CheckAvailabilityResponse, error)
}

type catalogServiceClient struct {
	cc   grpc.ClientConnInterface
	opts []grpc.CallOption
}

// NewCatalogServiceClient builds a client bound to cc, defaulting
// every call to the JSON content-subtype.
func NewCatalogServiceClient(cc grpc.ClientConnInterface) CatalogServiceClient {
	return &catalogServiceClient{cc: cc, opts: []grpc.CallOption{grpc.CallContentSubtype(rpctransport.CodecName)}}
}

func (c *catalogServiceClient) GetProductInfo(ctx context.Context, in *GetProductInfoRequest, opts ...grpc.CallOption) (*GetProductInfoResponse, error) {
	out := new(GetProductInfoResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/GetProductInfo", in, out, append(c.opts, opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogServiceClient) CheckAvailability(ctx context.Context, in *CheckAvailabilityRequest, opts ...grpc.CallOption) (*CheckAvailabilityResponse, error) {
	out := new(CheckAvailabilityResponse)
	if err := c.cc.Invoke(ctx, "/"+serviceName+"/CheckAvailability", in, out, append(c.opts, opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

func getProductInfoHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetProductInfoRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).GetProductInfo(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/GetProductInfo"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServiceServer).GetProductInfo(ctx, req.(*GetProductInfoRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func checkAvailabilityHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CheckAvailabilityRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CatalogServiceServer).CheckAvailability(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/CheckAvailability"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CatalogServiceServer).CheckAvailability(ctx, req.(*CheckAvailabilityRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// ServiceDesc is the grpc.ServiceDesc a generated stub would emit.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetProductInfo", Handler: getProductInfoHandler},
		{MethodName: "CheckAvailability", Handler: checkAvailabilityHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catalog.proto",
}

// RegisterCatalogServiceServer registers srv against s.
func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}
