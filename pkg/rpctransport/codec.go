// Package rpctransport wires internal service-to-service RPC over
// ordinary gRPC transport and go-zero's zrpc client/server helpers,
// grounded on the teacher's authClient package (defaultAuth wrapping
// a zrpc.Client, each method re-resolving a generated
// NewXxxServiceClient(m.cli.Conn())) and client.go's zrpc.MustNewServer
// registration pattern. Because this workspace has no protoc
// toolchain, request/response messages are plain Go structs rather
// than protoc-gen-go output, and the wire encoding is registered as a
// named gRPC codec via google.golang.org/grpc/encoding — the same
// extension point protoc-generated stubs rely on, just fed a
// hand-written JSON codec instead of the protobuf one.
package rpctransport

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is the content-subtype this system's internal RPC traffic
// negotiates, selected via grpc.CallContentSubtype / grpc.CustomCodec
// on both client and server so ordinary grpc.ClientConn/ grpc.Server
// plumbing carries plain-struct payloads.
const CodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec implements google.golang.org/grpc/encoding.Codec.
type jsonCodec struct{}

func (jsonCodec) Name() string { return CodecName }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("rpctransport: marshal: %w", err)
	}
	return data, nil
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("rpctransport: unmarshal: %w", err)
	}
	return nil
}
