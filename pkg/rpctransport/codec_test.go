package rpctransport

import (
	"testing"

	"google.golang.org/grpc/encoding"
)

type sampleMessage struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func TestJSONCodecRegistered(t *testing.T) {
	codec := encoding.GetCodec(CodecName)
	if codec == nil {
		t.Fatal("expected json codec to be registered under CodecName")
	}
}

func TestJSONCodecRoundTrip(t *testing.T) {
	codec := encoding.GetCodec(CodecName)
	in := sampleMessage{Name: "widget", Age: 3}

	data, err := codec.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}

	var out sampleMessage
	if err := codec.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("expected round trip to preserve message, got %+v", out)
	}
}
