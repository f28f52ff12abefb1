// Package paymentpb declares the gRPC contract of the payment gateway.
//
// Messages travel as JSON under the "json" content subtype, so the contract is plain
// Go without a protoc step. Clients must call with grpc.CallContentSubtype(CodecName);
// the client returned by NewPaymentGatewayClient does that on every call.
package paymentpb

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content subtype of the payment contract.
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
