// Package apiconnect binds the billsplit.v1 messages to Connect clients and
// handlers. It has the shape of protoc-gen-connect-go output, but the
// messages are plain Go structs carried by a JSON codec.
package apiconnect

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// codecName replaces Connect's default protojson codec, so requests keep
// the usual application/json content type.
const codecName = "json"

// Codec marshals messages with encoding/json.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string { return codecName }

func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}

func withCodec[T any](opts []T, codec T) []T {
	return append([]T{codec}, opts...)
}
