package grpctransport

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// gobCodec marshals request/response structs with the standard library's
// encoding/gob instead of protobuf. There are no generated .proto stubs for
// this worker's wire messages, so grpc.Invoke is forced onto this codec via
// grpc.ForceCodec per call while the connection itself still goes through
// grpc's normal dialing, credentials, and keepalive machinery.
type gobCodec struct{}

func (gobCodec) Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, fmt.Errorf("grpctransport: gob encode: %w", err)
	}
	return buf.Bytes(), nil
}

func (gobCodec) Unmarshal(data []byte, v interface{}) error {
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(v); err != nil {
		return fmt.Errorf("grpctransport: gob decode: %w", err)
	}
	return nil
}

func (gobCodec) Name() string {
	return "gob"
}
