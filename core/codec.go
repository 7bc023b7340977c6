package core

import (
	"encoding/json"
	"fmt"
)

// Codec converts payloads to and from raw message bytes.
// Implement this interface for custom serialization formats (Protobuf,
// Avro, etc.).
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

// JSONCodec encodes payloads as JSON.
type JSONCodec struct{}

func (JSONCodec) Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return data, nil
}

func (JSONCodec) Decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("brokermux: decode: %w", err)
	}
	return nil
}
