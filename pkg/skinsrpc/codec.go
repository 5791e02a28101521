package skinsrpc

import (
	"encoding/json"
	"fmt"
)

// codec serializes plain Go messages as JSON. It is registered under the names
// Connect uses for application/json so clients and servers agree on it.
type codec struct {
	name string
}

var (
	jsonCodec        = codec{name: "json"}
	jsonCharsetCodec = codec{name: "json; charset=utf-8"}
)

func (c codec) Name() string { return c.name }

func (c codec) Marshal(msg any) ([]byte, error) {
	b, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return b, nil
}

func (c codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal into %T: %w", msg, err)
	}
	return nil
}
