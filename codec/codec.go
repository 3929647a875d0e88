// Package codec provides the canonical serialization commitments and
// disclosure tapes are computed over. The codec is pluggable: both sides of
// a session must agree on one, since commitments are digests of whatever
// canonical bytes the configured codec produces.
package codec

import "encoding/json"

// Codec round-trips values through their canonical serialization.
// Implementations must honor encoding.TextMarshaler, so that authenticated
// references serialize to their commitment regardless of the enclosing
// structure's encoding.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSON is the default codec.
var JSON Codec = jsonCodec{}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
