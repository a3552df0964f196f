// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package klite

import (
	"github.com/vmihailenco/msgpack/v5"
)

// Codec encodes and decodes message payloads to and from the opaque bytes
// stored in a partition table. The store only ever sees the encoded bytes;
// [Producer] and [Consumer] apply the codec on the way in and out.
//
// All producers and consumers sharing a store must agree on the same codec.
type Codec interface {
	Encode(payload any) ([]byte, error)
	Decode(data []byte, out any) error
}

// MsgpackCodec is the default [Codec], backed by MessagePack, the reference
// encoding named in spec §4.5.
type MsgpackCodec struct{}

func (MsgpackCodec) Encode(payload any) ([]byte, error) {
	return msgpack.Marshal(payload)
}

func (MsgpackCodec) Decode(data []byte, out any) error {
	return msgpack.Unmarshal(data, out)
}

// Decoded unmarshal target used when the caller has no typed destination:
// a generic value that round-trips scalars, strings, arrays, and maps.
func decodeAny(codec Codec, data []byte) (any, error) {
	var v any
	if err := codec.Decode(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}
