// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package klite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMsgpackCodec_RoundTripsString(t *testing.T) {
	codec := MsgpackCodec{}

	data, err := codec.Encode("hello")
	require.NoError(t, err)

	got, err := decodeAny(codec, data)
	require.NoError(t, err)
	require.Equal(t, "hello", got)
}

func TestMsgpackCodec_RoundTripsMap(t *testing.T) {
	codec := MsgpackCodec{}

	data, err := codec.Encode(map[string]any{"a": int64(1), "b": "two"})
	require.NoError(t, err)

	got, err := decodeAny(codec, data)
	require.NoError(t, err)

	m, ok := got.(map[string]any)
	require.True(t, ok)
	require.EqualValues(t, 1, m["a"])
	require.Equal(t, "two", m["b"])
}

func TestMsgpackCodec_RoundTripsArray(t *testing.T) {
	codec := MsgpackCodec{}

	data, err := codec.Encode([]any{int64(1), int64(2), int64(3)})
	require.NoError(t, err)

	got, err := decodeAny(codec, data)
	require.NoError(t, err)

	arr, ok := got.([]any)
	require.True(t, ok)
	require.Len(t, arr, 3)
	require.EqualValues(t, 1, arr[0])
	require.EqualValues(t, 2, arr[1])
	require.EqualValues(t, 3, arr[2])
}

func TestMsgpackCodec_DecodeFailureOnCorruptBytes(t *testing.T) {
	codec := MsgpackCodec{}

	_, err := decodeAny(codec, []byte{0xc1}) // 0xc1 is reserved/never used in msgpack
	require.Error(t, err)
}
