package wire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_PreSizes(t *testing.T) {
	encoded, err := Encode(GUID{})
	require.NoError(t, err)
	assert.Len(t, encoded, 16)
	assert.Equal(t, 16, cap(encoded))

	encoded, err = Encode(Unit{})
	require.NoError(t, err)
	assert.Empty(t, encoded)
}

func TestDecodeExact(t *testing.T) {
	v, err := DecodeExact[U16]([]byte{1, 2})
	require.NoError(t, err)
	assert.Equal(t, U16(0x0201), v)

	_, err = DecodeExact[U16]([]byte{1, 2, 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTrailingBytes))
	assert.EqualError(t, err, "wire: trailing bytes after value: used 2 of 3")

	_, err = DecodeExact[U16]([]byte{1})
	assert.True(t, errors.Is(err, ErrInsufficientInput))
}

func TestDecodeAll(t *testing.T) {
	values, err := DecodeAll[U16]([]byte{1, 0, 2, 0, 3, 0})
	require.NoError(t, err)
	assert.Equal(t, []U16{1, 2, 3}, values)

	values, err = DecodeAll[U16](nil)
	require.NoError(t, err)
	assert.Empty(t, values)

	_, err = DecodeAll[U16]([]byte{1, 0, 2})
	assert.True(t, errors.Is(err, ErrInsufficientInput))

	_, err = DecodeAll[Unit]([]byte{1})
	assert.Same(t, ErrZeroWidth, err)
}

func TestAppendAll(t *testing.T) {
	buf, err := AppendAll([]byte{0xaa}, U16(1), U16(2))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xaa, 1, 0, 2, 0}, buf)

	mixed, err := AppendAll(nil, Encodable(U8(1)), Encodable(Bool(true)), Encodable(IPv4{1, 1, 1, 1}))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 1, 1, 1, 1, 1}, mixed)

	out, err := AppendAll([]byte{1}, Encodable(U8(1)), Encodable(failing{}))
	assert.Same(t, errBoom, err)
	assert.Nil(t, out)
}

func TestErrors(t *testing.T) {
	short := Short("uint16", 2, []byte{7})
	assert.True(t, errors.Is(short, ErrInsufficientInput))
	assert.False(t, errors.Is(short, ErrMalformed))
	assert.Equal(t, KindInsufficientInput, short.Kind)

	bad := Malformed("bool", []byte{9}, "invalid value 0x9")
	assert.True(t, errors.Is(bad, ErrMalformed))
	assert.EqualError(t, bad, "wire: cannot decode bool from [9]: invalid value 0x9")

	custom := Errorf("checksum %d", 5)
	assert.Equal(t, KindCustom, custom.Kind)
	assert.EqualError(t, custom, "checksum 5")

	enc := &EncodeError{Type: "thing", Reason: "too big"}
	assert.True(t, errors.Is(enc, ErrEncode))
	assert.EqualError(t, enc, "wire: cannot encode thing: too big")

	assert.Equal(t, "insufficient input", KindInsufficientInput.String())
}
