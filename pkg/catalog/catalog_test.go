package catalog

import (
	"encoding/hex"
	"net/netip"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/transmit/pkg/wire"
)

func TestDefault_Names(t *testing.T) {
	c := Default()
	assert.Equal(t, []string{
		"bool", "guid", "i128", "i16", "i32", "i64", "i8", "ipv4",
		"probe", "u128", "u16", "u32", "u64", "u8", "unit",
	}, c.Names())
	assert.Len(t, c.Types(), 15)
}

func TestType_EncodeDecode(t *testing.T) {
	c := Default()

	tests := []struct {
		name string
		text string
		hex  string
		want string
	}{
		{"u8", "255", "ff", "255"},
		{"i8", "-1", "ff", "-1"},
		{"u16", "0x1234", "3412", "4660"},
		{"i16", "-2", "feff", "-2"},
		{"u32", "4", "04000000", "4"},
		{"i32", "-4", "fcffffff", "-4"},
		{"u64", "1", "0100000000000000", "1"},
		{"i64", "-9223372036854775808", "0000000000000080", "-9223372036854775808"},
		{"u128", "1", "01000000000000000000000000000000", "1"},
		{"i128", "-1", "ffffffffffffffffffffffffffffffff", "-1"},
		{"bool", "true", "01", "true"},
		{"ipv4", "1.2.3.4", "01020304", "1.2.3.4"},
		{"guid", "00112233-4455-6677-8899-aabbccddeeff", "ffeeddccbbaa99887766554433221100", "00112233-4455-6677-8899-aabbccddeeff"},
		{"unit", "", "", "()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := c.Lookup(tt.name)
			require.NoError(t, err)

			encoded, err := typ.Encode(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.hex, hex.EncodeToString(encoded))
			if typ.Size >= 0 {
				assert.Len(t, encoded, typ.Size)
			}

			value, n, err := typ.Decode(append(encoded, 0xee))
			require.NoError(t, err)
			assert.Equal(t, len(encoded), n)
			assert.Equal(t, tt.want, value)

			exact, err := typ.DecodeExact(encoded)
			require.NoError(t, err)
			assert.Equal(t, tt.want, exact)
		})
	}
}

func TestType_DecodeErrorsUnchanged(t *testing.T) {
	typ, err := Default().Lookup("u32")
	require.NoError(t, err)

	_, _, err = typ.Decode([]byte{1})
	var decErr *wire.DecodeError
	require.True(t, errors.As(err, &decErr))
	assert.EqualError(t, err, "wire: 4 bytes of input required to decode uint32, found 1: [1]")

	_, err = typ.DecodeExact([]byte{1, 2, 3, 4, 5})
	assert.True(t, errors.Is(err, wire.ErrTrailingBytes))
}

func TestType_ParseErrors(t *testing.T) {
	c := Default()

	tests := []struct {
		name string
		text string
	}{
		{"u8", "256"},
		{"i8", "128"},
		{"u32", "-1"},
		{"bool", "maybe"},
		{"ipv4", "::1"},
		{"guid", "not-a-guid"},
		{"unit", "x"},
		{"probe", "1,2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := c.Lookup(tt.name)
			require.NoError(t, err)
			_, err = typ.Encode(tt.text)
			assert.Error(t, err)
		})
	}
}

func TestType_DecodeAll(t *testing.T) {
	typ, err := Default().Lookup("u16")
	require.NoError(t, err)

	values, err := typ.DecodeAll([]byte{1, 0, 2, 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, values)

	_, err = typ.DecodeAll([]byte{1, 0, 2})
	assert.True(t, errors.Is(err, wire.ErrInsufficientInput))
}

func TestCatalog_Register(t *testing.T) {
	c := New()

	err := c.Register(Of[wire.U8]("Byte", nil, nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"byte"}, c.Names())

	err = c.Register(Of[wire.U16]("byte", nil, nil))
	assert.True(t, errors.Is(err, ErrDuplicateType))

	assert.Error(t, c.Register(Type{Name: "bare"}))
	assert.Error(t, c.Register(Of[wire.U8](" ", nil, nil)))

	_, err = c.Lookup("BYTE")
	assert.NoError(t, err)

	_, err = c.Lookup("missing")
	assert.True(t, errors.Is(err, ErrUnknownType))
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestProbe(t *testing.T) {
	p, err := NewGUIDProbe(7, netip.MustParseAddr("10.0.0.1"))
	require.NoError(t, err)
	assert.Equal(t, 24, p.WireSize())

	encoded, err := wire.Encode(p)
	require.NoError(t, err)
	require.Len(t, encoded, 24)
	assert.Equal(t, []byte{7, 0, 0, 0, 10, 0, 0, 1}, encoded[16:])

	decoded, n, err := wire.Decode[GUIDProbe](encoded)
	require.NoError(t, err)
	assert.Equal(t, 24, n)
	assert.Equal(t, p, decoded)

	parsed, err := ParseGUIDProbe(p.String())
	require.NoError(t, err)
	assert.Equal(t, p, parsed)

	_, err = NewGUIDProbe(1, netip.MustParseAddr("::1"))
	assert.Error(t, err)
}

func TestProbe_OtherInstantiation(t *testing.T) {
	p := Probe[wire.U8, *wire.U8, wire.Bool, *wire.Bool]{A: 3, B: true, Addr: wire.IPv4{1, 2, 3, 4}}
	encoded, err := wire.Encode(p)
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 1, 1, 2, 3, 4}, encoded)
	assert.Equal(t, "3,true,1.2.3.4", p.String())
}

func TestCatalog_ProbeType(t *testing.T) {
	typ, err := Default().Lookup("probe")
	require.NoError(t, err)
	assert.Equal(t, 24, typ.Size)

	text := "00112233-4455-6677-8899-aabbccddeeff,42,192.168.1.9"
	encoded, err := typ.Encode(text)
	require.NoError(t, err)

	value, n, err := typ.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, 24, n)
	assert.Equal(t, text, value)

	_, _, err = typ.Decode(encoded[:20])
	var decErr *wire.DecodeError
	require.True(t, errors.As(err, &decErr))
	assert.Equal(t, "IPv4", decErr.Type)
}
