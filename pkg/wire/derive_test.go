package wire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample is a generic record whose field types are fixed by the caller.
type sample[A any, PA Transmittable[A], B any, PB Transmittable[B]] struct {
	A    A
	B    B
	Addr IPv4
}

func (p sample[A, PA, B, PB]) EncodeInto(buf []byte) ([]byte, error) {
	return MustDerive[sample[A, PA, B, PB]]().EncodeInto(&p, buf)
}

func (p *sample[A, PA, B, PB]) DecodeFrom(data []byte) (int, error) {
	return MustDerive[sample[A, PA, B, PB]]().DecodeFrom(p, data)
}

func TestDerive_GenericRecord(t *testing.T) {
	v := sample[U8, *U8, U16, *U16]{A: 1, B: 0x0302, Addr: IPv4{10, 0, 0, 1}}

	encoded, err := Encode(v)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 10, 0, 0, 1}, encoded)

	decoded, n, err := Decode[sample[U8, *U8, U16, *U16]](encoded)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, v, decoded)

	other := sample[GUID, *GUID, U32, *U32]{A: GUID{0xff}, B: 7}
	encoded, err = Encode(other)
	require.NoError(t, err)
	assert.Len(t, encoded, 16+4+4)
	assert.Equal(t, byte(0xff), encoded[15])
}

func TestDerive_FieldTable(t *testing.T) {
	r, err := Derive[ping]()
	require.NoError(t, err)
	assert.Equal(t, ShapeNamed, r.Shape())
	assert.Equal(t, []FieldInfo{
		{Name: "Port", Index: 0, Type: "wire.U32", Size: 4},
		{Name: "Addr", Index: 1, Type: "wire.IPv4", Size: 4},
	}, r.Fields())

	// Same layout as the hand-built table.
	v := ping{Port: 4, Addr: IPv4{1, 2, 3, 4}}
	byHand, err := pingCodec.Encode(&v)
	require.NoError(t, err)
	derived, err := r.Encode(&v)
	require.NoError(t, err)
	assert.Equal(t, byHand, derived)
}

type badRecord struct {
	X U8
	Y string
}

func TestDerive_RejectsNonTransmittableField(t *testing.T) {
	_, err := Derive[badRecord]()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotTransmittable))
	assert.Contains(t, err.Error(), "field Y")
	assert.Contains(t, err.Error(), "string")

	assert.Panics(t, func() { MustDerive[badRecord]() })
}

func TestDerive_RejectsNonStruct(t *testing.T) {
	_, err := Derive[U32]()
	assert.True(t, errors.Is(err, ErrNotTransmittable))
}

type skipping struct {
	A     U8
	note  string
	Cache []byte `wire:"-"`
	B     U8
}

func TestDerive_SkipsFields(t *testing.T) {
	r, err := Derive[skipping]()
	require.NoError(t, err)
	require.Len(t, r.Fields(), 2)

	encoded, err := r.Encode(&skipping{A: 1, note: "x", Cache: []byte{9}, B: 2})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, encoded)

	decoded, _, err := r.Decode([]byte{3, 4})
	require.NoError(t, err)
	assert.Equal(t, skipping{A: 3, B: 4}, decoded)
}

type inner struct {
	A U16
	B U8
}

type outer struct {
	Head U8
	In   inner
	Tail Bool
}

func TestDerive_FlattensPlainStructs(t *testing.T) {
	r, err := Derive[outer]()
	require.NoError(t, err)

	names := make([]string, 0, 4)
	for _, f := range r.Fields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Head", "In.A", "In.B", "Tail"}, names)
	assert.Equal(t, 5, r.Size())

	v := outer{Head: 1, In: inner{A: 0x0302, B: 4}, Tail: true}
	encoded, err := r.Encode(&v)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 1}, encoded)

	decoded, n, err := r.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, v, decoded)
}

type embedding struct {
	inner
	Tail U8
}

func TestDerive_PromotesEmbeddedFields(t *testing.T) {
	r, err := Derive[embedding]()
	require.NoError(t, err)

	names := make([]string, 0, 3)
	for _, f := range r.Fields() {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"A", "B", "Tail"}, names)

	v := embedding{inner: inner{A: 7, B: 8}, Tail: 9}
	encoded, err := r.Encode(&v)
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 0, 8, 9}, encoded)

	decoded, n, err := r.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, v, decoded)
}

type counter uint8

type embedsCounter struct {
	counter
	X U8
}

type embedsPointer struct {
	*inner
	X U8
}

func TestDerive_RejectsOpaqueEmbeddedFields(t *testing.T) {
	_, err := Derive[embedsCounter]()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotTransmittable))
	assert.Contains(t, err.Error(), "embedded field counter")

	_, err = Derive[embedsPointer]()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotTransmittable))
}

func TestDerive_Cached(t *testing.T) {
	first, err := Derive[outer]()
	require.NoError(t, err)
	second, err := Derive[outer]()
	require.NoError(t, err)
	assert.Same(t, first, second)
}
