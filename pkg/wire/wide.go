package wire

import (
	"fmt"
	"math/big"

	"lukechampine.com/uint128"
)

var two128 = new(big.Int).Lsh(big.NewInt(1), 128)

// U128 is an unsigned 128-bit integer, 16 bytes little-endian on the wire.
type U128 struct {
	uint128.Uint128
}

// U128From64 widens x.
func U128From64(x uint64) U128 {
	return U128{uint128.From64(x)}
}

// ParseU128 parses a base-10 string.
func ParseU128(s string) (U128, error) {
	u, err := uint128.FromString(s)
	if err != nil {
		return U128{}, err
	}
	return U128{u}, nil
}

func (v U128) EncodeInto(buf []byte) ([]byte, error) {
	var b [16]byte
	v.PutBytes(b[:])
	return append(buf, b[:]...), nil
}

func (U128) WireSize() int { return 16 }

func (v *U128) DecodeFrom(data []byte) (int, error) {
	if len(data) < 16 {
		return 0, Short("uint128", 16, data)
	}
	v.Uint128 = uint128.FromBytes(data[:16])
	return 16, nil
}

// I128 is a signed 128-bit integer in two's complement, 16 bytes
// little-endian on the wire.
type I128 struct {
	bits uint128.Uint128
}

// I128From64 sign-extends x.
func I128From64(x int64) I128 {
	return I128{uint128.New(uint64(x), uint64(x>>63))}
}

// I128FromBig converts x. It panics if x does not fit in 128 bits.
func I128FromBig(x *big.Int) I128 {
	if x.Sign() < 0 {
		x = new(big.Int).Add(x, two128)
	}
	return I128{uint128.FromBig(x)}
}

// ParseI128 parses a base-10 string.
func ParseI128(s string) (I128, error) {
	x, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return I128{}, fmt.Errorf("wire: invalid int128 %q", s)
	}
	lo := new(big.Int).Neg(new(big.Int).Rsh(two128, 1))
	hi := new(big.Int).Sub(new(big.Int).Rsh(two128, 1), big.NewInt(1))
	if x.Cmp(lo) < 0 || x.Cmp(hi) > 0 {
		return I128{}, fmt.Errorf("wire: int128 out of range: %s", s)
	}
	return I128FromBig(x), nil
}

// Big returns v as a big.Int.
func (v I128) Big() *big.Int {
	b := v.bits.Big()
	if v.bits.Hi>>63 == 1 {
		b.Sub(b, two128)
	}
	return b
}

func (v I128) String() string {
	return v.Big().String()
}

func (v I128) EncodeInto(buf []byte) ([]byte, error) {
	var b [16]byte
	v.bits.PutBytes(b[:])
	return append(buf, b[:]...), nil
}

func (I128) WireSize() int { return 16 }

func (v *I128) DecodeFrom(data []byte) (int, error) {
	if len(data) < 16 {
		return 0, Short("int128", 16, data)
	}
	v.bits = uint128.FromBytes(data[:16])
	return 16, nil
}
