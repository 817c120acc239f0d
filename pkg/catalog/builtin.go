package catalog

import (
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/ssargent/transmit/pkg/wire"
)

func builtins() []Type {
	return []Type{
		unsigned[wire.U8]("u8", 8),
		signed[wire.I8]("i8", 8),
		unsigned[wire.U16]("u16", 16),
		signed[wire.I16]("i16", 16),
		unsigned[wire.U32]("u32", 32),
		signed[wire.I32]("i32", 32),
		unsigned[wire.U64]("u64", 64),
		signed[wire.I64]("i64", 64),
		Of[wire.U128]("u128", wire.ParseU128, nil),
		Of[wire.I128]("i128", wire.ParseI128, nil),
		Of[wire.Bool]("bool", parseBool, nil),
		Of[wire.IPv4]("ipv4", wire.ParseIPv4, nil),
		Of[wire.GUID]("guid", wire.ParseGUID, nil),
		Of[wire.Unit]("unit", parseUnit, func(wire.Unit) string { return "()" }),
		Of[GUIDProbe]("probe", ParseGUIDProbe, GUIDProbe.String),
	}
}

func unsigned[T ~uint8 | ~uint16 | ~uint32 | ~uint64, P wire.Transmittable[T]](name string, bits int) Type {
	return Of[T, P](name, func(s string) (T, error) {
		n, err := strconv.ParseUint(s, 0, bits)
		return T(n), err
	}, nil)
}

func signed[T ~int8 | ~int16 | ~int32 | ~int64, P wire.Transmittable[T]](name string, bits int) Type {
	return Of[T, P](name, func(s string) (T, error) {
		n, err := strconv.ParseInt(s, 0, bits)
		return T(n), err
	}, nil)
}

func parseBool(s string) (wire.Bool, error) {
	b, err := strconv.ParseBool(s)
	return wire.Bool(b), err
}

func parseUnit(s string) (wire.Unit, error) {
	switch s {
	case "", "()", "{}":
		return wire.Unit{}, nil
	}
	return wire.Unit{}, errors.Newf("unit takes no value, got %q", s)
}
