package wire

import "encoding/binary"

// Fixed-width integers. All of them encode little-endian.
type (
	U8  uint8
	I8  int8
	U16 uint16
	I16 int16
	U32 uint32
	I32 int32
	U64 uint64
	I64 int64
)

func (v U8) EncodeInto(buf []byte) ([]byte, error) { return append(buf, byte(v)), nil }
func (U8) WireSize() int                             { return 1 }

func (v *U8) DecodeFrom(data []byte) (int, error) {
	if len(data) < 1 {
		return 0, Short("uint8", 1, data)
	}
	*v = U8(data[0])
	return 1, nil
}

func (v I8) EncodeInto(buf []byte) ([]byte, error) { return append(buf, byte(v)), nil }
func (I8) WireSize() int                             { return 1 }

func (v *I8) DecodeFrom(data []byte) (int, error) {
	if len(data) < 1 {
		return 0, Short("int8", 1, data)
	}
	*v = I8(data[0])
	return 1, nil
}

func (v U16) EncodeInto(buf []byte) ([]byte, error) {
	return binary.LittleEndian.AppendUint16(buf, uint16(v)), nil
}
func (U16) WireSize() int { return 2 }

func (v *U16) DecodeFrom(data []byte) (int, error) {
	if len(data) < 2 {
		return 0, Short("uint16", 2, data)
	}
	*v = U16(binary.LittleEndian.Uint16(data))
	return 2, nil
}

func (v I16) EncodeInto(buf []byte) ([]byte, error) {
	return binary.LittleEndian.AppendUint16(buf, uint16(v)), nil
}
func (I16) WireSize() int { return 2 }

func (v *I16) DecodeFrom(data []byte) (int, error) {
	if len(data) < 2 {
		return 0, Short("int16", 2, data)
	}
	*v = I16(binary.LittleEndian.Uint16(data))
	return 2, nil
}

func (v U32) EncodeInto(buf []byte) ([]byte, error) {
	return binary.LittleEndian.AppendUint32(buf, uint32(v)), nil
}
func (U32) WireSize() int { return 4 }

func (v *U32) DecodeFrom(data []byte) (int, error) {
	if len(data) < 4 {
		return 0, Short("uint32", 4, data)
	}
	*v = U32(binary.LittleEndian.Uint32(data))
	return 4, nil
}

func (v I32) EncodeInto(buf []byte) ([]byte, error) {
	return binary.LittleEndian.AppendUint32(buf, uint32(v)), nil
}
func (I32) WireSize() int { return 4 }

func (v *I32) DecodeFrom(data []byte) (int, error) {
	if len(data) < 4 {
		return 0, Short("int32", 4, data)
	}
	*v = I32(binary.LittleEndian.Uint32(data))
	return 4, nil
}

func (v U64) EncodeInto(buf []byte) ([]byte, error) {
	return binary.LittleEndian.AppendUint64(buf, uint64(v)), nil
}
func (U64) WireSize() int { return 8 }

func (v *U64) DecodeFrom(data []byte) (int, error) {
	if len(data) < 8 {
		return 0, Short("uint64", 8, data)
	}
	*v = U64(binary.LittleEndian.Uint64(data))
	return 8, nil
}

func (v I64) EncodeInto(buf []byte) ([]byte, error) {
	return binary.LittleEndian.AppendUint64(buf, uint64(v)), nil
}
func (I64) WireSize() int { return 8 }

func (v *I64) DecodeFrom(data []byte) (int, error) {
	if len(data) < 8 {
		return 0, Short("int64", 8, data)
	}
	*v = I64(binary.LittleEndian.Uint64(data))
	return 8, nil
}
