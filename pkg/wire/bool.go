package wire

import "fmt"

// Bool is a single byte, 0 for false and 1 for true.
type Bool bool

func (b Bool) EncodeInto(buf []byte) ([]byte, error) {
	if b {
		return append(buf, 1), nil
	}
	return append(buf, 0), nil
}

func (Bool) WireSize() int { return 1 }

func (b *Bool) DecodeFrom(data []byte) (int, error) {
	if len(data) < 1 {
		return 0, Short("bool", 1, data)
	}
	switch data[0] {
	case 0:
		*b = false
	case 1:
		*b = true
	default:
		return 0, Malformed("bool", data[:1], fmt.Sprintf("invalid value %#x", data[0]))
	}
	return 1, nil
}

// Unit is the empty marker value. It has no bytes on the wire.
type Unit struct{}

func (Unit) EncodeInto(buf []byte) ([]byte, error) { return buf, nil }
func (Unit) WireSize() int                           { return 0 }
func (*Unit) DecodeFrom([]byte) (int, error)         { return 0, nil }
