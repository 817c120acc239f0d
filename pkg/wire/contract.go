package wire

import "fmt"

// Encodable is implemented by values that can append their wire form to a
// buffer.
type Encodable interface {
	// EncodeInto appends the encoding of the receiver to buf and returns the
	// extended buffer. Existing content of buf is left as is.
	EncodeInto(buf []byte) ([]byte, error)
}

// Decoder is implemented by pointers to values that can be read from a
// prefix of their input.
type Decoder interface {
	// DecodeFrom sets the receiver from the leading bytes of data and returns
	// how many bytes it used. Trailing bytes are left for the caller.
	DecodeFrom(data []byte) (int, error)
}

// Decodable constrains P to be a *T that decodes.
type Decodable[T any] interface {
	*T
	Decoder
}

// Transmittable constrains P to be a *T that both encodes and decodes. It
// carries no behaviour of its own.
type Transmittable[T any] interface {
	*T
	Encodable
	Decoder
}

// Sizer is implemented by types whose encoding always has the same length.
type Sizer interface {
	WireSize() int
}

// Encode returns the encoding of v in a new buffer.
func Encode(v Encodable) ([]byte, error) {
	var buf []byte
	if s, ok := v.(Sizer); ok && s.WireSize() > 0 {
		buf = make([]byte, 0, s.WireSize())
	}
	return v.EncodeInto(buf)
}

// Decode reads a T from the front of data and returns it with the number of
// bytes consumed.
func Decode[T any, P Decodable[T]](data []byte) (T, int, error) {
	var v T
	n, err := P(&v).DecodeFrom(data)
	if err != nil {
		var zero T
		return zero, 0, err
	}
	return v, n, nil
}

// DecodeExact is like Decode but requires the value to use all of data.
func DecodeExact[T any, P Decodable[T]](data []byte) (T, error) {
	v, n, err := Decode[T, P](data)
	if err != nil {
		return v, err
	}
	if n != len(data) {
		var zero T
		return zero, &trailingError{consumed: n, total: len(data)}
	}
	return v, nil
}

// DecodeAll reads consecutive T values until data is exhausted.
func DecodeAll[T any, P Decodable[T]](data []byte) ([]T, error) {
	var out []T
	for offset := 0; offset < len(data); {
		v, n, err := Decode[T, P](data[offset:])
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, ErrZeroWidth
		}
		out = append(out, v)
		offset += n
	}
	return out, nil
}

// AppendAll encodes values one after another onto buf.
func AppendAll[E Encodable](buf []byte, values ...E) ([]byte, error) {
	var err error
	for _, v := range values {
		if buf, err = v.EncodeInto(buf); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

type trailingError struct {
	consumed, total int
}

func (e *trailingError) Error() string {
	return fmt.Sprintf("wire: trailing bytes after value: used %d of %d", e.consumed, e.total)
}

func (e *trailingError) Is(target error) bool {
	return target == ErrTrailingBytes
}
