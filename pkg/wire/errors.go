package wire

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientInput = errors.New("wire: insufficient input")
	ErrMalformed         = errors.New("wire: malformed input")
	ErrTrailingBytes     = errors.New("wire: trailing bytes after value")
	ErrZeroWidth         = errors.New("wire: zero-width value in sequence")
	ErrEncode            = errors.New("wire: encode failed")
	ErrNotTransmittable  = errors.New("wire: type is not transmittable")
)

// Kind classifies a DecodeError.
type Kind uint8

const (
	KindInsufficientInput Kind = iota + 1
	KindMalformed
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindInsufficientInput:
		return "insufficient input"
	case KindMalformed:
		return "malformed"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// DecodeError describes why a value could not be read from its input.
type DecodeError struct {
	Kind     Kind
	Type     string // Go name of the type being decoded
	Required int    // bytes needed, for KindInsufficientInput
	Actual   int    // bytes available
	Data     []byte // copy of the bytes that were seen
	Reason   string
}

func (e *DecodeError) Error() string {
	switch e.Kind {
	case KindInsufficientInput:
		return fmt.Sprintf("wire: %d bytes of input required to decode %s, found %d: %v",
			e.Required, e.Type, e.Actual, e.Data)
	case KindMalformed:
		return fmt.Sprintf("wire: cannot decode %s from %v: %s", e.Type, e.Data, e.Reason)
	default:
		return e.Reason
	}
}

func (e *DecodeError) Is(target error) bool {
	switch target {
	case ErrInsufficientInput:
		return e.Kind == KindInsufficientInput
	case ErrMalformed:
		return e.Kind == KindMalformed
	}
	return false
}

// Short returns the error for data holding fewer than required bytes.
func Short(typ string, required int, data []byte) *DecodeError {
	return &DecodeError{
		Kind:     KindInsufficientInput,
		Type:     typ,
		Required: required,
		Actual:   len(data),
		Data:     clone(data),
	}
}

// Malformed returns the error for bytes that are present but cannot be
// interpreted as typ.
func Malformed(typ string, data []byte, reason string) *DecodeError {
	return &DecodeError{
		Kind:   KindMalformed,
		Type:   typ,
		Actual: len(data),
		Data:   clone(data),
		Reason: reason,
	}
}

// Errorf returns a custom decode error for codecs outside this package.
func Errorf(format string, args ...any) *DecodeError {
	return &DecodeError{Kind: KindCustom, Reason: fmt.Sprintf(format, args...)}
}

// EncodeError reports a value that its encoder refused to write.
type EncodeError struct {
	Type   string
	Reason string
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("wire: cannot encode %s: %s", e.Type, e.Reason)
}

func (e *EncodeError) Is(target error) bool {
	return target == ErrEncode
}

func clone(data []byte) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	return out
}
