// Package wire provides the binary codec layer for the transmit peer protocol.
//
// The wire format is little-endian, positional and length-implicit: a value's
// encoding carries no type tag, no length prefix and no delimiter. The decoder
// must know which type comes next, and every decode reports how many leading
// bytes of its input it used so the caller can continue with the rest.
//
// # Contracts
//
// A type is encodable when it implements [Encodable]:
//
//	EncodeInto(buf []byte) ([]byte, error)
//
// EncodeInto appends the value's wire bytes to buf and returns the extended
// slice, in the manner of the append builtin. It never touches bytes already
// in buf.
//
// A type is decodable when its pointer implements [Decoder]:
//
//	DecodeFrom(data []byte) (int, error)
//
// DecodeFrom reconstructs the receiver from a prefix of data and returns the
// number of bytes consumed. Extra trailing bytes are not an error. Short input
// yields a [*DecodeError] of kind [KindInsufficientInput]; decoders never read
// past len(data).
//
// [Transmittable] is the generic constraint combining both sides. It is used
// as a bound on type parameters, in the same way as [Decodable]:
//
//	func Decode[T any, P Decodable[T]](data []byte) (T, int, error)
//
// # Wire Format
//
//	Integers      little-endian, 1/2/4/8/16 bytes (U8..U64, I8..I64, U128, I128)
//	Bool          1 byte, 0 or 1
//	IPv4          4 octets in address order
//	GUID          16 bytes, reversed relative to the canonical UUID bytes
//	Unit          0 bytes
//	Records       concatenation of the field encodings in field order
//
// # Records
//
// Composite values are described by a [Record] field table and sequenced by a
// single algorithm. A table can be built explicitly:
//
//	var pingRecord = wire.NewRecord[Ping]()
//
//	func init() {
//	    wire.Field(pingRecord, "port", func(p *Ping) *wire.U16 { return &p.Port })
//	    wire.Field(pingRecord, "addr", func(p *Ping) *wire.IPv4 { return &p.Addr })
//	}
//
//	func (p Ping) EncodeInto(buf []byte) ([]byte, error) { return pingRecord.EncodeInto(&p, buf) }
//	func (p *Ping) DecodeFrom(data []byte) (int, error)  { return pingRecord.DecodeFrom(p, data) }
//
// or derived from the struct definition with [Derive], which checks once, at
// construction, that every exported field satisfies the contract.
//
// Generic records state the contract on their type parameters, so an
// instantiation with a non-conforming type does not compile:
//
//	type Pair[A any, PA Transmittable[A], B any, PB Transmittable[B]] struct { ... }
//
// # Errors
//
// A record stops at the first failing field and returns that field's error
// unchanged, so callers see the primitive's own diagnostic. Use errors.Is with
// [ErrInsufficientInput] or [ErrMalformed] to classify decode failures.
//
// # Thread Safety
//
// Encoding and decoding keep no state between calls. Records are immutable
// once built and may be shared between goroutines.
package wire
