package wire

import (
	"fmt"
	"reflect"
	"sync"
)

// Shape tells how a record addresses its fields.
type Shape uint8

const (
	ShapeUnit Shape = iota
	ShapeNamed
	ShapePositional
)

func (s Shape) String() string {
	switch s {
	case ShapeUnit:
		return "unit"
	case ShapeNamed:
		return "named"
	case ShapePositional:
		return "positional"
	default:
		return "unknown"
	}
}

// FieldInfo describes one entry of a record's field table.
type FieldInfo struct {
	Name  string // empty for positional fields
	Index int
	Type  string
	Size  int // fixed encoded size, -1 if it varies
}

type field[T any] struct {
	FieldInfo
	encode func(v *T, buf []byte) ([]byte, error)
	decode func(v *T, data []byte) (int, error)
}

// Record is the ordered field table of a composite type T. Its encoding is
// the concatenation of its fields' encodings, in table order, with nothing
// around or between them.
//
// A Record is built once, with Field or Position calls or by Derive, and is
// read-only afterwards.
type Record[T any] struct {
	name   string
	shape  Shape
	fields []field[T]
}

// NewRecord returns an empty table for T. With no fields added it describes
// a marker type that encodes to nothing.
func NewRecord[T any]() *Record[T] {
	return &Record[T]{name: reflect.TypeFor[T]().String()}
}

// Field appends a named field. get must return a pointer into the record
// value it is given. F must satisfy the codec contract, which the compiler
// checks through P.
func Field[T any, F any, P Transmittable[F]](r *Record[T], name string, get func(*T) *F) *Record[T] {
	if name == "" {
		panic("wire: field name can't be blank")
	}
	for _, f := range r.fields {
		if f.Name == name {
			panic(fmt.Sprintf("wire: duplicate field %q in %s", name, r.name))
		}
	}
	r.add(ShapeNamed, accessorField[T, F, P](r.name, name, get))
	return r
}

// Position appends a field addressed by its index.
func Position[T any, F any, P Transmittable[F]](r *Record[T], get func(*T) *F) *Record[T] {
	r.add(ShapePositional, accessorField[T, F, P](r.name, "", get))
	return r
}

func (r *Record[T]) add(shape Shape, f field[T]) {
	if r.shape != ShapeUnit && r.shape != shape {
		panic(fmt.Sprintf("wire: %s mixes %s and %s fields", r.name, r.shape, shape))
	}
	r.shape = shape
	f.Index = len(r.fields)
	r.fields = append(r.fields, f)
}

func accessorField[T any, F any, P Transmittable[F]](record, name string, get func(*T) *F) field[T] {
	var zero F
	size := -1
	if s, ok := any(P(&zero)).(Sizer); ok {
		size = s.WireSize()
	}
	typ := reflect.TypeFor[F]().String()

	return field[T]{
		FieldInfo: FieldInfo{Name: name, Type: typ, Size: size},
		encode: func(v *T, buf []byte) ([]byte, error) {
			p := get(v)
			if p == nil {
				return nil, &EncodeError{Type: record, Reason: "accessor for " + typ + " returned nil"}
			}
			return P(p).EncodeInto(buf)
		},
		decode: func(v *T, data []byte) (int, error) {
			p := get(v)
			if p == nil {
				return 0, Errorf("wire: accessor for %s in %s returned nil", typ, record)
			}
			return P(p).DecodeFrom(data)
		},
	}
}

func (r *Record[T]) Name() string { return r.name }
func (r *Record[T]) Shape() Shape { return r.shape }

// Fields returns a copy of the field table.
func (r *Record[T]) Fields() []FieldInfo {
	out := make([]FieldInfo, len(r.fields))
	for i, f := range r.fields {
		out[i] = f.FieldInfo
	}
	return out
}

// Size returns the fixed encoded size of T, or -1 if any field varies.
func (r *Record[T]) Size() int {
	total := 0
	for _, f := range r.fields {
		if f.Size < 0 {
			return -1
		}
		total += f.Size
	}
	return total
}

// EncodeInto appends the fields of v to buf in table order. The first field
// error is returned as is and the buffer is dropped.
func (r *Record[T]) EncodeInto(v *T, buf []byte) ([]byte, error) {
	var err error
	for i := range r.fields {
		if buf, err = r.fields[i].encode(v, buf); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

// DecodeFrom reads the fields in table order, each from the bytes the
// previous ones left, and stores the result in v only if every field
// succeeded. It returns the total number of bytes consumed.
func (r *Record[T]) DecodeFrom(v *T, data []byte) (int, error) {
	var out T
	offset := 0
	for i := range r.fields {
		rest := data[offset:]
		n, err := r.fields[i].decode(&out, rest)
		if err != nil {
			return 0, err
		}
		if n < 0 || n > len(rest) {
			return 0, Errorf("wire: decoder for %s reported %d bytes consumed of %d", r.fields[i].Type, n, len(rest))
		}
		offset += n
	}
	*v = out
	return offset, nil
}

// Encode returns the encoding of v in a new buffer.
func (r *Record[T]) Encode(v *T) ([]byte, error) {
	var buf []byte
	if size := r.Size(); size > 0 {
		buf = make([]byte, 0, size)
	}
	return r.EncodeInto(v, buf)
}

// Decode reads a T from the front of data.
func (r *Record[T]) Decode(data []byte) (T, int, error) {
	var v T
	n, err := r.DecodeFrom(&v, data)
	return v, n, err
}

var shared sync.Map // reflect.Type -> *Record[T]

// Shared returns the process-wide record for T, calling build on an empty
// table the first time. Later calls ignore build. Generic types use it to keep
// one table per instantiation.
func Shared[T any](build func(r *Record[T])) *Record[T] {
	key := reflect.TypeFor[T]()
	if r, ok := shared.Load(key); ok {
		return r.(*Record[T])
	}
	r := NewRecord[T]()
	build(r)
	actual, _ := shared.LoadOrStore(key, r)
	return actual.(*Record[T])
}
