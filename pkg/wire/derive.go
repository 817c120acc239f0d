package wire

import (
	"reflect"
	"sync"

	"github.com/cockroachdb/errors"
)

var (
	encodableType = reflect.TypeFor[Encodable]()
	decoderType   = reflect.TypeFor[Decoder]()
	derived       sync.Map // reflect.Type -> *Record[T]
)

// Derive builds the record for struct type T from its definition.
//
// Exported fields are taken in declaration order. A field whose pointer type
// implements both Encodable and Decoder is used directly; a struct field that
// does not is flattened into the table, which gives the same bytes as
// encoding it as a nested record. The exported fields of an unexported
// embedded struct are promoted and taken in its place. Other unexported
// fields and fields tagged `wire:"-"` are skipped. Any other field makes
// Derive fail with an error matching ErrNotTransmittable, before any value is
// encoded.
//
// Results are cached per type.
func Derive[T any]() (*Record[T], error) {
	t := reflect.TypeFor[T]()
	if r, ok := derived.Load(t); ok {
		return r.(*Record[T]), nil
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.Wrapf(ErrNotTransmittable, "cannot derive a record for %s", t)
	}

	r := NewRecord[T]()
	if err := deriveFields(r, t, nil, ""); err != nil {
		return nil, err
	}
	actual, _ := derived.LoadOrStore(t, r)
	return actual.(*Record[T]), nil
}

// MustDerive is like Derive but panics on error.
func MustDerive[T any]() *Record[T] {
	r, err := Derive[T]()
	if err != nil {
		panic(err)
	}
	return r
}

func deriveFields[T any](r *Record[T], t reflect.Type, path []int, prefix string) error {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Tag.Get("wire") == "-" {
			continue
		}

		index := append(append(make([]int, 0, len(path)+1), path...), i)
		name := prefix + sf.Name
		pt := reflect.PointerTo(sf.Type)

		if !sf.IsExported() {
			if !sf.Anonymous {
				continue
			}
			// promoted fields of an unexported embedded struct keep their own names
			if sf.Type.Kind() != reflect.Struct {
				return errors.Wrapf(ErrNotTransmittable, "embedded field %s of %s has type %s", name, r.name, sf.Type)
			}
			if err := deriveFields(r, sf.Type, index, prefix); err != nil {
				return err
			}
			continue
		}

		switch {
		case pt.Implements(encodableType) && pt.Implements(decoderType):
			r.add(ShapeNamed, reflectField[T](name, index, sf.Type))
		case sf.Type.Kind() == reflect.Struct:
			if err := deriveFields(r, sf.Type, index, name+"."); err != nil {
				return err
			}
		default:
			return errors.Wrapf(ErrNotTransmittable, "field %s of %s has type %s", name, r.name, sf.Type)
		}
	}
	return nil
}

func reflectField[T any](name string, index []int, ft reflect.Type) field[T] {
	size := -1
	if s, ok := reflect.New(ft).Interface().(Sizer); ok {
		size = s.WireSize()
	}

	at := func(v *T) any {
		return reflect.ValueOf(v).Elem().FieldByIndex(index).Addr().Interface()
	}
	return field[T]{
		FieldInfo: FieldInfo{Name: name, Type: ft.String(), Size: size},
		encode: func(v *T, buf []byte) ([]byte, error) {
			return at(v).(Encodable).EncodeInto(buf)
		},
		decode: func(v *T, data []byte) (int, error) {
			return at(v).(Decoder).DecodeFrom(data)
		},
	}
}
