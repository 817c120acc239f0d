// Package catalog maps type names to wire codecs so that values can be
// encoded and decoded from text, by the command line tool and the API.
package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/ssargent/transmit/pkg/wire"
)

var (
	ErrUnknownType   = errors.New("unknown type")
	ErrDuplicateType = errors.New("duplicate type")
)

// Type is a named wire type with text conversions in both directions.
type Type struct {
	Name string
	Size int // fixed encoded size, -1 if it varies

	parse       func(text string) (wire.Encodable, error)
	decode      func(data []byte) (string, int, error)
	decodeAll   func(data []byte) ([]string, error)
	decodeExact func(data []byte) (string, error)
}

// Of builds a Type for T. parse reads the text form; format renders a decoded
// value and defaults to fmt.Sprint.
func Of[T any, P wire.Transmittable[T]](name string, parse func(string) (T, error), format func(T) string) Type {
	if format == nil {
		format = func(v T) string { return fmt.Sprint(v) }
	}

	var zero T
	size := -1
	if s, ok := any(P(&zero)).(wire.Sizer); ok {
		size = s.WireSize()
	}

	return Type{
		Name: name,
		Size: size,
		parse: func(text string) (wire.Encodable, error) {
			v, err := parse(strings.TrimSpace(text))
			if err != nil {
				return nil, errors.Wrapf(err, "parse %s", name)
			}
			return P(&v), nil
		},
		decode: func(data []byte) (string, int, error) {
			v, n, err := wire.Decode[T, P](data)
			if err != nil {
				return "", 0, err
			}
			return format(v), n, nil
		},
		decodeAll: func(data []byte) ([]string, error) {
			values, err := wire.DecodeAll[T, P](data)
			if err != nil {
				return nil, err
			}
			out := make([]string, len(values))
			for i, v := range values {
				out[i] = format(v)
			}
			return out, nil
		},
		decodeExact: func(data []byte) (string, error) {
			v, err := wire.DecodeExact[T, P](data)
			if err != nil {
				return "", err
			}
			return format(v), nil
		},
	}
}

// Parse reads a value from its text form.
func (t Type) Parse(text string) (wire.Encodable, error) { return t.parse(text) }

// Encode parses text and returns the wire bytes of the value.
func (t Type) Encode(text string) ([]byte, error) {
	v, err := t.parse(text)
	if err != nil {
		return nil, err
	}
	return wire.Encode(v)
}

// Decode reads one value from the front of data. Codec errors are returned
// unchanged.
func (t Type) Decode(data []byte) (string, int, error) { return t.decode(data) }

// DecodeAll reads consecutive values until data is exhausted.
func (t Type) DecodeAll(data []byte) ([]string, error) { return t.decodeAll(data) }

// DecodeExact reads one value that must use all of data.
func (t Type) DecodeExact(data []byte) (string, error) { return t.decodeExact(data) }

// Catalog is a set of named types. It is safe for concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	types map[string]Type
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{types: make(map[string]Type)}
}

// Default returns a catalog holding the built-in types.
func Default() *Catalog {
	c := New()
	for _, t := range builtins() {
		if err := c.Register(t); err != nil {
			panic(err)
		}
	}
	return c
}

// Register adds t. Names are case-insensitive and must be unique.
func (c *Catalog) Register(t Type) error {
	name := strings.ToLower(strings.TrimSpace(t.Name))
	if name == "" {
		return errors.New("type name can't be blank")
	}
	if t.parse == nil || t.decode == nil {
		return errors.Newf("type %q has no codec, build it with catalog.Of", name)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.types[name]; ok {
		return errors.Mark(errors.Newf("type %q already registered", name), ErrDuplicateType)
	}
	t.Name = name
	c.types[name] = t
	return nil
}

// Lookup returns the type registered under name.
func (c *Catalog) Lookup(name string) (Type, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.types[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Type{}, errors.Mark(errors.Newf("unknown type %q", name), ErrUnknownType)
	}
	return t, nil
}

// Names returns the registered type names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.types))
	for name := range c.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Types returns the registered types sorted by name.
func (c *Catalog) Types() []Type {
	names := c.Names()
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Type, 0, len(names))
	for _, name := range names {
		if t, ok := c.types[name]; ok {
			out = append(out, t)
		}
	}
	return out
}
