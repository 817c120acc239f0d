package wire

import "github.com/google/uuid"

// GUID is a 16-byte identifier. The protocol sends it with the canonical UUID
// byte order reversed.
type GUID uuid.UUID

// NewGUID returns a random (version 4) identifier.
func NewGUID() GUID {
	return GUID(uuid.New())
}

// ParseGUID parses any form accepted by uuid.Parse.
func ParseGUID(s string) (GUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return GUID{}, err
	}
	return GUID(u), nil
}

func (g GUID) UUID() uuid.UUID { return uuid.UUID(g) }
func (g GUID) String() string  { return uuid.UUID(g).String() }

func (g GUID) EncodeInto(buf []byte) ([]byte, error) {
	for i := len(g) - 1; i >= 0; i-- {
		buf = append(buf, g[i])
	}
	return buf, nil
}

func (GUID) WireSize() int { return 16 }

func (g *GUID) DecodeFrom(data []byte) (int, error) {
	if len(data) < 16 {
		return 0, Short("GUID", 16, data)
	}
	for i := range g {
		g[i] = data[15-i]
	}
	return 16, nil
}
