package catalog

import (
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/ssargent/transmit/pkg/wire"
)

// Probe is a generic record: two caller-chosen fields followed by the
// address they were seen from. Its codec is derived from the struct, and the
// type parameters only accept wire types.
type Probe[A any, PA wire.Transmittable[A], B any, PB wire.Transmittable[B]] struct {
	A    A
	B    B
	Addr wire.IPv4
}

func (p Probe[A, PA, B, PB]) EncodeInto(buf []byte) ([]byte, error) {
	return wire.MustDerive[Probe[A, PA, B, PB]]().EncodeInto(&p, buf)
}

func (p *Probe[A, PA, B, PB]) DecodeFrom(data []byte) (int, error) {
	return wire.MustDerive[Probe[A, PA, B, PB]]().DecodeFrom(p, data)
}

func (p Probe[A, PA, B, PB]) WireSize() int {
	return wire.MustDerive[Probe[A, PA, B, PB]]().Size()
}

// GUIDProbe carries a node identifier and a 32-bit counter.
type GUIDProbe = Probe[wire.GUID, *wire.GUID, wire.U32, *wire.U32]

// NewGUIDProbe returns a probe for a fresh identifier.
func NewGUIDProbe(seq uint32, addr netip.Addr) (GUIDProbe, error) {
	ip, err := wire.IPv4From(addr)
	if err != nil {
		return GUIDProbe{}, err
	}
	return GUIDProbe{A: wire.NewGUID(), B: wire.U32(seq), Addr: ip}, nil
}

// ParseGUIDProbe reads "guid,seq,ipv4".
func ParseGUIDProbe(s string) (GUIDProbe, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return GUIDProbe{}, errors.Newf("probe wants guid,seq,ipv4, got %q", s)
	}

	id, err := wire.ParseGUID(strings.TrimSpace(parts[0]))
	if err != nil {
		return GUIDProbe{}, err
	}
	seq, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 0, 32)
	if err != nil {
		return GUIDProbe{}, errors.Wrap(err, "seq")
	}
	addr, err := wire.ParseIPv4(strings.TrimSpace(parts[2]))
	if err != nil {
		return GUIDProbe{}, err
	}
	return GUIDProbe{A: id, B: wire.U32(seq), Addr: addr}, nil
}

// String renders the probe in the form ParseGUIDProbe reads.
func (p Probe[A, PA, B, PB]) String() string {
	return fmt.Sprintf("%v,%v,%v", p.A, p.B, p.Addr)
}
