package wire

import (
	"fmt"
	"net/netip"
)

// IPv4 is a network address. Its four octets go on the wire in address
// order; they are not reinterpreted as a little-endian integer.
type IPv4 [4]byte

// IPv4From converts a, which must be an IPv4 or IPv4-mapped IPv6 address.
func IPv4From(a netip.Addr) (IPv4, error) {
	a = a.Unmap()
	if !a.Is4() {
		return IPv4{}, fmt.Errorf("wire: %s is not an IPv4 address", a)
	}
	return IPv4(a.As4()), nil
}

// ParseIPv4 parses dotted-decimal notation.
func ParseIPv4(s string) (IPv4, error) {
	a, err := netip.ParseAddr(s)
	if err != nil {
		return IPv4{}, err
	}
	return IPv4From(a)
}

func (a IPv4) Addr() netip.Addr { return netip.AddrFrom4(a) }
func (a IPv4) String() string   { return a.Addr().String() }

func (a IPv4) EncodeInto(buf []byte) ([]byte, error) {
	return append(buf, a[:]...), nil
}

func (IPv4) WireSize() int { return 4 }

func (a *IPv4) DecodeFrom(data []byte) (int, error) {
	if len(data) < 4 {
		return 0, Short("IPv4", 4, data)
	}
	copy(a[:], data[:4])
	return 4, nil
}
