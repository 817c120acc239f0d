package wire

// Pair is a positional record of two values. Both type arguments must satisfy
// the codec contract; the pointer parameters are inferred by MakePair.
type Pair[A any, PA Transmittable[A], B any, PB Transmittable[B]] struct {
	First  A
	Second B
}

// MakePair returns the pair (a, b).
func MakePair[A any, PA Transmittable[A], B any, PB Transmittable[B]](a A, b B) Pair[A, PA, B, PB] {
	return Pair[A, PA, B, PB]{First: a, Second: b}
}

func pairRecord[A any, PA Transmittable[A], B any, PB Transmittable[B]]() *Record[Pair[A, PA, B, PB]] {
	return Shared(func(r *Record[Pair[A, PA, B, PB]]) {
		Position[Pair[A, PA, B, PB], A, PA](r, func(p *Pair[A, PA, B, PB]) *A { return &p.First })
		Position[Pair[A, PA, B, PB], B, PB](r, func(p *Pair[A, PA, B, PB]) *B { return &p.Second })
	})
}

func (p Pair[A, PA, B, PB]) EncodeInto(buf []byte) ([]byte, error) {
	return pairRecord[A, PA, B, PB]().EncodeInto(&p, buf)
}

func (p *Pair[A, PA, B, PB]) DecodeFrom(data []byte) (int, error) {
	return pairRecord[A, PA, B, PB]().DecodeFrom(p, data)
}

// Triple is a positional record of three values.
type Triple[A any, PA Transmittable[A], B any, PB Transmittable[B], C any, PC Transmittable[C]] struct {
	First  A
	Second B
	Third  C
}

// MakeTriple returns the triple (a, b, c).
func MakeTriple[A any, PA Transmittable[A], B any, PB Transmittable[B], C any, PC Transmittable[C]](a A, b B, c C) Triple[A, PA, B, PB, C, PC] {
	return Triple[A, PA, B, PB, C, PC]{First: a, Second: b, Third: c}
}

func tripleRecord[A any, PA Transmittable[A], B any, PB Transmittable[B], C any, PC Transmittable[C]]() *Record[Triple[A, PA, B, PB, C, PC]] {
	return Shared(func(r *Record[Triple[A, PA, B, PB, C, PC]]) {
		Position[Triple[A, PA, B, PB, C, PC], A, PA](r, func(t *Triple[A, PA, B, PB, C, PC]) *A { return &t.First })
		Position[Triple[A, PA, B, PB, C, PC], B, PB](r, func(t *Triple[A, PA, B, PB, C, PC]) *B { return &t.Second })
		Position[Triple[A, PA, B, PB, C, PC], C, PC](r, func(t *Triple[A, PA, B, PB, C, PC]) *C { return &t.Third })
	})
}

func (t Triple[A, PA, B, PB, C, PC]) EncodeInto(buf []byte) ([]byte, error) {
	return tripleRecord[A, PA, B, PB, C, PC]().EncodeInto(&t, buf)
}

func (t *Triple[A, PA, B, PB, C, PC]) DecodeFrom(data []byte) (int, error) {
	return tripleRecord[A, PA, B, PB, C, PC]().DecodeFrom(t, data)
}
