//go:build bench
// +build bench

package wire

import "testing"

func BenchmarkEncode(b *testing.B) {
	e := envelope{ID: NewGUID(), Ping: ping{Port: 6346, Addr: IPv4{10, 0, 0, 1}}, Ack: true}

	b.Run("builder", func(b *testing.B) {
		buf := make([]byte, 0, 64)
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := envelopeCodec.EncodeInto(&e, buf[:0]); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("derived", func(b *testing.B) {
		r := MustDerive[envelope]()
		buf := make([]byte, 0, 64)
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, err := r.EncodeInto(&e, buf[:0]); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkDecode(b *testing.B) {
	e := envelope{ID: NewGUID(), Ping: ping{Port: 6346, Addr: IPv4{10, 0, 0, 1}}, Ack: true}
	data, err := envelopeCodec.Encode(&e)
	if err != nil {
		b.Fatal(err)
	}

	b.Run("builder", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, _, err := envelopeCodec.Decode(data); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("derived", func(b *testing.B) {
		r := MustDerive[envelope]()
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if _, _, err := r.Decode(data); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("pair", func(b *testing.B) {
		pair := data[:20]
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, _, err := Decode[Pair[GUID, *GUID, U32, *U32]](pair); err != nil {
				b.Fatal(err)
			}
		}
	})
}
