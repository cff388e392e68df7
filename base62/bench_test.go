// Lesson: benchmarks.
//
// A benchmark is a function named BenchmarkXxx(b *testing.B) that runs the
// measured code b.N times; the framework picks N until the timing is
// stable. Run them with `go test -bench=. -benchmem ./base62`. Two habits
// worth copying: call b.ResetTimer after any setup so it is not measured,
// and keep the work per iteration honest, or the compiler may delete it.
package base62

import (
	"math"
	"testing"
)

var benchValues = []uint64{0, 61, 3844, 238328, 916132831, math.MaxUint64}

var sink string

func BenchmarkEncode(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Assigning to a package-level sink keeps the call observable.
		sink = Encode(benchValues[i%len(benchValues)])
	}
}

func BenchmarkEncode_ReportAllocs(b *testing.B) {
	// b.ReportAllocs adds allocs/op to the output; with -benchmem every
	// benchmark reports it. Encode allocates once for the result string.
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		sink = Encode(math.MaxUint64)
	}
}

func BenchmarkDecode(b *testing.B) {
	encoded := make([]string, len(benchValues))
	for i, v := range benchValues {
		encoded[i] = Encode(v)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(encoded[i%len(encoded)]); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode_Parallel(b *testing.B) {
	s := Encode(math.MaxUint64)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			// b.Fatal is off limits inside the parallel body; it would
			// run FailNow on a worker goroutine.
			if _, err := Decode(s); err != nil {
				b.Error(err)
				return
			}
		}
	})
}
