// Lesson: fuzzing.
//
// Fuzzing is property testing with the toolchain in the driver's seat: the
// engine mutates inputs, watches coverage, and saves any input that crashes
// or violates a check into testdata/fuzz as a permanent regression case.
// Seeds go in with f.Add; `go test -fuzz=FuzzDecode ./base62` explores from
// there. Without -fuzz the seeds still run as ordinary tests.
package base62

import "testing"

func FuzzDecode(f *testing.F) {
	f.Add("0")
	f.Add("Z")
	f.Add("10")
	f.Add("deadbeef")
	f.Add("")
	f.Add("ZZZZZZZZZZZ")
	f.Add("00000000007")

	f.Fuzz(func(t *testing.T, s string) {
		n, err := StdEncoding.Decode(s)
		if err != nil {
			// Rejected input is fine; the interesting part is that
			// Decode returned instead of panicking.
			return
		}

		// Anything Decode accepts must be made of valid digits.
		if !StdEncoding.IsValid(s) {
			t.Errorf("Decode accepted %q but IsValid rejects it", s)
		}

		// The accepted value must round trip through the canonical form,
		// which is never longer than the input (the input may carry
		// leading zero digits).
		canonical := StdEncoding.Encode(n)
		if len(canonical) > len(s) {
			t.Errorf("canonical form %q longer than accepted input %q", canonical, s)
		}
		m, err := StdEncoding.Decode(canonical)
		if err != nil {
			t.Errorf("Decode(Encode(%d)) failed: %v", n, err)
		} else if m != n {
			t.Errorf("canonical round trip lost the value: %d -> %q -> %d", n, canonical, m)
		}
	})
}
