package bitmap

import "testing"

func TestAnd(t *testing.T) {
	tcs := []struct {
		name string
		a, b Dense
		eout Dense
	}{
		{
			name: "aligned",
			a:    mustDense(t, "10101010"),
			b:    mustDense(t, "11001100"),
			eout: mustDense(t, "10001000"),
		}, {
			name: "short a",
			a:    mustDense(t, "101"),
			b:    mustDense(t, "1111 1111 1"),
			eout: mustDense(t, "101"),
		}, {
			name: "empty",
			a:    Dense{},
			b:    mustDense(t, "1111"),
			eout: Dense{},
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			out := And(tc.a, tc.b)
			if !Equal(out, tc.eout) {
				t.Errorf("And(%v, %v) == %v, want %v", tc.a, tc.b, out, tc.eout)
			}
		})
	}
}

func TestXNor(t *testing.T) {
	tcs := []struct {
		name string
		a, b Dense
		eout Dense
	}{
		{
			name: "aligned",
			a:    mustDense(t, "10101010"),
			b:    mustDense(t, "11001100"),
			eout: mustDense(t, "10011001"),
		}, {
			name: "unaligned",
			a:    mustDense(t, "1010 1010 01"),
			b:    mustDense(t, "1100 1100 01"),
			eout: mustDense(t, "1001 1001 11"),
		}, {
			name: "short b",
			a:    mustDense(t, "0000 0000 0"),
			b:    mustDense(t, "010"),
			eout: mustDense(t, "101"),
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			out := XNor(tc.a, tc.b)
			if !Equal(out, tc.eout) {
				t.Errorf("XNor(%v, %v) == %v, want %v", tc.a, tc.b, out, tc.eout)
			}
			if CountOnes(out) != CountOnes(tc.eout) {
				t.Errorf("XNor left bits set past the end: %08b", out.Data())
			}
		})
	}
}
