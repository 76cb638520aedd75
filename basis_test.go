package occult

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

func TestPolyExponentsRoundTrip(t *testing.T) {
	for n := 0; n < 36; n++ {
		i, j, k := polyExponents(n)
		if k != 0 && k != 1 {
			t.Fatalf("monomial %d has z power %d", n, k)
		}
		if back := polyIndex(i, j, k); back != n {
			t.Fatalf("monomial %d recovered as %d", n, back)
		}
	}
}

func TestBasisA1Degree0(t *testing.T) {
	a1 := basisA1(0)
	if r, c := a1.Dims(); r != 1 || c != 1 {
		t.Fatalf("dims %dx%d, want 1x1", r, c)
	}
	if !scalar.EqualWithinAbs(a1.At(0, 0), 1/math.Pi, 1e-12) {
		t.Fatalf("A1(0) = %f, want 1/pi", a1.At(0, 0))
	}
}

func TestBasisA1Degree1(t *testing.T) {
	// The degree 1 harmonics are y, z and x up to a common amplitude, which
	// lands them on monomials 3, 2 and 1 respectively.
	a1 := basisA1(1)
	amp := math.Sqrt(3) / math.Pi
	wants := map[[2]int]float64{
		{0, 0}: 1 / math.Pi,
		{3, 1}: amp,
		{2, 2}: amp,
		{1, 3}: amp,
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if !scalar.EqualWithinAbs(a1.At(i, j), wants[[2]int{i, j}], 1e-12) {
				t.Fatalf("A1(1) entry (%d, %d) = %f, want %f", i, j, a1.At(i, j), wants[[2]int{i, j}])
			}
		}
	}
}

func TestBasisA2InverseDegree1(t *testing.T) {
	a2inv := basisA2Inverse(1)
	wants := []float64{1, 2, 1, 1}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := 0.0
			if i == j {
				want = wants[i]
			}
			if !scalar.EqualWithinAbs(a2inv.At(i, j), want, 1e-12) {
				t.Fatalf("A2inv(1) entry (%d, %d) = %f, want %f", i, j, a2inv.At(i, j), want)
			}
		}
	}
}

func TestBasisU0(t *testing.T) {
	u0 := basisU0(1)
	if !vectorsEqual(mat.Row(nil, 0, u0), []float64{1, 0, 0, 0}) {
		t.Fatal("U0 row 0 must be the constant monomial")
	}
	if !vectorsEqual(mat.Row(nil, 1, u0), []float64{-1, 0, 1, 0}) {
		t.Fatal("U0 row 1 must be -(1-z)")
	}
	u0 = basisU0(2)
	// -(1-z)^2 with z^2 reduced to 1-x^2-y^2.
	if !vectorsEqual(mat.Row(nil, 2, u0), []float64{-2, 0, 2, 0, 1, 0, 0, 0, 1}) {
		t.Fatal("U0 row 2 must be -(1-z)^2 reduced")
	}
}
