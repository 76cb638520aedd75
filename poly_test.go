package occult

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestPolyDenseRoundTrip(t *testing.T) {
	v := []float64{0.5, -1, 0, 2, 0, 0.25, 0, 0, 3}
	p, err := newPolyFromDense(v, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !vectorsEqual(p.Dense(), v) {
		t.Fatal("dense round trip fail")
	}
	if _, err = newPolyFromDense(v, 1); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("overlong vector must fail with ErrDimensionMismatch, got %v", err)
	}
}

func TestPolyMulReducesZ(t *testing.T) {
	// z * z = 1 - x^2 - y^2.
	z, err := newPolyFromDense([]float64{0, 0, 1, 0}, 1)
	if err != nil {
		t.Fatal(err)
	}
	z2 := z.Mul(z)
	if z2.Degree() != 2 {
		t.Fatalf("degree = %d, want 2", z2.Degree())
	}
	// Monomial 0 is the constant, 4 is x^2 and 8 is y^2.
	want := []float64{1, 0, 0, 0, -1, 0, 0, 0, -1}
	if !vectorsEqual(z2.Dense(), want) {
		t.Fatalf("z*z = %v, want %v", z2.Dense(), want)
	}
}

func TestPolyMulConstant(t *testing.T) {
	p, _ := newPolyFromDense([]float64{1, 0.5, -0.25, 2}, 1)
	c, _ := newPolyFromDense([]float64{3}, 0)
	prod := p.Mul(c)
	if prod.Degree() != 1 {
		t.Fatalf("degree = %d, want 1", prod.Degree())
	}
	if !vectorsEqual(prod.Dense(), []float64{3, 1.5, -0.75, 6}) {
		t.Fatalf("constant multiply fail: %v", prod.Dense())
	}
}

func TestPolyDot(t *testing.T) {
	p, _ := newPolyFromDense([]float64{1, 2, 0, -1}, 1)
	got, err := p.Dot([]float64{0.5, 0.25, 10, 2})
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(got, 0.5+0.5+0-2, 1e-12) {
		t.Fatalf("dot = %f", got)
	}
	if _, err = p.Dot([]float64{1, 2}); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("short weights must fail with ErrDimensionMismatch, got %v", err)
	}
}
