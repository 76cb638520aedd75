package occult

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestHarmonicIndexBijection(t *testing.T) {
	const L = 5
	seen := make(map[int]Harmonic)
	for l := 0; l <= L; l++ {
		for m := -l; m <= l; m++ {
			idx, err := Harmonic{l, m}.Index()
			if err != nil {
				t.Fatalf("(%d, %d): %s", l, m, err)
			}
			if idx < 0 || idx >= (L+1)*(L+1) {
				t.Fatalf("(%d, %d) maps to %d, out of [0, %d)", l, m, idx, (L+1)*(L+1))
			}
			if prev, dup := seen[idx]; dup {
				t.Fatalf("(%d, %d) and (%d, %d) collide at %d", l, m, prev.L, prev.M, idx)
			}
			seen[idx] = Harmonic{l, m}
			if back := HarmonicFromIndex(idx); back.L != l || back.M != m {
				t.Fatalf("index %d recovered as (%d, %d)", idx, back.L, back.M)
			}
		}
	}
	if len(seen) != (L+1)*(L+1) {
		t.Fatalf("index image has %d values, want %d", len(seen), (L+1)*(L+1))
	}
}

func TestHarmonicIndexOutOfRange(t *testing.T) {
	if _, err := (Harmonic{1, 2}).Index(); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("|m| > l must fail with ErrOutOfRange, got %v", err)
	}
	if _, err := (Harmonic{-1, 0}).Index(); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("negative degree must fail with ErrOutOfRange, got %v", err)
	}
	if _, err := NewHarmonics(map[Harmonic]float64{{2, -3}: 1}); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("invalid key must fail with ErrOutOfRange, got %v", err)
	}
}

func TestHarmonicsRoundTrip(t *testing.T) {
	v := make([]float64, 16)
	for i := range v {
		v[i] = math.Sin(float64(i) + 1)
	}
	y, err := NewHarmonicsFromDense(v)
	if err != nil {
		t.Fatal(err)
	}
	if y.Degree() != 3 {
		t.Fatalf("degree = %d, want 3", y.Degree())
	}
	if !vectorsEqual(y.ToDense(), v) {
		t.Fatal("round trip fail")
	}
}

func TestHarmonicsFromShortDense(t *testing.T) {
	// An 11 coefficient vector still spans degree 3, the missing trailing
	// coefficients are zero.
	v := []float64{1, 0.005, 0.05, 0.09, 0, 0.1, 0.03, 0.04, 0.4, 0.2, 0.1}
	y, err := NewHarmonicsFromDense(v)
	if err != nil {
		t.Fatal(err)
	}
	if y.Degree() != 3 {
		t.Fatalf("degree = %d, want 3", y.Degree())
	}
	dense := y.ToDense()
	if len(dense) != 16 {
		t.Fatalf("dense length = %d, want 16", len(dense))
	}
	if !vectorsEqual(dense[:len(v)], v) || !vectorsEqual(dense[len(v):], make([]float64, 5)) {
		t.Fatal("zero padding fail")
	}
	if _, err = NewHarmonicsFromDense(nil); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("empty vector must fail with ErrDimensionMismatch, got %v", err)
	}
}

func TestHarmonicsScale(t *testing.T) {
	y, _ := NewHarmonics(map[Harmonic]float64{{0, 0}: 1, {2, 1}: -0.5})
	s := y.Scale(-2)
	if s.At(0, 0) != -2 || s.At(2, 1) != 1 {
		t.Fatal("scale fail")
	}
	if y.At(0, 0) != 1 {
		t.Fatal("scale must not mutate the receiver")
	}
}

func TestHarmonicsAxisymmetric(t *testing.T) {
	y, _ := NewHarmonics(map[Harmonic]float64{{0, 0}: 1, {3, 0}: 0.1})
	if !y.Axisymmetric() {
		t.Fatal("all m=0 map must be axisymmetric")
	}
	y, _ = NewHarmonics(map[Harmonic]float64{{0, 0}: 1, {3, 1}: 0.1})
	if y.Axisymmetric() {
		t.Fatal("m=1 map cannot be axisymmetric")
	}
}

func TestProductUniform(t *testing.T) {
	// Multiplying by c*Y00 scales every coefficient by c/(2 sqrt(pi)).
	f, _ := NewHarmonics(map[Harmonic]float64{{0, 0}: 1, {1, -1}: 0.3, {2, 1}: -0.2, {2, 2}: 0.7})
	c := 1.7
	g, _ := NewHarmonics(nil) // the uniform map
	fg, err := f.Product(g.Scale(c))
	if err != nil {
		t.Fatal(err)
	}
	want := c / (2 * math.Sqrt(math.Pi))
	for _, h := range []Harmonic{{0, 0}, {1, -1}, {2, 1}, {2, 2}} {
		if !scalar.EqualWithinAbs(fg.At(h.L, h.M), f.At(h.L, h.M)*want, 1e-12) {
			t.Fatalf("(%d, %d): got %f, want %f", h.L, h.M, fg.At(h.L, h.M), f.At(h.L, h.M)*want)
		}
	}
}

func TestProductSymmetry(t *testing.T) {
	f, _ := NewHarmonics(map[Harmonic]float64{{0, 0}: 1, {1, 1}: 0.3, {2, -1}: 0.5})
	g, _ := NewHarmonics(map[Harmonic]float64{{1, 0}: 0.2, {1, -1}: 0.7, {2, 2}: -0.4})
	fg, err := f.Product(g)
	if err != nil {
		t.Fatal(err)
	}
	gf, err := g.Product(f)
	if err != nil {
		t.Fatal(err)
	}
	if fg.Degree() != gf.Degree() {
		t.Fatalf("degrees differ: %d != %d", fg.Degree(), gf.Degree())
	}
	if !vectorsEqual(fg.ToDense(), gf.ToDense()) {
		t.Fatal("product must be commutative")
	}
}

func TestProductDegree(t *testing.T) {
	f, _ := NewHarmonics(map[Harmonic]float64{{2, 0}: 1})
	g, _ := NewHarmonics(map[Harmonic]float64{{3, 1}: 1})
	fg, err := f.Product(g)
	if err != nil {
		t.Fatal(err)
	}
	if fg.Degree() > 5 {
		t.Fatalf("degree %d exceeds the cap of 5", fg.Degree())
	}
}
