package occult

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

func TestRTClosedForm(t *testing.T) {
	if !vectorsEqual(rt(0), []float64{math.Pi}) {
		t.Fatalf("rT(0) = %v", rt(0))
	}
	if !vectorsEqual(rt(1), []float64{math.Pi, 0, 2 * math.Pi / 3, 0}) {
		t.Fatalf("rT(1) = %v", rt(1))
	}
	// The constant monomial integrates to pi at any band limit.
	if !scalar.EqualWithinAbs(rt(8)[0], math.Pi, 1e-12) {
		t.Fatal("rT leading term must stay pi")
	}
}

func TestKiteArea(t *testing.T) {
	// Four times the area of a 3-4-5 right triangle.
	if !scalar.EqualWithinAbs(kiteArea(3, 4, 5), 24, 1e-12) {
		t.Fatalf("kiteArea(3, 4, 5) = %f, want 24", kiteArea(3, 4, 5))
	}
	if !scalar.EqualWithinAbs(kiteArea(5, 3, 4), 24, 1e-12) {
		t.Fatal("kiteArea must sort its operands")
	}
	if kiteArea(1, 1, 5) != 0 {
		t.Fatal("degenerate triangle must clamp to zero")
	}
}

func TestKappasLimits(t *testing.T) {
	// Occultor disjoint from the disk: both angles collapse to zero.
	k0, k1 := kappas(2.5, 1)
	if k0 != 0 || k1 != 0 {
		t.Fatalf("disjoint: kappa0 = %f, kappa1 = %f", k0, k1)
	}
	// Occultor fully inside the disk: its whole limb is buried.
	k0, k1 = kappas(0.3, 0.2)
	if !scalar.EqualWithinAbs(k0, math.Pi, 1e-12) || k1 != 0 {
		t.Fatalf("interior: kappa0 = %f, kappa1 = %f", k0, k1)
	}
	// Disk fully inside the occultor.
	k0, k1 = kappas(0.2, 2)
	if k0 != 0 || !scalar.EqualWithinAbs(k1, math.Pi, 1e-12) {
		t.Fatalf("engulfed: kappa0 = %f, kappa1 = %f", k0, k1)
	}
	// Concentric unit occultor: an exact cover, not a clear disk.
	k0, k1 = kappas(0, 1)
	if k0 != 0 || k1 != math.Pi {
		t.Fatalf("exact cover: kappa0 = %f, kappa1 = %f", k0, k1)
	}
}

func TestSolutionVectorUniform(t *testing.T) {
	// For an occultor buried inside the disk, the visible area of the
	// constant term is pi (1 - r^2).
	s, err := SolutionVector(0, 20, 0.3, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(s[0], math.Pi*(1-0.04), 1e-10) {
		t.Fatalf("s[0] = %f, want %f", s[0], math.Pi*0.96)
	}
}

func TestSolutionVectorEngulfed(t *testing.T) {
	s, err := SolutionVector(2, 20, 0.2, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range s {
		if !scalar.EqualWithinAbs(v, 0, 1e-10) {
			t.Fatalf("hidden disk must integrate to zero, s[%d] = %g", i, v)
		}
	}
}

func TestSolutionVectorNoOverlapMatchesPhase(t *testing.T) {
	// With the occultor clear of the disk, contracting through A2 must land
	// exactly on the phase curve weights: s = A2inv^T rT.
	for deg := 0; deg <= 4; deg++ {
		s, err := SolutionVector(deg, 30, 1.8, 0.5)
		if err != nil {
			t.Fatal(err)
		}
		n := (deg + 1) * (deg + 1)
		r := rt(deg)
		var want mat.VecDense
		want.MulVec(basisA2Inverse(deg).T(), mat.NewVecDense(n, r))
		for i := 0; i < n; i++ {
			if !scalar.EqualWithinAbs(s[i], want.AtVec(i), 1e-10) {
				t.Fatalf("degree %d entry %d: %f != %f", deg, i, s[i], want.AtVec(i))
			}
		}
	}
}

func TestSolutionVectorErrors(t *testing.T) {
	if _, err := SolutionVector(-1, 20, 0.5, 0.1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("negative degree must fail with ErrOutOfRange, got %v", err)
	}
	if _, err := SolutionVector(2, 0, 0.5, 0.1); !errors.Is(err, ErrInvalidGeometry) {
		t.Fatalf("zero order must fail with ErrInvalidGeometry, got %v", err)
	}
}
