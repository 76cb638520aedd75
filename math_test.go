package occult

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

// vectorsEqual compares two vectors to a tight absolute tolerance.
func vectorsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !scalar.EqualWithinAbs(a[i], b[i], 1e-12) {
			return false
		}
	}
	return true
}

func TestUnitNorm(t *testing.T) {
	v := []float64{3, 0, 4}
	if norm(v) != 5 {
		t.Fatalf("norm([3 0 4]) = %f", norm(v))
	}
	if !vectorsEqual(unit(v), []float64{0.6, 0, 0.8}) {
		t.Fatal("unit vector fail")
	}
	if !vectorsEqual(unit([]float64{0, 0, 0}), []float64{0, 0, 0}) {
		t.Fatal("unit of zero vector must be zero")
	}
}

func TestSign(t *testing.T) {
	if sign(-3) != -1 || sign(2) != 1 || sign(0) != 1 {
		t.Fatal("sign fail")
	}
}

func TestAngleConversions(t *testing.T) {
	if !scalar.EqualWithinAbs(Deg2rad(180), math.Pi, 1e-12) {
		t.Fatal("Deg2rad(180) != pi")
	}
	if !scalar.EqualWithinAbs(Deg2rad(-90), 1.5*math.Pi, 1e-12) {
		t.Fatal("Deg2rad(-90) != 3pi/2")
	}
	if !scalar.EqualWithinAbs(Rad2deg(math.Pi/2), 90, 1e-12) {
		t.Fatal("Rad2deg(pi/2) != 90")
	}
}

func TestFactChoose(t *testing.T) {
	if fact(0) != 1 || fact(5) != 120 {
		t.Fatal("factorial fail")
	}
	if choose(5, 2) != 10 || choose(4, 0) != 1 || choose(3, 4) != 0 || choose(3, -1) != 0 {
		t.Fatal("binomial fail")
	}
}
