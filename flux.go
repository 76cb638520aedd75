/*
Package occult computes disk integrated light curves of rotating, mutually
occulting spherical bodies whose surface brightness is a real spherical
harmonic expansion, following the analytic formalism of Luger et al. 2019
(AJ 157, 64).

Everything here works in the observer frame: the x axis points right on the
sky, y up, and z toward the observer.
*/
package occult

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Surface is the brightness model of one body: an optional spherical
// harmonic map, a limb darkening law, and the orientation of the spin axis
// on the sky. The zero value is not usable, start from NewSurface.
type Surface struct {
	// Map holds the spherical harmonic expansion of the surface, nil for a
	// featureless disk.
	Map *Harmonics
	// U holds the limb darkening coefficients u1..uN of the profile
	// 1 - sum u_n (1-mu)^n.
	U []float64
	// Amplitude scales the disk integrated brightness of the unocculted,
	// uniform equivalent of this surface.
	Amplitude float64
	// Inc and Obl orient the spin axis: inclination tips it toward the
	// observer, obliquity rolls it on the sky plane. Radians.
	Inc, Obl float64
	// Period is the spin period. Zero means no spin: the phase angle is
	// held at zero for all times.
	Period float64
	// Order overrides the Gauss-Legendre order of the occultation
	// integrals when positive.
	Order int
}

// NewSurface returns a surface with the given map, unit amplitude, an
// equator-on spin axis and no limb darkening.
func NewSurface(y *Harmonics) *Surface {
	return &Surface{Map: y, Amplitude: 1, Inc: math.Pi / 2}
}

// Ydeg returns the degree of the harmonic map, zero for a featureless disk.
func (s *Surface) Ydeg() int {
	if s.Map == nil {
		return 0
	}
	return s.Map.Degree()
}

// Udeg returns the degree of the limb darkening law.
func (s *Surface) Udeg() int { return len(s.U) }

// Deg returns the combined degree of the brightness profile.
func (s *Surface) Deg() int { return s.Ydeg() + s.Udeg() }

// phase returns the spin phase angle at time t.
func (s *Surface) phase(t float64) float64 {
	if s.Period == 0 {
		return 0
	}
	return 2 * math.Pi * t / s.Period
}

// Occultor is a foreground disk of radius R centered at (X, Y, Z), all in
// units of the occulted body radius. Positive Z is in front of the body;
// an occultor behind it never blocks light.
type Occultor struct {
	R, X, Y, Z float64
}

// skyProject rotates a dense coefficient vector from the frame the map is
// authored in onto the sky at spin phase theta, then aligns the occultor
// with the +y axis through thetaZ.
func skyProject(deg int, inc, obl, theta, thetaZ float64, y []float64) ([]float64, error) {
	var err error
	for _, rot := range []struct {
		axis  []float64
		angle float64
	}{
		{[]float64{1, 0, 0}, math.Pi / 2},
		{[]float64{0, 0, 1}, theta},
		{[]float64{1, 0, 0}, -math.Pi / 2},
		{[]float64{0, 0, 1}, obl},
		{[]float64{-math.Sin(obl), math.Cos(obl), 0}, -(math.Pi/2 - inc)},
		{[]float64{0, 0, 1}, thetaZ},
	} {
		y, err = rotateDense(deg, rot.axis, rot.angle, y)
		if err != nil {
			return nil, err
		}
	}
	return y, nil
}

// Flux returns the disk integrated brightness of the surface at spin phase
// theta, in radians, blocked by the given occultor. A nil occultor, an
// occultor behind the body, or one whose limb does not reach the disk
// (impact parameter at least 1+R) all yield the phase curve value.
func (s *Surface) Flux(oc *Occultor, theta float64) (float64, error) {
	order := s.Order
	if order == 0 {
		order = occultConfig().order
	}
	if order < 1 {
		return 0, fmt.Errorf("%w: quadrature order %d", ErrInvalidGeometry, order)
	}
	ydeg := s.Ydeg()
	deg := s.Deg()

	occulted := false
	thetaZ := 0.0
	var b, r float64
	if oc != nil {
		if oc.R < 0 {
			return 0, fmt.Errorf("%w: negative occultor radius %g", ErrInvalidGeometry, oc.R)
		}
		b = math.Hypot(oc.X, oc.Y)
		r = oc.R
		occulted = b < 1+r && oc.Z > 0
		thetaZ = math.Atan2(oc.X, oc.Y)
	}

	// Green's basis weights over the visible disk.
	var x []float64
	if occulted {
		sT, err := SolutionVector(deg, order, b, r)
		if err != nil {
			return 0, err
		}
		var xv mat.VecDense
		if err := xv.SolveVec(basisA2Inverse(deg).T(), mat.NewVecDense(len(sT), sT)); err != nil {
			return 0, fmt.Errorf("occultation basis solve: %w", err)
		}
		x = make([]float64, len(sT))
		for i := range x {
			x[i] = xv.AtVec(i)
		}
	} else {
		x = rt(deg)
	}

	// Map contribution, projected onto the sky and converted to the
	// polynomial basis.
	var rotated []float64
	if s.Map == nil {
		rotated = []float64{1}
	} else {
		var err error
		rotated, err = skyProject(ydeg, s.Inc, s.Obl, theta, thetaZ, s.Map.ToDense())
		if err != nil {
			return 0, err
		}
	}
	pyDense := matVec(basisA1(ydeg), rotated)
	py, err := newPolyFromDense(pyDense, ydeg)
	if err != nil {
		return 0, err
	}

	// Limb darkening contribution.
	udeg := s.Udeg()
	uVec := make([]float64, udeg+1)
	uVec[0] = 1
	copy(uVec[1:], s.U)
	puDense := vecMat(uVec, basisU0(udeg))
	pu, err := newPolyFromDense(puDense, udeg)
	if err != nil {
		return 0, err
	}
	denom, err := pu.Dot(rt(udeg))
	if err != nil {
		return 0, err
	}
	if denom == 0 {
		return 0, fmt.Errorf("%w: limb darkening profile integrates to zero", ErrInvalidGeometry)
	}

	val, err := py.Mul(pu).Dot(x)
	if err != nil {
		return 0, err
	}
	return s.Amplitude * val * math.Pi / denom, nil
}

// matVec multiplies a dense matrix with a coefficient slice.
func matVec(m *mat.Dense, v []float64) []float64 {
	rows, cols := m.Dims()
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		var acc float64
		for j := 0; j < cols; j++ {
			acc += m.At(i, j) * v[j]
		}
		out[i] = acc
	}
	return out
}

// vecMat multiplies a coefficient slice with a dense matrix.
func vecMat(v []float64, m *mat.Dense) []float64 {
	rows, cols := m.Dims()
	out := make([]float64, cols)
	for j := 0; j < cols; j++ {
		var acc float64
		for i := 0; i < rows; i++ {
			acc += v[i] * m.At(i, j)
		}
		out[j] = acc
	}
	return out
}
