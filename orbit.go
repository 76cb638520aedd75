package occult

import (
	"fmt"
	"math"

	"github.com/ChristopherRabotin/ode"
)

// Ggrav is the gravitational constant in solar radii cubed per solar mass
// per day squared.
const Ggrav = 2942.2062175044193

// Orbit defines the Keplerian orbit of a body about its central body in the
// observer frame, oriented such that at TTransit the body sits between the
// central body and the observer. Distances are in solar radii, times in
// days, angles in radians.
type Orbit struct {
	A        float64 // semi-major axis
	Period   float64 // must be positive
	TTransit float64 // time of inferior conjunction
	Inc      float64 // orbital inclination, pi/2 is edge on
	Ecc      float64 // eccentricity, in [0, 1)
	Omega    float64 // argument of periastron
}

// NewOrbit returns a circular edge-on orbit of the given semi-major axis and
// period, transiting at t = 0.
func NewOrbit(a, period float64) Orbit {
	return Orbit{A: a, Period: period, Inc: math.Pi / 2}
}

// SemiMajorAxis returns the semi-major axis from Kepler's third law for the
// given period in days and total system mass in solar masses.
func SemiMajorAxis(period, totalMass float64) float64 {
	return math.Cbrt(Ggrav * totalMass * period * period / (4 * math.Pi * math.Pi))
}

// keplerE solves Kepler's equation m = E - e sin(E) by Newton iteration,
// seeded with Danby's starter.
func keplerE(m, e float64) float64 {
	if e == 0 {
		return m
	}
	E := m + 0.85*e*sign(math.Sin(m))
	for i := 0; i < 30; i++ {
		δ := (E - e*math.Sin(E) - m) / (1 - e*math.Cos(E))
		E -= δ
		if math.Abs(δ) < 1e-14 {
			break
		}
	}
	return E
}

// ν returns the true anomaly at time t. The mean anomaly is anchored on the
// transit time, which maps to an argument of latitude of pi/2.
func (o Orbit) ν(t float64) float64 {
	νT := math.Pi/2 - o.Omega
	eT := 2 * math.Atan2(math.Sqrt(1-o.Ecc)*math.Sin(νT/2), math.Sqrt(1+o.Ecc)*math.Cos(νT/2))
	mT := eT - o.Ecc*math.Sin(eT)
	m := 2*math.Pi*(t-o.TTransit)/o.Period + mT
	E := keplerE(m, o.Ecc)
	return 2 * math.Atan2(math.Sqrt(1+o.Ecc)*math.Sin(E/2), math.Sqrt(1-o.Ecc)*math.Cos(E/2))
}

// PositionAt returns the position of the body relative to its central body
// at time t, in solar radii. The z axis points at the observer, so the body
// occults when z is positive.
func (o Orbit) PositionAt(t float64) (x, y, z float64) {
	ν := o.ν(t)
	u := ν + o.Omega
	r := o.A * (1 - o.Ecc*o.Ecc) / (1 + o.Ecc*math.Cos(ν))
	p := MxV33(R1(o.Inc), []float64{-r * math.Cos(u), -r * math.Sin(u), 0})
	return p[0], p[1], p[2]
}

// stateAt returns the osculating position and velocity at time t.
func (o Orbit) stateAt(t float64) (pos, vel []float64) {
	ν := o.ν(t)
	u := ν + o.Omega
	e := o.Ecc
	sinν, cosν := math.Sincos(ν)
	sinu, cosu := math.Sincos(u)
	r := o.A * (1 - e*e) / (1 + e*cosν)
	n := 2 * math.Pi / o.Period
	νdot := n * (1 + e*cosν) * (1 + e*cosν) / math.Pow(1-e*e, 1.5)
	drdν := r * e * sinν / (1 + e*cosν)
	pos = MxV33(R1(o.Inc), []float64{-r * cosu, -r * sinu, 0})
	vel = MxV33(R1(o.Inc), []float64{
		(-drdν*cosu + r*sinu) * νdot,
		(-drdν*sinu - r*cosu) * νdot,
		0,
	})
	return
}

// twoBodyProp propagates the two body equations of motion.
type twoBodyProp struct {
	μ         float64
	step      float64
	state     []float64
	remaining int
	samples   [][]float64
}

// GetState returns the latest propagated state.
func (p *twoBodyProp) GetState() []float64 {
	return p.state
}

// SetState stores the newly integrated state.
func (p *twoBodyProp) SetState(t float64, s []float64) {
	p.state = s
	p.samples = append(p.samples, []float64{s[0], s[1], s[2]})
	p.remaining--
}

// Stop returns whether the propagation is over.
func (p *twoBodyProp) Stop(t float64) bool {
	return p.remaining <= 0
}

// Func is the two body differential equation.
func (p *twoBodyProp) Func(t float64, s []float64) []float64 {
	r2 := s[0]*s[0] + s[1]*s[1] + s[2]*s[2]
	r3 := r2 * math.Sqrt(r2)
	return []float64{s[3], s[4], s[5],
		-p.μ * s[0] / r3, -p.μ * s[1] / r3, -p.μ * s[2] / r3}
}

// Propagate numerically integrates the orbit as a two body problem over the
// given duration in days with a fixed step RK4, starting from the osculating
// state at t = 0. It returns one sampled position per step and serves as a
// cross check of the closed form ephemeris.
func (o Orbit) Propagate(totalMass, duration float64, steps int) ([][]float64, error) {
	if o.Period <= 0 || o.Ecc < 0 || o.Ecc >= 1 || totalMass <= 0 || duration <= 0 || steps < 1 {
		return nil, fmt.Errorf("%w: cannot propagate orbit %+v over %g days", ErrInvalidGeometry, o, duration)
	}
	pos, vel := o.stateAt(0)
	prop := &twoBodyProp{
		μ:         Ggrav * totalMass,
		step:      duration / float64(steps),
		state:     []float64{pos[0], pos[1], pos[2], vel[0], vel[1], vel[2]},
		remaining: steps,
	}
	ode.NewRK4(0, prop.step, prop).Solve() // Blocking.
	return prop.samples, nil
}
