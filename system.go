package occult

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Central is the central body of a system.
type Central struct {
	Radius  float64 // solar radii
	Mass    float64 // solar masses
	Surface *Surface
}

// NewCentral returns a Sun like central body with no surface map.
func NewCentral() Central {
	return Central{Radius: 1, Mass: 1}
}

// Body is a body orbiting a central body.
type Body struct {
	Radius   float64 // solar radii
	Mass     float64 // solar masses
	Period   float64 // days
	TTransit float64 // time of inferior conjunction, days
	Inc      float64 // orbital inclination, radians
	Ecc      float64 // eccentricity, in [0, 1)
	Omega    float64 // argument of periastron, radians
	Surface  *Surface
}

// NewBody returns a circular edge-on body transiting at t = 0 with no
// surface map.
func NewBody(radius, mass, period float64) Body {
	return Body{Radius: radius, Mass: mass, Period: period, Inc: math.Pi / 2}
}

// Orbit returns the Keplerian orbit of this body about the given central
// body.
func (b Body) Orbit(c Central) Orbit {
	return Orbit{
		A:        SemiMajorAxis(b.Period, c.Mass+b.Mass),
		Period:   b.Period,
		TTransit: b.TTransit,
		Inc:      b.Inc,
		Ecc:      b.Ecc,
		Omega:    b.Omega,
	}
}

// System gathers a central body and the bodies orbiting it.
type System struct {
	Central Central
	Bodies  []Body
}

func (s System) validate() error {
	if s.Central.Radius <= 0 {
		return fmt.Errorf("%w: central radius must be positive, got %g", ErrInvalidGeometry, s.Central.Radius)
	}
	for k, b := range s.Bodies {
		switch {
		case b.Radius <= 0:
			return fmt.Errorf("%w: body %d radius must be positive, got %g", ErrInvalidGeometry, k, b.Radius)
		case b.Period <= 0:
			return fmt.Errorf("%w: body %d period must be positive, got %g", ErrInvalidGeometry, k, b.Period)
		case b.Ecc < 0 || b.Ecc >= 1:
			return fmt.Errorf("%w: body %d eccentricity must be in [0, 1), got %g", ErrInvalidGeometry, k, b.Ecc)
		case s.Central.Mass+b.Mass <= 0:
			return fmt.Errorf("%w: body %d total mass must be positive", ErrInvalidGeometry, k)
		}
	}
	return nil
}

func (s System) orbits() []Orbit {
	orbits := make([]Orbit, len(s.Bodies))
	for k, b := range s.Bodies {
		orbits[k] = b.Orbit(s.Central)
	}
	return orbits
}

// RelativePositions returns the position of every body relative to the
// central body at each given time, in solar radii. Each matrix has one row
// per time and one column per body.
func (s System) RelativePositions(ts []float64) (xs, ys, zs *mat.Dense, err error) {
	if len(ts) == 0 {
		return nil, nil, nil, fmt.Errorf("%w: no evaluation times", ErrInvalidGeometry)
	}
	if err = s.validate(); err != nil {
		return nil, nil, nil, err
	}
	orbits := s.orbits()
	n := len(s.Bodies)
	xs = mat.NewDense(len(ts), n, nil)
	ys = mat.NewDense(len(ts), n, nil)
	zs = mat.NewDense(len(ts), n, nil)
	for i, t := range ts {
		for k, o := range orbits {
			x, y, z := o.PositionAt(t)
			xs.Set(i, k, x)
			ys.Set(i, k, y)
			zs.Set(i, k, z)
		}
	}
	return xs, ys, zs, nil
}

// fluxRow fills dst with the central body flux followed by one flux per
// orbiting body, all at time t. dst must have length 1+len(s.Bodies).
func (s System) fluxRow(t float64, orbits []Orbit, dst []float64) error {
	n := len(s.Bodies)
	xs := make([]float64, n)
	ys := make([]float64, n)
	zs := make([]float64, n)
	for k, o := range orbits {
		xs[k], ys[k], zs[k] = o.PositionAt(t)
	}
	// Central body column. Each body occults independently, so the bare
	// phase flux is counted n times and must be removed n-1 times.
	if s.Central.Surface == nil {
		dst[0] = 0
	} else {
		θ := s.Central.Surface.phase(t)
		if n == 0 {
			f, err := s.Central.Surface.Flux(nil, θ)
			if err != nil {
				return err
			}
			dst[0] = f
		} else {
			rc := s.Central.Radius
			total := 0.0
			for k, b := range s.Bodies {
				oc := &Occultor{R: b.Radius / rc, X: xs[k] / rc, Y: ys[k] / rc, Z: zs[k] / rc}
				f, err := s.Central.Surface.Flux(oc, θ)
				if err != nil {
					return err
				}
				total += f
			}
			if n > 1 {
				base, err := s.Central.Surface.Flux(nil, θ)
				if err != nil {
					return err
				}
				total -= float64(n-1) * base
			}
			dst[0] = total
		}
	}
	// Per body columns, with the central body as sole occultor.
	for k, b := range s.Bodies {
		if b.Surface == nil {
			dst[1+k] = 0
			continue
		}
		oc := &Occultor{R: s.Central.Radius / b.Radius, X: -xs[k] / b.Radius, Y: -ys[k] / b.Radius, Z: -zs[k] / b.Radius}
		f, err := b.Surface.Flux(oc, b.Surface.phase(t))
		if err != nil {
			return err
		}
		dst[1+k] = f
	}
	return nil
}

// LightCurves evaluates the light curve of every body in the system at the
// given times in days. Row i holds the fluxes at ts[i], column 0 the central
// body and column 1+k body k. The first error encountered aborts the whole
// evaluation.
func (s System) LightCurves(ts []float64) (*mat.Dense, error) {
	if len(ts) == 0 {
		return nil, fmt.Errorf("%w: no evaluation times", ErrInvalidGeometry)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	orbits := s.orbits()
	out := mat.NewDense(len(ts), 1+len(s.Bodies), nil)
	row := make([]float64, 1+len(s.Bodies))
	for i, t := range ts {
		if err := s.fluxRow(t, orbits, row); err != nil {
			return nil, err
		}
		out.SetRow(i, row)
	}
	return out, nil
}
