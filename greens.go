package occult

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// rt returns the disk integrals of the polynomial basis over the full unit
// disk, i.e. the phase curve weights, in closed form (Luger et al. 2019,
// eq. 39 and appendix). Only two families of monomials survive the
// integration, each walked with running ratio updates instead of factorials.
func rt(degree int) []float64 {
	v := make([]float64, (degree+1)*(degree+1))
	amp0 := math.Pi
	lfac1 := 1.0
	lfac2 := 2.0 / 3.0
	for ell := 0; ell <= degree; ell += 4 {
		amp := amp0
		for m := 0; m <= ell; m += 4 {
			mu := ell - m
			nu := ell + m
			v[ell*ell+ell+m] = amp * lfac1
			v[ell*ell+ell-m] = amp * lfac1
			if ell < degree {
				v[(ell+1)*(ell+1)+ell+m+1] = amp * lfac2
				v[(ell+1)*(ell+1)+ell-m+1] = amp * lfac2
			}
			amp *= float64(nu+2) / float64(mu-2)
		}
		lfac1 /= (float64(ell)/2 + 2) * (float64(ell)/2 + 3)
		lfac2 /= (float64(ell)/2 + 2.5) * (float64(ell)/2 + 3.5)
		amp0 *= 0.0625 * float64(ell+2) * float64(ell+2)
	}
	amp0 = 0.5 * math.Pi
	lfac1 = 0.5
	lfac2 = 4.0 / 15.0
	for ell := 2; ell <= degree; ell += 4 {
		amp := amp0
		for m := 2; m <= ell; m += 4 {
			mu := ell - m
			nu := ell + m
			v[ell*ell+ell+m] = amp * lfac1
			v[ell*ell+ell-m] = amp * lfac1
			if ell < degree {
				v[(ell+1)*(ell+1)+ell+m+1] = amp * lfac2
				v[(ell+1)*(ell+1)+ell-m+1] = amp * lfac2
			}
			amp *= float64(nu+2) / float64(mu-2)
		}
		lfac1 /= (float64(ell)/2 + 2) * (float64(ell)/2 + 3)
		lfac2 /= (float64(ell)/2 + 2.5) * (float64(ell)/2 + 3.5)
		amp0 *= 0.0625 * float64(ell) * float64(ell+4)
	}
	return v
}

// kiteArea returns four times the area of the triangle with side lengths
// a, b, c, using Kahan's numerically stable form. The operands are sorted
// and parenthesized exactly as the stability proof requires.
func kiteArea(a, b, c float64) float64 {
	if a < b {
		a, b = b, a
	}
	if b < c {
		b, c = c, b
	}
	if a < b {
		a, b = b, a
	}
	sq := (a + (b + c)) * (c - (a - b)) * (c + (a - b)) * (a + (b - c))
	return math.Sqrt(math.Max(0, sq))
}

// kappas returns the occultation contact angles: kappa0 at the occultor
// center and kappa1 at the occulted body center, both zero when the limbs do
// not cross.
func kappas(b, r float64) (kappa0, kappa1 float64) {
	b2 := b * b
	factor := (r - 1) * (r + 1)
	var area float64
	if b > math.Abs(1-r) && b < 1+r {
		area = kiteArea(r, b, 1)
	}
	if area == 0 && b2 == factor {
		// b = 0, r = 1: the occultor covers the disk exactly.
		return math.Atan2(area, b2+factor), math.Pi
	}
	return math.Atan2(area, b2+factor), math.Atan2(area, b2-factor)
}

// hTable returns the integrals H(u, v) of cos^u(phi) sin^v(phi) over the
// visible arc of the occulted limb, for u up to degree+2 and v up to degree.
// The arc is symmetric, so odd u rows vanish identically.
func hTable(degree int, lam float64) [][]float64 {
	sinl, cosl := math.Sincos(lam)
	h := make([][]float64, degree+3)
	for u := range h {
		h[u] = make([]float64, degree+1)
	}
	h[0][0] = 2*lam + math.Pi
	if degree >= 1 {
		h[0][1] = -2 * cosl
	}
	for v := 2; v <= degree; v++ {
		h[0][v] = ((float64(v)-1)*h[0][v-2] - 2*cosl*math.Pow(sinl, float64(v-1))) / float64(v)
	}
	for u := 2; u <= degree+2; u++ {
		var bnd float64
		if u%2 == 0 {
			bnd = 2 * math.Pow(cosl, float64(u-1))
		}
		for v := 0; v <= degree; v++ {
			h[u][v] = (bnd*math.Pow(sinl, float64(v+1)) + float64(u-1)*h[u-2][v]) / float64(u+v)
		}
	}
	return h
}

// SolutionVector returns the Green's basis weights s of degree `degree` for
// an occultor of radius r whose center lies at impact parameter b, using a
// fixed Gauss-Legendre rule of the given order for the primitive integrals
// along the occultor limb (Luger et al. 2019, sect. 4). Contracting a
// polynomial against s yields its integral over the visible part of the
// disk. Negative b or r are folded to their absolute values.
func SolutionVector(degree, order int, b, r float64) ([]float64, error) {
	if degree < 0 {
		return nil, fmt.Errorf("%w: negative degree %d", ErrOutOfRange, degree)
	}
	if order < 1 {
		return nil, fmt.Errorf("%w: quadrature order %d", ErrInvalidGeometry, order)
	}
	b = math.Abs(b)
	r = math.Abs(r)
	n := (degree + 1) * (degree + 1)

	kappa0, kappa1 := kappas(b, r)
	lam := math.Pi/2 - kappa1

	// Q: integral along the occulted limb.
	h := hTable(degree, lam)
	s := make([]float64, n)
	for idx := 0; idx < n; idx++ {
		l := isqrt(idx)
		m := idx - l*l - l
		mu := l - m
		nu := l + m
		switch {
		case nu%2 == 0:
			s[idx] = h[mu/2+2][nu/2]
		case l == 1 && m == 0:
			s[idx] = (math.Pi + 2*lam) / 3
		}
	}

	// P: integral along the occultor limb, by quadrature. A vanishing kappa0
	// means the limbs do not cross inside the disk (the occultor is disjoint
	// or engulfs the disk entirely), so there is nothing to integrate.
	if kappa0 == 0 {
		return s, nil
	}
	nodes := make([]float64, order)
	weights := make([]float64, order)
	quad.Legendre{}.FixedLocations(nodes, weights, -kappa0, kappa0)
	powX := make([]float64, degree+3)
	powY := make([]float64, degree+2)
	for t := 0; t < order; t++ {
		sinp, cosp := math.Sincos(nodes[t])
		x := r * sinp
		y := b - r*cosp
		z2 := math.Max(0, 1-b*b-r*r+2*b*r*cosp)
		z3 := z2 * math.Sqrt(z2)
		powX[0], powY[0] = 1, 1
		for e := 1; e < len(powX); e++ {
			powX[e] = powX[e-1] * x
		}
		for e := 1; e < len(powY); e++ {
			powY[e] = powY[e-1] * y
		}
		dx := r * cosp * weights[t]
		dy := r * sinp * weights[t]
		for idx := 0; idx < n; idx++ {
			l := isqrt(idx)
			m := idx - l*l - l
			mu := l - m
			nu := l + m
			switch {
			case nu%2 == 0:
				s[idx] -= powX[(mu+2)/2] * powY[nu/2] * dy
			case l == 1 && m == 0:
				// The prefactor (1-z^3)/(3 rho^2) cancels badly near the
				// disk center, switch to its series there.
				rho2 := x*x + y*y
				var f float64
				if rho2 < 1e-4 {
					f = 0.5 - rho2/8
				} else {
					f = (1 - z3) / (3 * rho2)
				}
				s[idx] -= f * (r*r - b*r*cosp) * weights[t]
			case mu == 1 && l%2 == 0:
				s[idx] -= powX[l-2] * z3 * dx
			case mu == 1:
				s[idx] -= powX[l-3] * y * z3 * dx
			default:
				s[idx] -= powX[(mu-3)/2] * powY[(nu-1)/2] * z3 * dy
			}
		}
	}
	return s, nil
}
