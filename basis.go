package occult

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// The polynomial basis used throughout orders the monomials x^i y^j z^k by
// the same index as the spherical harmonics, with z never raised above the
// first power since z^2 = 1 - x^2 - y^2 on the unit sphere. See Luger et al.
// 2019 (AJ 157, 64) for the construction.

// polyExponents returns the (i, j, k) exponents of the n-th monomial.
func polyExponents(n int) (i, j, k int) {
	l := isqrt(n)
	m := n - l*l - l
	mu := l - m
	nu := l + m
	if nu%2 == 0 {
		return mu / 2, nu / 2, 0
	}
	return (mu - 1) / 2, (nu - 1) / 2, 1
}

// polyIndex is the inverse of polyExponents, with k at most 1.
func polyIndex(i, j, k int) int {
	l := i + j + k
	m := j - i
	return l*(l+1) + m
}

func isqrt(n int) int {
	return int(math.Floor(math.Sqrt(float64(n))))
}

// ylmA is the spherical harmonic normalization constant.
func ylmA(l, m int) float64 {
	d := 2.0
	if m == 0 {
		d = 1
	}
	return math.Sqrt(d * float64(2*l+1) * fact(l-m) / (4 * math.Pi * fact(l+m)))
}

// ylmB is the second normalization constant, with the ratio of half integer
// gamma functions written as a running product. The ratio vanishes at the
// poles of the denominator.
func ylmB(l, m, j, k int) float64 {
	ratio := 1.0
	for i := 0; i < l; i++ {
		ratio *= 0.5*float64(-l+m+k-1) + 1 + float64(i)
	}
	return math.Pow(2, float64(l)) * fact(m) * ratio /
		(fact(j) * fact(k) * fact(m-j) * fact(l-m-k))
}

// ylmC is the binomial theorem coefficient of the z power reduction.
func ylmC(p, q, k int) float64 {
	return fact(k/2) / (fact(q/2) * fact((k-p)/2) * fact((p-q)/2))
}

func pow1(e int) float64 {
	if e%2 == 0 {
		return 1
	}
	return -1
}

// ylmPoly returns the polynomial coefficients of the real spherical harmonic
// (l, m), keyed by monomial index.
func ylmPoly(l, m int) map[int]float64 {
	mu := abs(m)
	start := 0
	if m < 0 {
		start = 1
	}
	amp := ylmA(l, mu)
	out := make(map[int]float64)
	for j := start; j <= mu; j += 2 {
		for k := 0; k <= l-mu; k++ {
			if k%2 == 0 {
				for p := 0; p <= k; p += 2 {
					for q := 0; q <= p; q += 2 {
						c := pow1((j+p)/2) * amp * ylmB(l, mu, j, k) * ylmC(p, q, k)
						if c != 0 {
							out[polyIndex(mu-j+p-q, j+q, 0)] += c
						}
					}
				}
			} else {
				for p := 0; p <= k-1; p += 2 {
					for q := 0; q <= p; q += 2 {
						c := pow1((j+p)/2) * amp * ylmB(l, mu, j, k) * ylmC(p, q, k-1)
						if c != 0 {
							out[polyIndex(mu-j+p-q, j+q, 1)] += c
						}
					}
				}
			}
		}
	}
	return out
}

// basisA1 returns the change of basis from spherical harmonic coefficients
// to polynomial coefficients, scaled so that the uniform map has unit disk
// integrated flux.
func basisA1(degree int) *mat.Dense {
	n := (degree + 1) * (degree + 1)
	a1 := mat.NewDense(n, n, nil)
	amp := 2 / math.Sqrt(math.Pi)
	col := 0
	for l := 0; l <= degree; l++ {
		for m := -l; m <= l; m++ {
			for idx, c := range ylmPoly(l, m) {
				a1.Set(idx, col, c*amp)
			}
			col++
		}
	}
	return a1
}

// basisA2Inverse returns the change of basis from the Green's basis to the
// polynomial basis. Its columns are the Green's functions expressed as
// polynomials, so converting a polynomial to the Green's basis is a linear
// solve against this matrix.
func basisA2Inverse(degree int) *mat.Dense {
	n := (degree + 1) * (degree + 1)
	a2inv := mat.NewDense(n, n, nil)
	for col := 0; col < n; col++ {
		l := isqrt(col)
		m := col - l*l - l
		mu := l - m
		nu := l + m
		switch {
		case nu%2 == 0:
			a2inv.Set(polyIndex(mu/2, nu/2, 0), col, float64(mu+2)/2)
		case l == 1 && m == 0:
			a2inv.Set(polyIndex(0, 0, 1), col, 1)
		case mu == 1 && l%2 == 0:
			a2inv.Set(polyIndex(l-2, 1, 1), col, 3)
		case mu == 1:
			a2inv.Set(polyIndex(l-3, 0, 1), col, -1)
			a2inv.Set(polyIndex(l-1, 0, 1), col, 1)
			a2inv.Set(polyIndex(l-3, 2, 1), col, 4)
		default:
			if c := float64(mu-3) / 2; c != 0 {
				a2inv.Set(polyIndex((mu-5)/2, (nu-1)/2, 1), col, c)
				a2inv.Set(polyIndex((mu-5)/2, (nu+3)/2, 1), col, -c)
			}
			a2inv.Set(polyIndex((mu-1)/2, (nu-1)/2, 1), col, -float64(mu+3)/2)
		}
	}
	return a2inv
}

// basisU0 returns the change of basis from limb darkening coefficients to
// polynomial coefficients. Contracting [1, u1, ..., uN] against it yields
// the intensity profile 1 - sum_n u_n (1-z)^n as a polynomial.
func basisU0(udeg int) *mat.Dense {
	cols := (udeg + 1) * (udeg + 1)
	u0 := mat.NewDense(udeg+1, cols, nil)
	u0.Set(0, 0, 1)
	for n := 1; n <= udeg; n++ {
		for idx, c := range oneMinusZPow(n) {
			u0.Set(n, idx, -c)
		}
	}
	return u0
}

// oneMinusZPow expands (1-z)^n onto the monomial basis, reducing even powers
// of z with z^2 = 1 - x^2 - y^2.
func oneMinusZPow(n int) map[int]float64 {
	out := make(map[int]float64)
	for i := 0; i <= n; i++ {
		t := choose(n, i) * pow1(i)
		h := i / 2
		zk := i % 2
		for b := 0; b <= h; b++ {
			for c := 0; c <= h-b; c++ {
				coef := t * fact(h) / (fact(h-b-c) * fact(b) * fact(c)) * pow1(b+c)
				out[polyIndex(2*b, 2*c, zk)] += coef
			}
		}
	}
	return out
}
