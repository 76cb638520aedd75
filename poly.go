package occult

import (
	"fmt"
	"sort"
)

// Poly is a polynomial in (x, y, z) on the unit sphere, stored sparsely by
// monomial exponents with z at most linear. Like Harmonics, Poly values are
// immutable.
type Poly struct {
	degree int
	coefs  map[[3]int]float64
}

// newPolyFromDense gathers a dense monomial coefficient vector into a sparse
// polynomial of the stated degree. Zero entries are dropped.
func newPolyFromDense(v []float64, degree int) (*Poly, error) {
	if len(v) > (degree+1)*(degree+1) {
		return nil, fmt.Errorf("%w: %d coefficients exceed degree %d", ErrDimensionMismatch, len(v), degree)
	}
	coefs := make(map[[3]int]float64)
	for n, c := range v {
		if c == 0 {
			continue
		}
		i, j, k := polyExponents(n)
		coefs[[3]int{i, j, k}] += c
	}
	return &Poly{degree: degree, coefs: coefs}, nil
}

// Degree returns the declared degree of the polynomial.
func (p *Poly) Degree() int { return p.degree }

// Dense scatters the polynomial into a vector of length (Degree+1)^2.
func (p *Poly) Dense() []float64 {
	v := make([]float64, (p.degree+1)*(p.degree+1))
	for e, c := range p.coefs {
		v[polyIndex(e[0], e[1], e[2])] = c
	}
	return v
}

func (p *Poly) sortedKeys() [][3]int {
	keys := make([][3]int, 0, len(p.coefs))
	for e := range p.coefs {
		keys = append(keys, e)
	}
	sort.Slice(keys, func(a, b int) bool {
		return polyIndex(keys[a][0], keys[a][1], keys[a][2]) <
			polyIndex(keys[b][0], keys[b][1], keys[b][2])
	})
	return keys
}

// Mul returns the product polynomial of degree p.Degree()+q.Degree().
// Quadratic powers of z produced by the multiplication are reduced on the
// spot with z^2 = 1 - x^2 - y^2.
func (p *Poly) Mul(q *Poly) *Poly {
	out := make(map[[3]int]float64)
	for _, e1 := range p.sortedKeys() {
		c1 := p.coefs[e1]
		for _, e2 := range q.sortedKeys() {
			c := c1 * q.coefs[e2]
			i, j, k := e1[0]+e2[0], e1[1]+e2[1], e1[2]+e2[2]
			if k == 2 {
				out[[3]int{i, j, 0}] += c
				out[[3]int{i + 2, j, 0}] -= c
				out[[3]int{i, j + 2, 0}] -= c
			} else {
				out[[3]int{i, j, k}] += c
			}
		}
	}
	return &Poly{degree: p.degree + q.degree, coefs: out}
}

// Dot contracts the polynomial against a dense vector of weights of the same
// degree, e.g. a solution vector.
func (p *Poly) Dot(v []float64) (float64, error) {
	if len(v) != (p.degree+1)*(p.degree+1) {
		return 0, fmt.Errorf("%w: weight vector has length %d, want %d", ErrDimensionMismatch, len(v), (p.degree+1)*(p.degree+1))
	}
	var acc float64
	for _, e := range p.sortedKeys() {
		acc += p.coefs[e] * v[polyIndex(e[0], e[1], e[2])]
	}
	return acc, nil
}
