package occult

import (
	"fmt"
	"math"
)

// Coupling returns the Wigner 3-j symbols (l1 l2 l3; m1 m2 -m3) with
// m3 = m1 + m2, for every l3 from 0 to l1+l2, indexed by l3. Entries below
// the triangle bound max(|l1-l2|, |m3|) are zero.
//
// The whole family is computed at once with the three term recurrence of
// Luscombe & Luban 1998 (Phys. Rev. E 57, 7274), running from both ends of
// the l3 range and matching in the middle, which stays stable where a single
// sided recurrence would blow up.
func Coupling(l1, l2, m1, m2 int) ([]float64, error) {
	if l1 < 0 || l2 < 0 || abs(m1) > l1 || abs(m2) > l2 {
		return nil, fmt.Errorf("%w: invalid 3-j arguments l1=%d l2=%d m1=%d m2=%d", ErrOutOfRange, l1, l2, m1, m2)
	}
	m3 := m1 + m2
	jmin := max(abs(l1-l2), abs(m3))
	jmax := l1 + l2
	w := make([]float64, jmax+1)

	// Recurrence coefficients for f(j) = (j l1 l2; -m3 m1 m2), an even
	// permutation of the requested symbol.
	mm1 := float64(-m3)
	a := func(j float64) float64 {
		d := float64(l1 - l2)
		s := float64(l1 + l2 + 1)
		return math.Sqrt((j*j - d*d) * (s*s - j*j) * (j*j - mm1*mm1))
	}
	b := func(j float64) float64 {
		t := mm1 * float64(l1*(l1+1)-l2*(l2+1))
		return (2*j + 1) * (t - float64(m1-m2)*j*(j+1))
	}

	switch {
	case jmin == jmax:
		w[jmin] = 1
	case jmax-jmin == 1:
		w[jmin] = 1
		w[jmin+1] = forwardSeed(w[jmin], l1, m1, jmin, a, b)
	default:
		jmid := (jmin + jmax) / 2
		f := make([]float64, jmax+2)
		f[jmin] = 1
		f[jmin+1] = forwardSeed(f[jmin], l1, m1, jmin, a, b)
		for j := jmin + 1; j <= jmid; j++ {
			jf := float64(j)
			f[j+1] = -(b(jf)*f[j] + (jf+1)*a(jf)*f[j-1]) / (jf * a(jf+1))
		}
		g := make([]float64, jmax+1)
		g[jmax] = 1
		g[jmax-1] = -b(float64(jmax)) * g[jmax] / (float64(jmax+1) * a(float64(jmax)))
		for j := jmax - 1; j >= jmid; j-- {
			jf := float64(j)
			g[j-1] = -(jf*a(jf+1)*g[j+1] + b(jf)*g[j]) / ((jf + 1) * a(jf))
		}
		// Match the two branches where the forward one is largest, to
		// avoid dividing at a node of the solution.
		jm := jmid - 1
		for _, j := range []int{jmid, jmid + 1} {
			if math.Abs(f[j]) > math.Abs(f[jm]) {
				jm = j
			}
		}
		lambda := g[jm] / f[jm]
		for j := jmin; j <= jmid; j++ {
			w[j] = f[j] * lambda
		}
		for j := jmid + 1; j <= jmax; j++ {
			w[j] = g[j]
		}
	}

	// Normalize with sum_j (2j+1) f(j)^2 = 1 and fix the overall sign so
	// that sign(f(jmax)) = (-1)^(l1-l2+m1+m2).
	var s float64
	for j := jmin; j <= jmax; j++ {
		s += float64(2*j+1) * w[j] * w[j]
	}
	s = math.Sqrt(s)
	neg := (abs(l1-l2+m1+m2)%2 == 1) != (w[jmax] < 0)
	for j := jmin; j <= jmax; j++ {
		w[j] /= s
		if neg {
			w[j] = -w[j]
		}
	}
	return w, nil
}

// forwardSeed returns f(jmin+1) given f(jmin). At jmin > 0 the three term
// recurrence loses its f(jmin-1) term and gives the ratio directly; at
// jmin = 0 (which forces l1 = l2 and m3 = 0) the recurrence degenerates and
// the ratio follows from the closed forms of (0 l l; 0 m -m) and
// (1 l l; 0 m -m).
func forwardSeed(fjmin float64, l1, m1, jmin int, a, b func(float64) float64) float64 {
	if jmin == 0 {
		return fjmin * float64(m1) / math.Sqrt(float64(l1)*float64(l1+1))
	}
	jf := float64(jmin)
	return -b(jf) * fjmin / (jf * a(jf+1))
}
