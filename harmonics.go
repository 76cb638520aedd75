package occult

import (
	"fmt"
	"math"
	"sort"
)

// Harmonic is the (L, M) key of one real spherical harmonic coefficient,
// with -L <= M <= L.
type Harmonic struct {
	L, M int
}

// Index returns the position of this harmonic in the dense ordering, i.e.
// L*(L+1) + M. It returns ErrOutOfRange if |M| > L or L is negative.
func (h Harmonic) Index() (int, error) {
	if h.L < 0 || h.M < -h.L || h.M > h.L {
		return 0, fmt.Errorf("%w: l=%d m=%d", ErrOutOfRange, h.L, h.M)
	}
	return h.L*(h.L+1) + h.M, nil
}

// HarmonicFromIndex returns the harmonic stored at position i of the dense
// ordering. This is the inverse of Harmonic.Index.
func HarmonicFromIndex(i int) Harmonic {
	l := int(math.Floor(math.Sqrt(float64(i))))
	return Harmonic{L: l, M: i - l*l - l}
}

// Harmonics is a truncated expansion onto the real spherical harmonics,
// stored sparsely by (L, M) key. The zero coefficients of a dense vector are
// kept as explicit keys so that the degree of the expansion is preserved.
// Harmonics values are immutable: all operations return new expansions.
type Harmonics struct {
	degree int
	coefs  map[Harmonic]float64
}

// NewHarmonics builds an expansion from a sparse coefficient mapping. All
// keys are validated. A nil or empty mapping returns the uniform expansion,
// i.e. a single unit coefficient on (0, 0).
func NewHarmonics(coefs map[Harmonic]float64) (*Harmonics, error) {
	if len(coefs) == 0 {
		return &Harmonics{degree: 0, coefs: map[Harmonic]float64{{0, 0}: 1}}, nil
	}
	cp := make(map[Harmonic]float64, len(coefs))
	degree := 0
	for h, c := range coefs {
		if _, err := h.Index(); err != nil {
			return nil, err
		}
		if h.L > degree {
			degree = h.L
		}
		cp[h] = c
	}
	return &Harmonics{degree: degree, coefs: cp}, nil
}

// NewHarmonicsFromDense builds an expansion from a dense coefficient vector
// in index ordering. The vector may stop short of a full degree, in which
// case the missing trailing coefficients are zero; ToDense always returns
// the full (degree+1)^2 vector.
func NewHarmonicsFromDense(y []float64) (*Harmonics, error) {
	if len(y) == 0 {
		return nil, fmt.Errorf("%w: empty coefficient vector", ErrDimensionMismatch)
	}
	coefs := make(map[Harmonic]float64, len(y))
	degree := 0
	for i, c := range y {
		h := HarmonicFromIndex(i)
		if h.L > degree {
			degree = h.L
		}
		coefs[h] = c
	}
	return &Harmonics{degree: degree, coefs: coefs}, nil
}

// Degree returns the maximum L over all stored keys.
func (y *Harmonics) Degree() int { return y.degree }

// Len returns the dense length of this expansion, (Degree+1)^2.
func (y *Harmonics) Len() int { return (y.degree + 1) * (y.degree + 1) }

// At returns the coefficient of harmonic (l, m), zero if absent.
func (y *Harmonics) At(l, m int) float64 { return y.coefs[Harmonic{l, m}] }

// Axisymmetric returns whether all stored coefficients have M == 0.
func (y *Harmonics) Axisymmetric() bool {
	for h := range y.coefs {
		if h.M != 0 {
			return false
		}
	}
	return true
}

// ToDense scatters the expansion into a dense vector of length (Degree+1)^2.
func (y *Harmonics) ToDense() []float64 {
	v := make([]float64, y.Len())
	for h, c := range y.coefs {
		v[h.L*(h.L+1)+h.M] = c
	}
	return v
}

// Scale returns a new expansion with every coefficient multiplied by c.
func (y *Harmonics) Scale(c float64) *Harmonics {
	cp := make(map[Harmonic]float64, len(y.coefs))
	for h, v := range y.coefs {
		cp[h] = v * c
	}
	return &Harmonics{degree: y.degree, coefs: cp}
}

// sortedKeys returns the stored keys in dense index order. Iterating in a
// fixed order keeps floating point accumulations reproducible from run to
// run.
func (y *Harmonics) sortedKeys() []Harmonic {
	keys := make([]Harmonic, 0, len(y.coefs))
	for h := range y.coefs {
		keys = append(keys, h)
	}
	sort.Slice(keys, func(a, b int) bool {
		ia := keys[a].L*(keys[a].L+1) + keys[a].M
		ib := keys[b].L*(keys[b].L+1) + keys[b].M
		return ia < ib
	})
	return keys
}

// Product returns the expansion of the pointwise product of the two maps,
// truncated at degree y.Degree()+g.Degree(). Each output coefficient is a
// Gaunt style contraction of both inputs against two Wigner 3-j families, the
// order coupling (l1 l2 l3; m1 m2 -m3) and the parity coupling
// (l1 l2 l3; 0 0 0), cf. Varshalovich et al. 1988, chap. 5. The parity factor
// keeps the product commutative and zeroes every odd l1+l2+l3 cross term.
func (y *Harmonics) Product(g *Harmonics) (*Harmonics, error) {
	degCap := y.degree + g.degree
	out := make(map[Harmonic]float64)
	for _, k1 := range y.sortedKeys() {
		c1 := y.coefs[k1]
		sum1 := math.Sqrt(float64(2*k1.L+1)/(4*math.Pi)) * c1
		for _, k2 := range g.sortedKeys() {
			c2 := g.coefs[k2]
			w3j, err := Coupling(k1.L, k2.L, k1.M, k2.M)
			if err != nil {
				return nil, err
			}
			w3j0, err := Coupling(k1.L, k2.L, 0, 0)
			if err != nil {
				return nil, err
			}
			sum2 := math.Sqrt(float64(2*k2.L+1)) * c2 * sum1
			m3 := k1.M + k2.M
			l3min := max(abs(m3), abs(k1.L-k2.L))
			l3max := min(k1.L+k2.L, degCap)
			for l3 := l3min; l3 <= l3max; l3++ {
				// w3j[l3] is Wigner3j(k1.L, k2.L, l3, k1.M, k2.M, -m3).
				s := 1.0
				if (k1.L+k2.L+l3+m3)%2 != 0 {
					s = -1.0
				}
				out[Harmonic{l3, m3}] += s * math.Sqrt(float64(2*l3+1)) * w3j0[l3] * w3j[l3] * sum2
			}
		}
	}
	degree := 0
	for h := range out {
		if h.L > degree {
			degree = h.L
		}
	}
	return &Harmonics{degree: degree, coefs: out}, nil
}

func (y *Harmonics) String() string {
	return fmt.Sprintf("degree %d expansion (%d coefficients)", y.degree, len(y.coefs))
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
