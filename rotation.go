package occult

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// R1 rotation about the 1st axis, as a direction cosine matrix (cf. Schaub &
// Junkins, Analytical Mechanics of Space Systems).
func R1(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, c, s, 0, -s, c})
}

// R2 rotation about the 2nd axis.
func R2(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, 0, -s, 0, 1, 0, s, 0, c})
}

// R3 rotation about the 3rd axis.
func R3(x float64) *mat.Dense {
	s, c := math.Sincos(x)
	return mat.NewDense(3, 3, []float64{c, s, 0, -s, c, 0, 0, 0, 1})
}

// MxV33 multiplies a matrix with a vector. Note that there is no dimension check!
func MxV33(m *mat.Dense, v []float64) (o []float64) {
	vVec := mat.NewVecDense(len(v), v)
	var rVec mat.VecDense
	rVec.MulVec(m, vVec)
	return []float64{rVec.At(0, 0), rVec.At(1, 0), rVec.At(2, 0)}
}

// rodrigues returns the active rotation matrix about the given axis by the
// given angle. The axis is normalized here, a zero axis is degenerate.
func rodrigues(axis []float64, angle float64) (*mat.Dense, error) {
	if len(axis) != 3 {
		return nil, fmt.Errorf("%w: axis must have three components, got %d", ErrDimensionMismatch, len(axis))
	}
	if norm(axis) < 1e-12 {
		return nil, ErrDegenerateAxis
	}
	u := unit(axis)
	s, c := math.Sincos(angle)
	k := 1 - c
	return mat.NewDense(3, 3, []float64{
		c + u[0]*u[0]*k, u[0]*u[1]*k - u[2]*s, u[0]*u[2]*k + u[1]*s,
		u[1]*u[0]*k + u[2]*s, c + u[1]*u[1]*k, u[1]*u[2]*k - u[0]*s,
		u[2]*u[0]*k - u[1]*s, u[2]*u[1]*k + u[0]*s, c + u[2]*u[2]*k,
	}), nil
}

// eulerZYZ extracts the intrinsic Z-Y-Z Euler angles of an active rotation
// matrix, i.e. r = Rz(alpha) Ry(beta) Rz(gamma). At the gimbal lock
// (sin(beta) = 0) gamma is set to zero, any valid split yields the same
// harmonic rotation.
func eulerZYZ(r *mat.Dense) (alpha, beta, gamma float64) {
	sy := math.Hypot(r.At(0, 2), r.At(1, 2))
	beta = math.Atan2(sy, r.At(2, 2))
	if sy < 1e-12 {
		alpha = math.Atan2(-r.At(0, 1), r.At(1, 1))
		return alpha, beta, 0
	}
	alpha = math.Atan2(r.At(1, 2), r.At(0, 2))
	gamma = math.Atan2(r.At(2, 1), -r.At(2, 0))
	return
}

// uMatrix returns the unitary change of basis from real to complex spherical
// harmonics at degree el, as a dense (2el+1)^2 row major complex block. Rows
// index m, columns index n, both shifted by el.
func uMatrix(el int) []complex128 {
	n := 2*el + 1
	u := make([]complex128, n*n)
	isq2 := complex(1/math.Sqrt2, 0)
	for m := -el; m <= el; m++ {
		for nn := -el; nn <= el; nn++ {
			if m != nn && m != -nn {
				continue
			}
			var term1 complex128
			switch {
			case nn < 0:
				term1 = complex(0, 1)
			case nn == 0:
				term1 = complex(math.Sqrt2/2, 0)
			default:
				term1 = complex(1, 0)
			}
			term2 := complex(1, 0)
			if m > 0 && ((nn < 0 && nn%2 == 0) || (nn > 0 && nn%2 != 0)) {
				term2 = complex(-1, 0)
			}
			var delta complex128
			if m == nn {
				delta++
			}
			if m == -nn {
				delta++
			}
			u[(m+el)*n+(nn+el)] = term1 * term2 * isq2 * delta
		}
	}
	return u
}

// RotationMatrices returns the real block diagonal rotation operator for an
// axis-angle rotation, one dense (2l+1)^2 block per degree l from 0 to
// maxDegree. Each block is the Wigner-D matrix of its degree conjugated by
// the real-to-complex change of basis (Varshalovich et al. 1988, chap. 4).
func RotationMatrices(maxDegree int, axis []float64, angle float64) ([]*mat.Dense, error) {
	if maxDegree < 0 {
		return nil, fmt.Errorf("%w: negative degree %d", ErrOutOfRange, maxDegree)
	}
	r, err := rodrigues(axis, angle)
	if err != nil {
		return nil, err
	}
	alpha, beta, gamma := eulerZYZ(r)
	planes := cachedPlanes(maxDegree, beta)
	ctr := maxDegree
	s := 2*maxDegree + 1
	blocks := make([]*mat.Dense, maxDegree+1)
	for el := 0; el <= maxDegree; el++ {
		n := 2*el + 1
		d := make([]complex128, n*n)
		for mp := -el; mp <= el; mp++ {
			for m := -el; m <= el; m++ {
				ph := -(float64(mp)*alpha + float64(m)*gamma)
				small := planes[el][(mp+ctr)*s+(m+ctr)]
				d[(mp+el)*n+(m+el)] = complex(small*math.Cos(ph), small*math.Sin(ph))
			}
		}
		u := uMatrix(el)
		// tmp = D U, then the real block is Re(U^H tmp).
		tmp := make([]complex128, n*n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				var acc complex128
				for k := 0; k < n; k++ {
					acc += d[i*n+k] * u[k*n+j]
				}
				tmp[i*n+j] = acc
			}
		}
		re := make([]float64, n*n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				var acc complex128
				for k := 0; k < n; k++ {
					acc += conj(u[k*n+i]) * tmp[k*n+j]
				}
				re[i*n+j] = real(acc)
			}
		}
		blocks[el] = mat.NewDense(n, n, re)
	}
	return blocks, nil
}

func conj(c complex128) complex128 { return complex(real(c), -imag(c)) }

// applyBlocks rotates a dense coefficient vector degree by degree.
func applyBlocks(blocks []*mat.Dense, y []float64) []float64 {
	out := make([]float64, len(y))
	for el, blk := range blocks {
		off := el * el
		n := 2*el + 1
		for i := 0; i < n; i++ {
			var acc float64
			for j := 0; j < n; j++ {
				acc += blk.At(i, j) * y[off+j]
			}
			out[off+i] = acc
		}
	}
	return out
}

// rotateDense applies an axis-angle rotation to a dense coefficient vector
// of degree maxDegree.
func rotateDense(maxDegree int, axis []float64, angle float64, y []float64) ([]float64, error) {
	blocks, err := RotationMatrices(maxDegree, axis, angle)
	if err != nil {
		return nil, err
	}
	return applyBlocks(blocks, y), nil
}

// Rotate returns the expansion of this map rotated about the given axis by
// the given angle, in radians. The degree is unchanged.
func (y *Harmonics) Rotate(axis []float64, angle float64) (*Harmonics, error) {
	rotated, err := rotateDense(y.degree, axis, angle, y.ToDense())
	if err != nil {
		return nil, err
	}
	return NewHarmonicsFromDense(rotated)
}
