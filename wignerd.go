package occult

import (
	"math"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// Wigner-d planes are pure functions of (maxDegree, beta) and get reused
// heavily when many occultation geometries share an axis, so they are kept
// in a bounded LRU keyed by both.
type planeKey struct {
	degree int
	beta   float64
}

var (
	planeCache     *lru.Cache
	planeCacheOnce sync.Once
)

func cachedPlanes(maxDegree int, beta float64) [][]float64 {
	planeCacheOnce.Do(func() {
		planeCache, _ = lru.New(occultConfig().planeCacheSize)
	})
	key := planeKey{maxDegree, beta}
	if v, ok := planeCache.Get(key); ok {
		return v.([][]float64)
	}
	planes := wignerDPlanes(maxDegree, beta)
	planeCache.Add(key, planes)
	return planes
}

// wignerDPlanes returns the Wigner small-d planes d^l(beta) for every degree
// l from 0 to maxDegree. Each plane is a (2*maxDegree+1)^2 row major square
// with the (m', m) block of degree l centered on (maxDegree, maxDegree).
//
// The planes are built degree by degree with Risbo's recursion (Risbo 1996,
// J. Geodesy 70, 383), doubling each half turn in two passes through an
// intermediate half integer step.
func wignerDPlanes(maxDegree int, beta float64) [][]float64 {
	ctr := maxDegree
	s := 2*maxDegree + 1
	cur := make([]float64, s*s)
	planes := make([][]float64, maxDegree+1)
	coshb := -math.Cos(beta / 2)
	sinhb := math.Sin(beta / 2)
	cosb := math.Cos(beta)
	sinb := math.Sin(beta)
	for el := 0; el <= maxDegree; el++ {
		switch {
		case el == 0:
			cur[ctr*s+ctr] = 1
		case el == 1:
			cur[(ctr-1)*s+ctr-1] = coshb * coshb
			cur[(ctr-1)*s+ctr] = sinb / math.Sqrt2
			cur[(ctr-1)*s+ctr+1] = sinhb * sinhb
			cur[ctr*s+ctr-1] = -sinb / math.Sqrt2
			cur[ctr*s+ctr] = cosb
			cur[ctr*s+ctr+1] = sinb / math.Sqrt2
			cur[(ctr+1)*s+ctr-1] = sinhb * sinhb
			cur[(ctr+1)*s+ctr] = -sinb / math.Sqrt2
			cur[(ctr+1)*s+ctr+1] = coshb * coshb
		default:
			risboStep(cur, s, ctr, el, coshb, sinhb)
		}
		plane := make([]float64, s*s)
		copy(plane, cur)
		planes[el] = plane
	}
	return planes
}

// risboStep advances the plane from degree el-1 to el, for el >= 2. The
// intermediate half step lives in a (2*el)^2 workspace.
func risboStep(dl []float64, s, ctr, el int, coshb, sinhb float64) {
	j1 := 2*el - 1
	w := 2 * el
	dd := make([]float64, w*w)
	for k := 0; k < j1; k++ {
		sqrtJmk := math.Sqrt(float64(j1 - k))
		sqrtKp1 := math.Sqrt(float64(k + 1))
		for i := 0; i < j1; i++ {
			sqrtJmi := math.Sqrt(float64(j1 - i))
			sqrtIp1 := math.Sqrt(float64(i + 1))
			d := dl[(k-el+1+ctr)*s+(i-el+1+ctr)]
			dd[k*w+i] += sqrtJmi * sqrtJmk * d * coshb
			dd[k*w+i+1] -= sqrtIp1 * sqrtJmk * d * sinhb
			dd[(k+1)*w+i] += sqrtJmi * sqrtKp1 * d * sinhb
			dd[(k+1)*w+i+1] += sqrtIp1 * sqrtKp1 * d * coshb
		}
	}
	for r := ctr - el; r <= ctr+el; r++ {
		for c := ctr - el; c <= ctr+el; c++ {
			dl[r*s+c] = 0
		}
	}
	j2 := 2 * el
	for k := 0; k < j2; k++ {
		sqrtJmk := math.Sqrt(float64(j2 - k))
		sqrtKp1 := math.Sqrt(float64(k + 1))
		for i := 0; i < j2; i++ {
			sqrtJmi := math.Sqrt(float64(j2 - i))
			sqrtIp1 := math.Sqrt(float64(i + 1))
			d := dd[k*w+i]
			dl[(k-el+ctr)*s+(i-el+ctr)] += sqrtJmi * sqrtJmk * d * coshb
			dl[(k-el+ctr)*s+(i-el+ctr+1)] -= sqrtIp1 * sqrtJmk * d * sinhb
			dl[(k-el+ctr+1)*s+(i-el+ctr)] += sqrtJmi * sqrtKp1 * d * sinhb
			dl[(k-el+ctr+1)*s+(i-el+ctr+1)] += sqrtIp1 * sqrtKp1 * d * coshb
		}
	}
	inv := 1 / float64(j1*j2)
	for n := range dl {
		dl[n] *= inv
	}
}
