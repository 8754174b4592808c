package handdrawn

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand/v2"
	"strings"
)

type rng struct {
	r *rand.Rand
}

func newRNG(seed uint64) *rng {
	return &rng{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// next returns a value in [0, 1).
func (g *rng) next() float64 { return g.r.Float64() }

// jitter returns a value in [-amount, amount).
func (g *rng) jitter(amount float64) float64 { return (g.next()*2 - 1) * amount }

func hash(s string, seed uint64) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d:%s", seed, s)
	return h.Sum64()
}

// wobbledRect draws a closed rectangle whose corners and edge midpoints are
// nudged by up to maxWobble pixels, scaled down for small shapes.
func wobbledRect(x, y, w, h float64, seed uint64, id string) string {
	g := newRNG(hash(id, seed))
	amount := math.Min(maxWobble, math.Min(w, h)/8)

	corners := [4][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	for i := range corners {
		corners[i][0] += g.jitter(amount)
		corners[i][1] += g.jitter(amount)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "M%.2f,%.2f", corners[0][0], corners[0][1])
	for i := 1; i <= 4; i++ {
		from, to := corners[i-1], corners[i%4]
		cx := (from[0]+to[0])/2 + g.jitter(amount)
		cy := (from[1]+to[1])/2 + g.jitter(amount)
		fmt.Fprintf(&b, " Q%.2f,%.2f %.2f,%.2f", cx, cy, to[0], to[1])
	}
	b.WriteString(" Z")
	return b.String()
}

// rotationFor returns a small deterministic tilt in degrees. Wide, flat
// shapes tilt less.
func rotationFor(id string, w, h float64) float64 {
	g := newRNG(hash(id, 0))
	limit := 2.0
	if w > 0 && h > 0 && w/h > 4 {
		limit = 1.0
	}
	return g.jitter(limit)
}
