// Package randutil derives reproducible random generators for the shoe and
// the Monte Carlo workers.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns the seed for an independent stream of a base seed. Worker
// i of a parallel evaluation uses Derive(seed, i) so shards never share a
// sequence and the split is reproducible for a fixed worker count.
func Derive(seed int64, stream int) int64 {
	return int64(mix(uint64(seed) ^ mix(uint64(stream+1)*goldenRatio64)))
}

// TimeSeed returns a seed from the wall clock, for runs without an
// explicit seed.
func TimeSeed() int64 {
	return time.Now().UnixNano()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
