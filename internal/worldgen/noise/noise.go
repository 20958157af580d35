// Package noise wraps OpenSimplex noise for the fractal sampling used by
// heightmap synthesis. It generalizes
// the teacher's 2-D octave noise generator to 3-D sampling so the cylindrical
// projection in spec §4.1 has no seam at x=0.
package noise

import (
	"github.com/ojrac/opensimplex-go"
)

// Generator wraps OpenSimplex noise with seed support.
type Generator struct {
	noise opensimplex.Noise
	seed  int64
}

// New creates a new noise generator with the given seed.
func New(seed int64) *Generator {
	return &Generator{
		noise: opensimplex.New(seed),
		seed:  seed,
	}
}

// Eval2D returns the noise value at (x, y), normalized to [0, 1].
func (n *Generator) Eval2D(x, y float64) float64 {
	return (n.noise.Eval2(x, y) + 1) / 2
}

// Eval3D returns the noise value at (x, y, z), normalized to [0, 1]. Used
// for cylindrical sampling, where (x, y, z) is a point on the circular
// embedding of the map's longitude axis, so wrapping X never produces a
// seam.
func (n *Generator) Eval3D(x, y, z float64) float64 {
	return (n.noise.Eval3(x, y, z) + 1) / 2
}

// Octave2D generates fractal (fBm) noise in the plane using multiple
// octaves. octaves is the number of noise layers combined; frequency is the
// base frequency (lower = larger features); persistence is the amplitude
// decrease per octave (0.5 is typical).
func (n *Generator) Octave2D(x, y float64, octaves int, frequency, persistence float64) float64 {
	var total, maxValue float64
	amplitude := 1.0
	freq := frequency

	for i := 0; i < octaves; i++ {
		total += n.Eval2D(x*freq, y*freq) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		freq *= 2
	}

	return total / maxValue
}

// Octave3D generates fractal (fBm) noise over a 3-D point using multiple
// octaves with the given lacunarity (frequency growth per octave) and gain
// (amplitude decay per octave), per spec §4.1 (5-7 octaves, lacunarity 2.0,
// gain 0.5 are the recommended defaults).
func (n *Generator) Octave3D(x, y, z float64, octaves int, lacunarity, gain float64) float64 {
	var total, maxValue float64
	amplitude := 1.0
	freq := 1.0

	for i := 0; i < octaves; i++ {
		total += n.Eval3D(x*freq, y*freq, z*freq) * amplitude
		maxValue += amplitude
		amplitude *= gain
		freq *= lacunarity
	}

	return total / maxValue
}

// Seed returns the generator's seed.
func (n *Generator) Seed() int64 {
	return n.seed
}
