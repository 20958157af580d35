// Package stages implements the eleven pipeline stages of spec §4 as plain
// functions over grid.Grid values, one file per stage, so the driver in
// internal/worldgen/pipeline can sequence them without any stage importing
// another.
package stages

import (
	"math"
	"runtime"
	"sync"

	"github.com/san-smith/mapgen/internal/worldgen/grid"
	"github.com/san-smith/mapgen/internal/worldgen/noise"
	"github.com/san-smith/mapgen/internal/worldgen/params"
)

// forEachRow splits [0,h) into workers deterministic contiguous ranges and
// runs fn on each range concurrently, matching the data-parallel-by-row
// discipline of spec §5: output must not depend on how many workers ran.
func forEachRow(h, workers int, fn func(y0, y1 int)) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > h {
		workers = h
	}
	if workers <= 1 {
		fn(0, h)
		return
	}
	chunk := (h + workers - 1) / workers
	var wg sync.WaitGroup
	for y0 := 0; y0 < h; y0 += chunk {
		y1 := y0 + chunk
		if y1 > h {
			y1 = h
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			fn(y0, y1)
		}(y0, y1)
	}
	wg.Wait()
}

// cylindricalPoint maps a cell (x, y) on the W x H raster onto a 3-D point on
// a sphere of radius r, per spec §4.1's embedding; sampling fBm noise at this
// point gives a heightmap with no seam at x=0.
func cylindricalPoint(x, y, w, h int, r float64) (px, py, pz float64) {
	u := 2 * math.Pi * float64(x) / float64(w)
	lat := math.Pi * (float64(y)/float64(h) - 0.5)
	cosLat := math.Cos(lat)
	return r * cosLat * math.Cos(u), r * cosLat * math.Sin(u), r * math.Sin(lat)
}

// Heightmap runs stage 1 (spec §4.1): samples cylindrical fBm noise, shapes
// it by world type, remaps and compresses it, box-blurs it, then binary
// searches sea_level so the land fraction matches the world type's target
// within 0.5%. It returns the heightmap and the sea level found.
func Heightmap(p params.Params, seed uint64) (h *grid.Grid[float32], seaLevel float64) {
	w, hgt := int(p.Width), int(p.Height)
	g := grid.New[float32](w, hgt)

	gen := noise.New(int64(seed))
	// One sample period should cover roughly W/8 cells (spec §4.1); the
	// sphere's circumference in sample-space is 2*pi*r and the base octave
	// repeats about once per sample unit, so r = 8 / (2*pi) fits about eight
	// base periods around the map, each roughly W/8 cells wide.
	r := 8 / (2 * math.Pi)

	forEachRow(hgt, p.Workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				px, py, pz := cylindricalPoint(x, y, w, hgt, r)
				n := gen.Octave3D(px, py, pz, 6, 2.0, 0.5)
				g.Set(x, y, float32(n))
			}
		}
	})

	shapeByWorldType(g, p)
	remapToUnit(g)
	applyElevationPower(g, p.Terrain.ElevationPower)
	if p.Terrain.MountainCompression > 0 {
		applyMountainCompression(g, p.SeaLevel, p.Terrain.MountainCompression)
	}
	if p.Terrain.SmoothRadius > 0 {
		g = boxBlur(g, p.Terrain.SmoothRadius)
	}

	seaLevel = findSeaLevel(g, p.WorldType.TargetLandFraction(), p.SeaLevel)
	return g, seaLevel
}

// shapeByWorldType applies the per-world-type terrain shaping of spec §4.1's
// table. Dispatch is a single switch on the WorldType tag (spec §9's
// "polymorphism by tag, not inheritance").
func shapeByWorldType(g *grid.Grid[float32], p params.Params) {
	w, h := g.W, g.H
	switch p.WorldType {
	case params.EarthLike, params.IceAgeEarth:
		// Raise by latitude-dependent bias: largest at the equator, tapering
		// to zero at the poles, producing a habitable equatorial/temperate belt.
		for y := 0; y < h; y++ {
			lat := float64(y)/float64(h) - 0.5 // [-0.5, 0.5]
			bias := float32(0.08 * (1 - 4*lat*lat))
			for x := 0; x < w; x++ {
				g.Set(x, y, g.At(x, y)+bias)
			}
		}
	case params.Supercontinent:
		// Broad radial hump centered near the equator and the map's
		// longitude midpoint, in wrap-aware cylindrical coordinates.
		cx, cy := float64(w)/2, float64(h)/2
		maxR := math.Hypot(float64(w)/2, float64(h)/2)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				dx := float64(grid.WrapDeltaX(x, int(cx), w))
				dy := float64(y) - cy
				d := math.Hypot(dx, dy) / maxR
				hump := float32(math.Max(0, 1-d) * 0.35)
				g.Set(x, y, g.At(x, y)+hump)
			}
		}
	case params.Archipelago:
		// Subtract the mean, threshold toward water, then add island-
		// density-scaled gaussian blobs back in as land seeds.
		mean := meanValue(g)
		for i, v := range g.Data {
			g.Data[i] = (v-mean)*0.6 - 0.15
		}
		addIslandBlobs(g, p)
	case params.Mediterranean, params.DesertMediterranean:
		annulusMask(g, w, h)
	}
}

func meanValue(g *grid.Grid[float32]) float32 {
	var sum float64
	for _, v := range g.Data {
		sum += float64(v)
	}
	return float32(sum / float64(len(g.Data)))
}

// addIslandBlobs raises scattered circular regions to carve out islands in
// an otherwise mostly-submerged archipelago field, density-scaled by
// islands.island_density. Each blob's radius is floored at
// islands.min_island_size pixels so a low density setting still produces
// islands large enough to survive erosion instead of washing out entirely.
func addIslandBlobs(g *grid.Grid[float32], p params.Params) {
	if p.Islands.IslandDensity <= 0 {
		return
	}
	w, h := g.W, g.H
	count := int(float64(w*h) * p.Islands.IslandDensity / 600)
	if count < 1 {
		count = 1
	}
	minRadius := float64(p.Islands.MinIslandSize)
	if minRadius < 1 {
		minRadius = 1
	}
	seed := rngSeed(p.Seed, 0x15BA_0D5D)
	for i := 0; i < count; i++ {
		s := hashIndex(seed, i)
		cx := int(s % uint64(w))
		cy := int((s >> 20) % uint64(h))
		radius := minRadius + float64((s>>40)%6)
		for dy := -int(radius); dy <= int(radius); dy++ {
			ny := cy + dy
			if ny < 0 || ny >= h {
				continue
			}
			for dx := -int(radius); dx <= int(radius); dx++ {
				nx := grid.WrapX(cx+dx, w)
				d := math.Hypot(float64(dx), float64(dy)) / radius
				if d > 1 {
					continue
				}
				bump := float32((1 - d*d) * 0.5)
				g.Set(nx, ny, g.At(nx, ny)+bump)
			}
		}
	}
}

// annulusMask carves a Mediterranean-style inland sea: a ring mask around a
// seed point near the map center, low inside the ring (sea), neutral
// outside. DesertMediterranean reuses the same shape. No stage applies a
// humidity bias for DesertMediterranean, so it produces the same world as
// Mediterranean.
func annulusMask(g *grid.Grid[float32], w, h int) {
	cx, cy := float64(w)/2, float64(h)/2
	inner, outer := float64(w)/10, float64(w)/6
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := float64(grid.WrapDeltaX(x, int(cx), w))
			dy := float64(y) - cy
			d := math.Hypot(dx, dy)
			var mult float32 = 1
			if d < outer {
				if d < inner {
					mult = 0.2
				} else {
					t := (d - inner) / (outer - inner)
					mult = float32(0.2 + 0.8*t)
				}
			}
			g.Set(x, y, g.At(x, y)*mult)
		}
	}
}

// remapToUnit linearly rescales the grid's min..max range to [0,1].
func remapToUnit(g *grid.Grid[float32]) {
	lo, hi := g.Data[0], g.Data[0]
	for _, v := range g.Data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	for i, v := range g.Data {
		g.Data[i] = (v - lo) / span
	}
}

func applyElevationPower(g *grid.Grid[float32], power float64) {
	for i, v := range g.Data {
		g.Data[i] = float32(math.Pow(float64(v), power))
	}
}

// applyMountainCompression pushes land elevations toward 1.0 by mixing in
// 1-(1-h)^k, per spec §4.1's `mix(h, 1-(1-h)^k, compression)`.
func applyMountainCompression(g *grid.Grid[float32], seaLevel, compression float64) {
	k := 3.0
	for i, v := range g.Data {
		if float64(v) <= seaLevel {
			continue
		}
		compressed := 1 - math.Pow(1-float64(v), k)
		g.Data[i] = float32((1-compression)*float64(v) + compression*compressed)
	}
}

// boxBlur applies an X-wrap-aware box blur of the given radius and returns a
// new grid (the source is read in full before any write).
func boxBlur(g *grid.Grid[float32], radius int) *grid.Grid[float32] {
	out := grid.New[float32](g.W, g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			var sum float32
			var n int
			for dy := -radius; dy <= radius; dy++ {
				ny := y + dy
				if !g.InBoundsY(ny) {
					continue
				}
				for dx := -radius; dx <= radius; dx++ {
					sum += g.At(x+dx, ny)
					n++
				}
			}
			out.Set(x, y, sum/float32(n))
		}
	}
	return out
}

// findSeaLevel binary searches sea_level in (0,1) so the resulting land
// fraction |{H>sea_level}|/N matches target within 0.5%, per spec §4.1.
func findSeaLevel(g *grid.Grid[float32], target, start float64) float64 {
	lo, hi := 0.01, 0.99
	best := start
	for iter := 0; iter < 40; iter++ {
		mid := (lo + hi) / 2
		frac := landFraction(g, mid)
		if math.Abs(frac-target) < 0.005 {
			return mid
		}
		// Raising sea_level shrinks the land fraction.
		if frac > target {
			lo = mid
		} else {
			hi = mid
		}
		best = mid
	}
	return best
}

func landFraction(g *grid.Grid[float32], seaLevel float64) float64 {
	var land int
	for _, v := range g.Data {
		if float64(v) > seaLevel {
			land++
		}
	}
	return float64(land) / float64(len(g.Data))
}

func rngSeed(root uint64, tag uint64) uint64 {
	x := root ^ tag
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}

func hashIndex(seed uint64, i int) uint64 {
	return rngSeed(seed, uint64(uint32(i))*0x9E3779B1+1)
}
