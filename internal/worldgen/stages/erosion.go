package stages

import (
	"math"

	"github.com/san-smith/mapgen/internal/worldgen/grid"
	"github.com/san-smith/mapgen/internal/worldgen/params"
	"github.com/san-smith/mapgen/internal/worldgen/rng"
)

// Erosion runs stage 2 (spec §4.2): a thermal (talus) pass followed by a
// hydraulic particle pass. Both are deterministic given seed; the hydraulic
// pass keys each droplet from (base_seed, droplet_index) per spec §9 and runs
// the droplets one at a time in index order, so output never depends on
// worker count.
func Erosion(h *grid.Grid[float32], p params.Params, seed uint64) *grid.Grid[float32] {
	stageSeed := rng.Subseed(seed, rng.TagErosion)
	out := thermalErosion(h, 20, 0.01, 0.5)
	hydraulicErosion(out, p, stageSeed)
	return out
}

// thermalErosion repeatedly transfers a fraction of the excess height from a
// cell to any 4-neighbor whose height difference exceeds the talus angle,
// smoothing slopes without destroying ridgelines. Double-buffered so a full
// sweep is independent of iteration-internal write order (spec §5).
func thermalErosion(h *grid.Grid[float32], iterations int, talus, transfer float32) *grid.Grid[float32] {
	cur := h.Clone()
	next := grid.New[float32](h.W, h.H)
	for iter := 0; iter < iterations; iter++ {
		copy(next.Data, cur.Data)
		for y := 0; y < cur.H; y++ {
			for x := 0; x < cur.W; x++ {
				hv := cur.At(x, y)
				for _, nb := range cur.Neighbors4(x, y) {
					nv := cur.At(nb.X, nb.Y)
					diff := hv - nv
					if diff > talus {
						excess := (diff - talus) * transfer / 2
						next.Data[cur.Idx(x, y)] -= excess
						next.Data[cur.Idx(nb.X, nb.Y)] += excess
					}
				}
			}
		}
		cur, next = next, cur
	}
	return cur
}

type droplet struct {
	x, y             float64
	vx, vy           float64
	speed            float64
	water            float64
	sediment         float64
}

// hydraulicErosion spawns W*H/8 droplets (default), each walking downhill via
// bilinear-sampled gradient descent, eroding and depositing sediment per
// spec §4.2's capacity formula. Droplets run sequentially in index order on a
// single goroutine and write directly to h, so each droplet sees the heights
// left by the droplets before it; the result depends on that fixed order and
// is therefore reproducible.
func hydraulicErosion(h *grid.Grid[float32], p params.Params, stageSeed uint64) {
	w, hgt := h.W, h.H
	numDroplets := (w * hgt) / 8
	const (
		kc          = 4.0  // sediment capacity scalar
		minSlope    = 0.01
		kDeposit    = 0.3
		kErode      = 0.3
		gravity     = 4.0
		friction    = 0.05
		maxSteps    = 64
	)

	for i := 0; i < numDroplets; i++ {
		seed := rng.HashParticle(stageSeed, i)
		sm := rng.NewSplitMix64(seed)
		d := droplet{
			x:     sm.Float64() * float64(w),
			y:     sm.Float64() * float64(hgt),
			water: 1.0,
		}
		for step := 0; step < maxSteps; step++ {
			cy := int(math.Floor(d.y))
			if !h.InBoundsY(cy) {
				break
			}
			curH := bilinear(h, d.x, d.y)
			gx, gy := gradient(h, d.x, d.y)

			d.vx = d.vx*(1-friction) - gx*gravity
			d.vy = d.vy*(1-friction) - gy*gravity
			speed := math.Hypot(d.vx, d.vy)
			if speed < 1e-6 {
				break
			}
			d.speed = speed
			nx := d.x + d.vx/speed
			ny := d.y + d.vy/speed
			if !h.InBoundsY(int(math.Floor(ny))) {
				break
			}

			newH := bilinear(h, nx, ny)
			deltaH := newH - curH

			capacity := math.Max(-deltaH, minSlope) * d.speed * d.water * kc
			if d.sediment > capacity || deltaH > 0 {
				deposit := (d.sediment - capacity) * kDeposit
				if deltaH > 0 {
					deposit = math.Min(deltaH, d.sediment)
				}
				if deposit < 0 {
					deposit = 0
				}
				d.sediment -= deposit
				depositAt(h, d.x, d.y, float32(deposit))
			} else {
				erode := math.Min((capacity-d.sediment)*kErode, -deltaH+0.01)
				if erode < 0 {
					erode = 0
				}
				d.sediment += erode
				depositAt(h, d.x, d.y, float32(-erode))
			}

			d.water *= 0.99
			d.x, d.y = nx, ny
		}
	}
}

// bilinear samples h at fractional (x, y), wrapping X and clamping Y.
func bilinear(h *grid.Grid[float32], x, y float64) float64 {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	y0 = clampInt(y0, 0, h.H-1)
	y1 := clampInt(y0+1, 0, h.H-1)
	tx := x - math.Floor(x)
	ty := y - float64(y0)

	h00 := float64(h.At(x0, y0))
	h10 := float64(h.At(x0+1, y0))
	h01 := float64(h.At(x0, y1))
	h11 := float64(h.At(x0+1, y1))

	top := h00*(1-tx) + h10*tx
	bot := h01*(1-tx) + h11*tx
	return top*(1-ty) + bot*ty
}

// gradient returns the central-difference gradient of h at (x, y).
func gradient(h *grid.Grid[float32], x, y float64) (gx, gy float64) {
	const eps = 0.5
	hL := bilinear(h, x-eps, y)
	hR := bilinear(h, x+eps, y)
	hU := bilinear(h, x, math.Max(0, y-eps))
	hD := bilinear(h, x, math.Min(float64(h.H-1), y+eps))
	return (hR - hL) / (2 * eps), (hD - hU) / (2 * eps)
}

// depositAt distributes a height delta across the 4 cells surrounding a
// fractional position, weighted by bilinear proximity.
func depositAt(h *grid.Grid[float32], x, y float64, delta float32) {
	x0 := int(math.Floor(x))
	y0 := clampInt(int(math.Floor(y)), 0, h.H-1)
	y1 := clampInt(y0+1, 0, h.H-1)
	tx := x - math.Floor(x)
	ty := y - float64(y0)

	add := func(cx, cy int, w float64) {
		idx := h.Idx(cx, cy)
		v := h.Data[idx] + float32(w)*delta
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		h.Data[idx] = v
	}
	add(x0, y0, (1-tx)*(1-ty))
	add(x0+1, y0, tx*(1-ty))
	add(x0, y1, (1-tx)*ty)
	add(x0+1, y1, tx*ty)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
