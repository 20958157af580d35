package stages

import (
	"math"

	"github.com/san-smith/mapgen/internal/worldgen/biome"
	"github.com/san-smith/mapgen/internal/worldgen/grid"
	"github.com/san-smith/mapgen/internal/worldgen/params"
)

// Humidity runs stage 5 (spec §4.4's humidity half): initializes 0 on land
// and 1 on ocean, then iterates a semi-Lagrangian upwind advection along the
// wind field, subtracting orographic precipitation on upwind slopes and
// adding evaporation from water, for a fixed sweep count.
func Humidity(h *grid.Grid[float32], water *grid.Grid[biome.WaterTag], p params.Params) *grid.Grid[float32] {
	w, hgt := h.W, h.H
	wind := WindField(hgt, w)

	hum := grid.New[float32](w, hgt)
	for y := 0; y < hgt; y++ {
		for x := 0; x < w; x++ {
			if water.At(x, y) != biome.Land {
				hum.Set(x, y, 1.0)
			}
		}
	}

	const (
		kOrog = 0.4
		kEv   = 0.05
		sweeps = 64
	)

	next := grid.New[float32](w, hgt)
	for i := 0; i < sweeps; i++ {
		for y := 0; y < hgt; y++ {
			wd := wind[y]
			for x := 0; x < w; x++ {
				// Semi-Lagrangian upwind step: sample the value one cell
				// back along the wind direction.
				srcX := float64(x) - float64(wd.X)
				srcY := clampF(float64(y)-float64(wd.Y), 0, float64(hgt-1))
				v := bilinear(hum, srcX, srcY)

				if water.At(x, y) == biome.Land {
					gx, gy := gradient(h, float64(x), float64(y))
					upwind := -(gx*float64(wd.X) + gy*float64(wd.Y))
					if upwind > 0 {
						v -= kOrog * upwind
					}
				} else {
					v += kEv * (1 - v)
				}
				next.Set(x, y, float32(clamp01(v)))
			}
		}
		hum, next = next, hum
	}

	for i, v := range hum.Data {
		hum.Data[i] = float32(clamp01(float64(v) + p.Climate.GlobalHumidityOffset))
	}
	return hum
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
