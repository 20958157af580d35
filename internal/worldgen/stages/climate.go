package stages

import (
	"math"

	"github.com/san-smith/mapgen/internal/worldgen/grid"
	"github.com/san-smith/mapgen/internal/worldgen/params"
)

// Temperature runs the temperature half of stage 4 (spec §4.4): a latitude
// band raised to the polar-amplification power, minus a lapse-rate term
// above sea level, plus a global offset.
func Temperature(h *grid.Grid[float32], seaLevel float64, p params.Params) *grid.Grid[float32] {
	const lapseRate = 0.6
	t := grid.New[float32](h.W, h.H)
	for y := 0; y < h.H; y++ {
		latTerm := math.Cos(math.Pi * (float64(y)/float64(h.H) - 0.5))
		tLat := math.Pow(math.Max(0, latTerm), p.Climate.ClimateLatitudeExponent)
		tLat = math.Pow(tLat, p.Climate.PolarAmplification)
		for x := 0; x < h.W; x++ {
			elev := float64(h.At(x, y))
			tElev := -lapseRate * math.Max(0, elev-seaLevel)
			v := tLat + tElev + p.Climate.GlobalTemperatureOffset
			t.Set(x, y, float32(clamp01(v)))
		}
	}
	return t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Wind is a unit 2-D direction per cell derived from latitude band (spec
// §4.4): polar easterlies, mid-latitude westerlies, and equatorial trades,
// blended by sin(3*lat). It is not persisted in Artifacts; only the
// humidity pass consumes it.
type Wind struct {
	X, Y float32
}

// WindField computes the per-row wind direction (constant across a row,
// since bands are latitude-only).
func WindField(h, w int) []Wind {
	out := make([]Wind, h)
	for y := 0; y < h; y++ {
		lat := math.Pi * (float64(y)/float64(h) - 0.5) // [-pi/2, pi/2]
		band := math.Sin(3 * lat)
		// Trade winds blow westward (-x) near the equator; westerlies blow
		// eastward (+x) at mid-latitudes; polar easterlies blow westward
		// again near the poles. sin(3*lat) alternates sign across exactly
		// these three bands as lat sweeps pole to pole.
		dx := -math.Copysign(1, band)
		// A small poleward/equatorward meridional component keeps the field
		// from being purely zonal, matching "per-cell unit 2-D vector".
		dy := 0.3 * math.Sin(2*lat)
		n := math.Hypot(dx, dy)
		out[y] = Wind{X: float32(dx / n), Y: float32(dy / n)}
	}
	return out
}
