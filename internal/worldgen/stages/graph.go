package stages

import (
	"sort"

	"github.com/san-smith/mapgen/internal/worldgen/biome"
	"github.com/san-smith/mapgen/internal/worldgen/grid"
	"github.com/san-smith/mapgen/internal/worldgen/worldtypes"
)

// AdjacencyGraph runs stage 9's graph half (spec §4.9): a single walk of the
// pixel->id grid recording a weighted undirected edge for every pair of
// 4-neighbors with distinct ids, then per-province centroid (X averaged on
// the unit circle per spec §9), biome histogram, and coastal flag.
func AdjacencyGraph(provinces []worldtypes.Province, pixelToID *grid.Grid[uint32], biomes *grid.Grid[biome.Biome]) {
	n := len(provinces)
	edgeWeight := make([]map[int]int, n)
	for i := range edgeWeight {
		edgeWeight[i] = make(map[int]int)
	}

	for y := 0; y < pixelToID.H; y++ {
		for x := 0; x < pixelToID.W; x++ {
			a := int(pixelToID.At(x, y))
			for _, nb := range pixelToID.Neighbors4(x, y) {
				b := int(pixelToID.At(nb.X, nb.Y))
				if a != b {
					edgeWeight[a][b]++
				}
			}
		}
	}

	for i := range provinces {
		var neighbors []int
		for nb := range edgeWeight[i] {
			neighbors = append(neighbors, nb)
		}
		sort.Ints(neighbors)
		provinces[i].Neighbors = neighbors

		provinces[i].Coastal = false
		for nb := range edgeWeight[i] {
			if provinces[nb].Class != provinces[i].Class {
				provinces[i].Coastal = true
				break
			}
		}

		xs := make([]int, len(provinces[i].Cells))
		var sumY float64
		hist := make(map[biome.Biome]float64)
		for j, c := range provinces[i].Cells {
			xs[j] = c.X
			sumY += float64(c.Y)
			hist[biomes.At(c.X, c.Y)]++
		}
		if len(xs) > 0 {
			provinces[i].CenterX = worldtypes.CentroidAngle(xs, pixelToID.W)
			provinces[i].CenterY = sumY / float64(len(xs))
			for b := range hist {
				hist[b] /= float64(len(xs))
			}
		}
		provinces[i].Biomes = hist
	}
}
