package stages

import (
	"github.com/san-smith/mapgen/internal/worldgen/rng"
	"github.com/san-smith/mapgen/internal/worldgen/worldtypes"
)

// Regions runs stage 10 (spec §4.10): BFS over the adjacency graph
// restricted to same-class edges; each connected component becomes a
// region with an HSL color keyed off hash(region_id).
func Regions(provinces []worldtypes.Province) []worldtypes.Region {
	n := len(provinces)
	visited := make([]bool, n)
	var regions []worldtypes.Region

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		var members []int
		queue := []int{start}
		visited[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			members = append(members, cur)
			for _, nb := range provinces[cur].Neighbors {
				if visited[nb] || provinces[nb].Class != provinces[cur].Class {
					continue
				}
				visited[nb] = true
				queue = append(queue, nb)
			}
		}

		id := len(regions)
		hue := float64(rng.Mix64(uint64(id))%360)
		sat, light := 0.7, 0.5
		if provinces[start].Class.IsWater() {
			sat, light = 0.35, 0.45
		}
		regions = append(regions, worldtypes.Region{
			ID:          id,
			Class:       provinces[start].Class,
			ColorHue:    hue,
			ColorSat:    sat,
			ColorLight:  light,
			ProvinceIDs: members,
		})
	}
	return regions
}
