package stages

import (
	"testing"

	"github.com/san-smith/mapgen/internal/worldgen/biome"
)

func TestStrategicPortsAreCoastal(t *testing.T) {
	p := testParams()
	p.Terrain.TotalProvinces = 24
	h, sea := Heightmap(p, 71)
	water, err := Water(h, sea)
	if err != nil {
		t.Fatalf("Water error: %v", err)
	}
	temp := Temperature(h, sea, p)
	hum := Humidity(h, water, p)
	biomes := AssignBiomes(h, temp, hum, water, sea, biome.DefaultThresholds())
	provinces, pixelToID, err := Provinces(h, water, p, 71)
	if err != nil {
		t.Fatalf("Provinces error: %v", err)
	}
	provinces = Merge(provinces, pixelToID)
	AdjacencyGraph(provinces, pixelToID, biomes)
	rivers, _ := Rivers(h, hum, water)

	points := Strategic(h, water, pixelToID, provinces, rivers, sea)
	for _, pt := range points {
		if pt.Kind == biome.Port && !provinces[pt.ProvinceID].Coastal {
			t.Fatalf("port at (%d,%d) assigned to non-coastal province %d", pt.X, pt.Y, pt.ProvinceID)
		}
	}
}
