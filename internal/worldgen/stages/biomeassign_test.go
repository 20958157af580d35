package stages

import (
	"testing"

	"github.com/san-smith/mapgen/internal/worldgen/biome"
	"github.com/san-smith/mapgen/internal/worldgen/grid"
)

func TestAssignBiomesWaterMatchesTag(t *testing.T) {
	p := testParams()
	h, sea := Heightmap(p, 8)
	temp := Temperature(h, sea, p)
	water, err := Water(h, sea)
	if err != nil {
		t.Fatalf("Water error: %v", err)
	}
	hum := Humidity(h, water, p)
	biomes := AssignBiomes(h, temp, hum, water, sea, biome.DefaultThresholds())

	for y := 0; y < h.H; y++ {
		for x := 0; x < h.W; x++ {
			tag := water.At(x, y)
			b := biomes.At(x, y)
			switch tag {
			case biome.WaterOcean:
				if b != biome.Ocean {
					t.Fatalf("ocean cell (%d,%d) classified as %v", x, y, b)
				}
			case biome.WaterLake:
				if b != biome.Lake {
					t.Fatalf("lake cell (%d,%d) classified as %v", x, y, b)
				}
			}
		}
	}
}

func TestOverlayRiversOverwritesBiome(t *testing.T) {
	p := testParams()
	h, sea := Heightmap(p, 9)
	temp := Temperature(h, sea, p)
	water, _ := Water(h, sea)
	hum := Humidity(h, water, p)
	biomes := AssignBiomes(h, temp, hum, water, sea, biome.DefaultThresholds())

	// Find a non-water cell to overlay so the assertion is meaningful.
	var target grid.Coord
	for y := 0; y < h.H; y++ {
		for x := 0; x < h.W; x++ {
			if water.At(x, y) == biome.Land {
				target = grid.Coord{X: x, Y: y}
			}
		}
	}
	OverlayRivers(biomes, []grid.Coord{target})
	if biomes.At(target.X, target.Y) != biome.River {
		t.Fatalf("expected River at overlaid cell, got %v", biomes.At(target.X, target.Y))
	}
}
