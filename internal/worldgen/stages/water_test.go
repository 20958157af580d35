package stages

import (
	"testing"

	"github.com/san-smith/mapgen/internal/worldgen/biome"
	"github.com/san-smith/mapgen/internal/worldgen/grid"
)

func TestWaterPartitionTotality(t *testing.T) {
	p := testParams()
	h, sea := Heightmap(p, 2)
	tags, err := Water(h, sea)
	if err != nil {
		t.Fatalf("Water returned error: %v", err)
	}
	for y := 0; y < h.H; y++ {
		for x := 0; x < h.W; x++ {
			tag := tags.At(x, y)
			isWater := float64(h.At(x, y)) <= sea
			switch tag {
			case biome.Land:
				if isWater {
					t.Fatalf("land tag at water cell (%d,%d)", x, y)
				}
			case biome.WaterOcean, biome.WaterLake:
				if !isWater {
					t.Fatalf("water tag at land cell (%d,%d)", x, y)
				}
			default:
				t.Fatalf("unexpected tag %v at (%d,%d)", tag, x, y)
			}
		}
	}
}

func TestWaterEmptyOceansError(t *testing.T) {
	g := grid.Fill[float32](64, 64, 1.0)
	_, err := Water(g, 0.5)
	if err == nil {
		t.Fatal("expected EmptyOceans error for an all-land map")
	}
}

func TestWaterAllOceanNoLakes(t *testing.T) {
	g := grid.Fill[float32](64, 64, 0.0)
	tags, err := Water(g, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tag := range tags.Data {
		if tag != biome.WaterOcean {
			t.Fatalf("expected all ocean, got %v", tag)
		}
	}
}
