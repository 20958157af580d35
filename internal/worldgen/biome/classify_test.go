package biome

import "testing"

func TestClassifyWaterShortCircuits(t *testing.T) {
	th := DefaultThresholds()
	if got := Classify(Inputs{Water: WaterOcean, Elevation: 0.9, Temperature: 0.9}, th); got != Ocean {
		t.Errorf("ocean water tag must always classify as Ocean, got %v", got)
	}
	if got := Classify(Inputs{Water: WaterLake, Elevation: 0.1}, th); got != Lake {
		t.Errorf("lake water tag must always classify as Lake, got %v", got)
	}
}

func TestClassifyMountainBands(t *testing.T) {
	th := DefaultThresholds()
	cases := []struct {
		name string
		in   Inputs
		want Biome
	}{
		{"high+freezing=snowy", Inputs{Elevation: 0.95, Temperature: 0.05, Humidity: 0.5}, SnowyMountain},
		{"high+warm=rocky", Inputs{Elevation: 0.95, Temperature: 0.6, Humidity: 0.5}, RockyMountain},
		{"mountain-line only=rocky", Inputs{Elevation: 0.8, Temperature: 0.9, Humidity: 0.9}, RockyMountain},
	}
	for _, c := range cases {
		if got := Classify(c.in, th); got != c.want {
			t.Errorf("%s: Classify(%+v) = %v, want %v", c.name, c.in, got, c.want)
		}
	}
}

func TestClassifyClimateBands(t *testing.T) {
	th := DefaultThresholds()
	cases := []struct {
		name string
		in   Inputs
		want Biome
	}{
		{"ice-dry", Inputs{Elevation: 0.6, Temperature: 0.05, Humidity: 0.1}, Ice},
		{"ice-wet=tundra", Inputs{Elevation: 0.6, Temperature: 0.05, Humidity: 0.9}, Tundra},
		{"cold-dry=tundra", Inputs{Elevation: 0.6, Temperature: 0.25, Humidity: 0.1}, Tundra},
		{"cold-wet=taiga", Inputs{Elevation: 0.6, Temperature: 0.25, Humidity: 0.9}, Taiga},
		{"temperate-wet=forest", Inputs{Elevation: 0.6, Temperature: 0.5, Humidity: 0.6}, TemperateForest},
		{"temperate-verywet=swamp", Inputs{Elevation: 0.6, Temperature: 0.5, Humidity: 0.95}, Swamp},
		{"temperate-dry=grassland", Inputs{Elevation: 0.6, Temperature: 0.5, Humidity: 0.45}, Grassland},
		{"temperate-verydry=shrubland", Inputs{Elevation: 0.6, Temperature: 0.5, Humidity: 0.1}, Shrubland},
		{"hot-wet=rainforest", Inputs{Elevation: 0.6, Temperature: 0.9, Humidity: 0.8}, TropicalRainforest},
		{"hot-verydry=desert", Inputs{Elevation: 0.6, Temperature: 0.9, Humidity: 0.05}, Desert},
		{"hot-mid=savanna", Inputs{Elevation: 0.6, Temperature: 0.9, Humidity: 0.45}, Savanna},
	}
	for _, c := range cases {
		if got := Classify(c.in, th); got != c.want {
			t.Errorf("%s: Classify(%+v) = %v, want %v", c.name, c.in, got, c.want)
		}
	}
}

func TestClassifyBeachOverridesClimateNotMountain(t *testing.T) {
	th := DefaultThresholds()
	got := Classify(Inputs{Elevation: th.SeaLevel + 0.01, Temperature: 0.9, Humidity: 0.9, Coastal: true}, th)
	if got != Beach {
		t.Errorf("coastal low-elevation land should be Beach, got %v", got)
	}
	// A coastal cell high enough to be a mountain must stay a mountain.
	got2 := Classify(Inputs{Elevation: 0.95, Temperature: 0.9, Coastal: true}, th)
	if got2 != RockyMountain {
		t.Errorf("coastal flag must not override the mountain rule, got %v", got2)
	}
}

func TestGetUnknownFallsBackToGrassland(t *testing.T) {
	if p := Get(Biome("nonsense")); p.Name != Get(Grassland).Name {
		t.Errorf("unknown biome should fall back to Grassland properties, got %+v", p)
	}
}

func TestAllCoversSixteenBiomes(t *testing.T) {
	if len(All()) != 16 {
		t.Errorf("spec fixes the biome set at 16 tags, got %d", len(All()))
	}
}
