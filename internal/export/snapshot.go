package export

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-smith/mapgen/internal/worldgen/pipeline"
)

// Snapshot is a non-authoritative debug dump of an Artifacts run, for
// `mapgen inspect`. It is not part of the §6 export contract and is never
// read back by the generator; provinces.json/regions.json remain the
// authoritative serialization.
type Snapshot struct {
	Seed            uint64  `yaml:"seed"`
	Width           uint32  `yaml:"width"`
	Height          uint32  `yaml:"height"`
	WorldType       string  `yaml:"world_type"`
	SeaLevel        float64 `yaml:"sea_level"`
	ProvinceCount   int     `yaml:"province_count"`
	RegionCount     int     `yaml:"region_count"`
	RiverCount      int     `yaml:"river_count"`
	StrategicPoints int     `yaml:"strategic_points"`
	LandFraction    float64 `yaml:"land_fraction"`
}

// BuildSnapshot summarizes a completed run for WriteSnapshot/inspect.
func BuildSnapshot(a *pipeline.Artifacts) Snapshot {
	land := 0
	for _, tag := range a.Water.Data {
		if !tag.IsWater() {
			land++
		}
	}
	return Snapshot{
		Seed:            a.Params.Seed,
		Width:           a.Params.Width,
		Height:          a.Params.Height,
		WorldType:       a.Params.WorldType.String(),
		SeaLevel:        a.SeaLevel,
		ProvinceCount:   len(a.Provinces),
		RegionCount:     len(a.Regions),
		RiverCount:      len(a.Rivers),
		StrategicPoints: len(a.StrategicPoints),
		LandFraction:    float64(land) / float64(len(a.Water.Data)),
	}
}

// WriteSnapshot writes a YAML Snapshot to path, the same yaml.v3 library the
// teacher uses to load its own config file.
func WriteSnapshot(a *pipeline.Artifacts, path string) error {
	b, err := yaml.Marshal(BuildSnapshot(a))
	if err != nil {
		return fmt.Errorf("export: marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("export: write snapshot %s: %w", path, err)
	}
	return nil
}
