package pipeline

import (
	"github.com/san-smith/mapgen/internal/worldgen/biome"
	"github.com/san-smith/mapgen/internal/worldgen/grid"
	"github.com/san-smith/mapgen/internal/worldgen/params"
	"github.com/san-smith/mapgen/internal/worldgen/worldtypes"
)

// Artifacts bundles everything Generate produces (spec §6's WorldArtifacts).
// Every field is populated exactly once and is immutable thereafter (spec
// §3 "Lifecycle").
type Artifacts struct {
	Params params.Params

	Height      *grid.Grid[float32] // H' after erosion, in [0,1]
	Water       *grid.Grid[biome.WaterTag]
	Temperature *grid.Grid[float32]
	Humidity    *grid.Grid[float32]
	Biomes      *grid.Grid[biome.Biome]

	PixelToProvince *grid.Grid[uint32]

	Provinces       []worldtypes.Province
	Regions         []worldtypes.Region
	Rivers          []worldtypes.RiverSegment
	StrategicPoints []worldtypes.StrategicPoint

	SeaLevel float64 // the level found by the binary search of §4.1
}
