// Package params defines the public generation parameters of spec §6
// (Params, WorldType, and its sub-records), kept dependency-free so both
// the generation stages and the pipeline driver can depend on it without
// a cycle.
package params

import (
	"fmt"

	"github.com/san-smith/mapgen/internal/worldgen/wgerr"
)

// WorldType selects the shaping rule applied to the raw heightmap noise in
// spec §4.1.
type WorldType int

const (
	EarthLike WorldType = iota
	Supercontinent
	Archipelago
	Mediterranean
	IceAgeEarth
	DesertMediterranean
)

func (w WorldType) String() string {
	switch w {
	case EarthLike:
		return "earth_like"
	case Supercontinent:
		return "supercontinent"
	case Archipelago:
		return "archipelago"
	case Mediterranean:
		return "mediterranean"
	case IceAgeEarth:
		return "ice_age_earth"
	case DesertMediterranean:
		return "desert_mediterranean"
	default:
		return "unknown"
	}
}

// TargetLandFraction is the land-fraction target the sea-level binary search
// of spec §4.1 aims for, per the world-type table.
func (w WorldType) TargetLandFraction() float64 {
	switch w {
	case EarthLike:
		return 0.30
	case Supercontinent:
		return 0.70
	case Archipelago:
		return 0.15
	case Mediterranean:
		return 0.25
	case IceAgeEarth:
		return 0.35
	case DesertMediterranean:
		return 0.25
	default:
		return 0.30
	}
}

// ClimateParams is the `climate` record of spec §6.
type ClimateParams struct {
	GlobalTemperatureOffset float64 // [-1, 1]
	GlobalHumidityOffset    float64 // [-1, 1]
	PolarAmplification     float64 // [0.5, 3.0]
	ClimateLatitudeExponent float64 // [0.3, 2.0]
}

// IslandParams is the `islands` record of spec §6.
type IslandParams struct {
	IslandDensity float64 // [0, 1]
	MinIslandSize uint32
}

// TerrainParams is the `terrain` record of spec §6.
type TerrainParams struct {
	ElevationPower      float64 // [0.3, 3.0]
	SmoothRadius        int     // 0..5
	MountainCompression float64 // [0, 1]
	TotalProvinces      int     // 16..4096
}

// Params bundles every input to Generate, per spec §6.
type Params struct {
	Seed   uint64
	Width  uint32
	Height uint32

	WorldType WorldType

	Climate ClimateParams
	Islands IslandParams
	Terrain TerrainParams

	SeaLevel float64 // default 0.5; starting point for the binary search of §4.1

	// Workers bounds the number of data-parallel workers a stage may use.
	// 0 means "use runtime.GOMAXPROCS(0)". Output must be identical for any
	// positive value (spec §5, determinism under parallelism).
	Workers int
}

// DefaultParams returns a Params populated with the mid-range defaults
// implied by spec §6's value ranges.
func DefaultParams() Params {
	return Params{
		Seed:      1,
		Width:     512,
		Height:    256,
		WorldType: EarthLike,
		Climate: ClimateParams{
			GlobalTemperatureOffset: 0,
			GlobalHumidityOffset:    0,
			PolarAmplification:     1.5,
			ClimateLatitudeExponent: 1.0,
		},
		Islands: IslandParams{
			IslandDensity: 0.3,
			MinIslandSize: 4,
		},
		Terrain: TerrainParams{
			ElevationPower:      1.2,
			SmoothRadius:        1,
			MountainCompression: 0.3,
			TotalProvinces:      120,
		},
		SeaLevel: 0.5,
		Workers:  0,
	}
}

// Validate checks every range constraint named in spec §6/§7, returning a
// ConfigInvalid/DimensionsTooSmall *Error naming the first offending field.
func (p Params) Validate() error {
	if p.Width < 64 || p.Height < 64 {
		return &wgerr.Error{Kind: wgerr.ErrDimensionsTooSmall, Stage: "validate",
			Err: fmt.Errorf("width=%d height=%d: both must be >= 64", p.Width, p.Height)}
	}
	if p.Width%2 != 0 {
		return configErr("width", "width should be even")
	}
	if p.SeaLevel <= 0 || p.SeaLevel >= 1 {
		return configErr("sea_level", "must be in (0,1)")
	}
	if p.Climate.GlobalTemperatureOffset < -1 || p.Climate.GlobalTemperatureOffset > 1 {
		return configErr("climate.global_temperature_offset", "must be in [-1,1]")
	}
	if p.Climate.GlobalHumidityOffset < -1 || p.Climate.GlobalHumidityOffset > 1 {
		return configErr("climate.global_humidity_offset", "must be in [-1,1]")
	}
	if p.Climate.PolarAmplification < 0.5 || p.Climate.PolarAmplification > 3.0 {
		return configErr("climate.polar_amplification", "must be in [0.5,3.0]")
	}
	if p.Climate.ClimateLatitudeExponent < 0.3 || p.Climate.ClimateLatitudeExponent > 2.0 {
		return configErr("climate.climate_latitude_exponent", "must be in [0.3,2.0]")
	}
	if p.Islands.IslandDensity < 0 || p.Islands.IslandDensity > 1 {
		return configErr("islands.island_density", "must be in [0,1]")
	}
	if p.Terrain.ElevationPower < 0.3 || p.Terrain.ElevationPower > 3.0 {
		return configErr("terrain.elevation_power", "must be in [0.3,3.0]")
	}
	if p.Terrain.SmoothRadius < 0 || p.Terrain.SmoothRadius > 5 {
		return configErr("terrain.smooth_radius", "must be in 0..=5")
	}
	if p.Terrain.MountainCompression < 0 || p.Terrain.MountainCompression > 1 {
		return configErr("terrain.mountain_compression", "must be in [0,1]")
	}
	if p.Terrain.TotalProvinces < 16 || p.Terrain.TotalProvinces > 4096 {
		return configErr("terrain.total_provinces", "must be in 16..=4096")
	}
	return nil
}

func configErr(field, msg string) error {
	return &wgerr.Error{Kind: wgerr.ErrConfigInvalid, Stage: "validate", Field: field,
		Err: fmt.Errorf("%s: %s", field, msg)}
}
