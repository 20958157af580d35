// Package config loads the generation parameters from a TOML file via
// viper, the direct analogue of the teacher's internal/config/config.go
// YAML loader: the same Default()/Load(path) shape, viper (TOML) in place
// of a direct yaml.Unmarshal call, since the external config format here is
// TOML rather than YAML.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/san-smith/mapgen/internal/worldgen/params"
)

// Config mirrors params.Params with TOML-friendly keys; Load decodes it,
// then ToParams converts it into the worldgen core's input type.
type Config struct {
	Seed      uint64 `mapstructure:"seed"`
	Width     uint32 `mapstructure:"width"`
	Height    uint32 `mapstructure:"height"`
	WorldType string `mapstructure:"world_type"`

	Climate struct {
		GlobalTemperatureOffset float64 `mapstructure:"global_temperature_offset"`
		GlobalHumidityOffset    float64 `mapstructure:"global_humidity_offset"`
		PolarAmplification      float64 `mapstructure:"polar_amplification"`
		ClimateLatitudeExponent float64 `mapstructure:"climate_latitude_exponent"`
	} `mapstructure:"climate"`

	Islands struct {
		IslandDensity float64 `mapstructure:"island_density"`
		MinIslandSize uint32  `mapstructure:"min_island_size"`
	} `mapstructure:"islands"`

	Terrain struct {
		ElevationPower      float64 `mapstructure:"elevation_power"`
		SmoothRadius        int     `mapstructure:"smooth_radius"`
		MountainCompression float64 `mapstructure:"mountain_compression"`
		TotalProvinces      int     `mapstructure:"total_provinces"`
	} `mapstructure:"terrain"`

	SeaLevel float64 `mapstructure:"sea_level"`
	Workers  int     `mapstructure:"workers"`
}

var worldTypeNames = map[string]params.WorldType{
	"earth_like":           params.EarthLike,
	"supercontinent":       params.Supercontinent,
	"archipelago":          params.Archipelago,
	"mediterranean":        params.Mediterranean,
	"ice_age_earth":        params.IceAgeEarth,
	"desert_mediterranean": params.DesertMediterranean,
}

// Default returns a Config populated from params.DefaultParams(), matching
// the teacher's Default() fallback used when no config file is given.
func Default() Config {
	return fromParams(params.DefaultParams())
}

func fromParams(p params.Params) Config {
	var c Config
	c.Seed = p.Seed
	c.Width = p.Width
	c.Height = p.Height
	c.WorldType = p.WorldType.String()
	c.Climate.GlobalTemperatureOffset = p.Climate.GlobalTemperatureOffset
	c.Climate.GlobalHumidityOffset = p.Climate.GlobalHumidityOffset
	c.Climate.PolarAmplification = p.Climate.PolarAmplification
	c.Climate.ClimateLatitudeExponent = p.Climate.ClimateLatitudeExponent
	c.Islands.IslandDensity = p.Islands.IslandDensity
	c.Islands.MinIslandSize = p.Islands.MinIslandSize
	c.Terrain.ElevationPower = p.Terrain.ElevationPower
	c.Terrain.SmoothRadius = p.Terrain.SmoothRadius
	c.Terrain.MountainCompression = p.Terrain.MountainCompression
	c.Terrain.TotalProvinces = p.Terrain.TotalProvinces
	c.SeaLevel = p.SeaLevel
	c.Workers = p.Workers
	return c
}

// Load reads path (TOML) with viper and decodes it into a Config seeded
// with the defaults, so an incomplete file only overrides the keys it sets.
func Load(path string) (Config, error) {
	c := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return c, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decode config %s: %w", path, err)
	}
	return c, nil
}

// ToParams converts a Config into params.Params, resolving the world_type
// name into its enum value (falling back to EarthLike for an unknown name).
func (c Config) ToParams() params.Params {
	wt, ok := worldTypeNames[c.WorldType]
	if !ok {
		wt = params.EarthLike
	}
	return params.Params{
		Seed:      c.Seed,
		Width:     c.Width,
		Height:    c.Height,
		WorldType: wt,
		Climate: params.ClimateParams{
			GlobalTemperatureOffset: c.Climate.GlobalTemperatureOffset,
			GlobalHumidityOffset:    c.Climate.GlobalHumidityOffset,
			PolarAmplification:      c.Climate.PolarAmplification,
			ClimateLatitudeExponent: c.Climate.ClimateLatitudeExponent,
		},
		Islands: params.IslandParams{
			IslandDensity: c.Islands.IslandDensity,
			MinIslandSize: c.Islands.MinIslandSize,
		},
		Terrain: params.TerrainParams{
			ElevationPower:      c.Terrain.ElevationPower,
			SmoothRadius:        c.Terrain.SmoothRadius,
			MountainCompression: c.Terrain.MountainCompression,
			TotalProvinces:      c.Terrain.TotalProvinces,
		},
		SeaLevel: c.SeaLevel,
		Workers:  c.Workers,
	}
}
