package biome

// Thresholds parameterizes the classifier decision table of spec §4.5. All
// elevation/temperature/humidity fields are in the shared [0,1] domain.
type Thresholds struct {
	SeaLevel   float64
	BeachBand  float64 // elevation above SeaLevel still counted as beach

	SnowlineElevation float64 // >= this and cold enough: SnowyMountain
	MountainElevation float64 // >= this: RockyMountain

	IceTemperature  float64 // <= this: Ice/Tundra band (near-zero temperature)
	ColdTemperature float64 // <= this: Tundra/Taiga band
	HotTemperature  float64 // >= this: hot band (rainforest/desert/savanna)

	WetMoisture float64 // >= this counts as "wet" for the current band
	DryMoisture float64 // <= this counts as "dry" for the current band

	SwampMoisture  float64 // >= this within the temperate-wet band: Swamp instead of TemperateForest
	DesertMoisture float64 // <= this within the hot-dry band: Desert instead of Savanna
}

// DefaultThresholds returns a balanced default classification table.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SeaLevel:  0.5,
		BeachBand: 0.03,

		SnowlineElevation: 0.90,
		MountainElevation: 0.75,

		IceTemperature:  0.12,
		ColdTemperature: 0.30,
		HotTemperature:  0.70,

		WetMoisture: 0.55,
		DryMoisture: 0.35,

		SwampMoisture:  0.80,
		DesertMoisture: 0.20,
	}
}

// Inputs bundles the per-cell bucketed values the classifier reads: the
// decision table operates on elevation, temperature, humidity, and water
// tag only, per spec §4.5 ("a deterministic classifier on (elevation_bucket,
// T_bucket, Hum_bucket, water_tag)").
type Inputs struct {
	Elevation   float64
	Temperature float64
	Humidity    float64
	Water       WaterTag
	Coastal     bool // true for a land cell 4-adjacent to a water cell
}

// Classify runs the ordered first-match-wins cascade of spec §4.5. River
// overlay (biome.River overwriting the result) is applied by the caller
// after river extraction, not here, since river cells are not known until
// stage 7 runs.
func Classify(in Inputs, th Thresholds) Biome {
	// Rule 1: water short-circuits everything else.
	switch in.Water {
	case WaterOcean:
		return Ocean
	case WaterLake:
		return Lake
	}

	// Rule 2: snowline + near-freezing -> permanent snow cap.
	if in.Elevation >= th.SnowlineElevation && in.Temperature <= th.IceTemperature {
		return SnowyMountain
	}

	// Rule 3: elevation above the mountain line (any temperature).
	if in.Elevation >= th.MountainElevation {
		return RockyMountain
	}

	// Coastline land cells at low elevation become Beach, ahead of the
	// climate bands (a tropical coast and a temperate coast are both
	// beaches at the waterline).
	if in.Coastal && in.Elevation-th.SeaLevel <= th.BeachBand {
		return Beach
	}

	// Rule 4: temperature near 0 -> Ice/Tundra by humidity.
	if in.Temperature <= th.IceTemperature {
		if in.Humidity >= th.WetMoisture {
			return Tundra
		}
		return Ice
	}

	// Cold-but-not-freezing band -> Tundra/Taiga by humidity.
	if in.Temperature <= th.ColdTemperature {
		if in.Humidity >= th.WetMoisture {
			return Taiga
		}
		return Tundra
	}

	// Hot band: rules 7/8.
	if in.Temperature >= th.HotTemperature {
		if in.Humidity >= th.WetMoisture {
			return TropicalRainforest
		}
		if in.Humidity <= th.DesertMoisture {
			return Desert
		}
		return Savanna
	}

	// Temperate band: rules 5/6.
	if in.Humidity >= th.WetMoisture {
		if in.Humidity >= th.SwampMoisture {
			return Swamp
		}
		return TemperateForest
	}
	if in.Humidity <= th.DryMoisture {
		return Shrubland
	}
	return Grassland
}
