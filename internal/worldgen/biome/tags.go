package biome

// WaterTag classifies a cell as ocean, lake, or land, per spec §3/§4.3. It
// lives alongside Biome because the water classification stage (§4.3) feeds
// directly into the biome classifier cascade (§4.5) as one of its inputs.
type WaterTag uint8

const (
	Land WaterTag = iota
	WaterOcean
	WaterLake
)

func (w WaterTag) String() string {
	switch w {
	case WaterOcean:
		return "ocean"
	case WaterLake:
		return "lake"
	default:
		return "land"
	}
}

// IsWater reports whether the tag represents any water body.
func (w WaterTag) IsWater() bool {
	return w == WaterOcean || w == WaterLake
}

// ProvinceClass is the class a province is grown from: continental land,
// open ocean, or an inland lake. Distinct from WaterTag because a province
// is a class shared by many cells, not a single cell's tag.
type ProvinceClass uint8

const (
	ClassContinental ProvinceClass = iota
	ClassOceanic
	ClassLake
)

func (c ProvinceClass) String() string {
	switch c {
	case ClassOceanic:
		return "oceanic"
	case ClassLake:
		return "lake"
	default:
		return "continental"
	}
}

// ClassFromWater maps a cell's water tag to the province class it seeds.
func ClassFromWater(w WaterTag) ProvinceClass {
	switch w {
	case WaterOcean:
		return ClassOceanic
	case WaterLake:
		return ClassLake
	default:
		return ClassContinental
	}
}

// IsWater reports whether a province class is a water class (oceanic or
// lake); region grouping (§4.10) uses it to pick a water region's color.
func (c ProvinceClass) IsWater() bool {
	return c == ClassOceanic || c == ClassLake
}

// StrategicKind enumerates the gameplay-relevant strategic point kinds from
// spec §4.11.
type StrategicKind uint8

const (
	Port StrategicKind = iota
	Estuary
	Pass
)

func (k StrategicKind) String() string {
	switch k {
	case Port:
		return "port"
	case Estuary:
		return "estuary"
	case Pass:
		return "pass"
	default:
		return "unknown"
	}
}
