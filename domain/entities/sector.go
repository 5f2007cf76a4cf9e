package entities

// Sector represents a merchant's business category
type Sector string

const (
	SectorHighSensitivity   Sector = "HIGH_SENSITIVITY"
	SectorStandardPyme      Sector = "STANDARD_PYME"
	SectorHighMarginService Sector = "HIGH_MARGIN_SERVICE"
)

// defaultEthicalCaps is the built-in cap table used when a sector has no
// configured override
var defaultEthicalCaps = map[Sector]float64{
	SectorHighSensitivity:   0.022,
	SectorStandardPyme:      0.027,
	SectorHighMarginService: 0.030,
}

// KnownSectors returns all recognized sectors in a stable order
func KnownSectors() []Sector {
	return []Sector{SectorHighSensitivity, SectorStandardPyme, SectorHighMarginService}
}

// IsKnown returns true if the sector is one of the recognized values
func (s Sector) IsKnown() bool {
	_, ok := defaultEthicalCaps[s]
	return ok
}

// ParseSector maps a raw string to a known sector.
// Unknown or empty input resolves to the empty sector.
func ParseSector(raw string) Sector {
	s := Sector(raw)
	if s.IsKnown() {
		return s
	}
	return ""
}

// DefaultEthicalCap returns the built-in cap for the sector.
// Unknown sectors fall back to the STANDARD_PYME cap.
func (s Sector) DefaultEthicalCap() float64 {
	if cap, ok := defaultEthicalCaps[s]; ok {
		return cap
	}
	return defaultEthicalCaps[SectorStandardPyme]
}
