package server

// AtomJSON is one atom of a parsed molecule.
type AtomJSON struct {
	Element        string  `json:"element"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Z              float64 `json:"z"`
	MassDifference int     `json:"mass_difference,omitempty"`
	Charge         int     `json:"charge,omitempty"`
	Radical        bool    `json:"radical,omitempty"`
	HCount         int     `json:"h_count"`
}

// BondJSON is one bond; atoms are 0-based.
type BondJSON struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Order string `json:"order"`
}

// ParseResponse is returned by /api/molecule/parse and /api/molecule/{id}
type ParseResponse struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Atoms  []AtomJSON `json:"atoms"`
	Bonds  []BondJSON `json:"bonds"`
	Chiral []int      `json:"chiral"`
}

// RenderResponse is returned by /api/molecule/render
type RenderResponse struct {
	ID            string   `json:"id"`
	Image         string   `json:"image"` // Base64 PNG data URI
	Regions       []string `json:"regions"`
	ChiralRegions []string `json:"chiral_regions"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
