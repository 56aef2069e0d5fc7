package domain

// SearchCriteria is the normalized input of a court search. Handlers collapse
// every accepted request spelling into this struct; the engine never sees raw
// transport-level input.
type SearchCriteria struct {
	// Origin switches the engine into radius mode when set.
	Origin *GeoPoint `json:"origin,omitempty"`

	ProvinceIDs    []string    `json:"province_ids,omitempty"`
	PriceMin       *float64    `json:"price_min,omitempty"`
	PriceMax       *float64    `json:"price_max,omitempty"`
	CourtTypes     []CourtType `json:"court_types,omitempty"`
	BookmarkedOnly bool        `json:"bookmarked_only,omitempty"`

	// Query matches court names and province names, case-insensitive.
	Query string `json:"q,omitempty"`

	// UserID is the opaque caller identity, empty for anonymous callers.
	UserID string `json:"-"`
}

// CourtResult is a court enriched with per-caller search output.
type CourtResult struct {
	Court
	// DistanceKm is set in radius mode only, rounded to two decimals.
	DistanceKm *float64 `json:"distance_km"`
	// IsBookmarked is true iff an authenticated caller bookmarked the court.
	IsBookmarked bool `json:"is_bookmarked"`
}

// SearchResult is an ordered list of matching courts. An empty list with
// count 0 is a successful response, never an error.
type SearchResult struct {
	Courts []CourtResult `json:"courts"`
	Count  int           `json:"count"`
}
