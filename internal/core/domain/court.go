package domain

import (
	"time"
)

// CourtType is the sport a court is built for.
type CourtType string

const (
	CourtBasketball CourtType = "basketball"
	CourtBadminton  CourtType = "badminton"
	CourtTennis     CourtType = "tennis"
	CourtVolleyball CourtType = "volleyball"
	CourtFutsal     CourtType = "futsal"
	CourtPadel      CourtType = "padel"
	CourtGolf       CourtType = "golf"
	CourtFootball   CourtType = "football"
	CourtBaseball   CourtType = "baseball"
	CourtSoftball   CourtType = "softball"
	CourtOther      CourtType = "other"
)

// CourtTypes lists every supported sport.
var CourtTypes = []CourtType{
	CourtBasketball, CourtBadminton, CourtTennis, CourtVolleyball,
	CourtFutsal, CourtPadel, CourtGolf, CourtFootball, CourtBaseball,
	CourtSoftball, CourtOther,
}

// Known reports whether t is one of the supported court types.
func (t CourtType) Known() bool {
	for _, ct := range CourtTypes {
		if t == ct {
			return true
		}
	}
	return false
}

// LocationType distinguishes indoor from outdoor facilities.
type LocationType string

const (
	LocationIndoor  LocationType = "indoor"
	LocationOutdoor LocationType = "outdoor"
)

// Court represents a physical sports facility.
type Court struct {
	ID               string       `json:"id"`
	OwnerID          string       `json:"owner_id,omitempty"`
	Name             string       `json:"name"`
	Address          string       `json:"address"`
	Location         GeoPoint     `json:"location"`
	CourtType        CourtType    `json:"court_type"`
	LocationType     LocationType `json:"location_type"`
	PricePerHour     float64      `json:"price_per_hour"`
	PhoneNumber      string       `json:"phone_number,omitempty"`
	Description      string       `json:"description,omitempty"`
	OperationalHours string       `json:"operational_hours,omitempty"`
	Provinces        []Province   `json:"provinces"`
	IsActive         bool         `json:"is_active"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// Validate checks invariants before a court is created or updated.
func (c *Court) Validate() error {
	switch {
	case c.Name == "":
		return Invalid("court name is required")
	case c.Address == "":
		return Invalid("court address is required")
	case !c.Location.Valid():
		return Invalid("latitude must be in [-90,90] and longitude in [-180,180]")
	case !c.CourtType.Known():
		return Invalid("unknown court type: " + string(c.CourtType))
	case c.LocationType != LocationIndoor && c.LocationType != LocationOutdoor:
		return Invalid("location type must be indoor or outdoor")
	case c.PricePerHour < 0:
		return Invalid("price per hour must not be negative")
	}
	return nil
}

// Province is a named administrative region, many-to-many with courts.
type Province struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Bookmark marks a court as saved by a user. At most one per (user, court).
type Bookmark struct {
	UserID    string    `json:"user_id"`
	CourtID   string    `json:"court_id"`
	CreatedAt time.Time `json:"created_at"`
}
