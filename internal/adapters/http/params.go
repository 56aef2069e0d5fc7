package http

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/geloraapp/gelora/internal/core/domain"
)

// FlexFloat accepts a JSON number or a numeric string. Mobile clients send
// coordinates and prices both ways.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
		if s == "" {
			return fmt.Errorf("empty numeric string")
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	*f = FlexFloat(v)
	return nil
}

// searchRequest is the wire form of a court search. Both the bare and the
// bracketed array spellings are accepted for provinces and court types.
type searchRequest struct {
	Latitude  *FlexFloat `json:"latitude"`
	Longitude *FlexFloat `json:"longitude"`

	Provinces        []string `json:"provinces"`
	ProvincesBracket []string `json:"provinces[]"`

	CourtTypes        []string `json:"court_types"`
	CourtTypesBracket []string `json:"court_types[]"`

	PriceMin *FlexFloat `json:"price_min"`
	PriceMax *FlexFloat `json:"price_max"`

	BookmarkedOnly bool   `json:"bookmarked_only"`
	Query          string `json:"query"`
}

// criteria normalizes the wire form into domain.SearchCriteria. Either both
// coordinates are present or neither.
func (r *searchRequest) criteria(callerID string) (domain.SearchCriteria, error) {
	var sc domain.SearchCriteria
	sc.UserID = callerID

	switch {
	case r.Latitude != nil && r.Longitude != nil:
		sc.Origin = &domain.GeoPoint{Lat: float64(*r.Latitude), Lon: float64(*r.Longitude)}
	case r.Latitude != nil || r.Longitude != nil:
		return sc, fmt.Errorf("latitude and longitude must be sent together")
	}

	sc.ProvinceIDs = firstNonEmpty(r.Provinces, r.ProvincesBracket)
	for _, t := range firstNonEmpty(r.CourtTypes, r.CourtTypesBracket) {
		sc.CourtTypes = append(sc.CourtTypes, domain.CourtType(t))
	}

	if r.PriceMin != nil {
		v := float64(*r.PriceMin)
		sc.PriceMin = &v
	}
	if r.PriceMax != nil {
		v := float64(*r.PriceMax)
		sc.PriceMax = &v
	}

	sc.BookmarkedOnly = r.BookmarkedOnly
	sc.Query = strings.TrimSpace(r.Query)
	return sc, nil
}

func firstNonEmpty(a, b []string) []string {
	if len(a) > 0 {
		return a
	}
	return b
}
