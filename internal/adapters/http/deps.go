package http

import (
	"github.com/geloraapp/gelora/internal/adapters/postgres"
	"github.com/geloraapp/gelora/internal/adapters/valkey"
	"github.com/geloraapp/gelora/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Geocode    *usecases.GeocodeService
	Search     *usecases.SearchService
	Courts     *usecases.CourtService
	Bookmarks  *usecases.BookmarkService
	Provinces  *usecases.ProvinceService
	Blog       *usecases.BlogService
	Complaints *usecases.ComplaintService
	Games      *usecases.GameService
	DB         *postgres.DB
	Cache      *valkey.Cache
}
