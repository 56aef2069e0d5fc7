package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/geloraapp/gelora/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	provinceType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Province",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.String},
			"name": &graphql.Field{Type: graphql.String},
		},
	})

	courtType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Court",
		Fields: graphql.Fields{
			"id":                &graphql.Field{Type: graphql.String},
			"name":              &graphql.Field{Type: graphql.String},
			"address":           &graphql.Field{Type: graphql.String},
			"location":          &graphql.Field{Type: geoPointType},
			"court_type":        &graphql.Field{Type: graphql.String},
			"location_type":     &graphql.Field{Type: graphql.String},
			"price_per_hour":    &graphql.Field{Type: graphql.Float},
			"phone_number":      &graphql.Field{Type: graphql.String},
			"description":       &graphql.Field{Type: graphql.String},
			"operational_hours": &graphql.Field{Type: graphql.String},
			"provinces":         &graphql.Field{Type: graphql.NewList(provinceType)},
		},
	})

	courtResultType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CourtResult",
		Fields: graphql.Fields{
			"court":         &graphql.Field{Type: courtType},
			"distance_km":   &graphql.Field{Type: graphql.Float},
			"is_bookmarked": &graphql.Field{Type: graphql.Boolean},
		},
	})

	postType := graphql.NewObject(graphql.ObjectConfig{
		Name: "BlogPost",
		Fields: graphql.Fields{
			"id":            &graphql.Field{Type: graphql.String},
			"author":        &graphql.Field{Type: graphql.String},
			"thumbnail_url": &graphql.Field{Type: graphql.String},
			"title":         &graphql.Field{Type: graphql.String},
			"content":       &graphql.Field{Type: graphql.String},
			"reading_time": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if post, ok := p.Source.(domain.BlogPost); ok {
						return post.ReadingTimeMinutes(), nil
					}
					if post, ok := p.Source.(*domain.BlogPost); ok {
						return post.ReadingTimeMinutes(), nil
					}
					return nil, nil
				},
			},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"provinces": &graphql.Field{
				Type:        graphql.NewList(provinceType),
				Description: "List all provinces",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Provinces.List(p.Context)
				},
			},
			"court": &graphql.Field{
				Type:        courtType,
				Description: "Get a court by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					return deps.Courts.GetByID(p.Context, id)
				},
			},
			"searchCourts": &graphql.Field{
				Type:        graphql.NewList(courtResultType),
				Description: "Search courts by location and filters",
				Args: graphql.FieldConfigArgument{
					"lat":         &graphql.ArgumentConfig{Type: graphql.Float},
					"lon":         &graphql.ArgumentConfig{Type: graphql.Float},
					"provinces":   &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"court_types": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"price_min":   &graphql.ArgumentConfig{Type: graphql.Float},
					"price_max":   &graphql.ArgumentConfig{Type: graphql.Float},
					"query":       &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					var criteria domain.SearchCriteria

					lat, hasLat := p.Args["lat"].(float64)
					lon, hasLon := p.Args["lon"].(float64)
					if hasLat && hasLon {
						criteria.Origin = &domain.GeoPoint{Lat: lat, Lon: lon}
					}
					if ids, ok := p.Args["provinces"].([]interface{}); ok {
						for _, id := range ids {
							if s, ok := id.(string); ok {
								criteria.ProvinceIDs = append(criteria.ProvinceIDs, s)
							}
						}
					}
					if types, ok := p.Args["court_types"].([]interface{}); ok {
						for _, t := range types {
							if s, ok := t.(string); ok {
								criteria.CourtTypes = append(criteria.CourtTypes, domain.CourtType(s))
							}
						}
					}
					if min, ok := p.Args["price_min"].(float64); ok {
						criteria.PriceMin = &min
					}
					if max, ok := p.Args["price_max"].(float64); ok {
						criteria.PriceMax = &max
					}
					if q, ok := p.Args["query"].(string); ok {
						criteria.Query = q
					}

					result, err := deps.Search.Search(p.Context, criteria)
					if err != nil {
						return nil, err
					}

					// Flatten CourtResult into the schema's court/distance shape.
					out := make([]map[string]interface{}, 0, len(result.Courts))
					for _, r := range result.Courts {
						m := map[string]interface{}{
							"court":         r.Court,
							"is_bookmarked": r.IsBookmarked,
						}
						if r.DistanceKm != nil {
							m["distance_km"] = *r.DistanceKm
						}
						out = append(out, m)
					}
					return out, nil
				},
			},
			"posts": &graphql.Field{
				Type:        graphql.NewList(postType),
				Description: "List blog posts, newest first",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Blog.List(p.Context)
				},
			},
			"post": &graphql.Field{
				Type:        postType,
				Description: "Get a blog post by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := p.Args["id"].(string)
					return deps.Blog.GetByID(p.Context, id)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.UserContext(),
		})

		return c.JSON(result)
	}
}
