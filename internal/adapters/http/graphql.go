package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/samirrijal/placescout/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	placeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Place",
		Fields: graphql.Fields{
			"name":          &graphql.Field{Type: graphql.String},
			"address":       &graphql.Field{Type: graphql.String},
			"phone":         &graphql.Field{Type: graphql.String},
			"website":       &graphql.Field{Type: graphql.String},
			"rating":        &graphql.Field{Type: graphql.String},
			"total_ratings": &graphql.Field{Type: graphql.String},
		},
	})

	searchResultType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SearchResult",
		Fields: graphql.Fields{
			"rows": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(placeType))),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					res, _ := p.Source.(*domain.SearchResult)
					if res == nil || res.Rows == nil {
						return []domain.AggregatedRow{}, nil
					}
					return res.Rows, nil
				},
			},
			"message":   &graphql.Field{Type: graphql.String},
			"persisted": &graphql.Field{Type: graphql.Boolean},
			"rounds":    &graphql.Field{Type: graphql.Int},
		},
	})

	searchRunType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SearchRun",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.String},
			"business":     &graphql.Field{Type: graphql.String},
			"city":         &graphql.Field{Type: graphql.String},
			"page":         &graphql.Field{Type: graphql.Int},
			"rounds":       &graphql.Field{Type: graphql.Int},
			"row_count":    &graphql.Field{Type: graphql.Int},
			"persisted":    &graphql.Field{Type: graphql.Boolean},
			"completed_at": &graphql.Field{Type: graphql.DateTime},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"recentSearches": &graphql.Field{
				Type:        graphql.NewList(searchRunType),
				Description: "Recently completed searches, newest first",
				Args: graphql.FieldConfigArgument{
					"offset": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if deps.History == nil {
						return nil, errors.New("search history is not enabled")
					}
					runs, _, err := deps.History.ListRecent(p.Context, p.Args["offset"].(int), p.Args["limit"].(int))
					return runs, err
				},
			},
		},
	})

	// search appends rows to the row store, so it is a mutation.
	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"search": &graphql.Field{
				Type:        searchResultType,
				Description: "Search places of a business category in a city and append them to the row store",
				Args: graphql.FieldConfigArgument{
					"business": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"city":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"page":     &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					req := domain.SearchRequest{
						Business: p.Args["business"].(string),
						City:     p.Args["city"].(string),
						Page:     p.Args["page"].(int),
					}
					res, err := deps.Search.Search(p.Context, req)
					if err != nil {
						var verr *domain.ValidationError
						if errors.As(err, &verr) {
							return nil, verr
						}
						return nil, errors.New(ServerErrorMessage)
					}
					return res, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
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
			return errBadRequest(c, "invalid request body")
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
