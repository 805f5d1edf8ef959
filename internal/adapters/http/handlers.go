package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/placescout/internal/core/domain"
)

// searchResponse is the body of a completed search. Data is always an array.
type searchResponse struct {
	Success   bool                   `json:"success"`
	Data      []domain.AggregatedRow `json:"data"`
	Message   string                 `json:"message,omitempty"`
	Persisted bool                   `json:"persisted"`
}

func parseSearchRequest(c *fiber.Ctx) (domain.SearchRequest, error) {
	var req domain.SearchRequest
	if len(c.Body()) == 0 {
		return req, nil
	}
	if err := c.BodyParser(&req); err != nil {
		return req, err
	}
	return req, nil
}

// SearchHandler runs the search pipeline synchronously and returns the rows
// it appended to the row store.
func SearchHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := parseSearchRequest(c)
		if err != nil {
			return errBadRequest(c, "invalid request body")
		}

		result, err := deps.Search.Search(c.UserContext(), req)
		if err != nil {
			return searchError(c, err)
		}

		rows := result.Rows
		if rows == nil {
			rows = []domain.AggregatedRow{}
		}
		return c.JSON(searchResponse{
			Success:   true,
			Data:      rows,
			Message:   result.Message,
			Persisted: result.Persisted,
		})
	}
}

// StartSearchJobHandler queues an asynchronous search.
func StartSearchJobHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Jobs == nil {
			return errUnavailable(c, "async search is not enabled")
		}

		req, err := parseSearchRequest(c)
		if err != nil {
			return errBadRequest(c, "invalid request body")
		}
		req = req.Normalize()
		if err := req.Validate(); err != nil {
			return searchError(c, err)
		}

		id, err := deps.Jobs.StartSearch(c.UserContext(), req)
		if err != nil {
			return searchError(c, err)
		}

		c.Location("/v1/search/jobs/" + id)
		return c.Status(fiber.StatusAccepted).JSON(domain.SearchJob{ID: id, Status: domain.JobRunning})
	}
}

// GetSearchJobHandler reports the state of an asynchronous search.
func GetSearchJobHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Jobs == nil {
			return errUnavailable(c, "async search is not enabled")
		}

		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "job id is required")
		}

		job, err := deps.Jobs.SearchJob(c.UserContext(), id)
		if errors.Is(err, domain.ErrJobNotFound) {
			return errNotFound(c, "search job not found")
		}
		if err != nil {
			return searchError(c, err)
		}

		c.Set("Cache-Control", "no-store")
		return c.JSON(job)
	}
}

// ListSearchesHandler returns recorded search runs, newest first.
func ListSearchesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.History == nil {
			return errUnavailable(c, "search history is not enabled")
		}

		offset, limit := pageParams(c, 20, 100)
		runs, total, err := deps.History.ListRecent(c.UserContext(), offset, limit)
		if err != nil {
			return searchError(c, err)
		}
		if runs == nil {
			runs = []domain.SearchRun{}
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: runs, Pagination: pg})
	}
}
