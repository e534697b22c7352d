package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"pricesmart/internal/domain"
	applog "pricesmart/internal/log"
	"pricesmart/internal/services"
	"pricesmart/internal/validate"
)

type SearchHandler struct {
	Agg *services.Aggregator
}

type searchRequest struct {
	Product string `json:"product"`
}

// Search validates the query here, not in the core: the aggregator
// assumes a non-empty query of at least 2 characters.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	var in searchRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	q, ok := validate.Query(in.Product)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "product", "value": in.Product})
		return badRequest(c, "Enter at least 2 characters")
	}

	userID := ""
	if u, ok := c.Locals("user").(*domain.User); ok && u != nil {
		userID = u.ID
	}

	res := h.Agg.Search(c.Context(), q, userID)
	applog.Info(c, "search.done", map[string]any{
		"query": q, "results": len(res.Quotes), "lowest": res.Stats.LowestPrice,
	})
	return c.JSON(fiber.Map{
		"success":     true,
		"query":       res.Query,
		"results":     res.Quotes,
		"statistics":  res.Stats,
		"predictions": res.Forecast,
		"timestamp":   time.Now().Format(time.RFC3339),
	})
}
