package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pricesmart/internal/services"
)

type TrendingHandler struct {
	Trends *services.TrendingService
}

func (h *TrendingHandler) Trending(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "trending": h.Trends.Trending()})
}
