package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pricesmart/internal/domain"
	applog "pricesmart/internal/log"
	"pricesmart/internal/services"
	"pricesmart/internal/validate"
)

type WatchlistHandler struct {
	Watch *services.WatchlistService
}

type watchlistAddRequest struct {
	ProductName  string `json:"product_name"`
	CurrentPrice int    `json:"current_price"`
	TargetPrice  int    `json:"target_price"`
}

func (h *WatchlistHandler) List(c *fiber.Ctx) error {
	u := c.Locals("user").(*domain.User)
	items, err := h.Watch.List(u.ID)
	if err != nil {
		applog.Error(c, "watchlist.list.fail", err, nil)
		return serverError(c, "could not load watchlist")
	}
	return c.JSON(fiber.Map{"success": true, "items": items, "count": len(items)})
}

func (h *WatchlistHandler) Add(c *fiber.Ctx) error {
	u := c.Locals("user").(*domain.User)
	var in watchlistAddRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	name, ok := validate.Name(in.ProductName)
	if !ok {
		return badRequest(c, "product name is required")
	}
	if in.CurrentPrice < 0 || in.TargetPrice < 0 {
		return badRequest(c, "prices must be non-negative")
	}

	id, err := h.Watch.Add(u.ID, name, in.CurrentPrice, in.TargetPrice)
	if err != nil {
		applog.Error(c, "watchlist.add.fail", err, map[string]any{"product": name})
		return serverError(c, "could not save item")
	}
	applog.Audit(c, "watchlist.add", map[string]any{"product": name, "entry": id})
	return c.JSON(fiber.Map{"success": true, "id": id, "message": "Added " + name + " to watchlist"})
}

type watchlistTargetRequest struct {
	TargetPrice int `json:"target_price"`
}

func (h *WatchlistHandler) SetTarget(c *fiber.Ctx) error {
	u := c.Locals("user").(*domain.User)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid entry id")
	}
	var in watchlistTargetRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	if in.TargetPrice < 0 {
		return badRequest(c, "target must be non-negative")
	}
	if err := h.Watch.SetTarget(u.ID, id, in.TargetPrice); err != nil {
		applog.Error(c, "watchlist.target.fail", err, map[string]any{"entry": id})
		return serverError(c, "could not update target")
	}
	applog.Audit(c, "watchlist.target", map[string]any{"entry": id, "target": in.TargetPrice})
	return c.JSON(fiber.Map{"success": true})
}

func (h *WatchlistHandler) Remove(c *fiber.Ctx) error {
	u := c.Locals("user").(*domain.User)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid entry id")
	}
	if err := h.Watch.Remove(u.ID, id); err != nil {
		applog.Error(c, "watchlist.remove.fail", err, map[string]any{"entry": id})
		return serverError(c, "could not remove item")
	}
	applog.Audit(c, "watchlist.remove", map[string]any{"entry": id})
	return c.JSON(fiber.Map{"success": true})
}
