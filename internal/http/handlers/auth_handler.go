package handlers

import (
	"github.com/gofiber/fiber/v2"

	"pricesmart/internal/domain"
	applog "pricesmart/internal/log"
	"pricesmart/internal/services"
	"pricesmart/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type credentials struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in credentials
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "email"})
		return badRequest(c, "invalid email address")
	}
	name, ok := validate.Name(in.Name)
	if !ok {
		return badRequest(c, "invalid name")
	}
	if !validate.Password(in.Password) {
		return badRequest(c, "password must be 8+ chars with upper, lower and digit")
	}

	u, tok, err := h.Auth.Register(email, name, in.Password)
	if err == services.ErrEmailTaken {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "error": "email already registered"})
	}
	if err != nil {
		applog.Error(c, "auth.register.fail", err, nil)
		return serverError(c, "registration failed")
	}
	applog.Audit(c, "auth.register", map[string]any{"user": u.ID})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true, "token": tok, "user": publicUser(u),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in credentials
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "invalid request body")
	}
	u, tok, err := h.Auth.Login(in.Email, in.Password)
	if err == services.ErrBadCreds {
		applog.Security(c, "auth.login.fail", map[string]any{"email": in.Email})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": "invalid email or password"})
	}
	if err != nil {
		applog.Error(c, "auth.login.error", err, nil)
		return serverError(c, "login failed")
	}
	applog.Audit(c, "auth.login", map[string]any{"user": u.ID})
	return c.JSON(fiber.Map{"success": true, "token": tok, "user": publicUser(u)})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u := c.Locals("user").(*domain.User)
	return c.JSON(fiber.Map{"success": true, "user": publicUser(u)})
}

func publicUser(u *domain.User) fiber.Map {
	return fiber.Map{"id": u.ID, "email": u.Email, "name": u.Name}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": msg})
}

func serverError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": msg})
}
