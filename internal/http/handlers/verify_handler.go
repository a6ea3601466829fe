package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "shoplite/internal/log"
	"shoplite/internal/services"
	"shoplite/internal/validate"
)

type VerifyHandler struct {
	Auth *services.AuthService
}

type registerReq struct {
	Account  string `json:"account"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// POST /api/verify/register
func (h *VerifyHandler) Register(c *fiber.Ctx) error {
	var req registerReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "missing required fields")
	}
	account, okAcc := validate.Account(req.Account)
	email, okMail := validate.Email(req.Email)
	if !okAcc || !okMail || !validate.Password(req.Password) {
		applog.Security(c, "verify.register.invalid", map[string]any{"account": req.Account})
		return fail(c, fiber.StatusBadRequest, "missing required fields")
	}

	if err := h.Auth.Register(account, req.Password, email); err != nil {
		return failErr(c, "verify.register", err, "registration failed")
	}
	applog.Audit(c, "verify.register", map[string]any{"account": account})
	return ok(c, "registration successful")
}

type loginReq struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

// POST /api/verify/login
func (h *VerifyHandler) Login(c *fiber.Ctx) error {
	var req loginReq
	if err := c.BodyParser(&req); err != nil || req.Account == "" || req.Password == "" {
		return fail(c, fiber.StatusBadRequest, "missing required fields")
	}

	u, err := h.Auth.Login(req.Account, req.Password)
	if err != nil {
		applog.Security(c, "verify.login.fail", map[string]any{"account": req.Account})
		return failErr(c, "verify.login", err, "invalid account or password")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "x-user-token",
		Value:    u.Token,
		Path:     "/",
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
		Secure:   false, // set true behind HTTPS
	})

	applog.Audit(c, "verify.login.success", map[string]any{"account": u.Account})
	return c.JSON(fiber.Map{
		"type": "success",
		"msg":  "login successful",
		"data": fiber.Map{"token": u.Token, "account": u.Account, "level": u.Level},
	})
}

type forgetReq struct {
	Account string `json:"account"`
}

// POST /api/verify/forgetPassword
func (h *VerifyHandler) ForgetPassword(c *fiber.Ctx) error {
	var req forgetReq
	if err := c.BodyParser(&req); err != nil || req.Account == "" {
		return fail(c, fiber.StatusBadRequest, "missing required fields")
	}
	if err := h.Auth.ResetPassword(req.Account); err != nil {
		return failErr(c, "verify.forget", err, "password delivery failed")
	}
	applog.Audit(c, "verify.forget", map[string]any{"account": req.Account})
	return ok(c, "a temporary password has been sent to your email")
}

// GET /api/verify/check
func (h *VerifyHandler) Check(c *fiber.Ctx) error {
	tok := userToken(c)
	if tok == "" {
		return fail(c, fiber.StatusBadRequest, "missing token")
	}
	u, err := h.Auth.Check(tok)
	if err != nil {
		return failErr(c, "verify.check", err, "invalid token")
	}
	return c.JSON(fiber.Map{
		"type": "success",
		"msg":  "token verified",
		"data": fiber.Map{"account": u.Account, "level": u.Level},
	})
}
