package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shoplite/internal/domain"
	applog "shoplite/internal/log"
	"shoplite/internal/services"
	"shoplite/internal/validate"
)

type OrderHandler struct {
	Order *services.OrderService
}

type checkoutReq struct {
	TradeID     string `json:"trade_id"`
	ProductUUID string `json:"product_uuid"`
}

// POST /api/transaction/add
func (h *OrderHandler) Checkout(c *fiber.Ctx) error {
	u := currentUser(c)
	var req checkoutReq
	if err := c.BodyParser(&req); err != nil || req.TradeID == "" || req.ProductUUID == "" {
		return fail(c, fiber.StatusBadRequest, "missing trade_id or product_uuid")
	}

	if err := h.Order.Checkout(u.Token, req.TradeID, req.ProductUUID); err != nil {
		applog.Security(c, "order.checkout.fail", map[string]any{"trade_id": req.TradeID, "error": err.Error()})
		return failErr(c, "order.checkout", err, "cart item or product not found")
	}
	applog.Audit(c, "order.checkout", map[string]any{"trade_id": req.TradeID, "product": req.ProductUUID})
	return ok(c, "order placed")
}

// GET /api/transaction/info
func (h *OrderHandler) Info(c *fiber.Ctx) error {
	u := currentUser(c)
	rows, err := h.Order.ActiveByUser(u.Token)
	if err != nil {
		return failErr(c, "order.info", err, "could not load orders")
	}
	return okData(c, rows)
}

// GET /api/transaction/infoByManager (admin)
func (h *OrderHandler) InfoByManager(c *fiber.Ctx) error {
	rows, err := h.Order.ActiveAll()
	if err != nil {
		return failErr(c, "order.info.admin", err, "could not load orders")
	}
	return okData(c, rows)
}

// GET /api/finish/info
func (h *OrderHandler) FinishedInfo(c *fiber.Ctx) error {
	u := currentUser(c)
	rows, err := h.Order.FinishedByUser(u.Token)
	if err != nil {
		return failErr(c, "order.finished", err, "could not load orders")
	}
	return okData(c, rows)
}

// GET /api/finish/infoByManager (admin)
func (h *OrderHandler) FinishedInfoByManager(c *fiber.Ctx) error {
	rows, err := h.Order.FinishedAll()
	if err != nil {
		return failErr(c, "order.finished.admin", err, "could not load orders")
	}
	return okData(c, rows)
}

type tradeReq struct {
	TradeID string `json:"trade_id"`
}

func (h *OrderHandler) applyEvent(c *fiber.Ctx, token string, ev domain.Event, action, okMsg string) error {
	var req tradeReq
	if err := c.BodyParser(&req); err != nil || req.TradeID == "" {
		return fail(c, fiber.StatusBadRequest, "missing trade_id")
	}
	if err := h.Order.Apply(token, req.TradeID, ev); err != nil {
		return failErr(c, action, err, "order not found")
	}
	applog.Audit(c, action, map[string]any{"trade_id": req.TradeID})
	return ok(c, okMsg)
}

// PUT /api/transaction/pay
func (h *OrderHandler) Pay(c *fiber.Ctx) error {
	u := currentUser(c)
	return h.applyEvent(c, u.Token, domain.EventPay, "order.pay", "payment request submitted")
}

// PUT /api/transaction/check (admin)
func (h *OrderHandler) Confirm(c *fiber.Ctx) error {
	return h.applyEvent(c, "", domain.EventConfirm, "order.confirm", "payment confirmed")
}

// PUT /api/transaction/shipping (admin)
func (h *OrderHandler) Ship(c *fiber.Ctx) error {
	return h.applyEvent(c, "", domain.EventShip, "order.ship", "order shipped")
}

// PUT /api/transaction/finish
func (h *OrderHandler) Finish(c *fiber.Ctx) error {
	u := currentUser(c)
	return h.applyEvent(c, u.Token, domain.EventComplete, "order.finish", "order completed")
}

// DELETE /api/transaction/delete/:trade_id
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	u := currentUser(c)
	tradeID, okID := validate.ID(c.Params("trade_id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "missing trade_id")
	}
	if err := h.Order.Cancel(u.Token, tradeID); err != nil {
		return failErr(c, "order.cancel", err, "order not found")
	}
	applog.Audit(c, "order.cancel", map[string]any{"trade_id": tradeID})
	return ok(c, "order cancelled")
}
