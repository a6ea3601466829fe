package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shoplite/internal/log"
	"shoplite/internal/services"
	"shoplite/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

type cartAddReq struct {
	ProductUUID string `json:"product_uuid"`
	Quantity    int    `json:"quantity"`
}

// POST /api/cart/add
func (h *CartHandler) Add(c *fiber.Ctx) error {
	u := currentUser(c)
	var req cartAddReq
	if err := c.BodyParser(&req); err != nil || req.ProductUUID == "" {
		return fail(c, fiber.StatusBadRequest, "missing product_uuid")
	}
	qty := validate.Qty(req.Quantity)

	tradeID, err := h.Cart.Add(u.Token, req.ProductUUID, qty)
	if err != nil {
		return failErr(c, "cart.add", err, "product not found")
	}
	applog.Info(c, "cart.add", map[string]any{"trade_id": tradeID, "product": req.ProductUUID, "qty": qty})
	return c.JSON(fiber.Map{
		"type": "success",
		"msg":  "item added to cart",
		"data": fiber.Map{"trade_id": tradeID},
	})
}

// GET /api/cart/items
func (h *CartHandler) Items(c *fiber.Ctx) error {
	u := currentUser(c)
	lines, err := h.Cart.Lines(u.Token)
	if err != nil {
		return failErr(c, "cart.items", err, "could not load cart")
	}
	return okData(c, lines)
}

type cartUpdateReq struct {
	TradeID  string `json:"trade_id"`
	Quantity int    `json:"quantity"`
}

// PUT /api/cart/update/quantity
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	u := currentUser(c)
	var req cartUpdateReq
	if err := c.BodyParser(&req); err != nil || req.TradeID == "" {
		return fail(c, fiber.StatusBadRequest, "missing trade_id or quantity")
	}
	qty, okQty := validate.QtyStrict(req.Quantity)
	if !okQty {
		return fail(c, fiber.StatusBadRequest, "quantity must be a number greater than or equal to 1")
	}

	if err := h.Cart.UpdateQuantity(u.Token, req.TradeID, qty); err != nil {
		return failErr(c, "cart.update", err, "cart item not found")
	}
	return ok(c, "quantity updated")
}

// DELETE /api/cart/delete/:trade_id
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	u := currentUser(c)
	tradeID, okID := validate.ID(c.Params("trade_id"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "missing trade_id")
	}
	if err := h.Cart.Remove(u.Token, tradeID); err != nil {
		return failErr(c, "cart.remove", err, "cart item not found")
	}
	return ok(c, "item removed")
}
