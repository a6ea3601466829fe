package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	applog "shoplite/internal/log"
	"shoplite/internal/services"
	"shoplite/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

func attachments(c *fiber.Ctx) ([]services.Attachment, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil // no multipart body, no attachments
	}
	var out []services.Attachment
	for _, fh := range form.File["attachments"] {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, services.Attachment{Filename: fh.Filename, Data: data})
	}
	return out, nil
}

// POST /api/product/add (admin, multipart)
func (h *ProductHandler) Add(c *fiber.Ctx) error {
	name := c.FormValue("name")
	detail := c.FormValue("detail")
	price, okPrice := validate.Price(c.FormValue("price"))
	remaining, okRem := validate.Remaining(c.FormValue("remaining"))
	if name == "" || detail == "" || !okPrice || !okRem {
		return fail(c, fiber.StatusBadRequest, "missing required fields")
	}

	files, err := attachments(c)
	if err != nil {
		return failErr(c, "product.add.attachments", err, "product creation failed")
	}

	id, err := h.Catalog.Add(name, detail, price, remaining, files)
	if err != nil {
		return failErr(c, "product.add", err, "product creation failed")
	}
	applog.Audit(c, "product.add", map[string]any{"uuid": id, "name": name})
	return okData(c, fiber.Map{"uuid": id})
}

// GET /api/product/get
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Catalog.List()
	if err != nil {
		return failErr(c, "product.list", err, "could not load products")
	}
	return okData(c, products)
}

// PUT /api/product/revise/:uuid (admin, multipart optional)
func (h *ProductHandler) Revise(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("uuid"))
	name := c.FormValue("name")
	detail := c.FormValue("detail")
	price, okPrice := validate.Price(c.FormValue("price"))
	remaining, okRem := validate.Remaining(c.FormValue("remaining"))
	if !okID || name == "" || detail == "" || !okPrice || !okRem {
		return fail(c, fiber.StatusBadRequest, "missing required fields")
	}

	files, err := attachments(c)
	if err != nil {
		return failErr(c, "product.revise.attachments", err, "product update failed")
	}

	if err := h.Catalog.Revise(id, name, detail, price, remaining, files); err != nil {
		return failErr(c, "product.revise", err, "product not found")
	}
	applog.Audit(c, "product.revise", map[string]any{"uuid": id})
	return ok(c, "product updated")
}

// DELETE /api/product/remove/:uuid (admin)
func (h *ProductHandler) Remove(c *fiber.Ctx) error {
	id, okID := validate.ID(c.Params("uuid"))
	if !okID {
		return fail(c, fiber.StatusBadRequest, "missing required fields")
	}
	if err := h.Catalog.Remove(id); err != nil {
		return failErr(c, "product.remove", err, "product not found")
	}
	applog.Audit(c, "product.remove", map[string]any{"uuid": id})
	return ok(c, "product removed")
}

// GET /api/img/download/:filename
func (h *ProductHandler) DownloadImage(c *fiber.Ctx) error {
	full, err := h.Catalog.ImagePath(c.Params("filename"))
	if err != nil {
		applog.Security(c, "img.traversal.block", map[string]any{"path": c.Params("filename")})
		return c.SendStatus(fiber.StatusNotFound)
	}
	return c.SendFile(full, true)
}
