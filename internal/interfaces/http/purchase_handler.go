package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/crm"
	"github.com/jhoicas/crm-api/internal/application/dto"
)

// PurchaseHandler maneja las peticiones HTTP de compras.
type PurchaseHandler struct {
	uc *crm.PurchaseUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *crm.PurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Add godoc
// @Summary      Registrar compra de un cliente
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "id del cliente"
// @Param        body  body      dto.PurchaseRequest  true  "date, product, quantity (>0), price (>=0)"
// @Success      201   {object}  dto.CreatedIDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/purchases [post]
func (h *PurchaseHandler) Add(c *fiber.Ctx) error {
	var in dto.PurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	id, err := h.uc.Add(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedIDResponse{ID: id})
}

// ListForCustomer GET /api/customers/:id/purchases (cliente inexistente → [])
func (h *PurchaseHandler) ListForCustomer(c *fiber.Ctx) error {
	list, err := h.uc.ListForCustomer(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Get GET /api/purchases/:id
func (h *PurchaseHandler) Get(c *fiber.Ctx) error {
	purchase, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(purchase)
}

// Update PUT /api/purchases/:id
func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	var in dto.PurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	purchase, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(purchase)
}

// Delete DELETE /api/purchases/:id
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	id, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeletedResponse{ID: id})
}

// FilterByDate GET /api/purchases?date=2024-01-01 (igualdad exacta de la fecha)
func (h *PurchaseHandler) FilterByDate(c *fiber.Ctx) error {
	date := c.Query("date")
	list, err := h.uc.FilterByDate(c.UserContext(), date)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
