package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/crm"
	"github.com/jhoicas/crm-api/internal/application/dto"
)

// InteractionHandler maneja las peticiones HTTP de interacciones.
type InteractionHandler struct {
	uc *crm.InteractionUseCase
}

// NewInteractionHandler construye el handler.
func NewInteractionHandler(uc *crm.InteractionUseCase) *InteractionHandler {
	return &InteractionHandler{uc: uc}
}

// Add godoc
// @Summary      Registrar interacción de un cliente
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "id del cliente"
// @Param        body  body      dto.InteractionRequest  true  "date, interaction_type, status (description y comments opcionales)"
// @Success      201   {object}  dto.CreatedIDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/interactions [post]
func (h *InteractionHandler) Add(c *fiber.Ctx) error {
	var in dto.InteractionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	id, err := h.uc.Add(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedIDResponse{ID: id})
}

// ListForCustomer GET /api/customers/:id/interactions (cliente inexistente → [])
func (h *InteractionHandler) ListForCustomer(c *fiber.Ctx) error {
	list, err := h.uc.ListForCustomer(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Get GET /api/interactions/:id
func (h *InteractionHandler) Get(c *fiber.Ctx) error {
	interaction, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(interaction)
}

// Update PUT /api/interactions/:id
func (h *InteractionHandler) Update(c *fiber.Ctx) error {
	var in dto.InteractionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	interaction, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(interaction)
}

// Delete DELETE /api/interactions/:id
func (h *InteractionHandler) Delete(c *fiber.Ctx) error {
	id, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeletedResponse{ID: id})
}

// FilterByStatus godoc
// @Summary      Interacciones por estado
// @Tags         interactions
// @Produce      json
// @Param        status  query     string  false  "estado exacto, sin distinguir mayúsculas (vacío no coincide con ninguna)"
// @Success      200     {array}   dto.InteractionResponse
// @Router       /api/interactions [get]
func (h *InteractionHandler) FilterByStatus(c *fiber.Ctx) error {
	status := c.Query("status")
	list, err := h.uc.FilterByStatus(c.UserContext(), status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
