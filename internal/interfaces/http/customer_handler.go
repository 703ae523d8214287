package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/crm"
	"github.com/jhoicas/crm-api/internal/application/dto"
)

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	uc *crm.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *crm.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Produce      json
// @Success      200  {array}   dto.CustomerResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CustomerRequest  true  "name, company, email, phone (E.164)"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	customer, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// Get godoc
// @Summary      Obtener cliente
// @Tags         customers
// @Produce      json
// @Param        id   path      string  true  "id del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	customer, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(customer)
}

// Update PUT /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	customer, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(customer)
}

// Delete DELETE /api/customers/:id. Las interacciones y compras del cliente se conservan.
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, err := h.uc.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeletedResponse{ID: id})
}

// Search GET /api/customers/search?name=Ann (coincidencia exacta, sin distinguir mayúsculas)
func (h *CustomerHandler) Search(c *fiber.Ctx) error {
	name := c.Query("name")
	list, err := h.uc.SearchByName(c.UserContext(), name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
