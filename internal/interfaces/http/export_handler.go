package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/crm"
)

// ExportHandler sirve el estado de cuenta PDF y la exportación XML de un cliente.
type ExportHandler struct {
	uc *crm.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *crm.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Statement godoc
// @Summary      Estado de cuenta del cliente (PDF)
// @Tags         customers
// @Produce      application/pdf
// @Param        id   path  string  true  "id del cliente"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/statement.pdf [get]
func (h *ExportHandler) Statement(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.StatementPDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="estado-de-cuenta-`+id+`.pdf"`)
	return c.Send(out)
}

// XML GET /api/customers/:id/export.xml (XML canónico)
func (h *ExportHandler) XML(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.CustomerXML(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cliente-`+id+`.xml"`)
	return c.Send(out)
}
