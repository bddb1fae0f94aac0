package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/application/usecase"
)

// RentalHandler maneja alquileres: crear, devolver, cancelar, listar y
// facturar. Todas las rutas requieren sesión.
type RentalHandler struct {
	uc *usecase.RentalUseCase
}

// NewRentalHandler construye el handler.
func NewRentalHandler(uc *usecase.RentalUseCase) *RentalHandler {
	return &RentalHandler{uc: uc}
}

// Create godoc
// @Summary      Alquilar un vehículo
// @Tags         rentals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRentalRequest  true  "Vehículo y rango de fechas (YYYY-MM-DD)"
// @Success      201   {object}  dto.RentalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/rentals [post]
func (h *RentalHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRentalRequest
	if !validateBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMine godoc
// @Summary      Mis alquileres
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RentalListResponse
// @Router       /api/rentals [get]
func (h *RentalHandler) ListMine(c *fiber.Ctx) error {
	out, err := h.uc.ListForUser(GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Return godoc
// @Summary      Devolver un vehículo (dueño del alquiler o staff)
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del alquiler"
// @Success      200  {object}  dto.RentalResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rentals/{id}/return [post]
func (h *RentalHandler) Return(c *fiber.Ctx) error {
	out, err := h.uc.Return(c.Params("id"), GetUserID(c), GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar un alquiler que no comenzó (dueño o staff)
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del alquiler"
// @Success      200  {object}  dto.RentalResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/rentals/{id}/cancel [post]
func (h *RentalHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.uc.Cancel(c.Params("id"), GetUserID(c), GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Invoice godoc
// @Summary      Factura de un alquiler en JSON
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del alquiler"
// @Success      200  {object}  dto.InvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rentals/{id}/invoice [get]
func (h *RentalHandler) Invoice(c *fiber.Ctx) error {
	out, err := h.uc.Invoice(c.Params("id"), GetUserID(c), GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// InvoicePDF godoc
// @Summary      Factura de un alquiler en PDF
// @Tags         rentals
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del alquiler"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rentals/{id}/invoice.pdf [get]
func (h *RentalHandler) InvoicePDF(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.InvoicePDF(c.Params("id"), GetUserID(c), GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="invoice.pdf"`)
	return c.Send(pdfBytes)
}

// ListAll godoc
// @Summary      Todos los alquileres (staff)
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RentalListResponse
// @Router       /api/staff/rentals [get]
func (h *RentalHandler) ListAll(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListOverdue godoc
// @Summary      Alquileres vencidos a hoy (staff)
// @Tags         rentals
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RentalListResponse
// @Router       /api/staff/rentals/overdue [get]
func (h *RentalHandler) ListOverdue(c *fiber.Ctx) error {
	out, err := h.uc.ListOverdue()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
