package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/application/usecase"
)

// VehicleHandler maneja el catálogo de vehículos. El filtrado es público
// para sesiones autenticadas; altas, bajas y mantenimiento son de staff.
type VehicleHandler struct {
	uc *usecase.VehicleUseCase
}

// NewVehicleHandler construye el handler.
func NewVehicleHandler(uc *usecase.VehicleUseCase) *VehicleHandler {
	return &VehicleHandler{uc: uc}
}

// List godoc
// @Summary      Filtrar el catálogo de vehículos
// @Tags         vehicles
// @Security     Bearer
// @Produce      json
// @Param        type      query  string  false  "car | motorbike | truck"
// @Param        brand     query  string  false  "Substring de marca (case-insensitive)"
// @Param        model     query  string  false  "Substring de modelo"
// @Param        min_rate  query  string  false  "Tarifa mínima (no numérico se ignora)"
// @Param        max_rate  query  string  false  "Tarifa máxima"
// @Success      200  {object}  dto.VehicleListResponse
// @Router       /api/vehicles [get]
func (h *VehicleHandler) List(c *fiber.Ctx) error {
	var in dto.VehicleFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	out, err := h.uc.Filter(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener vehículo con su calendario de ocupación
// @Tags         vehicles
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del vehículo"
// @Success      200  {object}  dto.VehicleDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vehicles/{id} [get]
func (h *VehicleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.Get(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Dar de alta un vehículo (staff)
// @Tags         vehicles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVehicleRequest  true  "Datos del vehículo"
// @Success      201   {object}  dto.VehicleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/staff/vehicles [post]
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVehicleRequest
	if !validateBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar un vehículo sin alquileres activos (staff)
// @Tags         vehicles
// @Security     Bearer
// @Param        id   path  string  true  "ID del vehículo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/staff/vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Retire godoc
// @Summary      Retirar un vehículo del catálogo conservando su historial (staff)
// @Tags         vehicles
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del vehículo"
// @Success      200  {object}  dto.VehicleResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/staff/vehicles/{id}/retire [post]
func (h *VehicleHandler) Retire(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.Retire(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MarkOverdue godoc
// @Summary      Marcar como vencidos los alquileres con fecha fin pasada (staff)
// @Tags         vehicles
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/staff/vehicles/mark-overdue [post]
func (h *VehicleHandler) MarkOverdue(c *fiber.Ctx) error {
	n, err := h.uc.MarkOverdueAll()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"marked": n})
}

// Reconcile godoc
// @Summary      Reconstruir el snapshot de estados de la flota (staff)
// @Tags         vehicles
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/staff/vehicles/reconcile [post]
func (h *VehicleHandler) Reconcile(c *fiber.Ctx) error {
	n, err := h.uc.Reconcile()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"changed": n})
}
