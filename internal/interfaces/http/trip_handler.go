package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/application/trip"
)

// TripHandler maneja el ciclo de vida de las salidas de trabajo.
type TripHandler struct {
	uc *trip.UseCase
}

// NewTripHandler construye el handler.
func NewTripHandler(uc *trip.UseCase) *TripHandler {
	return &TripHandler{uc: uc}
}

// Create godoc
// @Summary      Crear salida de trabajo
// @Description  Crea la salida ABIERTA con su cuadrilla y retira los materiales del stock.
// @Description  El stock puede quedar negativo: se informa en stock_warnings, no es error.
// @Tags         trips
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "reintentos seguros"
// @Param        body  body  dto.CreateTripRequest  true  "descripción, empleados, materiales"
// @Success      201   {object}  dto.TripResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/trips [post]
func (h *TripHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTripRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar salidas
// @Tags         trips
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.TripListResponse
// @Router       /api/trips [get]
func (h *TripHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener salida
// @Tags         trips
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la salida"
// @Success      200  {object}  dto.TripResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/trips/{id} [get]
func (h *TripHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateProgress godoc
// @Summary      Actualizar avance
// @Description  Sobrescribe los metros de cada asignación y recalcula lo ganado al precio vigente (estimado).
// @Tags         trips
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la salida"
// @Param        body  body  dto.UpdateProgressRequest  true  "metros por asignación"
// @Success      200   {object}  dto.TripResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/trips/{id}/progress [put]
func (h *TripHandler) UpdateProgress(c *fiber.Ctx) error {
	var in dto.UpdateProgressRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateProgress(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Close godoc
// @Summary      Cerrar salida
// @Description  Liquida la cuadrilla al precio vigente y devuelve al stock el material no usado.
// @Description  Un segundo cierre de la misma salida responde 409.
// @Tags         trips
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la salida"
// @Param        body  body  dto.CloseTripRequest  true  "metros finales y devoluciones"
// @Success      200   {object}  dto.TripResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/trips/{id}/close [post]
func (h *TripHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseTripRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Close(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Calendar godoc
// @Summary      Salidas cerradas del mes como eventos de calendario
// @Tags         trips
// @Security     Bearer
// @Produce      json
// @Param        year   query  int  false  "año (default: actual)"
// @Param        month  query  int  false  "mes 1-12 (default: actual)"
// @Success      200  {array}   dto.CalendarEventDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/calendar/events [get]
func (h *TripHandler) Calendar(c *fiber.Ctx) error {
	out, err := h.uc.CalendarEvents(c.UserContext(), c.QueryInt("year"), c.QueryInt("month"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
