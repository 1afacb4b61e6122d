package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/application/usecase"
)

// AttendanceHandler maneja la asistencia diaria.
type AttendanceHandler struct {
	uc *usecase.AttendanceUseCase
}

// NewAttendanceHandler construye el handler.
func NewAttendanceHandler(uc *usecase.AttendanceUseCase) *AttendanceHandler {
	return &AttendanceHandler{uc: uc}
}

// Save godoc
// @Summary      Guardar asistencia del día
// @Tags         attendance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AttendanceRequest  true  "fecha YYYY-MM-DD y presentes"
// @Success      200   {object}  dto.AttendanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/attendance [post]
func (h *AttendanceHandler) Save(c *fiber.Ctx) error {
	var in dto.AttendanceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Save(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Asistencia de un día
// @Tags         attendance
// @Security     Bearer
// @Produce      json
// @Param        date  path  string  true  "YYYY-MM-DD"
// @Success      200   {object}  dto.AttendanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/attendance/{date} [get]
func (h *AttendanceHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
