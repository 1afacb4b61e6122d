package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/application/usecase"
)

// ConfigHandler maneja la configuración del sistema (precio del metro).
type ConfigHandler struct {
	uc *usecase.ConfigUseCase
}

// NewConfigHandler construye el handler.
func NewConfigHandler(uc *usecase.ConfigUseCase) *ConfigHandler {
	return &ConfigHandler{uc: uc}
}

// Get godoc
// @Summary      Obtener valor de configuración
// @Description  Una clave inexistente devuelve "0".
// @Tags         config
// @Security     Bearer
// @Produce      json
// @Param        key  path  string  true  "clave, p.ej. meter_price"
// @Success      200  {object}  dto.ConfigResponse
// @Router       /api/config/{key} [get]
func (h *ConfigHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("key"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Set godoc
// @Summary      Guardar valor de configuración
// @Tags         config
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConfigRequest  true  "clave y valor"
// @Success      200   {object}  dto.ConfigResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/config [put]
func (h *ConfigHandler) Set(c *fiber.Ctx) error {
	var in dto.ConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Set(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
