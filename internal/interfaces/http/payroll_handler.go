package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/application/payroll"
	"github.com/jhoicas/Cuadrilla-api/internal/application/usecase"
)

// EmployeeHandler maneja empleados, grupos, jornales y adelantos.
type EmployeeHandler struct {
	employees *usecase.EmployeeUseCase
	payroll   *payroll.UseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(employees *usecase.EmployeeUseCase, payroll *payroll.UseCase) *EmployeeHandler {
	return &EmployeeHandler{employees: employees, payroll: payroll}
}

// CreateGroup godoc
// @Summary      Crear grupo de empleados
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateGroupRequest  true  "nombre"
// @Success      201   {object}  dto.GroupResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/groups [post]
func (h *EmployeeHandler) CreateGroup(c *fiber.Ctx) error {
	var in dto.CreateGroupRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.employees.CreateGroup(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListGroups godoc
// @Summary      Listar grupos
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.GroupResponse
// @Router       /api/groups [get]
func (h *EmployeeHandler) ListGroups(c *fiber.Ctx) error {
	out, err := h.employees.ListGroups(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteGroup godoc
// @Summary      Borrar grupo (y sus empleados)
// @Tags         employees
// @Security     Bearer
// @Param        id   path  string  true  "ID del grupo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/groups/{id} [delete]
func (h *EmployeeHandler) DeleteGroup(c *fiber.Ctx) error {
	if err := h.employees.DeleteGroup(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Create godoc
// @Summary      Crear empleado
// @Tags         employees
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "nombre, grupo opcional"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.employees.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar empleados
// @Tags         employees
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.EmployeeResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	out, err := h.employees.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar empleado
// @Description  Borra también sus adelantos y jornales. Si participó de salidas responde 409.
// @Tags         employees
// @Security     Bearer
// @Param        id   path  string  true  "ID del empleado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	if err := h.employees.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecordPayroll godoc
// @Summary      Registrar jornal por producción
// @Description  bruto = metros x precio vigente; compensa adelantos pendientes (FIFO) y registra el neto como gasto.
// @Tags         payroll
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "reintentos seguros"
// @Param        id    path  string  true  "ID del empleado"
// @Param        body  body  dto.PayrollRequest  true  "metros, fecha opcional"
// @Success      201   {object}  dto.PayrollResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/payroll [post]
func (h *EmployeeHandler) RecordPayroll(c *fiber.Ctx) error {
	var in dto.PayrollRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.payroll.RecordPayroll(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RecordAdvance godoc
// @Summary      Registrar adelanto
// @Tags         payroll
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "reintentos seguros"
// @Param        id    path  string  true  "ID del empleado"
// @Param        body  body  dto.AdvanceRequest  true  "monto, descripción, fecha"
// @Success      201   {object}  dto.AdvanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/advances [post]
func (h *EmployeeHandler) RecordAdvance(c *fiber.Ctx) error {
	var in dto.AdvanceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.payroll.RecordAdvance(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History godoc
// @Summary      Historial del empleado
// @Tags         payroll
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del empleado"
// @Success      200  {object}  dto.EmployeeHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/history [get]
func (h *EmployeeHandler) History(c *fiber.Ctx) error {
	out, err := h.payroll.History(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
