package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/application/finance"
	"github.com/jhoicas/Cuadrilla-api/internal/application/usecase"
)

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// FinanceHandler maneja el libro contable y los reportes.
type FinanceHandler struct {
	uc *finance.UseCase
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(uc *finance.UseCase) *FinanceHandler {
	return &FinanceHandler{uc: uc}
}

func sendFile(c *fiber.Ctx, mime, filename string, data []byte) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, mime)
	return c.Send(data)
}

// CreateTransaction godoc
// @Summary      Registrar movimiento
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "monto, tipo, categoría"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/finance/transactions [post]
func (h *FinanceHandler) CreateTransaction(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateTransaction(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTransactions godoc
// @Summary      Listar movimientos
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo (default 20)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/finance/transactions [get]
func (h *FinanceHandler) ListTransactions(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListTransactions(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteTransaction godoc
// @Summary      Borrar movimiento
// @Tags         finance
// @Security     Bearer
// @Param        id   path  string  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/finance/transactions/{id} [delete]
func (h *FinanceHandler) DeleteTransaction(c *fiber.Ctx) error {
	if err := h.uc.DeleteTransaction(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         finance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "nombre y tipo"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/finance/categories [post]
func (h *FinanceHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateCategory(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/finance/categories [get]
func (h *FinanceHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.uc.ListCategories(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen mensual
// @Description  Mano de obra de salidas cerradas, gastos operativos e ingresos del mes. Sin parámetros: mes en curso.
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        year   query  int  false  "año"
// @Param        month  query  int  false  "mes 1-12"
// @Success      200  {object}  dto.FinanceSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/finance/summary [get]
func (h *FinanceHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), c.QueryInt("year"), c.QueryInt("month"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AccountingPDF godoc
// @Summary      Reporte contable (PDF)
// @Tags         finance
// @Security     Bearer
// @Produce      application/pdf
// @Param        year   query  int  false  "año"
// @Param        month  query  int  false  "mes 1-12"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/finance/reports/accounting [get]
func (h *FinanceHandler) AccountingPDF(c *fiber.Ctx) error {
	data, name, err := h.uc.AccountingPDF(c.UserContext(), c.QueryInt("year"), c.QueryInt("month"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, mimePDF, name, data)
}

// MonthlyPDF godoc
// @Summary      Reporte mensual de movimientos (PDF)
// @Tags         finance
// @Security     Bearer
// @Produce      application/pdf
// @Param        year   query  int  false  "año"
// @Param        month  query  int  false  "mes 1-12"
// @Success      200  {file}  binary
// @Router       /api/finance/reports/monthly [get]
func (h *FinanceHandler) MonthlyPDF(c *fiber.Ctx) error {
	data, name, err := h.uc.MonthlyPDF(c.UserContext(), c.QueryInt("year"), c.QueryInt("month"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, mimePDF, name, data)
}

// TripsXLSX godoc
// @Summary      Planilla de salidas (XLSX)
// @Description  Salidas con fecha entre from y to, ambos inclusive.
// @Tags         finance
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from  query  string  true  "YYYY-MM-DD"
// @Param        to    query  string  true  "YYYY-MM-DD"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/finance/reports/trips [get]
func (h *FinanceHandler) TripsXLSX(c *fiber.Ctx) error {
	from, err := usecase.ParseDay(c.Query("from"))
	if err != nil {
		return respondError(c, err)
	}
	to, err := usecase.ParseDay(c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	data, name, err := h.uc.TripsXLSX(c.UserContext(), from, to.AddDate(0, 0, 1))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, mimeXLSX, name, data)
}

// TripSheetPDF godoc
// @Summary      Hoja de salida (PDF)
// @Tags         trips
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la salida"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/trips/{id}/sheet [get]
func (h *FinanceHandler) TripSheetPDF(c *fiber.Ctx) error {
	data, name, err := h.uc.TripSheetPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, mimePDF, name, data)
}

// UploadExpense godoc
// @Summary      Subir comprobante de gasto
// @Description  Guarda el archivo y registra el egreso en el libro (categoría de comprobantes).
// @Tags         finance
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        description  formData  string  true   "descripción"
// @Param        amount       formData  number  true   "monto"
// @Param        date         formData  string  false  "YYYY-MM-DD (default: hoy)"
// @Param        file         formData  file    true   "comprobante"
// @Success      201  {object}  dto.ExpenseDocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/finance/expenses [post]
func (h *FinanceHandler) UploadExpense(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo requerido"})
	}
	amount, err := decimal.NewFromString(c.FormValue("amount"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "monto inválido"})
	}
	file, err := fh.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer file.Close()

	out, err := h.uc.UploadExpense(c.UserContext(), dto.UploadExpenseRequest{
		Description: c.FormValue("description"),
		Amount:      amount,
		Date:        c.FormValue("date"),
		Filename:    fh.Filename,
	}, file)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListExpenses godoc
// @Summary      Listar comprobantes de gastos
// @Tags         finance
// @Security     Bearer
// @Produce      json
// @Param        year   query  int  false  "año"
// @Param        month  query  int  false  "mes 1-12 (sin año/mes: todos)"
// @Success      200  {array}   dto.ExpenseDocumentResponse
// @Router       /api/finance/expenses [get]
func (h *FinanceHandler) ListExpenses(c *fiber.Ctx) error {
	out, err := h.uc.ListExpenses(c.UserContext(), c.QueryInt("year"), c.QueryInt("month"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
