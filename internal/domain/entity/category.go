package entity

// Categorías que la API crea automáticamente al registrar efectos financieros.
const (
	CategoryPayroll   = "Sueldos / Jornales"
	CategoryAdvances  = "Adelantos / Vales"
	CategoryMaterials = "Insumos / Materiales"
	CategorySales     = "Venta de Productos"
	CategoryReceipts  = "Gastos con Comprobante"
)

// Category clasifica los movimientos contables (nombre único).
type Category struct {
	ID   string
	Name string
	Type string // INCOME | EXPENSE
}

// DefaultCategories se siembran al iniciar si la tabla está vacía.
var DefaultCategories = []Category{
	{Name: "Honorarios / Servicios", Type: TxTypeIncome},
	{Name: CategorySales, Type: TxTypeIncome},
	{Name: "Otros Ingresos", Type: TxTypeIncome},
	{Name: "Monotributo / Impuestos", Type: TxTypeExpense},
	{Name: CategoryMaterials, Type: TxTypeExpense},
	{Name: CategoryPayroll, Type: TxTypeExpense},
	{Name: CategoryAdvances, Type: TxTypeExpense},
	{Name: "Combustible / Flota", Type: TxTypeExpense},
	{Name: CategoryReceipts, Type: TxTypeExpense},
}
