package repository

// Store agrupa los repositorios atados a una misma conexión o transacción.
type Store struct {
	Trips        TripRepository
	StockItems   StockItemRepository
	Usages       MaterialUsageRepository
	Employees    EmployeeRepository
	Groups       EmployeeGroupRepository
	Advances     AdvanceRepository
	Payroll      PayrollRepository
	Transactions TransactionRepository
	Expenses     ExpenseDocumentRepository
	Categories   CategoryRepository
	Config       ConfigRepository
	Vehicles     VehicleRepository
	Attendance   AttendanceRepository
}
