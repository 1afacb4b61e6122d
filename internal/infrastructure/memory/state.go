package memory

import "github.com/jhoicas/Cuadrilla-api/internal/domain/entity"

// state guarda valores (no punteros) para que clone aísle cada transacción.
type state struct {
	trips        *table[entity.WorkTrip]
	assignments  *table[entity.TripAssignment]
	materials    *table[entity.TripMaterial]
	stock        *table[entity.StockItem]
	usages       *table[entity.MaterialUsage]
	employees    *table[entity.Employee]
	groups       *table[entity.EmployeeGroup]
	advances     *table[entity.Advance]
	payroll      *table[entity.PayrollRecord]
	transactions *table[entity.Transaction]
	expenses     *table[entity.ExpenseDocument]
	categories   *table[entity.Category]
	config       *table[entity.SystemConfig]
	vehicles     *table[entity.Vehicle]
	attendance   *table[entity.DailyAttendance]
}

func newState() *state {
	return &state{
		trips:        newTable[entity.WorkTrip](),
		assignments:  newTable[entity.TripAssignment](),
		materials:    newTable[entity.TripMaterial](),
		stock:        newTable[entity.StockItem](),
		usages:       newTable[entity.MaterialUsage](),
		employees:    newTable[entity.Employee](),
		groups:       newTable[entity.EmployeeGroup](),
		advances:     newTable[entity.Advance](),
		payroll:      newTable[entity.PayrollRecord](),
		transactions: newTable[entity.Transaction](),
		expenses:     newTable[entity.ExpenseDocument](),
		categories:   newTable[entity.Category](),
		config:       newTable[entity.SystemConfig](),
		vehicles:     newTable[entity.Vehicle](),
		attendance:   newTable[entity.DailyAttendance](),
	}
}

func (s *state) clone() *state {
	return &state{
		trips:        s.trips.clone(),
		assignments:  s.assignments.clone(),
		materials:    s.materials.clone(),
		stock:        s.stock.clone(),
		usages:       s.usages.clone(),
		employees:    s.employees.clone(),
		groups:       s.groups.clone(),
		advances:     s.advances.clone(),
		payroll:      s.payroll.clone(),
		transactions: s.transactions.clone(),
		expenses:     s.expenses.clone(),
		categories:   s.categories.clone(),
		config:       s.config.clone(),
		vehicles:     s.vehicles.clone(),
		attendance:   s.attendance.clone(),
	}
}

// deleteEmployee borra el empleado y sus dependientes. Falla si participó de alguna salida.
func (s *state) deleteEmployee(id string) error {
	for _, a := range s.assignments.all() {
		if a.EmployeeID == id {
			return errEmployeeInTrips
		}
	}
	for _, a := range s.advances.all() {
		if a.EmployeeID == id {
			s.advances.del(a.ID)
		}
	}
	for _, r := range s.payroll.all() {
		if r.EmployeeID == id {
			s.payroll.del(r.ID)
		}
	}
	for _, u := range s.usages.all() {
		if u.EmployeeID != nil && *u.EmployeeID == id {
			s.usages.del(u.ID)
		}
	}
	for _, a := range s.attendance.all() {
		if a.EmployeeID == id {
			s.attendance.del(a.ID)
		}
	}
	s.employees.del(id)
	return nil
}
