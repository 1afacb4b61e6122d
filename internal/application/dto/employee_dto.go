package dto

import "time"

// CreateGroupRequest body para POST /api/employee-groups.
type CreateGroupRequest struct {
	Name string `json:"name"`
}

// GroupResponse cuadrilla.
type GroupResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateEmployeeRequest body para POST /api/employees.
type CreateEmployeeRequest struct {
	Name    string  `json:"name"`
	GroupID *string `json:"group_id,omitempty"`
}

// EmployeeResponse empleado.
type EmployeeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	GroupID   *string   `json:"group_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AttendanceEntry presencia de un empleado en el día.
type AttendanceEntry struct {
	EmployeeID string `json:"employee_id"`
	IsPresent  bool   `json:"is_present"`
}

// AttendanceRequest body para POST /api/attendance (fecha YYYY-MM-DD).
type AttendanceRequest struct {
	Date    string            `json:"date"`
	Records []AttendanceEntry `json:"records"`
}

// AttendanceResponse asistencia de un día.
type AttendanceResponse struct {
	Date    string            `json:"date"`
	Records []AttendanceEntry `json:"records"`
}
