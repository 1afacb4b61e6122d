// Package docs registra la especificación OpenAPI que sirve el Swagger UI en /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "Bearer": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/api/auth/login": {"post": {"tags": ["auth"], "summary": "Iniciar sesión", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/trips": {
            "get": {"tags": ["trips"], "summary": "Listar salidas", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["trips"], "summary": "Crear salida de trabajo", "security": [{"Bearer": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}}}
        },
        "/api/trips/{id}": {"get": {"tags": ["trips"], "summary": "Obtener salida", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/trips/{id}/progress": {"put": {"tags": ["trips"], "summary": "Actualizar avance", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/api/trips/{id}/close": {"post": {"tags": ["trips"], "summary": "Cerrar salida", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/api/trips/{id}/sheet": {"get": {"tags": ["trips"], "summary": "Hoja de salida (PDF)", "security": [{"Bearer": []}], "produces": ["application/pdf"], "responses": {"200": {"description": "OK"}}}},
        "/api/calendar/events": {"get": {"tags": ["trips"], "summary": "Salidas cerradas del mes como eventos de calendario", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/employees": {
            "get": {"tags": ["employees"], "summary": "Listar empleados", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["employees"], "summary": "Crear empleado", "security": [{"Bearer": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/api/employees/{id}": {"delete": {"tags": ["employees"], "summary": "Borrar empleado", "security": [{"Bearer": []}], "responses": {"204": {"description": "No Content"}, "409": {"description": "Conflict"}}}},
        "/api/employees/{id}/payroll": {"post": {"tags": ["payroll"], "summary": "Registrar jornal por producción", "security": [{"Bearer": []}], "responses": {"201": {"description": "Created"}}}},
        "/api/employees/{id}/advances": {"post": {"tags": ["payroll"], "summary": "Registrar adelanto", "security": [{"Bearer": []}], "responses": {"201": {"description": "Created"}}}},
        "/api/employees/{id}/history": {"get": {"tags": ["payroll"], "summary": "Historial del empleado", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/groups": {
            "get": {"tags": ["employees"], "summary": "Listar grupos", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["employees"], "summary": "Crear grupo", "security": [{"Bearer": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/api/groups/{id}": {"delete": {"tags": ["employees"], "summary": "Borrar grupo", "security": [{"Bearer": []}], "responses": {"204": {"description": "No Content"}}}},
        "/api/stock": {
            "get": {"tags": ["stock"], "summary": "Listar stock", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["stock"], "summary": "Registrar compra de material", "security": [{"Bearer": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/api/stock/replenishment-list": {"get": {"tags": ["stock"], "summary": "Lista de reposición", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/stock/{id}/use": {"post": {"tags": ["stock"], "summary": "Retirar material", "security": [{"Bearer": []}], "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}},
        "/api/stock/{id}/sell": {"post": {"tags": ["stock"], "summary": "Vender material", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/api/config": {"put": {"tags": ["config"], "summary": "Guardar valor de configuración", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/config/{key}": {"get": {"tags": ["config"], "summary": "Obtener valor de configuración", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/vehicles": {
            "get": {"tags": ["vehicles"], "summary": "Listar flota", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["vehicles"], "summary": "Alta de vehículo", "security": [{"Bearer": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/api/vehicles/{id}": {"put": {"tags": ["vehicles"], "summary": "Modificar vehículo", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/vehicles/{id}/service": {"post": {"tags": ["vehicles"], "summary": "Registrar service", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/attendance": {"post": {"tags": ["attendance"], "summary": "Guardar asistencia del día", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/attendance/{date}": {"get": {"tags": ["attendance"], "summary": "Asistencia de un día", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/finance/transactions": {
            "get": {"tags": ["finance"], "summary": "Listar movimientos", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["finance"], "summary": "Registrar movimiento", "security": [{"Bearer": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/api/finance/transactions/{id}": {"delete": {"tags": ["finance"], "summary": "Borrar movimiento", "security": [{"Bearer": []}], "responses": {"204": {"description": "No Content"}}}},
        "/api/finance/categories": {
            "get": {"tags": ["finance"], "summary": "Listar categorías", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["finance"], "summary": "Crear categoría", "security": [{"Bearer": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/api/finance/expenses": {
            "get": {"tags": ["finance"], "summary": "Listar comprobantes de gastos", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["finance"], "summary": "Subir comprobante de gasto", "security": [{"Bearer": []}], "consumes": ["multipart/form-data"], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/finance/summary": {"get": {"tags": ["finance"], "summary": "Resumen mensual", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/finance/reports/accounting": {"get": {"tags": ["finance"], "summary": "Reporte contable (PDF)", "security": [{"Bearer": []}], "produces": ["application/pdf"], "responses": {"200": {"description": "OK"}}}},
        "/api/finance/reports/monthly": {"get": {"tags": ["finance"], "summary": "Reporte mensual (PDF)", "security": [{"Bearer": []}], "produces": ["application/pdf"], "responses": {"200": {"description": "OK"}}}},
        "/api/finance/reports/trips": {"get": {"tags": ["finance"], "summary": "Planilla de salidas (XLSX)", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}},
        "/api/dashboard/summary": {"get": {"tags": ["dashboard"], "summary": "Resumen del mes en curso", "security": [{"Bearer": []}], "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo metadatos de la API.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Cuadrilla API",
	Description:      "Salidas de trabajo, jornales por producción, stock de materiales, flota y contabilidad.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
