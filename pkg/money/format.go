// Package money formatea importes y cantidades con la convención local (es-AR)
// para reportes PDF y planillas.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("es-AR"))

// Format devuelve el importe con signo pesos y dos decimales, ej. "$ 1.234,50".
func Format(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("$ %.2f", f)
}

// Quantity devuelve una cantidad con dos decimales y separador de miles local.
func Quantity(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return printer.Sprintf("%.2f", f)
}
