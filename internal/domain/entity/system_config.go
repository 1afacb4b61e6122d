package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// KeyMeterPrice clave de configuración del precio global del metro.
const KeyMeterPrice = "meter_price"

// SystemConfig es un valor de configuración global (clave/valor).
type SystemConfig struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// PriceFrom interpreta un valor de configuración como precio.
// Sin configuración o con un valor no numérico el precio es 0.
func PriceFrom(cfg *SystemConfig) decimal.Decimal {
	if cfg == nil {
		return decimal.Zero
	}
	v := strings.TrimSpace(cfg.Value)
	if v == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}
