package trip

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
)

// CalendarEvents devuelve las salidas cerradas del mes como eventos de día completo.
// Con year o month en cero usa el mes en curso.
func (uc *UseCase) CalendarEvents(ctx context.Context, year, month int) ([]dto.CalendarEventDTO, error) {
	now := uc.now()
	if year == 0 || month == 0 {
		year, month = now.Year(), int(now.Month())
	}
	if month < 1 || month > 12 || year < 1 {
		return nil, fmt.Errorf("período %d/%d: %w", month, year, domain.ErrInvalidInput)
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, now.Location())
	trips, err := uc.repos.Trips.ListBetween(ctx, from, from.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	events := make([]dto.CalendarEventDTO, 0, len(trips))
	for _, t := range trips {
		if t.Status != entity.TripStatusClosed {
			continue
		}
		assignments, err := uc.repos.Trips.ListAssignments(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		materials, err := uc.repos.Trips.ListMaterials(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		meters := decimal.Zero
		for _, a := range assignments {
			meters = meters.Add(a.MetersDone)
		}
		day := t.Date.Format(time.DateOnly)
		events = append(events, dto.CalendarEventDTO{
			ID:     t.ID,
			Title:  t.Description,
			Start:  day,
			End:    day,
			AllDay: true,
			ExtendedProps: dto.CalendarEventProps{
				Meters:         meters,
				DriverCount:    len(assignments),
				MaterialsCount: len(materials),
			},
		})
	}
	return events, nil
}
