// Package trip implementa el motor de liquidación de salidas: creación, avance y cierre.
package trip

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/domain"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/repository"
)

// ErrCloseInProgress otra instancia está cerrando la misma salida.
var ErrCloseInProgress = fmt.Errorf("cierre en curso: %w", domain.ErrConflict)

// UseCase orquesta el ciclo de vida de una salida. Toda escritura ocurre en una única
// transacción (TxRunner.Run) con bloqueo de fila sobre la salida y los ítems de stock.
type UseCase struct {
	repos   repository.Store
	tx      TxRunner
	locker  Locker
	lockTTL time.Duration
	log     zerolog.Logger
	now     func() time.Time
}

// NewUseCase construye el caso de uso. locker puede ser nil (sin Redis).
func NewUseCase(repos repository.Store, tx TxRunner, locker Locker, lockTTL time.Duration, log zerolog.Logger) *UseCase {
	if locker == nil {
		locker = NopLocker{}
	}
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	return &UseCase{
		repos:   repos,
		tx:      tx,
		locker:  locker,
		lockTTL: lockTTL,
		log:     log,
		now:     time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Create registra una salida OPEN: asigna empleados con el precio vigente como snapshot y
// descuenta del stock el material llevado. El stock puede quedar negativo; eso se informa
// en StockWarnings y no interrumpe la operación.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateTripRequest) (*dto.TripResponse, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	now := uc.now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	if in.VehicleID != nil && *in.VehicleID == "" {
		in.VehicleID = nil
	}

	var (
		resp           *dto.TripResponse
		warnings       []dto.StockWarning
		vehicleWarning string
	)
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		warnings, vehicleWarning = nil, ""
		if in.VehicleID != nil {
			v, err := s.Vehicles.GetByID(ctx, *in.VehicleID)
			if err != nil {
				return err
			}
			if v == nil {
				return fmt.Errorf("vehículo %s: %w", *in.VehicleID, domain.ErrNotFound)
			}
			if v.Status != entity.VehicleStatusOperational {
				vehicleWarning = fmt.Sprintf("el vehículo %s (%s) está en estado %s", v.Name, v.Plate, v.Status)
			}
		}

		price, err := currentPrice(ctx, s)
		if err != nil {
			return err
		}

		trip := &entity.WorkTrip{
			ID:             uuid.New().String(),
			Date:           date,
			Description:    strings.TrimSpace(in.Description),
			Status:         entity.TripStatusOpen,
			VehicleID:      in.VehicleID,
			DestinationLat: in.DestinationLat,
			DestinationLng: in.DestinationLng,
			CreatedAt:      now,
		}
		if err := s.Trips.Create(ctx, trip); err != nil {
			return err
		}

		for _, e := range in.Employees {
			emp, err := s.Employees.GetByID(ctx, e.EmployeeID)
			if err != nil {
				return err
			}
			if emp == nil {
				return fmt.Errorf("empleado %s: %w", e.EmployeeID, domain.ErrNotFound)
			}
			present := true
			if e.IsPresent != nil {
				present = *e.IsPresent
			}
			a := &entity.TripAssignment{
				ID:              uuid.New().String(),
				TripID:          trip.ID,
				EmployeeID:      e.EmployeeID,
				IsPresent:       present,
				MetersDone:      decimal.Zero,
				HistoricalPrice: price,
				TotalEarned:     decimal.Zero,
			}
			if err := s.Trips.CreateAssignment(ctx, a); err != nil {
				return err
			}
		}

		ids := make([]string, 0, len(in.Materials))
		for _, m := range in.Materials {
			ids = append(ids, m.StockItemID)
		}
		items, err := lockStockItems(ctx, s, ids)
		if err != nil {
			return err
		}
		for _, m := range in.Materials {
			item := items[m.StockItemID]
			item.ApplyDelta(m.QuantityOut.Neg())
			if err := s.StockItems.UpdateQuantity(ctx, item); err != nil {
				return err
			}
			if item.Quantity.IsNegative() {
				warnings = append(warnings, dto.StockWarning{StockItemID: item.ID, Name: item.Name, Quantity: item.Quantity})
			}
			tm := &entity.TripMaterial{
				ID:               uuid.New().String(),
				TripID:           trip.ID,
				StockItemID:      m.StockItemID,
				QuantityOut:      m.QuantityOut,
				QuantityReturned: decimal.Zero,
				QuantityUsed:     decimal.Zero,
			}
			if err := s.Trips.CreateMaterial(ctx, tm); err != nil {
				return err
			}
		}

		resp, err = loadTrip(ctx, s, trip)
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, w := range warnings {
		uc.log.Warn().
			Str("trip_id", resp.ID).
			Str("stock_item_id", w.StockItemID).
			Str("quantity", w.Quantity.String()).
			Err(domain.ErrInsufficientStock).
			Msg("material despachado con stock insuficiente")
	}
	if vehicleWarning != "" {
		uc.log.Warn().Str("trip_id", resp.ID).Msg(vehicleWarning)
	}
	resp.StockWarnings = warnings
	resp.VehicleWarning = vehicleWarning
	return resp, nil
}

// UpdateProgress sobrescribe los metros de las asignaciones indicadas y recalcula la ganancia
// estimada con el precio vigente. El precio histórico no cambia. Es idempotente.
func (uc *UseCase) UpdateProgress(ctx context.Context, tripID string, in dto.UpdateProgressRequest) (*dto.TripResponse, error) {
	if err := validateMeters(in.Employees); err != nil {
		return nil, err
	}
	var resp *dto.TripResponse
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		trip, err := openTripForUpdate(ctx, s, tripID)
		if err != nil {
			return err
		}
		price, err := currentPrice(ctx, s)
		if err != nil {
			return err
		}
		assignments, err := assignmentsByID(ctx, s, tripID)
		if err != nil {
			return err
		}
		for _, u := range in.Employees {
			a, ok := assignments[u.ID]
			if !ok {
				return fmt.Errorf("asignación %s: %w", u.ID, domain.ErrNotFound)
			}
			a.Estimate(u.MetersDone, price)
			if err := s.Trips.UpdateAssignment(ctx, a); err != nil {
				return err
			}
		}
		resp, err = loadTrip(ctx, s, trip)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Close liquida la salida con el precio vigente al cierre y devuelve al stock lo no usado.
// Todas las asignaciones quedan liquidadas: las no informadas conservan sus metros actuales.
// Los materiales no informados se consideran usados por completo. Un segundo cierre falla
// con domain.ErrConflict.
func (uc *UseCase) Close(ctx context.Context, tripID string, in dto.CloseTripRequest) (*dto.TripResponse, error) {
	if err := validateMeters(in.Employees); err != nil {
		return nil, err
	}
	if err := validateReturns(in.Materials); err != nil {
		return nil, err
	}

	token, locked, err := uc.locker.AcquireTripLock(ctx, tripID, uc.lockTTL)
	switch {
	case err != nil:
		// el bloqueo de fila en la transacción sigue garantizando exclusión
		uc.log.Warn().Err(err).Str("trip_id", tripID).Msg("no se pudo tomar el lock de cierre")
	case !locked:
		return nil, ErrCloseInProgress
	default:
		defer func() {
			if err := uc.locker.ReleaseTripLock(context.WithoutCancel(ctx), tripID, token); err != nil {
				uc.log.Warn().Err(err).Str("trip_id", tripID).Msg("no se pudo liberar el lock de cierre")
			}
		}()
	}

	var (
		resp  *dto.TripResponse
		price decimal.Decimal
	)
	err = uc.tx.Run(ctx, func(s repository.Store) error {
		trip, err := openTripForUpdate(ctx, s, tripID)
		if err != nil {
			return err
		}
		if price, err = currentPrice(ctx, s); err != nil {
			return err
		}
		closedAt := uc.now()

		assignments, err := s.Trips.ListAssignments(ctx, tripID)
		if err != nil {
			return err
		}
		final := make(map[string]decimal.Decimal, len(in.Employees))
		for _, u := range in.Employees {
			final[u.ID] = u.MetersDone
		}
		for _, a := range assignments {
			meters, ok := final[a.ID]
			if !ok {
				meters = a.MetersDone
			}
			delete(final, a.ID)
			a.Settle(meters, price, closedAt)
			if err := s.Trips.UpdateAssignment(ctx, a); err != nil {
				return err
			}
		}
		for id := range final {
			return fmt.Errorf("asignación %s: %w", id, domain.ErrNotFound)
		}

		materials, err := s.Trips.ListMaterials(ctx, tripID)
		if err != nil {
			return err
		}
		returned := make(map[string]decimal.Decimal, len(in.Materials))
		for _, r := range in.Materials {
			returned[r.ID] = r.QuantityReturned
		}
		byID := make(map[string]*entity.TripMaterial, len(materials))
		var restock []string
		for _, m := range materials {
			byID[m.ID] = m
			qty := returned[m.ID]
			delete(returned, m.ID)
			if err := m.RegisterReturn(qty); err != nil {
				return fmt.Errorf("material %s: devuelto %s supera lo llevado %s: %w",
					m.ID, qty.String(), m.QuantityOut.String(), err)
			}
			if err := s.Trips.UpdateMaterial(ctx, m); err != nil {
				return err
			}
			if m.QuantityReturned.IsPositive() {
				restock = append(restock, m.ID)
			}
		}
		for id := range returned {
			return fmt.Errorf("material %s: %w", id, domain.ErrNotFound)
		}

		stockIDs := make([]string, 0, len(restock))
		for _, id := range restock {
			stockIDs = append(stockIDs, byID[id].StockItemID)
		}
		items, err := lockStockItems(ctx, s, stockIDs)
		if err != nil {
			return err
		}
		for _, id := range restock {
			m := byID[id]
			item := items[m.StockItemID]
			item.ApplyDelta(m.QuantityReturned)
			if err := s.StockItems.UpdateQuantity(ctx, item); err != nil {
				return err
			}
		}

		changed, err := s.Trips.MarkClosed(ctx, tripID, closedAt)
		if err != nil {
			return err
		}
		if !changed {
			return fmt.Errorf("salida %s ya cerrada: %w", tripID, domain.ErrConflict)
		}
		trip.Status = entity.TripStatusClosed
		trip.ClosedAt = &closedAt

		resp, err = loadTrip(ctx, s, trip)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("trip_id", tripID).Str("price", price.String()).Msg("salida cerrada")
	return resp, nil
}

// Get devuelve la salida con asignaciones y materiales.
func (uc *UseCase) Get(ctx context.Context, tripID string) (*dto.TripResponse, error) {
	trip, err := uc.repos.Trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, fmt.Errorf("salida %s: %w", tripID, domain.ErrNotFound)
	}
	return loadTrip(ctx, uc.repos, trip)
}

// List devuelve las salidas por fecha descendente, sin hijos.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) (*dto.TripListResponse, error) {
	page.DefaultPage()
	trips, err := uc.repos.Trips.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TripResponse, 0, len(trips))
	for _, t := range trips {
		items = append(items, *toTripResponse(t))
	}
	return &dto.TripListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

func validateCreate(in dto.CreateTripRequest) error {
	if strings.TrimSpace(in.Description) == "" {
		return fmt.Errorf("descripción requerida: %w", domain.ErrInvalidInput)
	}
	seen := make(map[string]bool, len(in.Employees))
	for _, e := range in.Employees {
		if e.EmployeeID == "" || seen[e.EmployeeID] {
			return fmt.Errorf("empleado vacío o repetido: %w", domain.ErrInvalidInput)
		}
		seen[e.EmployeeID] = true
	}
	items := make(map[string]bool, len(in.Materials))
	for _, m := range in.Materials {
		if m.StockItemID == "" || items[m.StockItemID] {
			return fmt.Errorf("material vacío o repetido: %w", domain.ErrInvalidInput)
		}
		if !m.QuantityOut.IsPositive() {
			return fmt.Errorf("quantity_out debe ser positiva: %w", domain.ErrInvalidInput)
		}
		items[m.StockItemID] = true
	}
	return nil
}

func validateMeters(rows []dto.AssignmentMeters) error {
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		if r.ID == "" || seen[r.ID] {
			return fmt.Errorf("asignación vacía o repetida: %w", domain.ErrInvalidInput)
		}
		if r.MetersDone.IsNegative() {
			return fmt.Errorf("metros negativos: %w", domain.ErrInvalidInput)
		}
		seen[r.ID] = true
	}
	return nil
}

func validateReturns(rows []dto.MaterialReturn) error {
	seen := make(map[string]bool, len(rows))
	for _, r := range rows {
		if r.ID == "" || seen[r.ID] {
			return fmt.Errorf("material vacío o repetido: %w", domain.ErrInvalidInput)
		}
		if r.QuantityReturned.IsNegative() {
			return fmt.Errorf("devolución negativa: %w", domain.ErrInvalidInput)
		}
		seen[r.ID] = true
	}
	return nil
}

// openTripForUpdate bloquea la salida y exige que siga abierta.
func openTripForUpdate(ctx context.Context, s repository.Store, tripID string) (*entity.WorkTrip, error) {
	trip, err := s.Trips.GetForUpdate(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, fmt.Errorf("salida %s: %w", tripID, domain.ErrNotFound)
	}
	if trip.IsClosed() {
		return nil, fmt.Errorf("salida %s ya cerrada: %w", tripID, domain.ErrConflict)
	}
	return trip, nil
}

// currentPrice lee el precio del metro una sola vez por operación.
func currentPrice(ctx context.Context, s repository.Store) (decimal.Decimal, error) {
	cfg, err := s.Config.Get(ctx, entity.KeyMeterPrice)
	if err != nil {
		return decimal.Zero, err
	}
	return entity.PriceFrom(cfg), nil
}

// lockStockItems bloquea los ítems en orden de id para evitar deadlocks entre salidas.
func lockStockItems(ctx context.Context, s repository.Store, ids []string) (map[string]*entity.StockItem, error) {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	items := make(map[string]*entity.StockItem, len(sorted))
	for _, id := range sorted {
		if _, ok := items[id]; ok {
			continue
		}
		item, err := s.StockItems.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("ítem de stock %s: %w", id, domain.ErrNotFound)
		}
		items[id] = item
	}
	return items, nil
}

func assignmentsByID(ctx context.Context, s repository.Store, tripID string) (map[string]*entity.TripAssignment, error) {
	list, err := s.Trips.ListAssignments(ctx, tripID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*entity.TripAssignment, len(list))
	for _, a := range list {
		out[a.ID] = a
	}
	return out, nil
}

func loadTrip(ctx context.Context, s repository.Store, trip *entity.WorkTrip) (*dto.TripResponse, error) {
	var err error
	if trip.Assignments, err = s.Trips.ListAssignments(ctx, trip.ID); err != nil {
		return nil, err
	}
	if trip.Materials, err = s.Trips.ListMaterials(ctx, trip.ID); err != nil {
		return nil, err
	}
	return toTripResponse(trip), nil
}
