package trip

import (
	"github.com/jhoicas/Cuadrilla-api/internal/application/dto"
	"github.com/jhoicas/Cuadrilla-api/internal/domain/entity"
)

func toTripResponse(t *entity.WorkTrip) *dto.TripResponse {
	resp := &dto.TripResponse{
		ID:             t.ID,
		Date:           t.Date,
		Description:    t.Description,
		Status:         t.Status,
		VehicleID:      t.VehicleID,
		DestinationLat: t.DestinationLat,
		DestinationLng: t.DestinationLng,
		ClosedAt:       t.ClosedAt,
		Employees:      make([]dto.TripAssignmentResponse, 0, len(t.Assignments)),
		Materials:      make([]dto.TripMaterialResponse, 0, len(t.Materials)),
	}
	for _, a := range t.Assignments {
		resp.Employees = append(resp.Employees, dto.TripAssignmentResponse{
			ID:              a.ID,
			EmployeeID:      a.EmployeeID,
			IsPresent:       a.IsPresent,
			MetersDone:      a.MetersDone,
			HistoricalPrice: a.HistoricalPrice,
			TotalEarned:     a.TotalEarned,
			Settled:         a.IsSettled(),
		})
	}
	for _, m := range t.Materials {
		resp.Materials = append(resp.Materials, dto.TripMaterialResponse{
			ID:               m.ID,
			StockItemID:      m.StockItemID,
			QuantityOut:      m.QuantityOut,
			QuantityReturned: m.QuantityReturned,
			QuantityUsed:     m.QuantityUsed,
		})
	}
	return resp
}
