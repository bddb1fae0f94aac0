package usecase

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Alquiler-api/internal/application/dto"
	"github.com/jhoicas/Alquiler-api/internal/domain/entity"
	"github.com/jhoicas/Alquiler-api/internal/domain/repository"
)

const topN = 5

// AnalyticsUseCase agregados de solo lectura para el dashboard de staff.
type AnalyticsUseCase struct {
	userRepo    repository.UserRepository
	vehicleRepo repository.VehicleRepository
	rentalRepo  repository.RentalRepository
}

// NewAnalyticsUseCase construye el caso de uso de analítica.
func NewAnalyticsUseCase(
	userRepo repository.UserRepository,
	vehicleRepo repository.VehicleRepository,
	rentalRepo repository.RentalRepository,
) *AnalyticsUseCase {
	return &AnalyticsUseCase{userRepo: userRepo, vehicleRepo: vehicleRepo, rentalRepo: rentalRepo}
}

// Summary calcula los totales, el ranking de vehículos por número de
// alquileres, los ingresos agrupados por fecha de inicio y la distribución de
// usuarios por rol. Los ingresos suman el total de cada alquiler, incluidos
// los que siguen abiertos; los cancelados aportan cero porque su total se
// pone en cero al cancelar.
func (uc *AnalyticsUseCase) Summary() (*dto.AnalyticsSummaryDTO, error) {
	users, err := uc.userRepo.List()
	if err != nil {
		return nil, err
	}
	vehicles, err := uc.vehicleRepo.List()
	if err != nil {
		return nil, err
	}
	rentals, err := uc.rentalRepo.List()
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	countByVehicle := make(map[string]int)
	revenueByDate := make(map[string]decimal.Decimal)
	for _, r := range rentals {
		revenue = revenue.Add(r.Total)
		countByVehicle[r.VehicleID]++
		day := r.StartDate.Format(entity.DateFormat)
		revenueByDate[day] = revenueByDate[day].Add(r.Total)
	}

	byVehicle := make([]dto.VehicleRentCountDTO, 0, len(vehicles))
	for _, v := range vehicles {
		label := strings.TrimSpace(v.Brand + " " + v.Model)
		if label == "" {
			label = v.ID
		}
		byVehicle = append(byVehicle, dto.VehicleRentCountDTO{
			VehicleID: v.ID,
			Label:     label,
			Count:     countByVehicle[v.ID],
		})
	}
	// orden estable: desc por count, y por label para desempatar
	sort.Slice(byVehicle, func(i, j int) bool {
		if byVehicle[i].Count != byVehicle[j].Count {
			return byVehicle[i].Count > byVehicle[j].Count
		}
		return byVehicle[i].Label < byVehicle[j].Label
	})

	revByDate := make([]dto.DateRevenueDTO, 0, len(revenueByDate))
	for day, total := range revenueByDate {
		revByDate = append(revByDate, dto.DateRevenueDTO{Date: day, Total: total.Round(2)})
	}
	sort.Slice(revByDate, func(i, j int) bool { return revByDate[i].Date < revByDate[j].Date })

	roleCounts := make(map[string]int)
	for _, u := range users {
		role := u.Role
		if role == "" {
			role = "unknown"
		}
		roleCounts[role]++
	}
	usersByRole := make([]dto.RoleCountDTO, 0, len(roleCounts))
	for role, n := range roleCounts {
		usersByRole = append(usersByRole, dto.RoleCountDTO{Role: role, Count: n})
	}
	sort.Slice(usersByRole, func(i, j int) bool { return usersByRole[i].Role < usersByRole[j].Role })

	return &dto.AnalyticsSummaryDTO{
		Totals: dto.TotalsDTO{
			Users:    len(users),
			Vehicles: len(vehicles),
			Rentals:  len(rentals),
			Revenue:  revenue.Round(2),
		},
		RentalsByVehicle: byVehicle,
		RevenueByDate:    revByDate,
		UsersByRole:      usersByRole,
		MostRented:       headOf(byVehicle, topN),
		LeastRented:      tailOf(byVehicle, topN),
	}, nil
}

func headOf(s []dto.VehicleRentCountDTO, n int) []dto.VehicleRentCountDTO {
	if len(s) < n {
		n = len(s)
	}
	out := make([]dto.VehicleRentCountDTO, n)
	copy(out, s[:n])
	return out
}

func tailOf(s []dto.VehicleRentCountDTO, n int) []dto.VehicleRentCountDTO {
	if len(s) < n {
		n = len(s)
	}
	out := make([]dto.VehicleRentCountDTO, 0, n)
	for i := len(s) - 1; i >= len(s)-n; i-- {
		out = append(out, s[i])
	}
	return out
}
