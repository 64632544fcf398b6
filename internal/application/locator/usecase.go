// Package locator contiene el caso de uso del localizador público de tiendas.
package locator

import (
	"sort"

	"github.com/jhoicas/joyeria-pos/internal/application/dto"
	"github.com/jhoicas/joyeria-pos/internal/domain/geo"
	"github.com/jhoicas/joyeria-pos/internal/domain/repository"
)

// StoreLocatorUseCase lista las tiendas activas para el sitio público.
// Es el único caso de uso sin autenticación.
type StoreLocatorUseCase struct {
	locationRepo repository.LocationRepository
}

// NewStoreLocatorUseCase construye el caso de uso.
func NewStoreLocatorUseCase(locationRepo repository.LocationRepository) *StoreLocatorUseCase {
	return &StoreLocatorUseCase{locationRepo: locationRepo}
}

// ListStores devuelve las tiendas activas, opcionalmente filtradas por ciudad.
// Con coordenadas del visitante (lat, lon) cada tienda sale con su distancia
// en kilómetros y la lista ordenada de la más cercana a la más lejana.
func (uc *StoreLocatorUseCase) ListStores(city string, lat, lon *float64) (*dto.StoreListResponse, error) {
	stores, err := uc.locationRepo.ListActive(city)
	if err != nil {
		return nil, err
	}

	items := make([]dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		item := dto.StoreResponse{
			ID:        s.ID,
			Name:      s.Name,
			Address:   s.Address,
			City:      s.City,
			Phone:     s.Phone,
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
		}
		if lat != nil && lon != nil {
			d := geo.DistanceKm(*lat, *lon, s.Latitude, s.Longitude)
			item.DistanceKm = &d
		}
		items = append(items, item)
	}

	if lat != nil && lon != nil {
		sort.SliceStable(items, func(i, j int) bool {
			return *items[i].DistanceKm < *items[j].DistanceKm
		})
	}
	return &dto.StoreListResponse{Items: items}, nil
}
