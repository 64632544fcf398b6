package dto

// StoreResponse tienda en el localizador público.
// DistanceKm solo viene cuando la consulta trae ?near=lat,lon.
type StoreResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	City       string   `json:"city"`
	Phone      string   `json:"phone,omitempty"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	DistanceKm *float64 `json:"distance_km,omitempty"`
}

// StoreListResponse respuesta de GET /api/stores.
type StoreListResponse struct {
	Items []StoreResponse `json:"items"`
}
