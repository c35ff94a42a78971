package stadiums

import (
	"time"

	"github.com/BHAVY1503/eventease-client/internal/catalog"
)

// Point is a geographic coordinate reported by the map collaborator.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Stadium is a venue an organizer can attach events to, with its zone layout
// (zone names, seat labels and per-seat prices reused by the seat map).
type Stadium struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Address   string         `json:"address"`
	StateID   string         `json:"state_id"`
	CityID    string         `json:"city_id"`
	Location  Point          `json:"location"`
	Zones     []catalog.Zone `json:"zones,omitempty"`
	OwnerID   string         `json:"owner_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// CreateStadiumRequest is the create payload, validated client-side before
// submission.
type CreateStadiumRequest struct {
	Name    string         `json:"name" validate:"required,min=3,max=255"`
	Address string         `json:"address" validate:"required,min=3,max=500"`
	StateID string         `json:"state_id" validate:"required"`
	CityID  string         `json:"city_id" validate:"required"`
	Lat     float64        `json:"lat" validate:"min=-90,max=90"`
	Lng     float64        `json:"lng" validate:"min=-180,max=180"`
	Zones   []catalog.Zone `json:"zones,omitempty"`
}

// UpdateStadiumRequest carries only the fields being changed.
type UpdateStadiumRequest struct {
	Name    *string        `json:"name,omitempty" validate:"omitempty,min=3,max=255"`
	Address *string        `json:"address,omitempty" validate:"omitempty,min=3,max=500"`
	Lat     *float64       `json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	Lng     *float64       `json:"lng,omitempty" validate:"omitempty,min=-180,max=180"`
	Zones   []catalog.Zone `json:"zones,omitempty"`
}
