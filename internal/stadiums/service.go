package stadiums

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/BHAVY1503/eventease-client/internal/api"
	"github.com/BHAVY1503/eventease-client/pkg/logger"
)

var validate = validator.New()

// PointPicker is the injected map/geocoding capability: given an initial
// coordinate it lets the user pick or drag a point and reports the result.
type PointPicker interface {
	Pick(ctx context.Context, initial Point) (Point, error)
}

// Service exposes the stadium management operations the organizer dashboard
// uses.
type Service struct {
	api    *api.Client
	picker PointPicker
	log    *logger.Logger
}

// NewService creates a stadium Service. The picker may be nil when no map
// collaborator is available; coordinates then stay as entered.
func NewService(apiClient *api.Client, picker PointPicker, log *logger.Logger) *Service {
	return &Service{
		api:    apiClient,
		picker: picker,
		log:    log,
	}
}

// List returns all stadiums visible to the current session.
func (s *Service) List(ctx context.Context) ([]Stadium, error) {
	var stadiums []Stadium
	if err := s.api.Get(ctx, "/stadiums", &stadiums); err != nil {
		return nil, fmt.Errorf("list stadiums: %w", err)
	}
	return stadiums, nil
}

// Create validates and submits a new stadium. When a map collaborator is
// present the location is confirmed through it first.
func (s *Service) Create(ctx context.Context, req CreateStadiumRequest) (*Stadium, error) {
	if s.picker != nil {
		point, err := s.picker.Pick(ctx, Point{Lat: req.Lat, Lng: req.Lng})
		if err != nil {
			return nil, fmt.Errorf("pick location: %w", err)
		}
		req.Lat, req.Lng = point.Lat, point.Lng
	}

	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid stadium: %w", err)
	}

	var stadium Stadium
	if err := s.api.Post(ctx, "/stadiums", req, &stadium); err != nil {
		return nil, fmt.Errorf("create stadium: %w", err)
	}

	s.log.InfoWithContext(ctx, "Stadium Created", map[string]interface{}{
		"stadium_id": stadium.ID,
		"name":       stadium.Name,
	})
	return &stadium, nil
}

// Update submits a partial stadium update.
func (s *Service) Update(ctx context.Context, stadiumID string, req UpdateStadiumRequest) (*Stadium, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("invalid stadium update: %w", err)
	}

	var stadium Stadium
	if err := s.api.Put(ctx, "/stadiums/"+stadiumID, req, &stadium); err != nil {
		return nil, fmt.Errorf("update stadium %s: %w", stadiumID, err)
	}
	return &stadium, nil
}
