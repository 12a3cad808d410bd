package inventory

import (
	"context"
	"fmt"

	"github.com/aerostock/aerostock/internal/storage/upstream"
)

const (
	airplanePath  = "/airplane"
	componentPath = "/component"
	facilityPath  = "/facility"
)

// Repository reads and writes records through the source REST API.
type Repository struct {
	client *upstream.Client
}

func NewRepository(client *upstream.Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) ListAirplanes(ctx context.Context) ([]Record, error) {
	return r.list(ctx, airplanePath)
}

func (r *Repository) ListComponents(ctx context.Context) ([]Record, error) {
	return r.list(ctx, componentPath)
}

func (r *Repository) ListFacilities(ctx context.Context) ([]Facility, error) {
	var facilities []Facility
	if err := r.client.GetJSON(ctx, facilityPath, &facilities); err != nil {
		return nil, err
	}
	if facilities == nil {
		facilities = []Facility{}
	}
	return facilities, nil
}

func (r *Repository) list(ctx context.Context, path string) ([]Record, error) {
	var records []Record
	if err := r.client.GetJSON(ctx, path, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (r *Repository) Create(ctx context.Context, endpoint string, data map[string]interface{}) error {
	if _, err := r.client.PostJSON(ctx, endpoint, data); err != nil {
		return fmt.Errorf("failed to create record: %w", err)
	}
	return nil
}
