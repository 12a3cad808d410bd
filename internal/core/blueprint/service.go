package blueprint

import (
	"errors"
	"sort"
	"strings"
)

var ErrNotFound = errors.New("blueprint not found")

const (
	AirplaneID  = "airplane"
	ComponentID = "component"
)

var productionStages = []interface{}{"Unstarted", "In-Progress", "Finished"}

// Service serves the built-in record blueprints. Ids are the lower-case record type.
type Service struct {
	blueprints map[string]*Blueprint
}

func NewService() *Service {
	s := &Service{blueprints: make(map[string]*Blueprint)}
	for _, bp := range []*Blueprint{airplane(), component()} {
		s.blueprints[bp.ID] = bp
	}
	return s
}

func (s *Service) Get(id string) (*Blueprint, error) {
	bp, ok := s.blueprints[strings.ToLower(id)]
	if !ok {
		return nil, ErrNotFound
	}
	return bp, nil
}

func (s *Service) List() *ListBlueprintsResponse {
	list := make([]*Blueprint, 0, len(s.blueprints))
	for _, bp := range s.blueprints {
		list = append(list, bp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	return &ListBlueprintsResponse{
		Blueprints: list,
		Total:      len(list),
	}
}

var requiredFields = []string{"name", "cost", "production_stage", "facility_id"}

// recordFields are shared by airplanes and components.
var recordFields = Fields{
	"name":             {Type: TypeString, Title: "Product name", MinLength: minLength(1)},
	"description":      {Type: TypeString},
	"city":             {Type: TypeString},
	"state":            {Type: TypeString},
	"production_stage": {Type: TypeString, Enum: productionStages},
	"cost":             {Type: TypeNumber, Minimum: atLeast(0)},
	"facility_id":      {Type: TypeInteger},
}

func airplane() *Blueprint {
	fields := recordFields.With(Fields{
		"date_started":     {Type: TypeString, Format: "date"},
		"date_finished":    {Type: TypeString, Format: "date"},
		"seating_capacity": {Type: TypeInteger, Minimum: atLeast(0)},
		"size":             {Type: TypeString},
		"has_first_class":  {Type: TypeBoolean},
	})

	return &Blueprint{
		ID:          AirplaneID,
		Title:       "Airplane",
		Description: "A complete aircraft built at a facility",
		Endpoint:    "/airplane",
		Schema:      ObjectSchema("Airplane", fields, requiredFields...),
	}
}

func component() *Blueprint {
	fields := recordFields.With(Fields{
		"component_type": {Type: TypeString},
	})

	return &Blueprint{
		ID:          ComponentID,
		Title:       "Component",
		Description: "A part supplied to or built at a facility",
		Endpoint:    "/component",
		Schema:      ObjectSchema("Component", fields, requiredFields...),
	}
}
