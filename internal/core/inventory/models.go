package inventory

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeAirplane  Type = "Airplane"
	TypeComponent Type = "Component"
)

// AllTypes in merge order.
var AllTypes = []Type{TypeAirplane, TypeComponent}

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeAirplane, TypeComponent:
		return true
	}
	return false
}

// ParseType accepts the type name in any case, e.g. "airplane" from a URL path.
func ParseType(s string) (Type, error) {
	for _, t := range AllTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

type Stage string

const (
	StageUnstarted  Stage = "Unstarted"
	StageInProgress Stage = "In-Progress"
	StageFinished   Stage = "Finished"
)

// Key is the identity of a record. Ids are only unique within a type.
type Key struct {
	Type Type  `json:"type"`
	ID   int64 `json:"id"`
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%d", k.Type, k.ID)
}

// Cost is the wire cost of a record. Only JSON numbers are numeric; anything
// else is kept as text and fails every numeric comparison.
type Cost struct {
	value   float64
	raw     string
	numeric bool
}

func NewCost(v float64) Cost {
	return Cost{value: v, numeric: true}
}

// RawCost builds a non-numeric cost.
func RawCost(s string) Cost {
	return Cost{raw: s}
}

func (c Cost) Float() (float64, bool) {
	return c.value, c.numeric
}

func (c Cost) String() string {
	if c.numeric {
		return strconv.FormatFloat(c.value, 'f', -1, 64)
	}
	return c.raw
}

func (c *Cost) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*c = Cost{}
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = RawCost(s)
	default:
		v, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			*c = RawCost(string(data))
			return nil
		}
		*c = NewCost(v)
	}
	return nil
}

func (c Cost) MarshalJSON() ([]byte, error) {
	if c.numeric {
		return []byte(strconv.FormatFloat(c.value, 'f', -1, 64)), nil
	}
	if c.raw == "" {
		return []byte("null"), nil
	}
	return json.Marshal(c.raw)
}

// Record is one airplane or component as served by the source API.
// Fields outside the queried ones are kept in Attributes and written back out.
type Record struct {
	ID              int64
	Name            string
	Type            Type
	Cost            Cost
	ProductionStage Stage
	City            string
	State           string
	Attributes      map[string]json.RawMessage
}

func (r Record) Key() Key {
	return Key{Type: r.Type, ID: r.ID}
}

var coreFields = map[string]bool{
	"ID": true, "name": true, "type": true, "cost": true,
	"production_stage": true, "city": true, "state": true,
}

type recordWire struct {
	ID              json.Number `json:"ID"`
	Name            string      `json:"name"`
	Type            Type        `json:"type"`
	Cost            Cost        `json:"cost"`
	ProductionStage Stage       `json:"production_stage"`
	City            string      `json:"city"`
	State           string      `json:"state"`
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var wire recordWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var id int64
	if wire.ID != "" {
		parsed, err := wire.ID.Int64()
		if err != nil {
			f, ferr := wire.ID.Float64()
			if ferr != nil {
				return fmt.Errorf("invalid record ID %q: %w", wire.ID, err)
			}
			parsed = int64(f)
		}
		id = parsed
	}

	*r = Record{
		ID:              id,
		Name:            wire.Name,
		Type:            wire.Type,
		Cost:            wire.Cost,
		ProductionStage: wire.ProductionStage,
		City:            wire.City,
		State:           wire.State,
	}

	for k, v := range fields {
		if coreFields[k] {
			continue
		}
		if r.Attributes == nil {
			r.Attributes = make(map[string]json.RawMessage)
		}
		r.Attributes[k] = v
	}
	return nil
}

func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(r.Attributes)+len(coreFields))
	for k, v := range r.Attributes {
		out[k] = v
	}
	out["ID"] = r.ID
	out["name"] = r.Name
	out["type"] = r.Type
	out["cost"] = r.Cost
	out["production_stage"] = r.ProductionStage
	out["city"] = r.City
	out["state"] = r.State
	return json.Marshal(out)
}

// Snapshot is one merged fetch of both collections. It is never modified after it is published.
type Snapshot struct {
	ID         uuid.UUID
	FetchedAt  time.Time
	Records    []Record
	Airplanes  int
	Components int

	generation uint64
}

type QueryResponse struct {
	Records    []Record              `json:"records"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
	Sort       SortState             `json:"sort"`
	NextSort   map[SortKey]SortState `json:"next_sort"`
	SnapshotID uuid.UUID             `json:"snapshot_id"`
	FetchedAt  time.Time             `json:"fetched_at"`
}

type FilterCatalogGroup struct {
	Name       string               `json:"name"`
	Predicates []FilterCatalogEntry `json:"predicates"`
}

type FilterCatalogEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
