package inventory

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortByName            SortKey = "name"
	SortByType            SortKey = "type"
	SortByCost            SortKey = "cost"
	SortByProductionStage SortKey = "production_stage"
	SortByID              SortKey = "id"
)

// SortKeys in table header order.
var SortKeys = []SortKey{SortByName, SortByType, SortByCost, SortByProductionStage, SortByID}

func (k SortKey) IsValid() bool {
	return slices.Contains(SortKeys, k)
}

func ParseSortKey(s string) (SortKey, error) {
	k := SortKey(s)
	if s == "" || k.IsValid() {
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSortKey, s)
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortState is the active column and direction. An empty Key means merge order.
type SortState struct {
	Key       SortKey   `json:"key,omitempty"`
	Direction Direction `json:"direction"`
}

// Toggle is a click on the key column header: the active column flips
// direction, any other column becomes active ascending.
func (s SortState) Toggle(key SortKey) SortState {
	if s.Key == key {
		if s.Direction == Desc {
			return SortState{Key: key, Direction: Asc}
		}
		return SortState{Key: key, Direction: Desc}
	}
	return SortState{Key: key, Direction: Asc}
}

// NextStates maps every column to the state a click on it would produce.
func (s SortState) NextStates() map[SortKey]SortState {
	out := make(map[SortKey]SortState, len(SortKeys))
	for _, k := range SortKeys {
		out[k] = s.Toggle(k)
	}
	return out
}

type sortValue struct {
	num     float64
	str     string
	numeric bool
}

func valueOf(r Record, key SortKey) sortValue {
	switch key {
	case SortByName:
		return sortValue{str: r.Name}
	case SortByType:
		return sortValue{str: string(r.Type)}
	case SortByProductionStage:
		return sortValue{str: string(r.ProductionStage)}
	case SortByID:
		return sortValue{num: float64(r.ID), str: strconv.FormatInt(r.ID, 10), numeric: true}
	case SortByCost:
		v, ok := r.Cost.Float()
		return sortValue{num: v, str: r.Cost.String(), numeric: ok}
	}
	return sortValue{}
}

type comparator struct {
	key      SortKey
	sign     int
	collator *collate.Collator
}

func newComparator(s SortState) *comparator {
	sign := 1
	if s.Direction == Desc {
		sign = -1
	}
	return &comparator{
		key:      s.Key,
		sign:     sign,
		collator: collate.New(language.English),
	}
}

func (c *comparator) compare(a, b Record) int {
	va, vb := valueOf(a, c.key), valueOf(b, c.key)
	if va.numeric && vb.numeric {
		return c.sign * cmp.Compare(va.num, vb.num)
	}
	return c.sign * c.collator.CompareString(va.str, vb.str)
}

// sortRecords stable-sorts records in place. A zero SortState leaves them untouched.
func sortRecords(records []Record, s SortState) {
	if s.Key == "" || !s.Key.IsValid() {
		return
	}
	c := newComparator(s)
	slices.SortStableFunc(records, c.compare)
}
