package inventory

import (
	"fmt"
	"slices"
)

const (
	FilterUnstarted  = "unstarted"
	FilterInProgress = "in_progress"
	FilterFinished   = "finished"

	FilterAirplane  = "airplane"
	FilterComponent = "component"

	FilterCostUnder50k   = "cost_lt_50k"
	FilterCost50kTo99k   = "cost_50k_99k"
	FilterCost100kTo999k = "cost_100k_999k"
	FilterCost1mTo10m    = "cost_1m_10m"
	FilterCostOver10m    = "cost_gt_10m"
)

const (
	GroupProductionStage = "Production Stage"
	GroupType            = "Type"
	GroupCost            = "Cost"
)

// Predicate is one filter checkbox. Match is only consulted while Active.
type Predicate struct {
	ID     string
	Label  string
	Active bool
	Match  func(Record) bool
}

// FilterGroup holds predicates that are meant to be mutually exclusive.
// Exclusivity is not enforced: every active predicate must hold.
type FilterGroup struct {
	Name       string
	Predicates []Predicate
}

func (g FilterGroup) matches(r Record) bool {
	for _, p := range g.Predicates {
		if !p.Active {
			continue
		}
		if p.Match == nil || !p.Match(r) {
			return false
		}
	}
	return true
}

// HasActive reports whether the group constrains anything.
func (g FilterGroup) HasActive() bool {
	for _, p := range g.Predicates {
		if p.Active {
			return true
		}
	}
	return false
}

func stageIs(s Stage) func(Record) bool {
	return func(r Record) bool { return r.ProductionStage == s }
}

func typeIs(t Type) func(Record) bool {
	return func(r Record) bool { return r.Type == t }
}

// costWithin checks cond against numeric costs; non-numeric costs never match.
func costWithin(cond func(float64) bool) func(Record) bool {
	return func(r Record) bool {
		v, ok := r.Cost.Float()
		return ok && cond(v)
	}
}

// DefaultFilterGroups returns a fresh catalog with nothing active.
func DefaultFilterGroups() []FilterGroup {
	return []FilterGroup{
		{
			Name: GroupProductionStage,
			Predicates: []Predicate{
				{ID: FilterFinished, Label: "Finished", Match: stageIs(StageFinished)},
				{ID: FilterInProgress, Label: "In-Progress", Match: stageIs(StageInProgress)},
				{ID: FilterUnstarted, Label: "Unstarted", Match: stageIs(StageUnstarted)},
			},
		},
		{
			Name: GroupType,
			Predicates: []Predicate{
				{ID: FilterAirplane, Label: "Airplane", Match: typeIs(TypeAirplane)},
				{ID: FilterComponent, Label: "Component", Match: typeIs(TypeComponent)},
			},
		},
		{
			Name: GroupCost,
			Predicates: []Predicate{
				{ID: FilterCostUnder50k, Label: "< $50k", Match: costWithin(func(c float64) bool {
					return c < 50000
				})},
				{ID: FilterCost50kTo99k, Label: "$50k - $99k", Match: costWithin(func(c float64) bool {
					return c >= 50000 && c <= 99999.99
				})},
				{ID: FilterCost100kTo999k, Label: "$100k - $999k", Match: costWithin(func(c float64) bool {
					return c >= 100000 && c <= 999999.99
				})},
				{ID: FilterCost1mTo10m, Label: "$1m - $10m", Match: costWithin(func(c float64) bool {
					return c >= 1000000 && c <= 10000000
				})},
				{ID: FilterCostOver10m, Label: "> $10m", Match: costWithin(func(c float64) bool {
					return c > 10000000
				})},
			},
		},
	}
}

// ActivateFilters returns a copy of groups with the named predicates switched on.
func ActivateFilters(groups []FilterGroup, ids ...string) ([]FilterGroup, error) {
	out := make([]FilterGroup, len(groups))
	for i, g := range groups {
		out[i] = FilterGroup{Name: g.Name, Predicates: slices.Clone(g.Predicates)}
	}

	for _, id := range ids {
		found := false
		for gi := range out {
			for pi := range out[gi].Predicates {
				if out[gi].Predicates[pi].ID == id {
					out[gi].Predicates[pi].Active = true
					found = true
				}
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, id)
		}
	}
	return out, nil
}

// FilterIDs lists every predicate id of the default catalog in catalog order.
func FilterIDs() []string {
	var ids []string
	for _, g := range DefaultFilterGroups() {
		for _, p := range g.Predicates {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func FilterCatalog() []FilterCatalogGroup {
	groups := DefaultFilterGroups()
	out := make([]FilterCatalogGroup, 0, len(groups))
	for _, g := range groups {
		entry := FilterCatalogGroup{Name: g.Name}
		for _, p := range g.Predicates {
			entry.Predicates = append(entry.Predicates, FilterCatalogEntry{ID: p.ID, Label: p.Label})
		}
		out = append(out, entry)
	}
	return out
}
