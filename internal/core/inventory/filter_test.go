package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bucketOf returns the ids of every cost predicate the record satisfies.
func bucketOf(r Record) []string {
	var hits []string
	for _, g := range DefaultFilterGroups() {
		if g.Name != GroupCost {
			continue
		}
		for _, p := range g.Predicates {
			if p.Match(r) {
				hits = append(hits, p.ID)
			}
		}
	}
	return hits
}

func TestCostBuckets_Boundaries(t *testing.T) {
	tests := []struct {
		cost float64
		want []string
	}{
		{0, []string{FilterCostUnder50k}},
		{49999.99, []string{FilterCostUnder50k}},
		{50000, []string{FilterCost50kTo99k}},
		{99999.99, []string{FilterCost50kTo99k}},
		{100000, []string{FilterCost100kTo999k}},
		{999999.99, []string{FilterCost100kTo999k}},
		{1000000, []string{FilterCost1mTo10m}},
		{10000000, []string{FilterCost1mTo10m}},
		{10000000.01, []string{FilterCostOver10m}},
		// gaps between the literal bounds belong to no bucket
		{99999.995, nil},
		{999999.995, nil},
	}

	for _, tt := range tests {
		got := bucketOf(Record{Cost: NewCost(tt.cost)})
		assert.Equal(t, tt.want, got, "cost %v", tt.cost)
	}
}

func TestCostBuckets_NonNumericFailsAll(t *testing.T) {
	assert.Empty(t, bucketOf(Record{Cost: RawCost("40000")}))
	assert.Empty(t, bucketOf(Record{Cost: RawCost("n/a")}))
	assert.Empty(t, bucketOf(Record{}))
}

func TestUnknownStageAndTypeFailActiveFilters(t *testing.T) {
	odd := Record{ID: 1, Name: "prototype", Type: "Drone", ProductionStage: "Scrapped", Cost: NewCost(10)}

	for _, id := range []string{FilterAirplane, FilterComponent, FilterFinished, FilterInProgress, FilterUnstarted} {
		filters, err := ActivateFilters(DefaultFilterGroups(), id)
		require.NoError(t, err)
		res := Evaluate([]Record{odd}, Query{Filters: filters, Page: 1})
		assert.Empty(t, res.Records, "filter %s", id)
	}

	res := Evaluate([]Record{odd}, Query{Filters: DefaultFilterGroups(), Page: 1})
	assert.Len(t, res.Records, 1)
}

func TestActivateFilters_DoesNotTouchInput(t *testing.T) {
	base := DefaultFilterGroups()

	active, err := ActivateFilters(base, FilterCost1mTo10m)
	require.NoError(t, err)

	assert.False(t, base[2].HasActive())
	assert.True(t, active[2].HasActive())
	assert.False(t, active[0].HasActive())
	assert.False(t, active[1].HasActive())
}

func TestActivateFilters_UnknownID(t *testing.T) {
	_, err := ActivateFilters(DefaultFilterGroups(), FilterFinished, "cheap")
	assert.ErrorIs(t, err, ErrUnknownFilter)
}

func TestFilterGroup_NilMatchNeverPasses(t *testing.T) {
	g := FilterGroup{Name: "custom", Predicates: []Predicate{{ID: "broken", Active: true}}}
	assert.False(t, g.matches(Record{}))
}

func TestFilterIDs(t *testing.T) {
	assert.Equal(t, []string{
		FilterFinished, FilterInProgress, FilterUnstarted,
		FilterAirplane, FilterComponent,
		FilterCostUnder50k, FilterCost50kTo99k, FilterCost100kTo999k, FilterCost1mTo10m, FilterCostOver10m,
	}, FilterIDs())
}

func TestFilterCatalog(t *testing.T) {
	catalog := FilterCatalog()

	require.Len(t, catalog, 3)
	assert.Equal(t, GroupProductionStage, catalog[0].Name)
	assert.Equal(t, GroupType, catalog[1].Name)
	assert.Equal(t, GroupCost, catalog[2].Name)
	assert.Equal(t, FilterCatalogEntry{ID: FilterCostOver10m, Label: "> $10m"}, catalog[2].Predicates[4])
}
