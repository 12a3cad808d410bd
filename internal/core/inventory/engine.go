package inventory

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

const DefaultPageSize = 12

// Query is everything the dashboard controls: search box, filter checkboxes,
// sorted column and active page. Build a new one per interaction.
type Query struct {
	SearchTerm string
	Filters    []FilterGroup
	Sort       SortState
	Page       int
	PageSize   int
}

type Result struct {
	Records    []Record
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Evaluate filters, sorts and pages records without modifying them.
// A non-positive PageSize falls back to DefaultPageSize. Pages outside
// [1, TotalPages] come back empty.
func Evaluate(records []Record, q Query) Result {
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	fold := cases.Fold()
	term := fold.String(strings.TrimSpace(q.SearchTerm))

	matched := make([]Record, 0, len(records))
	for _, r := range records {
		if !matchesSearch(r, term, fold) {
			continue
		}
		if !matchesFilters(r, q.Filters) {
			continue
		}
		matched = append(matched, r)
	}

	sortRecords(matched, q.Sort)

	return Result{
		Records:    pageOf(matched, q.Page, pageSize),
		Total:      len(matched),
		Page:       q.Page,
		PageSize:   pageSize,
		TotalPages: TotalPages(len(matched), pageSize),
	}
}

func matchesSearch(r Record, term string, fold cases.Caser) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strconv.FormatInt(r.ID, 10), term) {
		return true
	}
	return strings.Contains(fold.String(r.Name), term)
}

func matchesFilters(r Record, groups []FilterGroup) bool {
	for _, g := range groups {
		if !g.matches(r) {
			return false
		}
	}
	return true
}

// TotalPages is never below 1 so there is always a page to show.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pages := pageCount(total, pageSize); pages > 1 {
		return pages
	}
	return 1
}

// pageCount is ceil(total/pageSize) without the overflow of total+pageSize-1.
func pageCount(total, pageSize int) int {
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}
	return pages
}

func pageOf(records []Record, page, pageSize int) []Record {
	if page < 1 || page > pageCount(len(records), pageSize) {
		return []Record{}
	}
	start := (page - 1) * pageSize
	end := start + min(pageSize, len(records)-start)
	out := make([]Record, end-start)
	copy(out, records[start:end])
	return out
}

// Merge concatenates airplanes then components into a new slice, each in
// source order. Records without a type take the type of their collection.
func Merge(airplanes, components []Record) []Record {
	out := make([]Record, 0, len(airplanes)+len(components))
	for _, r := range airplanes {
		if r.Type == "" {
			r.Type = TypeAirplane
		}
		out = append(out, r)
	}
	for _, r := range components {
		if r.Type == "" {
			r.Type = TypeComponent
		}
		out = append(out, r)
	}
	return out
}

// Find looks a record up by its (type, id) identity.
func Find(records []Record, key Key) (Record, bool) {
	for _, r := range records {
		if r.Key() == key {
			return r, true
		}
	}
	return Record{}, false
}
